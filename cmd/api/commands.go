package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/auth"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/database/migration"
	timeProvider "github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/time"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/config"
)

// runMigrate handles "migrate up", "migrate down [steps]" and "migrate status"
func runMigrate(cfg *config.Config, appLogger core.Logger, args []string) error {
	if len(args) == 0 {
		return errors.New("migrate needs one of: up, down, status")
	}

	dbConfig, err := cfg.DatabaseConfig()
	if err != nil {
		return err
	}
	runner := migration.NewRunner(dbConfig.DSN(), appLogger)

	switch args[0] {
	case "up":
		return runner.Up()
	case "down":
		steps := 1
		if len(args) > 1 {
			if steps, err = strconv.Atoi(args[1]); err != nil || steps < 1 {
				return fmt.Errorf("invalid number of steps %q", args[1])
			}
		}
		return runner.Down(steps)
	case "status":
		status, err := runner.Status()
		if err != nil {
			return err
		}
		if !status.Applied {
			fmt.Println("no migrations applied")
			return nil
		}
		fmt.Printf("version %d (dirty: %t)\n", status.Version, status.Dirty)
		return nil
	default:
		return fmt.Errorf("unknown migrate command %q", args[0])
	}
}

// issueToken prints a signed bearer token. Accounts are issued tokens by the
// marketplace itself; this is for local testing.
func issueToken(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	userID := fs.String("user", "", "account id (uuid)")
	role := fs.String("role", string(entity.RoleJobSeeker), "marketplace role")
	serverRoles := fs.String("server-roles", "", "comma separated capability tags, e.g. Admin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := entity.ParseUserID(*userID)
	if err != nil {
		return err
	}
	parsedRole, err := entity.ParseRole(*role)
	if err != nil {
		return err
	}

	var capabilities []string
	for _, tag := range strings.Split(*serverRoles, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			capabilities = append(capabilities, tag)
		}
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, timeProvider.NewRealTimeProvider())
	token, err := tokens.Generate(id.String(), parsedRole, capabilities)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Println(token)
	return nil
}
