package migration

import (
	"context"
	"fmt"

	coreport "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
)

// SeedUsers creates the configured bootstrap accounts that are not stored yet
func SeedUsers(ctx context.Context, users usecase.UserUseCase, seeds []usecase.CreateUserRequest, logger coreport.Logger) error {
	if len(seeds) == 0 {
		return nil
	}

	created, err := users.EnsureUsers(ctx, seeds)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	logger.Info("Seed users ensured", map[string]any{
		"configured": len(seeds),
		"created":    created,
	})
	return nil
}
