package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
	messagingport "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/messaging"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/usecase/coin"
	userUseCase "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/usecase/user"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/handler"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/middleware"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/routes"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/auth"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/database"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/database/migration"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/logger"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/messaging"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/repository"
	timeProvider "github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/time"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/config"
)

const usage = `usage: api [command]

commands:
  serve                 run the HTTP API (default)
  migrate up            apply all pending migrations
  migrate down [steps]  roll back the given number of migrations (default 1)
  migrate status        print the current schema version
  token -user <id>      issue a bearer token for local testing`

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.IsProduction() || cfg.Logger.Format == "json", core.ParseLogLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	command, args := "serve", []string(nil)
	if len(os.Args) > 1 {
		command, args = os.Args[1], os.Args[2:]
	}

	switch command {
	case "serve":
		err = serve(cfg, appLogger)
	case "migrate":
		err = runMigrate(cfg, appLogger, args)
	case "token":
		err = issueToken(cfg, args)
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		err = fmt.Errorf("unknown command %q\n%s", command, usage)
	}

	if err != nil {
		appLogger.Error("Command failed", map[string]any{
			"command": command,
			"error":   err.Error(),
		})
		_ = appLogger.Flush()
		os.Exit(1)
	}
}

func serve(cfg *config.Config, appLogger core.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tp := timeProvider.NewRealTimeProvider()

	dbConfig, err := cfg.DatabaseConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = dbManager.Close() }()

	if cfg.Database.MigrateOnStart {
		if err := migration.NewRunner(dbConfig.DSN(), appLogger).Up(); err != nil {
			return err
		}
	}

	uow := dbManager.CreateUnitOfWork()
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger)

	userUseCaseImpl := userUseCase.NewUserUseCase(userRepo, tp, appLogger, cfg.Coins.DefaultBalance)
	if err := migration.SeedUsers(ctx, userUseCaseImpl, cfg.SeedRequests(), appLogger); err != nil {
		return err
	}

	publisher := newPublisher(cfg, appLogger)
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Warn("Failed to close ledger event publisher", map[string]any{"error": err.Error()})
		}
	}()

	coinService := coin.NewService(uow, publisher, tp, appLogger, cfg.CoinSettings())
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, tp)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp, cfg.CORS.AllowedOrigins)
	routes.SetupRoutes(router, routes.Handlers{
		Coin:   handler.NewCoinHandler(coinService),
		User:   handler.NewUserHandler(coinService),
		Health: handler.NewHealthHandler(dbManager, appLogger),
	}, middleware.Auth(tokens, appLogger))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
	return nil
}

// newPublisher connects to NATS when configured. An unreachable broker degrades to the
// no-op publisher.
func newPublisher(cfg *config.Config, appLogger core.Logger) messagingport.CoinEventPublisher {
	if cfg.NATS.URL == "" {
		appLogger.Info("NATS not configured, ledger events are not published", nil)
		return messaging.NewNoopPublisher()
	}

	publisher, err := messaging.NewNATSPublisher(cfg.PublisherConfig(), appLogger)
	if err != nil {
		appLogger.Error("Failed to connect ledger event publisher", map[string]any{
			"url":   cfg.NATS.URL,
			"error": err.Error(),
		})
		return messaging.NewNoopPublisher()
	}
	return publisher
}
