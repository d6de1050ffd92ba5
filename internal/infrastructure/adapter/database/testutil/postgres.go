package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/database"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/database/migration"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/logger"
	timeprovider "github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/time"
)

// SetupPostgres starts a disposable PostgreSQL container, applies the migrations and
// returns a connected manager. Skipped with -short.
func SetupPostgres(t *testing.T) *database.Manager {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("coins_test"),
		postgres.WithUsername("coins"),
		postgres.WithPassword("coins"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{
			"test":      "topish-coins",
			"test-name": t.Name(),
		}),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: Failed to terminate test container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	config := database.DefaultConfig()
	config.Host = host
	config.Port = port.Int()
	config.Username = "coins"
	config.Password = "coins"
	config.Database = "coins_test"
	config.LogLevel = "silent"

	log := logger.NewNoopLogger()
	require.NoError(t, migration.NewRunner(config.DSN(), log).Up())

	manager := database.NewManager(config, log, timeprovider.NewRealTimeProvider())
	_, err = manager.Connect(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })

	return manager
}
