package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	coreport "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Status describes the schema version recorded in the database
type Status struct {
	Version uint
	Dirty   bool
	Applied bool
}

// Runner applies the embedded versioned SQL migrations
type Runner struct {
	databaseURL string
	logger      coreport.Logger
}

// NewRunner creates a migration runner for the given database URL
func NewRunner(databaseURL string, logger coreport.Logger) *Runner {
	return &Runner{databaseURL: databaseURL, logger: logger}
}

// Up applies every pending migration
func (r *Runner) Up() error {
	m, err := r.open()
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info("No new migrations to apply", nil)
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, _ := m.Version()
	r.logger.Info("Database migrated", map[string]any{"version": version})
	return nil
}

// Down rolls back the given number of migrations
func (r *Runner) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	m, err := r.open()
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info("No migrations to roll back", nil)
			return nil
		}
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	version, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		version = 0
	}
	r.logger.Info("Database rolled back", map[string]any{"version": version, "steps": steps})
	return nil
}

// Status reports the current schema version
func (r *Runner) Status() (Status, error) {
	m, err := r.open()
	if err != nil {
		return Status{}, err
	}
	defer closeMigrate(m)

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("failed to get migration version: %w", err)
	}
	return Status{Version: version, Dirty: dirty, Applied: true}, nil
}

func (r *Runner) open() (*migrate.Migrate, error) {
	connConfig, err := pgx.ParseConfig(r.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	db := stdlib.OpenDB(*connConfig)

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func closeMigrate(m *migrate.Migrate) {
	_, _ = m.Close()
}
