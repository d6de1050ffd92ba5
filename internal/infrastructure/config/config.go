package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/usecase/coin"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/database"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/messaging"
)

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Auth        AuthConfig     `mapstructure:"auth"`
	CORS        CORSConfig     `mapstructure:"cors"`
	Coins       CoinsConfig    `mapstructure:"coins"`
	NATS        NATSConfig     `mapstructure:"nats"`
	Seed        SeedConfig     `mapstructure:"seed"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// Addr is the listen address of the HTTP server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
	// MigrateOnStart applies pending schema migrations before serving
	MigrateOnStart bool `mapstructure:"migrateOnStart"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// SQLLevel is the gorm log level: silent, error, warn or info
	SQLLevel string `mapstructure:"sqlLevel"`
}

// AuthConfig contains bearer token settings
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwtSecret"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"tokenTTL"` // minutes
}

// CORSConfig lists the browser origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// CoinsConfig contains coin ledger settings
type CoinsConfig struct {
	DefaultBalance     int64            `mapstructure:"defaultBalance"`
	FeatureCosts       map[string]int64 `mapstructure:"featureCosts"`
	HistoryPageSize    int              `mapstructure:"historyPageSize"`
	MaxHistoryPageSize int              `mapstructure:"maxHistoryPageSize"`
	TransactionTimeout time.Duration    `mapstructure:"transactionTimeout"` // seconds
}

// NATSConfig contains ledger event publishing settings. An empty URL disables publishing.
type NATSConfig struct {
	URL           string        `mapstructure:"url"`
	ClientName    string        `mapstructure:"clientName"`
	StreamName    string        `mapstructure:"streamName"`
	SubjectPrefix string        `mapstructure:"subjectPrefix"`
	MaxReconnects int           `mapstructure:"maxReconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnectWait"` // seconds
}

// SeedConfig lists accounts created on start when absent
type SeedConfig struct {
	Users []SeedUser `mapstructure:"users"`
}

type SeedUser struct {
	ID          string   `mapstructure:"id"`
	Role        string   `mapstructure:"role"`
	ServerRoles []string `mapstructure:"serverRoles"`
	Coins       *int64   `mapstructure:"coins"`
}

// IsProduction reports whether the production environment is selected
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	var missing []string

	if c.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if c.Server.ShutdownTimeout == 0 {
		missing = append(missing, "server.shutdownTimeout")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "auth.jwtSecret (or COINS_JWT_SECRET)")
	}
	if c.Coins.TransactionTimeout == 0 {
		missing = append(missing, "coins.transactionTimeout")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}

	switch c.Environment {
	case Development, Production, Test:
	default:
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			c.Environment, Development, Production, Test)
	}

	if c.Coins.DefaultBalance < 0 {
		return fmt.Errorf("coins.defaultBalance must not be negative, got: %d", c.Coins.DefaultBalance)
	}
	for feature, cost := range c.Coins.FeatureCosts {
		if cost <= 0 {
			return fmt.Errorf("coins.featureCosts.%s must be positive, got: %d", feature, cost)
		}
	}
	if c.Coins.HistoryPageSize <= 0 || c.Coins.HistoryPageSize > c.Coins.MaxHistoryPageSize {
		return fmt.Errorf("coins.historyPageSize must be between 1 and %d, got: %d",
			c.Coins.MaxHistoryPageSize, c.Coins.HistoryPageSize)
	}

	for i, u := range c.Seed.Users {
		if u.ID == "" {
			return fmt.Errorf("seed.users[%d].id is required", i)
		}
	}

	dbConfig, err := c.DatabaseConfig()
	if err != nil {
		return err
	}
	return dbConfig.Validate()
}

// DatabaseConfig converts the database section for the database manager
func (c *Config) DatabaseConfig() (*database.Config, error) {
	port, err := strconv.Atoi(c.Database.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid database port %q: %w", c.Database.Port, err)
	}

	return &database.Config{
		Host:            c.Database.Host,
		Port:            port,
		Username:        c.Database.Username,
		Password:        c.Database.Password,
		Database:        c.Database.Database,
		SSLMode:         c.Database.SSLMode,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		QueryTimeout:    c.Database.QueryTimeout,
		LogLevel:        c.Logger.SQLLevel,
		RetryAttempts:   c.Database.RetryAttempts,
		RetryDelay:      c.Database.RetryDelay,
	}, nil
}

// CoinSettings converts the coins section for the coin service
func (c *Config) CoinSettings() coin.Settings {
	costs := make(map[string]int64, len(c.Coins.FeatureCosts))
	for feature, cost := range c.Coins.FeatureCosts {
		costs[strings.ToLower(feature)] = cost
	}

	return coin.Settings{
		TransactionTimeout: c.Coins.TransactionTimeout,
		FeatureCosts:       costs,
		HistoryPageSize:    c.Coins.HistoryPageSize,
		MaxHistoryPageSize: c.Coins.MaxHistoryPageSize,
	}
}

// PublisherConfig converts the nats section for the ledger event publisher
func (c *Config) PublisherConfig() messaging.Config {
	return messaging.Config{
		URL:           c.NATS.URL,
		ClientName:    c.NATS.ClientName,
		StreamName:    c.NATS.StreamName,
		SubjectPrefix: c.NATS.SubjectPrefix,
		MaxReconnects: c.NATS.MaxReconnects,
		ReconnectWait: c.NATS.ReconnectWait,
	}
}

// SeedRequests converts the seed section for the user use case
func (c *Config) SeedRequests() []usecase.CreateUserRequest {
	reqs := make([]usecase.CreateUserRequest, 0, len(c.Seed.Users))
	for _, u := range c.Seed.Users {
		reqs = append(reqs, usecase.CreateUserRequest{
			ID:          u.ID,
			Role:        u.Role,
			ServerRoles: u.ServerRoles,
			Coins:       u.Coins,
		})
	}
	return reqs
}
