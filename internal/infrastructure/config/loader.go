package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override, e.g. COINS_SERVER_PORT
const EnvPrefix = "COINS"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// envAliases are short names accepted next to the derived COINS_<SECTION>_<KEY> names
var envAliases = map[string][]string{
	"database.host":       {"COINS_DB_HOST"},
	"database.port":       {"COINS_DB_PORT"},
	"database.username":   {"COINS_DB_USERNAME"},
	"database.password":   {"COINS_DB_PASSWORD"},
	"database.database":   {"COINS_DB_NAME"},
	"database.sslMode":    {"COINS_DB_SSL_MODE"},
	"auth.jwtSecret":      {"COINS_JWT_SECRET"},
	"auth.issuer":         {"COINS_JWT_ISSUER"},
	"nats.url":            {"COINS_NATS_URL"},
	"cors.allowedOrigins": {"COINS_CORS_ORIGINS"},
}

// LoadConfig loads configuration from configs/<env>.yaml, .env files and COINS_ environment
// variables. A missing config file is not an error.
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnvAliases(v); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first .env file found. Variables already set are not overwritten.
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return errors.New("no .env file found in search paths")
}

// bindEnvAliases binds each aliased key to its derived name and then its short names
func bindEnvAliases(v *viper.Viper) error {
	replacer := strings.NewReplacer(".", "_")
	for key, aliases := range envAliases {
		derived := EnvPrefix + "_" + strings.ToUpper(replacer.Replace(key))
		names := append([]string{key, derived}, aliases...)
		if err := v.BindEnv(names...); err != nil {
			return fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}
	return nil
}

// setDefaults sets default values. Every key needs one so that AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "topish_coins")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds
	v.SetDefault("database.migrateOnStart", true)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.sqlLevel", "warn")

	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.tokenTTL", 60) // minutes

	v.SetDefault("cors.allowedOrigins", []string{})

	v.SetDefault("coins.defaultBalance", 50)
	v.SetDefault("coins.featureCosts", map[string]any{"company": 5, "office": 5})
	v.SetDefault("coins.historyPageSize", 20)
	v.SetDefault("coins.maxHistoryPageSize", 100)
	v.SetDefault("coins.transactionTimeout", 5) // seconds

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.clientName", "topish-coins")
	v.SetDefault("nats.streamName", "COIN_LEDGER")
	v.SetDefault("nats.subjectPrefix", "coins.ledger")
	v.SetDefault("nats.maxReconnects", 10)
	v.SetDefault("nats.reconnectWait", 2) // seconds
}

// getEnvironment determines the environment to use based on the COINS_ENV environment variable
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Auth.TokenTTL = time.Duration(config.Auth.TokenTTL) * time.Minute
	config.Coins.TransactionTimeout = time.Duration(config.Coins.TransactionTimeout) * time.Second
	config.NATS.ReconnectWait = time.Duration(config.NATS.ReconnectWait) * time.Second
}
