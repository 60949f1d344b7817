// Package config loads application configuration.
//
// Sources, lowest precedence first: built-in defaults, an optional YAML
// file, a .env file in the working directory, and DEPRECIATION_* environment
// variables. DEPRECIATION_SERVER_PORT overrides server.port and so on.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "DEPRECIATION"

// Config represents the complete application configuration.
type Config struct {
	Environment string        `mapstructure:"environment"`
	Server      ServerConfig  `mapstructure:"server"`
	Store       StoreConfig   `mapstructure:"store"`
	Runs        RunsConfig    `mapstructure:"runs"`
	Report      ReportConfig  `mapstructure:"report"`
	Logging     LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig selects the run cache database. ":memory:" keeps runs for
// the lifetime of the process only.
type StoreConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RunsConfig controls how long cached runs are kept.
type RunsConfig struct {
	Retention time.Duration `mapstructure:"retention"`
	PruneCron string        `mapstructure:"prune_cron"`
	ListLimit int           `mapstructure:"list_limit"`
}

// ReportConfig holds report display defaults.
type ReportConfig struct {
	Currency string `mapstructure:"currency"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // "text" or "json"
}

// Load reads configuration. path may be empty, in which case config.yaml
// is looked up in ./config and the working directory and is optional.
func Load(path string) (*Config, error) {
	// A missing .env is normal; existing env vars win over it.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(".", "config"))
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Store.DSN == "" {
		return fmt.Errorf("store.dsn must not be empty")
	}
	// Zero disables pruning.
	if c.Runs.Retention < 0 {
		return fmt.Errorf("runs.retention must not be negative, got %s", c.Runs.Retention)
	}
	return nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173", "http://localhost:8080"})
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("store.dsn", ":memory:")

	v.SetDefault("runs.retention", 24*time.Hour)
	v.SetDefault("runs.prune_cron", "@every 15m")
	v.SetDefault("runs.list_limit", 50)

	v.SetDefault("report.currency", "USD")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}
