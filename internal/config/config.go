// Package config loads server configuration from defaults, an optional YAML
// file and GOPHTASKS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "GOPHTASKS_"

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all server configuration
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig selects the storage backend
type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"` // только для postgres
	AutoMigrate  bool   `yaml:"auto_migrate"`
}

// AuthConfig holds bearer token settings
type AuthConfig struct {
	TokenTTL    time.Duration `yaml:"token_ttl"`
	ReuseMargin time.Duration `yaml:"reuse_margin"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text или json
}

// MetricsConfig holds the Prometheus listener settings
type MetricsConfig struct {
	Address string `yaml:"address"`
	Enabled bool   `yaml:"enabled"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       DriverSQLite,
			DSN:          "gophtasks.db",
			MaxOpenConns: 10,
			AutoMigrate:  true,
		},
		Auth: AuthConfig{
			TokenTTL:    time.Hour,
			ReuseMargin: time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Address: ":9090",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when path is empty), then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnv() {
	c.Server.Address = getEnv(EnvPrefix+"ADDRESS", c.Server.Address)
	c.Server.ReadTimeout = getEnvDuration(EnvPrefix+"READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvDuration(EnvPrefix+"WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = getEnvDuration(EnvPrefix+"IDLE_TIMEOUT", c.Server.IdleTimeout)
	c.Server.ShutdownTimeout = getEnvDuration(EnvPrefix+"SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Database.Driver = getEnv(EnvPrefix+"DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv(EnvPrefix+"DB_DSN", c.Database.DSN)
	c.Database.MaxOpenConns = getEnvInt(EnvPrefix+"DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.AutoMigrate = getEnvBool(EnvPrefix+"DB_AUTO_MIGRATE", c.Database.AutoMigrate)

	c.Auth.TokenTTL = getEnvDuration(EnvPrefix+"TOKEN_TTL", c.Auth.TokenTTL)
	c.Auth.ReuseMargin = getEnvDuration(EnvPrefix+"TOKEN_REUSE_MARGIN", c.Auth.ReuseMargin)

	c.Log.Level = getEnv(EnvPrefix+"LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv(EnvPrefix+"LOG_FORMAT", c.Log.Format)

	c.Metrics.Enabled = getEnvBool(EnvPrefix+"METRICS_ENABLED", c.Metrics.Enabled)
	c.Metrics.Address = getEnv(EnvPrefix+"METRICS_ADDRESS", c.Metrics.Address)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("invalid database driver: %q (must be %s or %s)", c.Database.Driver, DriverSQLite, DriverPostgres)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}
	if c.Auth.ReuseMargin < 0 || c.Auth.ReuseMargin >= c.Auth.TokenTTL {
		return fmt.Errorf("token reuse margin must be in [0, token ttl)")
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q (must be text or json)", c.Log.Format)
	}

	if c.Metrics.Enabled {
		if c.Metrics.Address == "" {
			return fmt.Errorf("metrics address is required when metrics are enabled")
		}
		if c.Metrics.Address == c.Server.Address {
			return fmt.Errorf("server address and metrics address must be different")
		}
	}

	return nil
}

// ParseLevel parses a log level name
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %q", level)
	}
}

// NewLogger builds the slog logger described by the log section
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, _ := ParseLevel(l.Level)
	opts := &slog.HandlerOptions{Level: level}

	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
