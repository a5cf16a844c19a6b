// Package config loads server settings from the environment, with an
// optional .env file supplying defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/leasehold/pkg/logging"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the settings shared by every command.
type Config struct {
	Port int

	// DBDriver selects the storage backend: sqlite or postgres.
	DBDriver    string
	DBPath      string
	PostgresDSN string

	JWTSecret string
	TokenTTL  time.Duration

	LogLevel       slog.Level
	MetricsEnabled bool
}

// Load reads configuration from the process environment. Values in the
// given dotenv files (".env" when none are given) fill in variables the
// environment does not set. A missing default .env is not an error.
func Load(files ...string) (*Config, error) {
	optional := len(files) == 0
	if optional {
		files = []string{".env"}
	}

	fileVars := make(map[string]string)
	for _, file := range files {
		vars, err := godotenv.Read(file)
		if err != nil {
			if optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		for k, v := range vars {
			if _, ok := fileVars[k]; !ok {
				fileVars[k] = v
			}
		}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(fileVars[key])
	}
	return parse(lookup)
}

func parse(lookup func(string) string) (*Config, error) {
	cfg := &Config{
		Port:           8080,
		DBDriver:       DriverSQLite,
		DBPath:         "./data/leasehold.db",
		TokenTTL:       24 * time.Hour,
		LogLevel:       slog.LevelInfo,
		MetricsEnabled: true,
	}

	var errs []error
	if v := lookup("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("PORT: invalid port %q", v))
		}
		cfg.Port = port
	}

	if v := lookup("DB_DRIVER"); v != "" {
		cfg.DBDriver = strings.ToLower(v)
	}
	if v := lookup("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	cfg.PostgresDSN = lookup("POSTGRES_DSN")

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.PostgresDSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN: required when DB_DRIVER is postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unknown driver %q", cfg.DBDriver))
	}

	cfg.JWTSecret = lookup("JWT_SECRET")
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET: required"))
	}

	if v := lookup("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			errs = append(errs, fmt.Errorf("TOKEN_TTL: invalid duration %q", v))
		}
		cfg.TokenTTL = ttl
	}

	level, err := logging.ParseLevel(lookup("LOG_LEVEL"))
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	cfg.LogLevel = level

	if v := lookup("METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("METRICS_ENABLED: invalid boolean %q", v))
		}
		cfg.MetricsEnabled = enabled
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
