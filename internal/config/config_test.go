package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "DB_DRIVER", "DB_PATH", "POSTGRES_DSN", "JWT_SECRET",
	"TOKEN_TTL", "LOG_LEVEL", "METRICS_ENABLED",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func fromMap(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parse(fromMap(map[string]string{"JWT_SECRET": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "./data/leasehold.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, cfg.MetricsEnabled)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := parse(fromMap(map[string]string{
		"PORT":            "9090",
		"DB_DRIVER":       "Postgres",
		"POSTGRES_DSN":    "postgres://localhost/leasehold?sslmode=disable",
		"JWT_SECRET":      "s3cret",
		"TOKEN_TTL":       "90m",
		"LOG_LEVEL":       "debug",
		"METRICS_ENABLED": "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.MetricsEnabled)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET"},
		{"bad port", map[string]string{"JWT_SECRET": "x", "PORT": "http"}, "PORT"},
		{"unknown driver", map[string]string{"JWT_SECRET": "x", "DB_DRIVER": "mysql"}, "DB_DRIVER"},
		{"postgres without dsn", map[string]string{"JWT_SECRET": "x", "DB_DRIVER": "postgres"}, "POSTGRES_DSN"},
		{"bad ttl", map[string]string{"JWT_SECRET": "x", "TOKEN_TTL": "-1h"}, "TOKEN_TTL"},
		{"bad level", map[string]string{"JWT_SECRET": "x", "LOG_LEVEL": "loud"}, "LOG_LEVEL"},
		{"bad bool", map[string]string{"JWT_SECRET": "x", "METRICS_ENABLED": "maybe"}, "METRICS_ENABLED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(fromMap(tt.vars))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDotenv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nPORT=7000\nLOG_LEVEL=warn\n"), 0o600))

	t.Setenv("PORT", "7100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 7100, cfg.Port, "environment wins over the file")
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)

	_, isSet := os.LookupEnv("JWT_SECRET")
	assert.False(t, isSet, "Load must not modify the environment")
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}
