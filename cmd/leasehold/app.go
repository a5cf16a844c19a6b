package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/leasehold/internal/billing"
	"github.com/mmynk/leasehold/internal/config"
	"github.com/mmynk/leasehold/internal/metrics"
	"github.com/mmynk/leasehold/internal/middleware"
	"github.com/mmynk/leasehold/internal/storage"
	"github.com/mmynk/leasehold/internal/storage/postgres"
	"github.com/mmynk/leasehold/internal/storage/sqlite"
	"github.com/mmynk/leasehold/pkg/logging"
)

// app holds the dependencies every command needs.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   storage.Store
	metrics *metrics.Metrics
	ledger  *billing.Ledger
}

// newApp loads configuration, sets up logging and opens the store.
func newApp(cmd *cobra.Command) (*app, error) {
	envFile, _ := cmd.Flags().GetString("env-file")

	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}

	logger := logging.Setup(cfg.LogLevel)

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Storage initialized", "driver", cfg.DBDriver)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	ledger := billing.NewLedger(store,
		billing.WithIdentity(middleware.GetUserID),
		billing.WithLogger(logger),
		billing.WithMetrics(m),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		metrics: m,
		ledger:  ledger,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("Failed to close storage", "error", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		store, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
}
