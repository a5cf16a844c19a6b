package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/leasehold/internal/billing"
	"github.com/mmynk/leasehold/internal/config"
	"github.com/mmynk/leasehold/internal/metrics"
	"github.com/mmynk/leasehold/pkg/api"
)

func newTestApp(t *testing.T) *app {
	t.Helper()

	cfg := &config.Config{
		DBDriver:       config.DriverSQLite,
		DBPath:         filepath.Join(t.TempDir(), "data", "leasehold.db"),
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		MetricsEnabled: true,
	}
	store, err := openStore(context.Background(), cfg)
	require.NoError(t, err)

	m := metrics.New()
	a := &app{
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		store:   store,
		metrics: m,
		ledger:  billing.NewLedger(store, billing.WithMetrics(m)),
	}
	t.Cleanup(a.Close)
	return a
}

func TestOpenStoreCreatesDataDir(t *testing.T) {
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "nested", "data", "leasehold.db"),
	}
	store, err := openStore(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.DirExists(t, filepath.Dir(cfg.DBPath))
	assert.FileExists(t, cfg.DBPath)
}

func TestRoutes(t *testing.T) {
	a := newTestApp(t)
	server := httptest.NewServer(a.routes())
	t.Cleanup(server.Close)
	ctx := context.Background()

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	authClient := api.NewAuthServiceClient(server.Client(), server.URL)
	registered, err := authClient.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:    "manager@example.com",
		Password: "correct-horse",
	}))
	require.NoError(t, err)

	properties := api.NewPropertyServiceClient(server.Client(), server.URL)

	_, err = properties.ListProperties(ctx, connect.NewRequest(&api.ListPropertiesRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	req := connect.NewRequest(&api.CreatePropertyRequest{Name: "Maple Court"})
	req.Header().Set("Authorization", "Bearer "+registered.Msg.Token)
	created, err := properties.CreateProperty(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, registered.Msg.User.ID, created.Msg.Property.ManagerID)

	resp, err = http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "leasehold_rpc_requests_total")
}
