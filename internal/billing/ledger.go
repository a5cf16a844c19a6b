// Package billing implements the invoice lifecycle: creating an invoice
// together with its resident splits, recording payments, and keeping the
// invoice's paid flag consistent with its splits.
//
// The settlement derived from an invoice's splits is authoritative. The
// stored invoice flag is a cached hint that propagation and Reconcile keep
// up to date on a best-effort basis.
package billing

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/leasehold/internal/metrics"
	"github.com/mmynk/leasehold/internal/storage"
)

// Ledger coordinates invoices and splits over a storage backend.
// It is safe for concurrent use; payment writes are idempotent in the store.
type Ledger struct {
	store    storage.Store
	now      func() time.Time
	identity func(context.Context) string
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used for payment timestamps and status.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIdentity sets the function returning the current user ID, used to
// stamp CreatedBy on new invoices.
func WithIdentity(identity func(context.Context) string) Option {
	return func(l *Ledger) { l.identity = identity }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

// NewLedger creates a Ledger backed by store.
func NewLedger(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:    store,
		now:      func() time.Time { return time.Now().UTC() },
		identity: func(context.Context) string { return "" },
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
