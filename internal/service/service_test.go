package service

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
	"github.com/stretchr/testify/require"

	"github.com/mmynk/leasehold/internal/billing"
	"github.com/mmynk/leasehold/internal/middleware"
	"github.com/mmynk/leasehold/internal/models"
	"github.com/mmynk/leasehold/internal/storage/sqlite"
	"github.com/mmynk/leasehold/pkg/api"
)

const (
	managerID  = "manager-1"
	residentID = "resident-user-1"
	outsiderID = "outsider-1"

	testUserHeader = "X-Test-User"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store      *sqlite.SQLiteStore
	invoices   api.InvoiceServiceClient
	properties api.PropertyServiceClient

	property  *models.Property
	residents []*models.Resident
}

// identityInterceptor trusts a test header as the caller's user ID.
func identityInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if userID := req.Header().Get(testUserHeader); userID != "" {
				ctx = middleware.WithUser(ctx, userID, userID+"@example.com")
			}
			return next(ctx, req)
		}
	}
}

// as builds a request sent by userID; an empty userID is anonymous.
func as[T any](userID string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if userID != "" {
		req.Header().Set(testUserHeader, userID)
	}
	return req
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEnv serves the invoice and property services over HTTP with a
// property managed by managerID and three residents, the first linked to
// residentID.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "leasehold.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ledger := billing.NewLedger(store,
		billing.WithClock(func() time.Time { return testNow }),
		billing.WithIdentity(middleware.GetUserID),
		billing.WithLogger(discardLogger()),
	)

	interceptors := connect.WithInterceptors(identityInterceptor())
	mux := http.NewServeMux()
	mux.Handle(api.NewInvoiceServiceHandler(NewInvoiceService(ledger, store, discardLogger()), interceptors))
	mux.Handle(api.NewPropertyServiceHandler(NewPropertyService(store, discardLogger()), interceptors))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	env := &testEnv{
		store:      store,
		invoices:   api.NewInvoiceServiceClient(server.Client(), server.URL),
		properties: api.NewPropertyServiceClient(server.Client(), server.URL),
	}

	env.property = &models.Property{Name: "Maple Court", ManagerID: managerID}
	require.NoError(t, store.CreateProperty(ctx, env.property))

	for i, name := range []string{"Alice", "Bob", "Charlie"} {
		r := &models.Resident{PropertyID: env.property.ID, Name: name}
		if i == 0 {
			r.UserID = residentID
		}
		require.NoError(t, store.CreateResident(ctx, r))
		env.residents = append(env.residents, r)
	}
	return env
}

func (e *testEnv) residentIDs() []string {
	ids := make([]string, len(e.residents))
	for i, r := range e.residents {
		ids[i] = r.ID
	}
	return ids
}

// createInvoice issues an equal-split invoice for all residents as the manager.
func (e *testEnv) createInvoice(t *testing.T, amount string, due time.Time) *api.Invoice {
	t.Helper()
	resp, err := e.invoices.CreateInvoice(context.Background(), as(managerID, &api.CreateInvoiceRequest{
		PropertyID:  e.property.ID,
		Title:       "Water",
		Amount:      amount,
		IssueDate:   due.AddDate(0, 0, -14).Unix(),
		DueDate:     due.Unix(),
		ResidentIDs: e.residentIDs(),
		Strategy:    "equal",
	}))
	require.NoError(t, err)
	return resp.Msg.Invoice
}
