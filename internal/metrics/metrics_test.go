package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.InvoiceCreated()
		m.SplitPaid()
		m.InvoiceSettled(RuleUpward)
		m.PropagationFailed()
		m.ObserveRPC("/leasehold.v1.InvoiceService/GetInvoice", "ok", 0.01)
	})
}

func TestCounters(t *testing.T) {
	m := New()

	m.InvoiceCreated()
	m.SplitPaid()
	m.SplitPaid()
	m.InvoiceSettled(RuleDownward)
	m.ObserveRPC("/leasehold.v1.InvoiceService/GetInvoice", "not_found", 0.002)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvoicesCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SplitsPaid))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvoicesSettled.WithLabelValues(RuleDownward)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InvoicesSettled.WithLabelValues(RuleUpward)))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.RPCRequests.WithLabelValues("/leasehold.v1.InvoiceService/GetInvoice", "not_found")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.InvoiceCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "leasehold_invoices_created_total 1")
}
