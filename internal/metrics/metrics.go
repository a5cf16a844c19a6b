// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leasehold"

// Settlement rules, used as the "rule" label of InvoicesSettled.
const (
	RuleUpward    = "upward"
	RuleDownward  = "downward"
	RuleReconcile = "reconcile"
)

// Metrics holds every collector. A nil *Metrics is valid and records nothing,
// so components can be constructed without a registry in tests.
type Metrics struct {
	registry *prometheus.Registry

	InvoicesCreated     prometheus.Counter
	SplitsPaid          prometheus.Counter
	InvoicesSettled     *prometheus.CounterVec
	PropagationFailures prometheus.Counter
	RPCRequests         *prometheus.CounterVec
	RPCDuration         *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry that also carries the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		InvoicesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_created_total",
			Help:      "Invoices created together with their splits.",
		}),
		SplitsPaid: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "splits_paid_total",
			Help:      "Splits transitioned from unpaid to paid.",
		}),
		InvoicesSettled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_settled_total",
			Help:      "Invoices transitioned to paid, by settlement rule.",
		}, []string{"rule"}),
		PropagationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "propagation_failures_total",
			Help:      "Settlement propagations that left an invoice partially settled.",
		}),
		RPCRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) InvoiceCreated() {
	if m == nil {
		return
	}
	m.InvoicesCreated.Inc()
}

func (m *Metrics) SplitPaid() {
	if m == nil {
		return
	}
	m.SplitsPaid.Inc()
}

func (m *Metrics) InvoiceSettled(rule string) {
	if m == nil {
		return
	}
	m.InvoicesSettled.WithLabelValues(rule).Inc()
}

func (m *Metrics) PropagationFailed() {
	if m == nil {
		return
	}
	m.PropagationFailures.Inc()
}

// ObserveRPC records one completed call.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(seconds)
}
