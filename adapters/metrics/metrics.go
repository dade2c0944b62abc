// Package metrics provides Prometheus metrics collection for apops.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for apops.
type Collector struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Invoice engine metrics
	InvoicesGenerated *prometheus.CounterVec
	GenerationSkips   *prometheus.CounterVec
	InvoicesDeleted   prometheus.Counter

	// Payment ledger metrics
	PaymentsRecorded *prometheus.CounterVec
	PaymentsDeleted  prometheus.Counter
	CreditApplied    prometheus.Counter
	CreditSurplus    prometheus.Counter

	// Store metrics
	SnapshotSaves        *prometheus.CounterVec
	SnapshotSaveDuration prometheus.Histogram
}

// New creates a new metrics collector registered on the default registry.
func New() *Collector {
	return newCollector(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a collector registered on a custom registry
// (used by tests to avoid duplicate registration).
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	return newCollector(reg)
}

func newCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "apops",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "apops",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "path"},
		),

		InvoicesGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "apops",
				Name:      "invoices_generated_total",
				Help:      "Invoices created by batch generation or lease signing",
			},
			[]string{"workspace", "source"},
		),
		GenerationSkips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "apops",
				Name:      "generation_skips_total",
				Help:      "Leases skipped during batch generation",
			},
			[]string{"workspace", "reason"},
		),
		InvoicesDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "apops",
				Name:      "invoices_deleted_total",
				Help:      "Invoices deleted by the operator",
			},
		),

		PaymentsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "apops",
				Name:      "payments_recorded_total",
				Help:      "Payments recorded against invoices",
			},
			[]string{"workspace", "method"},
		),
		PaymentsDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "apops",
				Name:      "payments_deleted_total",
				Help:      "Payments deleted (effects reversed on the invoice)",
			},
		),
		CreditApplied: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "apops",
				Name:      "credit_applied_total",
				Help:      "Credit-balance applications against invoices",
			},
		),
		CreditSurplus: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "apops",
				Name:      "credit_surplus_total",
				Help:      "Overpayment surpluses credited to tenant balances",
			},
		),

		SnapshotSaves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "apops",
				Name:      "snapshot_saves_total",
				Help:      "Workspace snapshot writes",
			},
			[]string{"workspace"},
		),
		SnapshotSaveDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "apops",
				Name:      "snapshot_save_duration_seconds",
				Help:      "Workspace snapshot write duration in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5},
			},
		),
	}
}
