package core

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's prometheus collectors. It is created once in
// main and handed to the components that record into it.
type Metrics struct {
	Registry     *prometheus.Registry
	SyncRuns     *prometheus.CounterVec
	SyncImported prometheus.Counter
	SyncSkipped  prometheus.Counter
	StoreErrors  *prometheus.CounterVec
	TrackingRuns *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		SyncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "packtrack",
			Name:      "sync_runs_total",
			Help:      "Integration sync runs by outcome.",
		}, []string{"outcome"}),
		SyncImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "packtrack",
			Name:      "sync_imported_total",
			Help:      "Shipments imported by integration sync.",
		}),
		SyncSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "packtrack",
			Name:      "sync_skipped_total",
			Help:      "Sync candidates skipped because the tracking code already exists.",
		}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "packtrack",
			Name:      "store_errors_total",
			Help:      "Shipment store failures by operation.",
		}, []string{"op"}),
		TrackingRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "packtrack",
			Name:      "tracking_checks_total",
			Help:      "Carrier tracking checks by result.",
		}, []string{"result"}),
	}
	m.Registry.MustRegister(m.SyncRuns, m.SyncImported, m.SyncSkipped, m.StoreErrors, m.TrackingRuns)
	return m
}
