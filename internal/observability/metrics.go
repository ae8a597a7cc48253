// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Fetch metrics
	CandidatesSeen prometheus.Counter
	SourceFailures *prometheus.CounterVec

	// Reconciliation metrics
	ObservationsExtracted prometheus.Counter
	RowsRepaired          prometheus.Counter
	RowsDiscarded         prometheus.Counter
	NewDates              prometheus.Counter
	SeriesSize            prometheus.Gauge

	// Run metrics
	RunsTotal   *prometheus.CounterVec
	RunDuration prometheus.Histogram

	// Health metrics
	LastSuccessfulRun prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "eua_price_lab"
	}

	return &Metrics{
		CandidatesSeen: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "candidates_seen_total",
			Help:      "Total number of raw candidate payloads received from sources",
		}),
		SourceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "source_failures_total",
			Help:      "Total number of failed source fetches by source",
		}, []string{"source"}),

		ObservationsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "observations_extracted_total",
			Help:      "Total number of observations recovered from candidates",
		}),
		RowsRepaired: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "rows_repaired_total",
			Help:      "Total number of persisted rows recovered by the repair pass",
		}),
		RowsDiscarded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "rows_discarded_total",
			Help:      "Total number of persisted rows dropped as unrecoverable",
		}),
		NewDates: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "new_dates_total",
			Help:      "Total number of dates added or updated by runs",
		}),
		SeriesSize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "series_size",
			Help:      "Number of observations in the canonical series after the last run",
		}),

		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"status"}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "run_duration_seconds",
			Help:      "Pipeline run duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),

		LastSuccessfulRun: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of the last successful pipeline run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordSourceFailure increments the failure counter for one source.
func RecordSourceFailure(source string) {
	DefaultMetrics.SourceFailures.WithLabelValues(source).Inc()
}
