// Package metrics exposes Prometheus instrumentation for the pipelines.
//
// Key metrics:
//   - Run counts by pipeline and terminal state
//   - Reconciled record throughput
//   - Per-provider failure counts
//   - Run durations and last-run timestamps
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quantral/calendar-data/internal/model"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calendar_runs_total",
		Help: "Pipeline runs by terminal state.",
	}, []string{"pipeline", "state"})

	recordsReconciled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calendar_records_reconciled_total",
		Help: "Canonical records produced by reconciliation.",
	}, []string{"pipeline"})

	providerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calendar_provider_failures_total",
		Help: "Adapter fetches that settled as failed.",
	}, []string{"pipeline", "provider"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "calendar_run_duration_seconds",
		Help:    "Wall-clock duration of pipeline runs.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"pipeline"})

	lastRun = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "calendar_last_run_timestamp",
		Help: "Unix time of the most recent run per pipeline.",
	}, []string{"pipeline"})

	logoUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calendar_logo_updates_total",
		Help: "Company profile rows that received an image reference.",
	})
)

// ObserveRun records a completed run summary.
func ObserveRun(s *model.RunSummary) {
	runsTotal.WithLabelValues(s.Pipeline, string(s.State)).Inc()
	recordsReconciled.WithLabelValues(s.Pipeline).Add(float64(s.Reconciled))
	runDuration.WithLabelValues(s.Pipeline).Observe(s.Duration.Seconds())
	lastRun.WithLabelValues(s.Pipeline).SetToCurrentTime()
}

// ProviderFailure records one settled adapter failure.
func ProviderFailure(pipeline, provider string) {
	providerFailures.WithLabelValues(pipeline, provider).Inc()
}

// LogoUpdates records image references written by the enrichment pipeline.
func LogoUpdates(n int) {
	logoUpdates.Add(float64(n))
}

// Handler serves the Prometheus exposition endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
