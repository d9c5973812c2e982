// Package metrics provides Prometheus metrics for the streaks score keeper.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every metric the application records.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	entriesRecorded *prometheus.CounterVec
	entriesRejected prometheus.Counter
	parseOutcomes   *prometheus.CounterVec
	batchProcessed  prometheus.Counter
	batchSkipped    prometheus.Counter
	batchRuns       prometheus.Counter
	exports         prometheus.Counter
	imports         prometheus.Counter
	storeLatency    prometheus.Histogram
}

// Parse outcome label values.
const (
	OutcomeRound    = "round"
	OutcomeGameOver = "game_over"
	OutcomeInvalid  = "invalid"
)

// Global manager on a custom registry so the default Go collectors stay out
// of the exposition.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager, registering every metric with the
// configured registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "streaks",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.entriesRecorded = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "entries_recorded_total",
		Help:      "Raw score entries saved, by game.",
	}, []string{"game"})

	m.entriesRejected = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "entries_rejected_total",
		Help:      "Pasted texts rejected by a game's share-text validator.",
	})

	m.parseOutcomes = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "parse_outcomes_total",
		Help:      "Round parser outcomes, by kind.",
	}, []string{"outcome"})

	m.batchProcessed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "batch_entries_processed_total",
		Help:      "Entries whose round was materialized by a batch run.",
	})

	m.batchSkipped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "batch_entries_skipped_total",
		Help:      "Entries skipped by batch runs (invalid or failed).",
	})

	m.batchRuns = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "batch_runs_total",
		Help:      "Batch materialization runs.",
	})

	m.exports = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "exports_total",
		Help:      "Store snapshots exported.",
	})

	m.imports = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "imports_total",
		Help:      "Store snapshots imported.",
	})

	m.storeLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "store_query_duration_seconds",
		Help:      "Latency of entry store queries.",
		Buckets:   prometheus.DefBuckets,
	})

	return m
}

// RecordEntryRecorded counts a saved raw entry.
func RecordEntryRecorded(game string) {
	globalManager.entriesRecorded.WithLabelValues(game).Inc()
}

// RecordEntryRejected counts a validator rejection.
func RecordEntryRejected() {
	globalManager.entriesRejected.Inc()
}

// RecordParseOutcome counts one parser outcome kind.
func RecordParseOutcome(outcome string) {
	globalManager.parseOutcomes.WithLabelValues(outcome).Inc()
}

// RecordBatchRun counts a batch run with its processed/skipped split.
func RecordBatchRun(processed, skipped int) {
	globalManager.batchRuns.Inc()
	globalManager.batchProcessed.Add(float64(processed))
	globalManager.batchSkipped.Add(float64(skipped))
}

// RecordExport counts a completed export.
func RecordExport() {
	globalManager.exports.Inc()
}

// RecordImport counts a completed import.
func RecordImport() {
	globalManager.imports.Inc()
}

// ObserveStoreQuery records one store query duration in seconds.
func ObserveStoreQuery(seconds float64) {
	globalManager.storeLatency.Observe(seconds)
}

// Handler returns an HTTP handler exposing the global registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}
