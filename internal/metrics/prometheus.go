package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the collector

var (
	// API call metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collector_api_calls_total",
			Help: "Total number of external API calls",
		},
		[]string{"source", "status"},
	)

	// Ingestion metrics
	RowsInsertedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collector_rows_inserted_total",
			Help: "Total number of rows inserted per table",
		},
		[]string{"table"},
	)

	DuplicatesSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collector_duplicates_skipped_total",
			Help: "Total number of already-seen identities skipped",
		},
		[]string{"table"},
	)

	UnitFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collector_unit_failures_total",
			Help: "Total number of per-key failures inside ingestion loops",
		},
		[]string{"loop"},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "collector_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "collector_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// Run metrics
	RunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "collector_runs_total",
			Help: "Total number of completed collection runs",
		},
	)

	LastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "collector_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last completed collection run",
		},
	)
)
