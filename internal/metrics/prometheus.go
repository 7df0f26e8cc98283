package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the prop analyzer service

var (
	// API Call metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "props_api_calls_total",
			Help: "Total number of upstream API calls",
		},
		[]string{"api", "endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "props_api_call_duration_seconds",
			Help:    "Duration of API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"api", "endpoint"},
	)

	// Database metrics
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "props_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "table", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "props_db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "props_db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "props_db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "props_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "props_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "props_cache_operation_duration_seconds",
			Help:    "Duration of cache operations in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// Scan metrics
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "props_scans_total",
			Help: "Total number of bet scans",
		},
		[]string{"trigger", "status"},
	)

	ScanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "props_scan_duration_seconds",
			Help:    "Duration of bet scans in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"trigger"},
	)

	BetsFound = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "props_bets_found",
			Help: "Qualifying bets found in the most recent scan",
		},
	)

	ParlaysBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "props_parlays_built_total",
			Help: "Total number of parlays built",
		},
		[]string{"risk", "status"},
	)

	// Degraded-confidence metrics
	NeutralAdjustments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "props_neutral_adjustments_total",
			Help: "Adjustments skipped for lack of data (neutral factor used)",
		},
		[]string{"source"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "props_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "props_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)

	LastSuccessfulScan = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "props_last_successful_scan_timestamp",
			Help: "Timestamp of last successful scan",
		},
	)
)

// RecordAPICall records an API call metric
func RecordAPICall(api, endpoint, status string, duration float64) {
	APICallsTotal.WithLabelValues(api, endpoint, status).Inc()
	APICallDuration.WithLabelValues(api, endpoint).Observe(duration)
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table, status string, duration float64) {
	DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration)
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordCacheOperation records a cache operation duration
func RecordCacheOperation(operation string, duration float64) {
	CacheOperationDuration.WithLabelValues(operation).Observe(duration)
}

// RecordScan records a scan run
func RecordScan(trigger, status string, duration float64) {
	ScansTotal.WithLabelValues(trigger, status).Inc()
	ScanDuration.WithLabelValues(trigger).Observe(duration)

	if status == "success" {
		LastSuccessfulScan.SetToCurrentTime()
	}
}

// RecordParlay records a parlay build attempt
func RecordParlay(risk, status string) {
	ParlaysBuilt.WithLabelValues(risk, status).Inc()
}

// RecordNeutralAdjustment records an adjustment skipped for lack of data
func RecordNeutralAdjustment(source string) {
	NeutralAdjustments.WithLabelValues(source).Inc()
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// UpdateDBConnectionStats updates database connection pool statistics
func UpdateDBConnectionStats(active, idle int32) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// UpdateBetsFound updates the qualifying bet count for the latest scan
func UpdateBetsFound(n int) {
	BetsFound.Set(float64(n))
}
