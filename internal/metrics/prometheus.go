// Package metrics provides Prometheus metrics for price ingestion, search and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion
	filesIngested   prometheus.Counter
	filesAbandoned  prometheus.Counter
	recordsIngested prometheus.Counter
	rowsSkipped     prometheus.Counter
	storeRecords    prometheus.Gauge
	ingestDuration  prometheus.Histogram

	// Query / export
	searches      prometheus.Counter
	searchMatches prometheus.Histogram
	exports       *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the Record* helpers

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out of /metrics

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pricemachine",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.filesIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "files_ingested_total",
		Help:      "Price list files whose columns resolved and whose rows were read",
	})
	m.filesAbandoned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "files_abandoned_total",
		Help:      "Price list files skipped because a required column was missing",
	})
	m.recordsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_ingested_total",
		Help:      "Rows successfully converted into price records",
	})
	m.rowsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_skipped_total",
		Help:      "Rows skipped because price or weight could not be converted",
	})
	m.storeRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_records",
		Help:      "Records currently held in the aggregate store",
	})
	m.ingestDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "file_ingest_duration_seconds",
		Help:      "Time spent reading one price list file",
		Buckets:   m.histogramBuckets,
	})

	m.searches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "searches_total",
		Help:      "Product searches executed",
	})
	m.searchMatches = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "search_matches",
		Help:      "Number of records returned per search",
		Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
	})
	m.exports = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Report exports by target and outcome",
	}, []string{"target", "outcome"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// RecordFileIngested counts a fully read file together with its kept and skipped rows.
func RecordFileIngested(records, skipped int, elapsed time.Duration) {
	globalManager.filesIngested.Inc()
	globalManager.recordsIngested.Add(float64(records))
	globalManager.rowsSkipped.Add(float64(skipped))
	globalManager.ingestDuration.Observe(elapsed.Seconds())
}

// RecordFileAbandoned counts a file skipped for missing columns.
func RecordFileAbandoned() {
	globalManager.filesAbandoned.Inc()
}

// UpdateStoreRecords sets the aggregate store size.
func UpdateStoreRecords(n int) {
	globalManager.storeRecords.Set(float64(n))
}

// RecordSearch counts one search and the size of its result.
func RecordSearch(matches int) {
	globalManager.searches.Inc()
	globalManager.searchMatches.Observe(float64(matches))
}

// RecordExport counts an export attempt; target is "html" or "postgres".
func RecordExport(target string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	globalManager.exports.WithLabelValues(target, outcome).Inc()
}

// RecordHTTPRequest counts a request and observes its latency.
func RecordHTTPRequest(endpoint, method string, status int, elapsed time.Duration) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(elapsed.Seconds())
}

// GetRegistry returns the registry behind /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
