// Package metrics provides Prometheus metrics for the timeblock scoring engine.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for the surface that served a call.
const (
	SurfaceCABI = "cabi"
	SurfaceHTTP = "http"
	SurfaceCLI  = "cli"
)

// Manager manages all Prometheus metrics for the scoring engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          atomic.Bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Scoring
	evaluations       *prometheus.CounterVec
	rejectedInputs    *prometheus.CounterVec
	productivityScore prometheus.Histogram
	efficiencyRatio   prometheus.Histogram
	cappedScores      prometheus.Counter

	// Diagnostics
	benchmarkRuns     prometheus.Counter
	benchmarkDuration prometheus.Histogram
	benchmarkThrottle prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "timeblock",
		subsystem:        "scoring",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	m.enabled.Store(true)

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// setEnabled toggles collection after construction.
func (m *Manager) setEnabled(enabled bool) { m.enabled.Store(enabled) }

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.evaluations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "evaluations_total",
		Help:        "Total number of score evaluations by operation and surface",
		ConstLabels: labels,
	}, []string{"operation", "surface"})

	m.rejectedInputs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rejected_inputs_total",
		Help:        "Total number of samples rejected before scoring",
		ConstLabels: labels,
	}, []string{"surface", "reason"})

	m.productivityScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "productivity_score",
		Help:        "Distribution of productivity scores (0-100)",
		Buckets:     prometheus.LinearBuckets(10, 10, 10),
		ConstLabels: labels,
	})

	m.efficiencyRatio = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "efficiency_ratio",
		Help:        "Distribution of block efficiency ratios (0-1)",
		Buckets:     prometheus.LinearBuckets(0.1, 0.1, 10),
		ConstLabels: labels,
	})

	m.cappedScores = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "capped_scores_total",
		Help:        "Total number of productivity scores that hit the 100 ceiling",
		ConstLabels: labels,
	})

	m.benchmarkRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "benchmark_runs_total",
		Help:        "Total number of completed micro-benchmark runs",
		ConstLabels: labels,
	})

	m.benchmarkDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "benchmark_duration_milliseconds",
		Help:        "Wall time of micro-benchmark runs in milliseconds",
		Buckets:     []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})

	m.benchmarkThrottle = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "benchmark_throttled_total",
		Help:        "Total number of benchmark requests refused by the rate limiter",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Total number of errors by endpoint",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "Heap memory in use in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})
}

// RecordEvaluation counts one evaluation of operation served by surface.
func (m *Manager) RecordEvaluation(operation, surface string) {
	if m.enabled.Load() {
		m.evaluations.WithLabelValues(operation, surface).Inc()
	}
}

// RecordRejectedInput counts a sample refused before scoring.
func (m *Manager) RecordRejectedInput(surface, reason string) {
	if m.enabled.Load() {
		m.rejectedInputs.WithLabelValues(surface, reason).Inc()
	}
}

// ObserveProductivity records a productivity score and whether it was capped.
func (m *Manager) ObserveProductivity(score float64, capped bool) {
	if !m.enabled.Load() {
		return
	}
	m.productivityScore.Observe(score)
	if capped {
		m.cappedScores.Inc()
	}
}

// ObserveEfficiency records an efficiency ratio.
func (m *Manager) ObserveEfficiency(ratio float64) {
	if m.enabled.Load() {
		m.efficiencyRatio.Observe(ratio)
	}
}

// RecordBenchmark records one completed benchmark run.
func (m *Manager) RecordBenchmark(durationMs float64) {
	if !m.enabled.Load() {
		return
	}
	m.benchmarkRuns.Inc()
	m.benchmarkDuration.Observe(durationMs)
}

// RecordBenchmarkThrottled counts a benchmark request refused by the limiter.
func (m *Manager) RecordBenchmarkThrottled() {
	if m.enabled.Load() {
		m.benchmarkThrottle.Inc()
	}
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled.Load() {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m.enabled.Load() {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSystem sets the memory and goroutine gauges.
func (m *Manager) UpdateSystem(heapBytes uint64, goroutines int) {
	if !m.enabled.Load() {
		return
	}
	m.systemMemoryUsage.Set(float64(heapBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// Package-level helpers operate on the global manager.

// RecordEvaluation counts one evaluation on the global manager.
func RecordEvaluation(operation, surface string) { globalManager.RecordEvaluation(operation, surface) }

// RecordRejectedInput counts a rejected sample on the global manager.
func RecordRejectedInput(surface, reason string) { globalManager.RecordRejectedInput(surface, reason) }

// ObserveProductivity records a productivity score on the global manager.
func ObserveProductivity(score float64, capped bool) {
	globalManager.ObserveProductivity(score, capped)
}

// ObserveEfficiency records an efficiency ratio on the global manager.
func ObserveEfficiency(ratio float64) { globalManager.ObserveEfficiency(ratio) }

// RecordBenchmark records a benchmark run on the global manager.
func RecordBenchmark(durationMs float64) { globalManager.RecordBenchmark(durationMs) }

// RecordBenchmarkThrottled counts a throttled benchmark on the global manager.
func RecordBenchmarkThrottled() { globalManager.RecordBenchmarkThrottled() }

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint records an endpoint error on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystem sets the system gauges on the global manager.
func UpdateSystem(heapBytes uint64, goroutines int) { globalManager.UpdateSystem(heapBytes, goroutines) }

// SetEnabled turns collection on the global manager on or off.
func SetEnabled(enabled bool) { globalManager.setEnabled(enabled) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
