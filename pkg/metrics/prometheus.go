// Package metrics provides Prometheus metrics for the rcg codec tools.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the codec.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Codec metrics
	recordsDecoded *prometheus.CounterVec
	recordsEncoded *prometheus.CounterVec
	parseWarnings  *prometheus.CounterVec
	bytesRead      prometheus.Counter
	bytesWritten   prometheus.Counter

	// Conversion metrics
	conversions        *prometheus.CounterVec
	conversionDuration prometheus.Histogram

	// Queue metrics
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueueRate   prometheus.Counter
	queueDequeueRate   prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker metrics
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerIdleCount         prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	errorsByComponent *prometheus.CounterVec
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
		namespace:        "rcg",
		subsystem:        "codec",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     m.histogramBuckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recordsDecoded = auto.NewCounterVec(
		m.counterOpts("records_decoded_total", "Records delivered by the parser by log version and record kind"),
		[]string{"version", "kind"},
	)
	m.recordsEncoded = auto.NewCounterVec(
		m.counterOpts("records_encoded_total", "Records written by the serializer by log version and record kind"),
		[]string{"version", "kind"},
	)
	m.parseWarnings = auto.NewCounterVec(
		m.counterOpts("parse_warnings_total", "Recoverable parse problems by log version"),
		[]string{"version"},
	)
	m.bytesRead = auto.NewCounter(m.counterOpts("bytes_read_total", "Decompressed bytes consumed by the parser"))
	m.bytesWritten = auto.NewCounter(m.counterOpts("bytes_written_total", "Uncompressed bytes produced by the serializer"))

	m.conversions = auto.NewCounterVec(
		m.counterOpts("conversions_total", "Finished conversions by status"),
		[]string{"status"},
	)
	m.conversionDuration = auto.NewHistogram(
		m.histogramOpts("conversion_duration_milliseconds", "Wall time of one conversion in milliseconds"),
	)

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Jobs waiting in the batch queue"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Capacity of the batch queue"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("queue_utilization_ratio", "Batch queue fill ratio (0-1)"))
	m.queueEnqueueRate = auto.NewCounter(m.counterOpts("queue_enqueue_total", "Jobs enqueued"))
	m.queueDequeueRate = auto.NewCounter(m.counterOpts("queue_dequeue_total", "Jobs dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counterOpts("queue_enqueue_errors_total", "Jobs rejected by the queue"))

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Workers in the pool"))
	m.workerActiveCount = auto.NewGauge(m.gaugeOpts("worker_active_count", "Workers converting a file"))
	m.workerIdleCount = auto.NewGauge(m.gaugeOpts("worker_idle_count", "Workers waiting for a job"))
	m.workerProcessingLatency = auto.NewHistogram(
		m.histogramOpts("worker_processing_latency_milliseconds", "Time a worker spends on one job in milliseconds"),
	)
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Jobs that failed in a worker"))

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
}

// RecordDecoded counts n records delivered by the parser.
func (m *Manager) RecordDecoded(version, kind string, n int) {
	if m.enabled && n > 0 {
		m.recordsDecoded.WithLabelValues(version, kind).Add(float64(n))
	}
}

// RecordEncoded counts n records written by the serializer.
func (m *Manager) RecordEncoded(version, kind string, n int) {
	if m.enabled && n > 0 {
		m.recordsEncoded.WithLabelValues(version, kind).Add(float64(n))
	}
}

// RecordParseWarnings counts n parse warnings.
func (m *Manager) RecordParseWarnings(version string, n int) {
	if m.enabled && n > 0 {
		m.parseWarnings.WithLabelValues(version).Add(float64(n))
	}
}

// RecordBytes adds to the byte counters.
func (m *Manager) RecordBytes(read, written int64) {
	if !m.enabled {
		return
	}
	if read > 0 {
		m.bytesRead.Add(float64(read))
	}
	if written > 0 {
		m.bytesWritten.Add(float64(written))
	}
}

// RecordConversion counts a finished conversion and its duration.
func (m *Manager) RecordConversion(status string, durationMs float64) {
	if m.enabled {
		m.conversions.WithLabelValues(status).Inc()
		m.conversionDuration.Observe(durationMs)
	}
}

// Registry returns the registerer the manager's metrics live on.
func (m *Manager) Registry() prometheus.Registerer {
	return m.registry
}

// RecordDecoded counts n records delivered by the parser.
func RecordDecoded(version, kind string, n int) {
	globalManager.RecordDecoded(version, kind, n)
}

// RecordEncoded counts n records written by the serializer.
func RecordEncoded(version, kind string, n int) {
	globalManager.RecordEncoded(version, kind, n)
}

// RecordParseWarnings counts n parse warnings for a log version.
func RecordParseWarnings(version string, n int) {
	globalManager.RecordParseWarnings(version, n)
}

// RecordBytes adds decoded input and encoded output byte counts.
func RecordBytes(read, written int64) {
	globalManager.RecordBytes(read, written)
}

// RecordConversion counts a finished conversion with status "ok" or
// "error" and records its duration in milliseconds.
func RecordConversion(status string, durationMs float64) {
	globalManager.RecordConversion(status, durationMs)
}

// Queue Metrics Functions.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// Worker Metrics Functions.

// UpdateWorkerCount sets the pool size.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of active workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// UpdateWorkerIdleCount sets the number of idle workers.
func UpdateWorkerIdleCount(count int) {
	globalManager.workerIdleCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteToTextfile writes the custom registry in the text exposition format
// for the node_exporter textfile collector.
func WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
