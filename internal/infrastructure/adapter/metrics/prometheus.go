package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
)

const namespace = "credit_ledger"

// PrometheusMetrics implements core.Metrics and the HTTP request metrics
type PrometheusMetrics struct {
	// Business Metrics
	OperationsTotal    *prometheus.CounterVec
	UnitOfWorkDuration *prometheus.HistogramVec
	QueueDepth         prometheus.Gauge
	PublishFailures    *prometheus.CounterVec

	// Database Metrics
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge

	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewPrometheusMetrics registers every collector on a fresh registry
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewPrometheusMetricsWith(registry, registry)
}

// NewPrometheusMetricsWith registers the collectors on reg
func NewPrometheusMetricsWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of ledger operations by outcome (success or error kind)",
			},
			[]string{"operation", "outcome"},
		),
		UnitOfWorkDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "unit_of_work_duration_seconds",
				Help:      "Duration of write units of work, including retries",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"operation"},
		),
		QueueDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "executor_queue_depth",
				Help:      "Number of writes waiting for the single writer",
			},
		),
		PublishFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "event_publish_failures_total",
				Help:      "Total number of committed events the publisher failed to deliver",
			},
			[]string{"kind"},
		),

		DBConnectionsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections_open",
				Help:      "Number of open database connections",
			},
		),
		DBConnectionsInUse: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections_in_use",
				Help:      "Number of database connections currently in use",
			},
		),
		DBConnectionsIdle: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections_idle",
				Help:      "Number of idle database connections",
			},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being served",
			},
		),

		gatherer: gatherer,
	}
}

// Gatherer returns the registry served on the metrics endpoint
func (m *PrometheusMetrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// RecordOperation counts one finished operation
func (m *PrometheusMetrics) RecordOperation(operation, outcome string) {
	m.OperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveUnitOfWork records how long a write held the writer
func (m *PrometheusMetrics) ObserveUnitOfWork(operation string, d coreport.Duration) {
	m.UnitOfWorkDuration.WithLabelValues(operation).Observe(d.Std().Seconds())
}

// SetQueueDepth sets the executor queue depth
func (m *PrometheusMetrics) SetQueueDepth(depth int) {
	m.QueueDepth.Set(float64(depth))
}

// RecordPublishFailure counts an undelivered event
func (m *PrometheusMetrics) RecordPublishFailure(kind string) {
	m.PublishFailures.WithLabelValues(kind).Inc()
}

// SetDBPoolStats sets the connection pool gauges
func (m *PrometheusMetrics) SetDBPoolStats(open, inUse, idle int) {
	m.DBConnectionsOpen.Set(float64(open))
	m.DBConnectionsInUse.Set(float64(inUse))
	m.DBConnectionsIdle.Set(float64(idle))
}

// RecordHTTPRequest records a served request. path is the route template, not the raw URL.
func (m *PrometheusMetrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	code := strconv.Itoa(statusCode)
	m.HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

// IncInFlight increments the in-flight gauge
func (m *PrometheusMetrics) IncInFlight() { m.HTTPRequestsInFlight.Inc() }

// DecInFlight decrements the in-flight gauge
func (m *PrometheusMetrics) DecInFlight() { m.HTTPRequestsInFlight.Dec() }

var _ coreport.Metrics = (*PrometheusMetrics)(nil)
