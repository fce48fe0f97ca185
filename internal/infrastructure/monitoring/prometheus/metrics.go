package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric the service exposes.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Computation layer
	ComputationsTotal    CounterVec
	ComputationDuration  HistogramVec
	ComputationErrors    CounterVec
	DoublingAppliedTotal CounterVec

	// Calendar layer
	CalendarCacheHits   CounterVec
	CalendarCacheMisses CounterVec
	CalendarLoads       CounterVec

	// Infrastructure
	DBQueryDuration   HistogramVec
	EventsPublished   CounterVec
	HealthCheckStatus GaugeVec
}

var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultDBDurationBuckets   = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// NewAppMetrics registers all metrics on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests", "method")

	m.ComputationsTotal = collector.RegisterCounter("computations_total", "Deadline computations", "counting_mode", "doubled")
	m.ComputationDuration = collector.RegisterHistogram("computation_duration_seconds", "Deadline computation duration", DefaultHTTPDurationBuckets, "counting_mode")
	m.ComputationErrors = collector.RegisterCounter("computation_errors_total", "Failed deadline computations", "error_code")
	m.DoublingAppliedTotal = collector.RegisterCounter("doubling_applied_total", "Computations with a doubled term", "counting_mode")

	m.CalendarCacheHits = collector.RegisterCounter("calendar_cache_hits_total", "Calendar snapshot cache hits", "tribunal")
	m.CalendarCacheMisses = collector.RegisterCounter("calendar_cache_misses_total", "Calendar snapshot cache misses", "tribunal")
	m.CalendarLoads = collector.RegisterCounter("calendar_loads_total", "Calendar loads from storage", "tribunal", "status")

	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds", "Database query duration", DefaultDBDurationBuckets, "operation")
	m.EventsPublished = collector.RegisterCounter("events_published_total", "Audit events published", "topic", "status")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Component health (1=up, 0=down)", "component")

	return m
}

// RecordHTTPRequest observes one finished request.
func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Recorder adapts AppMetrics to the application's MetricsRecorder port.
type Recorder struct {
	metrics *AppMetrics
}

func NewRecorder(metrics *AppMetrics) *Recorder {
	return &Recorder{metrics: metrics}
}

func (r *Recorder) ObserveComputation(mode string, doubled bool, duration time.Duration) {
	r.metrics.ComputationsTotal.WithLabelValues(mode, strconv.FormatBool(doubled)).Inc()
	r.metrics.ComputationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if doubled {
		r.metrics.DoublingAppliedTotal.WithLabelValues(mode).Inc()
	}
}
