package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurisdesk/prazo-engine/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{
		Namespace: "prazo",
		Subsystem: "test",
	}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrape(t *testing.T, collector MetricsCollector) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewMetricsCollectorRequiresNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, logging.NewNopLogger())
	require.Error(t, err)
}

func TestCounterRoundTrip(t *testing.T) {
	c := newTestCollector(t)
	vec := c.RegisterCounter("requests_total", "Requests", "outcome")
	vec.WithLabelValues("ok").Inc()
	vec.WithLabelValues("ok").Add(2)

	body := scrape(t, c)
	assert.Contains(t, body, `prazo_test_requests_total{outcome="ok"} 3`)
}

func TestRegisterIsIdempotentPerName(t *testing.T) {
	c := newTestCollector(t)
	first := c.RegisterCounter("dup_total", "Dup", "l")
	second := c.RegisterCounter("dup_total", "Dup", "l")

	first.WithLabelValues("a").Inc()
	second.WithLabelValues("a").Inc()

	body := scrape(t, c)
	assert.Contains(t, body, `prazo_test_dup_total{l="a"} 2`)
}

func TestTypeMismatchReturnsNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("mixed", "Mixed")
	gauge := c.RegisterGauge("mixed", "Mixed")

	// Must not panic; the mismatched registration degrades to a no-op.
	gauge.WithLabelValues().Set(42)
}

func TestHistogramAndTimer(t *testing.T) {
	c := newTestCollector(t)
	vec := c.RegisterHistogram("op_duration_seconds", "Durations", nil, "op")

	timer := NewTimer(vec.WithLabelValues("compute"))
	time.Sleep(time.Millisecond)
	timer.ObserveDuration()

	body := scrape(t, c)
	assert.Contains(t, body, `prazo_test_op_duration_seconds_count{op="compute"} 1`)
}

func TestAppMetricsRegistersAndRecords(t *testing.T) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)

	RecordHTTPRequest(m, http.MethodPost, "/api/v1/computations", http.StatusOK, 12*time.Millisecond)

	rec := NewRecorder(m)
	rec.ObserveComputation("business_days", true, 3*time.Millisecond)
	rec.ObserveComputation("hours", false, time.Millisecond)

	body := scrape(t, c)
	assert.Contains(t, body, `prazo_test_http_requests_total{method="POST",path="/api/v1/computations",status_code="200"} 1`)
	assert.Contains(t, body, `prazo_test_computations_total{counting_mode="business_days",doubled="true"} 1`)
	assert.Contains(t, body, `prazo_test_computations_total{counting_mode="hours",doubled="false"} 1`)
	assert.Contains(t, body, `prazo_test_doubling_applied_total{counting_mode="business_days"} 1`)
}
