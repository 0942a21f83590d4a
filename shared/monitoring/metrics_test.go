package monitoring

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrometheusMetrics(t *testing.T) *Metrics {
	t.Helper()
	m, err := New(context.Background(), Config{ExporterType: ExporterPrometheus, ServiceName: "member-service-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })
	return m
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestHTTPMiddleware_RecordsRoutePattern(t *testing.T) {
	m := newPrometheusMetrics(t)

	r := chi.NewRouter()
	r.Use(m.HTTPMiddleware)
	r.Get("/members/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/members/42", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := scrape(t, m)
	assert.Contains(t, body, "http_requests")
	assert.Contains(t, body, "http_request_duration")
	assert.Contains(t, body, `/members/{id}`)
	assert.NotContains(t, body, "/members/42")
}

func TestRecordGRPCAndBusinessEvents(t *testing.T) {
	m := newPrometheusMetrics(t)

	m.RecordGRPCRequest("/member.v1.MemberService/GetMember", "NotFound", 3*time.Millisecond)
	m.RecordBusinessEvent("member_created", "success")

	body := scrape(t, m)
	assert.Contains(t, body, "grpc_requests")
	assert.Contains(t, body, "NotFound")
	assert.Contains(t, body, "business_events")
	assert.Contains(t, body, "member_created")
	assert.Contains(t, body, "le=")
}

func TestNew_ExportsGoRuntimeMetrics(t *testing.T) {
	m := newPrometheusMetrics(t)

	body := scrape(t, m)
	assert.Regexp(t, `go_goroutine_count|runtime_go_goroutines`, body)
	assert.Regexp(t, `go_memory_used|runtime_go_mem_heap_alloc`, body)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	m.RecordBusinessEvent("member_created", "success")
	m.RecordGRPCRequest("/x", "OK", time.Millisecond)
	assert.NoError(t, m.Shutdown(context.Background()))

	called := false
	handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNew_ExporterSelection(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{name: "none", config: Config{ExporterType: ExporterNone}},
		{name: "otlp without endpoint", config: Config{ExporterType: ExporterOTLP}, wantErr: "OTLP endpoint is required"},
		{name: "otlp over http without opt-in", config: Config{ExporterType: ExporterOTLP, OTLPEndpoint: "http://collector:4318"}, wantErr: "must use HTTPS"},
		{name: "unknown", config: Config{ExporterType: "statsd"}, wantErr: "unknown exporter type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.ServiceName = "member-service-test"
			m, err := New(context.Background(), tt.config)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, m.Shutdown(context.Background()))
		})
	}
}

func TestParseHeaders(t *testing.T) {
	headers := parseHeaders("api-key=secret, x-team = members ,broken")
	assert.Equal(t, map[string]string{"api-key": "secret", "x-team": "members"}, headers)
	assert.Empty(t, parseHeaders(""))
}
