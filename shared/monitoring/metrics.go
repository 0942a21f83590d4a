// Package monitoring records HTTP, gRPC and business metrics with OpenTelemetry.
//
// Metrics are exported through Prometheus (default), OTLP, or discarded ("none").
// A nil *Metrics is valid and records nothing, so callers never need to branch
// on whether observability is enabled.
package monitoring

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gov-dx-sandbox/member-service/shared/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

// Custom attribute keys. HTTP metrics use the semconv keys instead.
const (
	attrBusinessAction  = "member.business.action"
	attrBusinessOutcome = "member.business.outcome"
	attrRPCMethod       = "rpc.method"
	attrRPCStatus       = "rpc.grpc.status"
)

// Exporter types
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterNone       = "none"
)

var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Config holds the configuration for OpenTelemetry metrics
type Config struct {
	// ExporterType can be "prometheus", "otlp", or "none"
	ExporterType   string
	ServiceName    string
	ServiceVersion string
	// OTLPEndpoint is the OTLP collector URL, e.g. "https://otel.example.com:4318"
	OTLPEndpoint string
	// OTLPHeaders are sent with every export, e.g. API keys
	OTLPHeaders map[string]string
	// OTLPTLSInsecure allows plain HTTP endpoints (development only)
	OTLPTLSInsecure  bool
	HistogramBuckets []float64
}

// DefaultConfig returns a configuration read from the standard OTEL_* variables
func DefaultConfig(serviceName string) Config {
	return Config{
		ExporterType:     utils.GetEnvOrDefault("OTEL_METRICS_EXPORTER", ExporterPrometheus),
		ServiceName:      serviceName,
		ServiceVersion:   utils.GetEnvOrDefault("SERVICE_VERSION", "dev"),
		OTLPEndpoint:     utils.GetEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPHeaders:      parseHeaders(utils.GetEnvOrDefault("OTEL_EXPORTER_OTLP_HEADERS", "")),
		OTLPTLSInsecure:  utils.GetEnvBoolOrDefault("OTEL_EXPORTER_OTLP_INSECURE", false),
		HistogramBuckets: defaultBuckets,
	}
}

// Metrics owns a meter provider and the instruments recorded by the service
type Metrics struct {
	provider *sdkmetric.MeterProvider
	handler  http.Handler

	httpRequests        metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	grpcRequests        metric.Int64Counter
	grpcRequestDuration metric.Float64Histogram
	businessEvents      metric.Int64Counter
}

// New builds the exporter selected by config and creates all instruments
func New(ctx context.Context, config Config) (*Metrics, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	m := &Metrics{}
	var reader sdkmetric.Reader

	switch config.ExporterType {
	case ExporterPrometheus, "":
		reg := prometheus.NewRegistry()
		exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		reader = exporter
		m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		slog.Info("Initialized OpenTelemetry metrics with Prometheus exporter", "service", config.ServiceName)

	case ExporterOTLP:
		reader, err = newOTLPReader(ctx, config)
		if err != nil {
			return nil, err
		}
		m.handler = staticHandler(http.StatusOK, "# Metrics exported via OTLP\n")
		slog.Info("Initialized OpenTelemetry metrics with OTLP exporter",
			"service", config.ServiceName,
			"endpoint", config.OTLPEndpoint)

	case ExporterNone:
		reader = sdkmetric.NewManualReader()
		m.handler = staticHandler(http.StatusOK, "# Metrics disabled\n")
		slog.Info("OpenTelemetry metrics disabled", "service", config.ServiceName)

	default:
		return nil, fmt.Errorf("unknown exporter type: %s (supported: prometheus, otlp, none)", config.ExporterType)
	}

	buckets := config.HistogramBuckets
	if len(buckets) == 0 {
		buckets = defaultBuckets
	}
	histogramView := func(name string) sdkmetric.Option {
		return sdkmetric.WithView(sdkmetric.NewView(
			sdkmetric.Instrument{Name: name},
			sdkmetric.Stream{Aggregation: sdkmetric.AggregationExplicitBucketHistogram{Boundaries: buckets}},
		))
	}

	m.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
		histogramView("http_request_duration_seconds"),
		histogramView("grpc_request_duration_seconds"),
	)
	if err := m.createInstruments(m.provider.Meter("member-service")); err != nil {
		_ = m.provider.Shutdown(ctx)
		return nil, err
	}

	// Go runtime metrics (goroutines, memory, GC)
	if err := runtime.Start(runtime.WithMeterProvider(m.provider)); err != nil {
		_ = m.provider.Shutdown(ctx)
		return nil, fmt.Errorf("failed to start runtime metrics: %w", err)
	}
	return m, nil
}

func newOTLPReader(ctx context.Context, config Config) (sdkmetric.Reader, error) {
	if config.OTLPEndpoint == "" {
		return nil, fmt.Errorf("OTLP endpoint is required when using OTLP exporter")
	}
	endpointURL, err := url.Parse(config.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid OTLP endpoint URL: %w", err)
	}
	if endpointURL.Scheme != "https" && !config.OTLPTLSInsecure {
		return nil, fmt.Errorf("OTLP endpoint must use HTTPS (got: %s); set OTEL_EXPORTER_OTLP_INSECURE=true to allow plain HTTP", endpointURL.Scheme)
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpointURL.Host)}
	if endpointURL.Scheme == "http" {
		slog.Warn("Using insecure HTTP connection for OTLP endpoint", "endpoint", config.OTLPEndpoint)
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(config.OTLPHeaders) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(config.OTLPHeaders))
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}
	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second)), nil
}

func (m *Metrics) createInstruments(meter metric.Meter) error {
	var err error
	if m.httpRequests, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP requests"), metric.WithUnit("1")); err != nil {
		return fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}
	if m.httpRequestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"), metric.WithUnit("s")); err != nil {
		return fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}
	if m.grpcRequests, err = meter.Int64Counter("grpc_requests_total",
		metric.WithDescription("Total number of gRPC requests"), metric.WithUnit("1")); err != nil {
		return fmt.Errorf("failed to create grpc_requests_total counter: %w", err)
	}
	if m.grpcRequestDuration, err = meter.Float64Histogram("grpc_request_duration_seconds",
		metric.WithDescription("gRPC request duration in seconds"), metric.WithUnit("s")); err != nil {
		return fmt.Errorf("failed to create grpc_request_duration_seconds histogram: %w", err)
	}
	if m.businessEvents, err = meter.Int64Counter("business_events_total",
		metric.WithDescription("Total number of business events"), metric.WithUnit("1")); err != nil {
		return fmt.Errorf("failed to create business_events_total counter: %w", err)
	}
	return nil
}

// Handler returns the metrics endpoint. For OTLP and none it only reports status.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.handler == nil {
		return staticHandler(http.StatusServiceUnavailable, "# Metrics not initialized\n")
	}
	return m.handler
}

// HTTPMiddleware records request count and latency per chi route pattern
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		// unmatched paths share one label to bound cardinality
		route := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		ctx := context.Background()
		m.httpRequests.Add(ctx, 1, metric.WithAttributes(
			semconv.HTTPRequestMethodKey.String(r.Method),
			semconv.HTTPRouteKey.String(route),
			semconv.HTTPResponseStatusCodeKey.Int(rw.statusCode),
		))
		m.httpRequestDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
			semconv.HTTPRequestMethodKey.String(r.Method),
			semconv.HTTPRouteKey.String(route),
		))
	})
}

// RecordGRPCRequest records one unary RPC with its status code name
func (m *Metrics) RecordGRPCRequest(fullMethod, code string, duration time.Duration) {
	if m == nil {
		return
	}
	ctx := context.Background()
	m.grpcRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrRPCMethod, fullMethod),
		attribute.String(attrRPCStatus, code),
	))
	m.grpcRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(attrRPCMethod, fullMethod),
	))
}

// RecordBusinessEvent records a domain event such as member_created
func (m *Metrics) RecordBusinessEvent(action, outcome string) {
	if m == nil {
		return
	}
	m.businessEvents.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String(attrBusinessAction, action),
		attribute.String(attrBusinessOutcome, outcome),
	))
}

// Shutdown flushes pending exports and releases the meter provider
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.provider == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func staticHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// parseHeaders parses "key1=value1,key2=value2"
func parseHeaders(headerStr string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range utils.SplitAndTrim(headerStr) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 {
			headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return headers
}
