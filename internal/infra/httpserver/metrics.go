package httpserver

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	_metricsNamespace = "upkeep_server"
	_unmatchedRoute   = "unmatched"
)

type httpMetrics struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	active   metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	duration, err := meter.Float64Histogram(
		_metricsNamespace+".http.request.duration.seconds",
		metric.WithDescription("Duration of HTTP requests"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	total, err := meter.Int64Counter(
		_metricsNamespace+".http.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	active, err := meter.Int64UpDownCounter(
		_metricsNamespace+".http.requests.active",
		metric.WithDescription("Number of HTTP requests currently being processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating active request counter: %w", err)
	}

	return &httpMetrics{duration: duration, total: total, active: active}, nil
}

// MetricsMiddleware records request durations and counts per method, route
// pattern and status. It must wrap the ServeMux directly so the matched
// pattern is visible once the request has been served. Instruments come
// from the meter provider installed when the middleware is built.
func MetricsMiddleware() func(http.Handler) http.Handler {
	m, err := newHTTPMetrics(otel.GetMeterProvider().Meter("upkeep-server"))
	if err != nil {
		slog.Error("http metrics disabled", slog.String("error", err.Error()))
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			method := attribute.String("http.method", r.Method)

			m.active.Add(r.Context(), 1, metric.WithAttributes(method))
			defer m.active.Add(r.Context(), -1, metric.WithAttributes(method))

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			attrs := metric.WithAttributes(
				method,
				attribute.String("http.route", routeOf(r)),
				attribute.Int("http.status_code", wrapped.statusCode),
			)
			m.duration.Record(r.Context(), time.Since(start).Seconds(), attrs)
			m.total.Add(r.Context(), 1, attrs)
		})
	}
}

// routeOf keeps the label set bounded: record ids and dialog sessions are
// folded into the pattern they matched.
func routeOf(r *http.Request) string {
	if r.Pattern == "" {
		return _unmatchedRoute
	}
	return r.Pattern
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack lets the toast websocket upgrade through the middleware.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not support hijacking")
}
