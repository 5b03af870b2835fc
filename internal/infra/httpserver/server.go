package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"upkeep-server/internal/infra/node"
)

type Server interface {
	Run()
	Shutdown(ctx context.Context) error
}

var _ Server = &StandardServer{}

type Config struct {
	Address        string
	AllowedOrigins []string
}

func DefaultConfig() Config {
	return Config{
		Address: ":3000",
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
	}
}

type StandardServer struct {
	server *http.Server
}

func (s *StandardServer) Run() {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}

// Shutdown stops accepting connections and waits for in-flight requests,
// including open toast websockets, until ctx expires.
func (s *StandardServer) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

// Handler exposes the full middleware chain, for in-process servers.
func (s *StandardServer) Handler() http.Handler {
	return s.server.Handler
}

func NewServer(config Config, controllers ...Controller) *StandardServer {
	router := http.NewServeMux()

	c := cors.New(cors.Options{
		AllowedOrigins: config.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
			"X-User-ID",
			"X-User-Name",
		},
		ExposedHeaders: []string{
			"Link",
			"Location",
		},
		AllowCredentials: false,
		MaxAge:           300,
	})

	tracingMiddleware := createTracingMiddleware()
	userHeaderMiddleware := createUserHeaderMiddleware()
	metricsMiddleware := MetricsMiddleware()

	server := &StandardServer{
		&http.Server{
			Addr:              config.Address,
			ReadHeaderTimeout: 10 * time.Second,
			Handler: c.Handler(
				tracingMiddleware(
					userHeaderMiddleware(
						metricsMiddleware(router),
					),
				),
			),
		},
	}

	router.Handle("GET /healthz", getHealthz())
	router.Handle("GET /metrics", promhttp.Handler())

	for _, controller := range controllers {
		controller.AddRoutes(router)
	}

	return server
}

// createUserHeaderMiddleware tags the request span with the operator
// identity forwarded by the dashboard.
func createUserHeaderMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			span := GetSpanFromContext(r)

			if userID := r.Header.Get("X-User-ID"); userID != "" {
				span.SetAttributes(attribute.String("user.id", userID))
			}
			if userName := r.Header.Get("X-User-Name"); userName != "" {
				span.SetAttributes(attribute.String("user.name", userName))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// createTracingMiddleware continues b3 traces sent by the dashboard and
// names each server span after the route pattern it matched.
func createTracingMiddleware() func(http.Handler) http.Handler {
	propagator := b3.New()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, span := otel.Tracer("upkeep-server").Start(ctx, "http.request",
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.url", r.URL.String()),
					attribute.String("http.user_agent", r.UserAgent()),
					attribute.String("http.remote_addr", r.RemoteAddr),
				),
			)
			defer span.End()

			r = r.WithContext(ctx)
			propagator.Inject(ctx, propagation.HeaderCarrier(w.Header()))

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			// mux patterns already carry the method, e.g. "GET /v1/tables/{entity}"
			name := r.Pattern
			if name == "" {
				name = r.Method + " " + routeOf(r)
			}
			span.SetName(name)
			span.SetAttributes(
				attribute.String("http.route", routeOf(r)),
				attribute.Int("http.status_code", wrapped.statusCode),
			)
			if wrapped.statusCode >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(wrapped.statusCode))
			}
		})
	}
}

func getHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		span := GetSpanFromContext(r)
		span.SetAttributes(attribute.String("endpoint", "healthz"))

		info := node.GetNodeInfo()
		ReplyJSONResponse(w, http.StatusOK, map[string]string{
			"status":  "success",
			"version": info.Version,
			"node_id": info.ID,
			"uptime":  info.Uptime().String(),
		})
	}
}
