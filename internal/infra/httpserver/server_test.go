package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type pingController struct{}

func (pingController) AddRoutes(router *http.ServeMux) {
	router.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ReplyJSONResponse(w, http.StatusOK, map[string]string{"pong": r.Header.Get("X-User-ID")})
	})
}

var _ = ginkgo.Describe("HTTPServer", func() {
	var (
		tp       *trace.TracerProvider
		recorder *tracetest.SpanRecorder
	)

	ginkgo.BeforeEach(func() {
		recorder = tracetest.NewSpanRecorder()
		tp = trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
		otel.SetTracerProvider(tp)
	})

	ginkgo.AfterEach(func() {
		tp.Shutdown(context.Background())
	})

	ginkgo.Context("NewServer", func() {
		ginkgo.It("serves health and controller routes through the middleware chain", func() {
			server := NewServer(DefaultConfig(), pingController{})

			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("success"))

			req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
			req.Header.Set("X-User-ID", "tech-7")
			rec = httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, req)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("tech-7"))
		})

		ginkgo.It("names request spans after the matched route", func() {
			server := NewServer(DefaultConfig(), pingController{})

			server.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/ping", nil))

			names := make([]string, 0, len(recorder.Ended()))
			for _, s := range recorder.Ended() {
				names = append(names, s.Name())
			}
			gomega.Expect(names).To(gomega.ContainElement("GET /v1/ping"))
		})

		ginkgo.It("answers unknown routes with 404", func() {
			server := NewServer(DefaultConfig())

			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
		})
	})

	ginkgo.Context("TracingMiddleware", func() {
		ginkgo.It("starts a span and records the status code", func() {
			handler := createTracingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gomega.Expect(GetSpanFromContext(r).SpanContext().HasSpanID()).To(gomega.BeTrue())
				w.WriteHeader(http.StatusTeapot)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusTeapot))
			gomega.Expect(recorder.Ended()).To(gomega.HaveLen(1))
			gomega.Expect(recorder.Ended()[0].Name()).To(gomega.Equal("GET unmatched"))
		})

		ginkgo.It("keeps the writer hijackable for websocket upgrades", func() {
			handler := createTracingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, ok := w.(http.Hijacker)
				gomega.Expect(ok).To(gomega.BeTrue())
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ws/toasts", nil))
		})
	})

	ginkgo.Context("Shutdown", func() {
		ginkgo.It("returns nil for a server that never started", func() {
			server := NewServer(DefaultConfig())
			gomega.Expect(server.Shutdown(context.Background())).To(gomega.Succeed())
		})
	})

	ginkgo.Context("GetSpanFromContext", func() {
		ginkgo.It("returns a non-recording span when the request has none", func() {
			span := GetSpanFromContext(httptest.NewRequest(http.MethodGet, "/test", nil))
			gomega.Expect(span).NotTo(gomega.BeNil())
			gomega.Expect(span.IsRecording()).To(gomega.BeFalse())
		})
	})
})
