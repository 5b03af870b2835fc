package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

var _ = ginkgo.Describe("Metrics", func() {
	var reader *metric.ManualReader

	collectRoutes := func() map[string]int64 {
		var rm metricdata.ResourceMetrics
		gomega.Expect(reader.Collect(context.Background(), &rm)).To(gomega.Succeed())

		routes := map[string]int64{}
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if m.Name != _metricsNamespace+".http.requests.total" {
					continue
				}
				sum := m.Data.(metricdata.Sum[int64])
				for _, dp := range sum.DataPoints {
					route, _ := dp.Attributes.Value(attribute.Key("http.route"))
					routes[route.AsString()] += dp.Value
				}
			}
		}
		return routes
	}

	ginkgo.BeforeEach(func() {
		previous := otel.GetMeterProvider()
		reader = metric.NewManualReader()
		otel.SetMeterProvider(metric.NewMeterProvider(metric.WithReader(reader)))
		ginkgo.DeferCleanup(func() { otel.SetMeterProvider(previous) })
	})

	ginkgo.Context("MetricsMiddleware", func() {
		var handler http.Handler

		ginkgo.BeforeEach(func() {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /v1/entities/{entity}/records/{id}", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(r.PathValue("id")))
			})
			handler = MetricsMiddleware()(mux)
		})

		ginkgo.It("labels requests with the matched route pattern", func() {
			for _, id := range []string{"WO-0007", "FAC-001", "123e4567-e89b-12d3-a456-426614174000"} {
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/entities/work-orders/records/"+id, nil))
				gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
				gomega.Expect(w.Body.String()).To(gomega.Equal(id))
			}

			gomega.Expect(collectRoutes()).To(gomega.Equal(map[string]int64{
				"GET /v1/entities/{entity}/records/{id}": 3,
			}))
		})

		ginkgo.It("folds unknown paths into a single label", func() {
			for _, path := range []string{"/nope", "/also/nope"} {
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				gomega.Expect(w.Code).To(gomega.Equal(http.StatusNotFound))
			}

			gomega.Expect(collectRoutes()).To(gomega.Equal(map[string]int64{_unmatchedRoute: 2}))
		})
	})

	ginkgo.Context("ResponseWriter", func() {
		var (
			recorder      *httptest.ResponseRecorder
			wrappedWriter *responseWriter
		)

		ginkgo.BeforeEach(func() {
			recorder = httptest.NewRecorder()
			wrappedWriter = &responseWriter{ResponseWriter: recorder, statusCode: http.StatusOK}
		})

		ginkgo.It("remembers the status code", func() {
			wrappedWriter.WriteHeader(http.StatusUnprocessableEntity)
			gomega.Expect(wrappedWriter.statusCode).To(gomega.Equal(http.StatusUnprocessableEntity))
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusUnprocessableEntity))
		})

		ginkgo.It("passes flushes through", func() {
			_, _ = wrappedWriter.Write([]byte("row"))
			wrappedWriter.Flush()
			gomega.Expect(recorder.Flushed).To(gomega.BeTrue())
		})

		ginkgo.It("refuses to hijack a writer that cannot", func() {
			_, _, err := wrappedWriter.Hijack()
			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("does not support hijacking")))
		})
	})
})
