// Package server provides the HTTP layer of the location tracker API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Houeta/location-tracker/internal/metrics"
)

// NewServer creates and configures the HTTP router with the given service.
// The prometheus registry backs the /metrics endpoint.
func NewServer(
	svc CoordinateService,
	log *slog.Logger,
	appMetrics *metrics.Metrics,
	reg *prometheus.Registry,
) *chi.Mux {
	routes := NewRoutes(svc, log)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	// Open CORS policy, to be narrowed before any production use.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(loggingMiddleware(log, appMetrics))

	r.Get("/", routes.root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", routes.health)
		r.Get("/mock-tables", routes.mockTables)
		r.Get("/coordinates/{table}", routes.getCoordinates)
		r.Post("/test-data/{table}", routes.createTestData)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}

// loggingMiddleware logs every handled request and records its duration.
func loggingMiddleware(log *slog.Logger, appMetrics *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			appMetrics.RequestSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())

			log.DebugContext(r.Context(), "Request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
