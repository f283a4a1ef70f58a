// Package httptransport wires the HTTP surface: API routes, health probes,
// and the metrics endpoint, behind a shared middleware stack.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pulseboard/internal/dashboard/handler"
	"pulseboard/internal/platform/health"
	"pulseboard/internal/platform/middleware"
)

// NewRouter assembles the full route table behind the shared middleware
// stack. The content type guard only inspects write methods, so health
// probes and metrics scrapes need no headers.
func NewRouter(api *handler.Handler, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	api.Register(r)
	healthHandler.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
