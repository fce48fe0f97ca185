// Package http assembles the gin route tree and the HTTP server lifecycle.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jurisdesk/prazo-engine/internal/infrastructure/monitoring/logging"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/monitoring/prometheus"
	"github.com/jurisdesk/prazo-engine/internal/interfaces/http/handlers"
	"github.com/jurisdesk/prazo-engine/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and middleware dependencies the
// route tree needs.
type RouterConfig struct {
	ComputationHandler *handlers.ComputationHandler
	HealthHandler      *handlers.HealthHandler

	CORS *middleware.CORSConfig

	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
}

// NewRouter builds the full route tree: public probes, the metrics scrape
// endpoint, and the versioned API group.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, middleware.DefaultLoggingConfig()))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	api := r.Group("/api/v1")
	registerComputationRoutes(api, cfg.ComputationHandler)

	return r
}

func registerComputationRoutes(api *gin.RouterGroup, h *handlers.ComputationHandler) {
	if h == nil {
		return
	}
	api.POST("/computations", h.Compute)
	api.GET("/calendars/:tribunal/:year", h.GetCalendar)
	api.PUT("/calendars", h.SaveCalendar)
	api.GET("/catalog", h.ListCatalog)
	api.GET("/catalog/:code", h.GetCatalogEntry)
	api.GET("/service-methods", h.ListServiceMethods)
}
