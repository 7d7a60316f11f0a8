package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"artifex/internal/adapter/api/handler"
)

// SetupHealthRouter mounts liveness, readiness and, when metrics is not nil,
// the Prometheus endpoint.
func SetupHealthRouter(e *echo.Echo, healthHandler *handler.HealthHandler, metrics http.Handler) {
	e.GET("/health", healthHandler.CheckHealth)
	e.GET("/health/ready", healthHandler.CheckReady)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}
}
