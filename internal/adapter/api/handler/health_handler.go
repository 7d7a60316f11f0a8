package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"artifex/internal/domain/repository"
	"artifex/pkg/logger"
	"artifex/pkg/response"
)

const readinessTimeout = 3 * time.Second

type HealthHandler struct {
	store repository.HealthChecker
}

func NewHealthHandler(store repository.HealthChecker) *HealthHandler {
	return &HealthHandler{
		store: store,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// CheckReady reports whether the document store answers.
func (h *HealthHandler) CheckReady(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("readiness check failed")
		return c.JSON(http.StatusServiceUnavailable, response.ErrorBody{
			Message: "Store is unavailable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
	})
}
