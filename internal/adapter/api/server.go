package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"artifex/internal/adapter/api/middleware"
	"artifex/internal/infrastructure/metrics"
	"artifex/pkg/response"
)

// MaxBodySize bounds request bodies, image uploads included.
const MaxBodySize = "10M"

// NewEcho returns an echo instance with the shared middleware chain, the
// request validator and JSON error bodies. m may be nil.
func NewEcho(m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = NewValidator()
	e.HTTPErrorHandler = response.ErrorHandler

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Metrics(m))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(MaxBodySize))

	return e
}
