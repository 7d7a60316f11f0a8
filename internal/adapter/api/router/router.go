package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"artifex/internal/adapter/api/handler"
	"artifex/internal/adapter/api/middleware"
	"artifex/internal/infrastructure/ratelimit"
)

// Setup mounts every route. authLimiter throttles register and login; metrics
// may be nil.
func Setup(
	e *echo.Echo,
	h *handler.Handlers,
	authMiddleware *middleware.AuthMiddleware,
	authLimiter ratelimit.Limiter,
	metrics http.Handler,
) {
	api := e.Group("/api")

	SetupArtworkRouter(api, h.Artwork)
	SetupUserRouter(api, h.Auth, h.User, authMiddleware, middleware.RateLimit(authLimiter, "auth"))
	SetupCartRouter(api, h.Cart)
	SetupOrderRouter(api, h.Order)
	SetupReviewRouter(api, h.Review)
	SetupWishlistRouter(api, h.Wishlist)
	SetupHealthRouter(e, h.Health, metrics)
}
