package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"artifex/internal/infrastructure/ratelimit"
	"artifex/pkg/errors"
	"artifex/pkg/logger"
	"artifex/pkg/response"
)

// RateLimit throttles requests per client IP. scope separates the budgets of
// different route groups sharing one limiter. Limiter failures let the
// request through.
func RateLimit(limiter ratelimit.Limiter, scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			ctx := c.Request().Context()

			allowed, retryAfter, err := limiter.Allow(ctx, scope+":"+ip)
			if err != nil {
				logger.FromContext(ctx).Warn().Err(err).Str("ip", ip).Msg("rate limiter unavailable")
				return next(c)
			}
			if !allowed {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				logger.FromContext(ctx).Warn().Str("ip", ip).Str("scope", scope).Msg("rate limit exceeded")
				return response.Error(c, errors.TooManyRequests("Too many requests, please try again later"))
			}

			return next(c)
		}
	}
}
