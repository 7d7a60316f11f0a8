package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
	"artifex/pkg/response"
)

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type AuthMiddleware struct {
	tokens   TokenVerifier
	userRepo repository.UserRepository
}

func NewAuthMiddleware(tokens TokenVerifier, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

// Authenticate requires a valid bearer token for an existing user and stores
// the user id under "uid".
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		userID, err := m.tokens.Verify(parts[1])
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		if _, err := m.userRepo.GetByID(c.Request().Context(), userID); err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				return response.Error(c, errors.Unauthorized("User no longer exists", nil))
			}
			return response.Error(c, err)
		}

		c.Set("uid", userID)
		return next(c)
	}
}
