package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifex/internal/adapter/repository/memory"
	"artifex/internal/domain/entity"
	"artifex/pkg/response"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(token string) (string, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

type stubLimiter struct {
	allowed    bool
	retryAfter time.Duration
	err        error
	keys       []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.retryAfter, s.err
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	require.NoError(t, users.Create(context.Background(), &entity.User{
		ID:       "u1",
		Username: "ada",
		Email:    "ada@example.com",
	}))

	auth := NewAuthMiddleware(stubVerifier{"good": "u1", "orphan": "gone"}, users)
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("uid").(string))
	}, auth.Authenticate)

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header is required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Invalid authorization format"},
		{"too many parts", "Bearer a b", http.StatusUnauthorized, "Invalid authorization format"},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"deleted user", "Bearer orphan", http.StatusUnauthorized, "User no longer exists"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := serve(e, req)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "bearer good")
	rec := serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestRateLimitRejects(t *testing.T) {
	t.Parallel()

	limiter := &stubLimiter{allowed: false, retryAfter: 1500 * time.Millisecond}
	e := echo.New()
	e.POST("/login", okHandler, RateLimit(limiter, "auth"))

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
	rec := serve(e, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "TOO_MANY_REQUESTS")
	assert.Equal(t, []string{"auth:203.0.113.7"}, limiter.keys)
}

func TestRateLimitRetryAfterAtLeastOneSecond(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.POST("/login", okHandler, RateLimit(&stubLimiter{allowed: false}, "auth"))

	rec := serve(e, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimitFailsOpen(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.POST("/login", okHandler, RateLimit(&stubLimiter{err: errors.New("redis down")}, "auth"))

	rec := serve(e, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.HTTPErrorHandler = response.ErrorHandler
	e.Use(RequestLogger())
	e.GET("/ok", okHandler)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec = serve(e, req)
	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequestLoggerRendersErrors(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.HTTPErrorHandler = response.ErrorHandler
	e.Use(RequestLogger())
	e.Use(Metrics(nil))
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, rec.Body.String(), "short and stout")
}
