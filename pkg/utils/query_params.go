package utils

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"artifex/pkg/errors"
)

// MaxLimit caps any client supplied result count.
const MaxLimit = 100

// GetLimitParam reads the "limit" query parameter. Zero means unlimited.
func GetLimitParam(c echo.Context) (int, error) {
	raw := strings.TrimSpace(c.QueryParam("limit"))
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, errors.BadRequest("limit must be a non-negative integer", err)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit, nil
}

// GetFloatParam parses an optional float query parameter.
func GetFloatParam(c echo.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.BadRequest(name+" must be a number", err)
	}
	return &v, nil
}

// GetBoolParam parses an optional boolean query parameter.
func GetBoolParam(c echo.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.BadRequest(name+" must be true or false", err)
	}
	return &v, nil
}
