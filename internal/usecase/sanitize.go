package usecase

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// sanitize strips every HTML element from user supplied text.
func sanitize(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

func sanitizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = sanitize(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
