package middleware

import (
	"net/http"
	"strings"
	"time"

	"hallbooking/pkg/metrics"
)

// Metrics records request counts and latency per top-level route. Only the
// first path segment is used so that room ids do not explode label cardinality.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			metrics.ObserveHTTP(r.Method, routeLabel(r.URL.Path), wrapped.statusCode, time.Since(start))
		})
	}
}

func routeLabel(path string) string {
	segment, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	switch segment {
	case "":
		return "root"
	case "hallbooking", "bookingroom", "health", "ready", "metrics":
		return segment
	default:
		return "other"
	}
}
