package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	platformmetrics "lumina/internal/platform/metrics"
)

// Metrics records per-request counters and latency. Apply inside the chi
// router so the matched route pattern is available as a label.
func Metrics(m *platformmetrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(r.Method, route, sw.status, time.Since(start))
		})
	}
}
