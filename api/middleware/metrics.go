package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/freezerplan-backend/pkg/metrics"
)

// Metrics records request counts and latency labelled by the matched chi route pattern.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)

			m.ObserveRequest(r.Method, routePattern(r), rec.Status(), time.Since(start))
		})
	}
}
