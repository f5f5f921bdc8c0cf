package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/pkg/logger"
)

// Throttle applies a process-wide token bucket to a route. It shields the
// collector from traffic spikes before any per-visitor accounting happens;
// rejected requests get 429 without touching the trackers.
func Throttle(rps float64, burst int, logger *logger.Logger) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.WithField("path", r.URL.Path).Warn("Request throttled")
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"success":false,"error":{"type":"rate_limit","message":"Too many requests"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
