package middleware

import (
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

// RateLimit applies one token bucket to all clients. Rejected requests get
// 429 with a Retry-After hint.
func RateLimit(config RateLimitConfig) Middleware {
	if !config.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	limiter := rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst)
	retryAfter := "1"
	if config.RequestsPerSecond > 0 && config.RequestsPerSecond < 1 {
		retryAfter = strconv.Itoa(int(1/config.RequestsPerSecond + 0.5))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", retryAfter)
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
