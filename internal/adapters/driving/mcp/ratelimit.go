package mcp

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/todos/internal/logger"
)

// RateLimitConfig holds the request budget for the HTTP transport.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimit keeps a runaway client from saturating the SQLite writer.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 20, BurstSize: 40}

// rateLimited rejects requests beyond the budget with 429.
func rateLimited(next http.Handler, cfg RateLimitConfig) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			logger.Debug("mcp: rate limited %s %s", r.Method, r.URL.Path)
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
