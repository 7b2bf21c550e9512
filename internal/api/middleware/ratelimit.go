package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/duarteurbanismo/sgci-recibos/internal/service"
)

// RateLimitMiddleware enforces the daily per-client limit on the public
// verification endpoints
type RateLimitMiddleware struct {
	rateLimitService *service.RateLimitService
}

// NewRateLimitMiddleware creates a new rate limit middleware. A nil
// service disables rate limiting.
func NewRateLimitMiddleware(rateLimitService *service.RateLimitService) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimitService: rateLimitService}
}

// RateLimit checks and enforces the daily limit, keyed by client IP
func (m *RateLimitMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.rateLimitService == nil {
			next.ServeHTTP(w, r)
			return
		}

		result, err := m.rateLimitService.CheckAndIncrement(r.Context(), clientIP(r))
		if err != nil {
			// Redis being down should not take verification down with it
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		w.Header().Set("X-RateLimit-Used", fmt.Sprintf("%d", result.Used))

		if !result.Allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", result.RetryAfterSecs))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": "RATE_LIMIT_EXCEEDED"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address, honoring X-Forwarded-For from the
// reverse proxy in front of the service
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
