package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"ideaforge-hq/ideaforge/pkg/ratelimit"
	"ideaforge-hq/ideaforge/pkg/telemetry/metrics"
)

// unknownCaller is the bucket for requests whose origin cannot be
// determined from headers or the connection.
const unknownCaller = "unknown"

// CallerKey derives the rate-limit bucket for a request: the first hop
// of X-Forwarded-For, then X-Real-IP, then the connection's remote host.
func CallerKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}

	return unknownCaller
}

// RateLimit enforces the per-caller limiter on a route. Denied requests
// get 429 with Retry-After; every response carries the X-RateLimit-*
// headers so well-behaved clients can pace themselves. collector may be
// nil.
func RateLimit(limiter *ratelimit.FixedWindow, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := CallerKey(r)
			result := limiter.Check(key)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.Reset.Unix(), 10))

			if !result.Allowed {
				collector.RecordRateLimitDenial()

				retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				slog.WarnContext(r.Context(), "rate limit exceeded",
					"request_id", GetRequestID(r.Context()),
					"caller_key", key,
					"retry_after_s", retryAfter,
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "Rate limit exceeded. Please try again later.",
				})
				return
			}

			ctx := context.WithValue(r.Context(), CallerKeyKey, key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCallerKey extracts the caller key from the context. Returns the
// empty string if not found.
func GetCallerKey(ctx context.Context) string {
	if key, ok := ctx.Value(CallerKeyKey).(string); ok {
		return key
	}
	return ""
}
