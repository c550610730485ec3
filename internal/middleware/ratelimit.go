package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/cloudtrim/cloudtrim/internal/cache"
	"github.com/cloudtrim/cloudtrim/internal/metrics"
	"github.com/cloudtrim/cloudtrim/internal/respond"
)

// Limiter decides whether a client may proceed.
type Limiter interface {
	CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig holds configuration for rate limiting middleware.
type RateLimitConfig struct {
	Logger  *slog.Logger
	Limiter Limiter
	Metrics metrics.Recorder
	RPS     int
	Burst   int
}

// RateLimitIP returns middleware that rate limits requests per client IP.
// Limiter errors fail open.
func RateLimitIP(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			result, err := cfg.Limiter.CheckIPRateLimit(r.Context(), ip, cfg.RPS, cfg.Burst)
			if err != nil {
				cfg.Logger.ErrorContext(r.Context(), "rate limit check failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

			if !result.Allowed {
				retryAfter := int(result.RetryAfter / time.Second)
				if retryAfter < 1 {
					retryAfter = 1
				}
				cfg.Metrics.IncRateLimited()
				cfg.Logger.WarnContext(r.Context(), "rate limit exceeded",
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.Int("retry_after_seconds", retryAfter),
					slog.String("request_id", GetRequestID(r.Context())),
				)

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				respond.Error(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the connection address without its port. Proxy headers are
// already folded into RemoteAddr by chi's RealIP ahead of this middleware.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
