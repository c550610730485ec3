package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloudtrim/cloudtrim/internal/cache"
	"github.com/cloudtrim/cloudtrim/internal/metrics"
	"github.com/cloudtrim/cloudtrim/internal/testutil"
)

type stubLimiter struct {
	result *cache.RateLimitResult
	err    error
	lastIP string
}

func (s *stubLimiter) CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*cache.RateLimitResult, error) {
	s.lastIP = ip
	return s.result, s.err
}

func TestRateLimitIP(t *testing.T) {
	tests := []struct {
		name           string
		limiter        *stubLimiter
		wantStatus     int
		wantRetryAfter string
		wantLimited    uint64
	}{
		{
			name:       "allowed",
			limiter:    &stubLimiter{result: &cache.RateLimitResult{Allowed: true, Remaining: 4}},
			wantStatus: http.StatusOK,
		},
		{
			name:           "rejected",
			limiter:        &stubLimiter{result: &cache.RateLimitResult{Allowed: false, RetryAfter: 2500 * time.Millisecond}},
			wantStatus:     http.StatusTooManyRequests,
			wantRetryAfter: "2",
			wantLimited:    1,
		},
		{
			name:           "sub-second retry rounds up",
			limiter:        &stubLimiter{result: &cache.RateLimitResult{Allowed: false, RetryAfter: 200 * time.Millisecond}},
			wantStatus:     http.StatusTooManyRequests,
			wantRetryAfter: "1",
			wantLimited:    1,
		},
		{
			name:       "limiter error fails open",
			limiter:    &stubLimiter{err: errors.New("redis down")},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := metrics.NewInMemory()
			handler := RateLimitIP(RateLimitConfig{
				Logger:  testutil.DiscardLogger(),
				Limiter: tt.limiter,
				Metrics: rec,
				RPS:     1,
				Burst:   5,
			})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/costs", nil)
			req.RemoteAddr = "203.0.113.9:54321"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Retry-After"); got != tt.wantRetryAfter {
				t.Errorf("Retry-After = %q, want %q", got, tt.wantRetryAfter)
			}
			if tt.limiter.lastIP != "203.0.113.9" {
				t.Errorf("limiter saw ip %q, want 203.0.113.9", tt.limiter.lastIP)
			}
			if got := rec.Snapshot().RateLimited; got != tt.wantLimited {
				t.Errorf("RateLimited = %d, want %d", got, tt.wantLimited)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{"forwarded for ignored", "198.51.100.1, 10.0.0.1", "", "10.0.0.2:80", "10.0.0.2"},
		{"real ip ignored", "", "198.51.100.2", "10.0.0.2:80", "10.0.0.2"},
		{"remote addr without port", "", "", "198.51.100.3:4444", "198.51.100.3"},
		{"remote addr unparseable", "", "", "pipe", "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimitIP_KeyIgnoresForwardedHeaders(t *testing.T) {
	limiter := &stubLimiter{result: &cache.RateLimitResult{Allowed: true}}
	handler := RateLimitIP(RateLimitConfig{
		Logger:  testutil.DiscardLogger(),
		Limiter: limiter,
		RPS:     1,
		Burst:   5,
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, xff := range []string{"198.51.100.1", "198.51.100.2, 10.0.0.1", "192.0.2.77"} {
		req := httptest.NewRequest(http.MethodGet, "/api/costs", nil)
		req.RemoteAddr = "203.0.113.9:54321"
		req.Header.Set("X-Forwarded-For", xff)
		req.Header.Set("X-Real-IP", xff)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if limiter.lastIP != "203.0.113.9" {
			t.Errorf("X-Forwarded-For %q: limiter saw ip %q, want 203.0.113.9", xff, limiter.lastIP)
		}
	}
}
