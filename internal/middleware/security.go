package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/cloudtrim/cloudtrim/internal/respond"
)

// SecurityConfig holds configuration for security headers.
type SecurityConfig struct {
	// IsDevelopment disables HSTS in dev environments.
	IsDevelopment bool
}

// securityHeaders is the fixed header set applied to every response.
var securityHeaders = [][2]string{
	{"Content-Security-Policy", "default-src 'self';base-uri 'self';font-src 'self' https: data:;form-action 'self';frame-ancestors 'self';img-src 'self' data:;object-src 'none';script-src 'self';script-src-attr 'none';style-src 'self' https: 'unsafe-inline';upgrade-insecure-requests"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
	{"Origin-Agent-Cluster", "?1"},
	{"Referrer-Policy", "no-referrer"},
	{"X-Content-Type-Options", "nosniff"},
	{"X-DNS-Prefetch-Control", "off"},
	{"X-Download-Options", "noopen"},
	{"X-Frame-Options", "SAMEORIGIN"},
	{"X-Permitted-Cross-Domain-Policies", "none"},
	{"X-XSS-Protection", "0"},
}

// hstsValue is only sent outside development.
const hstsValue = "max-age=15552000; includeSubDomains"

// Security returns a middleware that applies security headers to all responses.
// Apply it early so error responses carry the headers too.
func Security(cfg SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range securityHeaders {
				h.Set(kv[0], kv[1])
			}
			if !cfg.IsDevelopment {
				h.Set("Strict-Transport-Security", hstsValue)
			}
			h.Del("X-Powered-By")

			next.ServeHTTP(w, r)
		})
	}
}

// MaxBodySize returns a middleware that limits request body size.
// Declared oversize bodies are rejected up front; streamed ones fail on read.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				respond.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}

			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// JSONBody checks JSON request bodies before any handler runs.
// A malformed body is an unhandled error and gets the catch-all 500.
// The body is buffered and replaced so handlers can read it again.
func JSONBody(logger *slog.Logger, production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody || !isJSON(r.Header.Get("Content-Type")) {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			r.Body.Close()
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					respond.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
					return
				}
				logger.ErrorContext(r.Context(), "read request body",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("error", err.Error()),
				)
				respond.InternalError(w, err, production)
				return
			}

			if len(bytes.TrimSpace(body)) > 0 {
				var v any
				if err := json.Unmarshal(body, &v); err != nil {
					logger.ErrorContext(r.Context(), "malformed JSON body",
						slog.String("request_id", GetRequestID(r.Context())),
						slog.String("error", err.Error()),
					)
					respond.InternalError(w, err, production)
					return
				}
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json"
}
