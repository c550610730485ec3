package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds CORS configuration options.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to make cross-origin requests.
	// "*" allows any origin and is answered with a literal "*".
	// Entries like "*.example.com" match any subdomain.
	AllowedOrigins []string

	// AllowedMethods specifies the methods advertised on preflight.
	AllowedMethods []string

	// AllowedHeaders specifies the allowed request headers. When empty the
	// preflight echoes Access-Control-Request-Headers.
	AllowedHeaders []string

	// ExposedHeaders specifies which headers the browser can access.
	ExposedHeaders []string

	// MaxAge is the value for Access-Control-Max-Age header (in seconds).
	MaxAge int
}

// DefaultCORSConfig returns the permissive defaults the dashboard relies on.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		ExposedHeaders: []string{RequestIDHeader},
	}
}

// CORS returns a middleware that handles Cross-Origin Resource Sharing,
// including preflight OPTIONS requests.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methodsStr := strings.Join(cfg.AllowedMethods, ",")
	headersStr := strings.Join(cfg.AllowedHeaders, ",")
	exposedStr := strings.Join(cfg.ExposedHeaders, ",")
	maxAgeStr := ""
	if cfg.MaxAge > 0 {
		maxAgeStr = strconv.Itoa(cfg.MaxAge)
	}
	matcher := newOriginMatcher(cfg.AllowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// No Origin header = same-origin request, skip CORS
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""

			if !matcher.allows(origin) {
				if preflight {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				// Browser will block the response
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			if matcher.any {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}

			if exposedStr != "" {
				h.Set("Access-Control-Expose-Headers", exposedStr)
			}

			if preflight {
				h.Set("Access-Control-Allow-Methods", methodsStr)
				if headersStr != "" {
					h.Set("Access-Control-Allow-Headers", headersStr)
				} else if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
					h.Set("Access-Control-Allow-Headers", reqHeaders)
					h.Add("Vary", "Access-Control-Request-Headers")
				}
				if maxAgeStr != "" {
					h.Set("Access-Control-Max-Age", maxAgeStr)
				}
				h.Set("Content-Length", "0")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type originMatcher struct {
	any      bool
	exact    map[string]bool
	suffixes []string
}

func newOriginMatcher(origins []string) originMatcher {
	m := originMatcher{exact: make(map[string]bool, len(origins))}
	for _, o := range origins {
		o = strings.ToLower(strings.TrimSpace(o))
		switch {
		case o == "*":
			m.any = true
		case strings.HasPrefix(o, "*."):
			m.suffixes = append(m.suffixes, o[1:]) // keep the leading dot
		case o != "":
			m.exact[o] = true
		}
	}
	return m
}

func (m originMatcher) allows(origin string) bool {
	if m.any {
		return true
	}
	origin = strings.ToLower(origin)
	if m.exact[origin] {
		return true
	}

	// "*.example.com" matches "https://app.example.com" but not "https://notexample.com"
	host := origin
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	for _, suffix := range m.suffixes {
		if strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
			return true
		}
	}
	return false
}
