package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		requestOrigin  string
		preflight      bool
		wantStatus     int
		wantHeader     string
	}{
		{
			name:           "wildcard answers with star",
			allowedOrigins: []string{"*"},
			requestOrigin:  "https://anything.dev",
			wantStatus:     http.StatusOK,
			wantHeader:     "*",
		},
		{
			name:           "wildcard preflight",
			allowedOrigins: []string{"*"},
			requestOrigin:  "https://anything.dev",
			preflight:      true,
			wantStatus:     http.StatusNoContent,
			wantHeader:     "*",
		},
		{
			name:           "no origins configured blocks all",
			allowedOrigins: nil,
			requestOrigin:  "https://example.com",
			wantStatus:     http.StatusOK,
			wantHeader:     "",
		},
		{
			name:           "allowed origin is echoed",
			allowedOrigins: []string{"https://example.com"},
			requestOrigin:  "https://example.com",
			wantStatus:     http.StatusOK,
			wantHeader:     "https://example.com",
		},
		{
			name:           "disallowed origin blocked on preflight",
			allowedOrigins: []string{"https://example.com"},
			requestOrigin:  "https://evil.com",
			preflight:      true,
			wantStatus:     http.StatusForbidden,
			wantHeader:     "",
		},
		{
			name:           "case insensitive origin match",
			allowedOrigins: []string{"HTTPS://EXAMPLE.COM"},
			requestOrigin:  "https://example.com",
			wantStatus:     http.StatusOK,
			wantHeader:     "https://example.com",
		},
		{
			name:           "subdomain wildcard",
			allowedOrigins: []string{"*.example.com"},
			requestOrigin:  "https://app.example.com",
			wantStatus:     http.StatusOK,
			wantHeader:     "https://app.example.com",
		},
		{
			name:           "subdomain wildcard rejects lookalike",
			allowedOrigins: []string{"*.example.com"},
			requestOrigin:  "https://notexample.com",
			wantStatus:     http.StatusOK,
			wantHeader:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCORSConfig()
			cfg.AllowedOrigins = tt.allowedOrigins

			handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			method := http.MethodGet
			if tt.preflight {
				method = http.MethodOptions
			}
			req := httptest.NewRequest(method, "/api/costs", nil)
			req.Header.Set("Origin", tt.requestOrigin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantHeader)
			}
		})
	}
}

func TestCORS_PreflightEchoesRequestHeaders(t *testing.T) {
	handler := CORS(DefaultCORSConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/checkout", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type,x-request-id")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "content-type,x-request-id" {
		t.Errorf("Access-Control-Allow-Headers = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET,HEAD,PUT,PATCH,POST,DELETE" {
		t.Errorf("Access-Control-Allow-Methods = %q", got)
	}
}
