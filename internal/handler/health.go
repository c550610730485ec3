package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/cloudtrim/cloudtrim/internal/service"
)

// HealthChecker defines an interface for checking dependency health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	now   service.Clock
	cache HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for cache when Redis is not configured.
func NewHealthHandler(now service.Clock, cache HealthChecker) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now, cache: cache}
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ReadyResponse is the readiness body.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health reports that the process is serving.
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: service.FormatTimestamp(h.now()),
	})
}

// Readyz checks optional dependencies and returns 503 if any is failing.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["redis"] = "error: " + err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "not configured"
	}

	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	writeJSON(w, code, ReadyResponse{Status: status, Checks: checks})
}
