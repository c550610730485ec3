// Package handler provides HTTP request handlers for the mock API.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/cloudtrim/cloudtrim/internal/middleware"
	"github.com/cloudtrim/cloudtrim/internal/respond"
)

// Func is a handler that may fail. Returned errors reach the client only
// through the catch-all 500 response.
type Func func(w http.ResponseWriter, r *http.Request) error

// Handler owns the fallback responses and the catch-all error policy.
type Handler struct {
	logger     *slog.Logger
	production bool
}

// New creates a new Handler. In production, error details are withheld from clients.
func New(logger *slog.Logger, production bool) *Handler {
	return &Handler{logger: logger, production: production}
}

// Wrap adapts fn to http.HandlerFunc, turning a returned error into a 500.
func (h *Handler) Wrap(fn Func) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.logger.ErrorContext(r.Context(), "unhandled error",
				slog.String("request_id", middleware.GetRequestID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
			respond.InternalError(w, err, h.production)
		}
	}
}

// NotFound handles 404 responses.
// Also used for known paths hit with the wrong method.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusNotFound, respond.NotFoundMessage)
}

// Ack is the generic acknowledgement body.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	respond.JSON(w, status, data)
}
