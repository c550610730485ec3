package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cloudtrim/cloudtrim/internal/model"
	"github.com/cloudtrim/cloudtrim/internal/respond"
	"github.com/cloudtrim/cloudtrim/internal/service"
)

// RecommendationHandler serves the recommendation list and remediation trigger.
type RecommendationHandler struct {
	recs *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recs *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recs: recs}
}

// RecommendationListResponse wraps the list.
type RecommendationListResponse struct {
	Recommendations []model.Recommendation `json:"recommendations"`
}

// List handles GET /api/recommendations
func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RecommendationListResponse{Recommendations: h.recs.List()})
}

// Remediate handles POST /api/recommendations/{id}/remediate
// Any non-empty id is accepted as-is; an empty segment is not a route.
func (h *RecommendationHandler) Remediate(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if id == "" {
		respond.Error(w, http.StatusNotFound, respond.NotFoundMessage)
		return nil
	}

	if _, err := h.recs.Remediate(r.Context(), id); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, Ack{Success: true, Message: "Remediation action queued"})
	return nil
}
