package handler

import (
	"net/http"

	"github.com/cloudtrim/cloudtrim/internal/model"
	"github.com/cloudtrim/cloudtrim/internal/service"
)

// CostHandler serves cost summary and history.
type CostHandler struct {
	costs *service.CostService
}

// NewCostHandler creates a new CostHandler.
func NewCostHandler(costs *service.CostService) *CostHandler {
	return &CostHandler{costs: costs}
}

// HistoryResponse wraps the synthetic daily series.
type HistoryResponse struct {
	History []model.CostPoint `json:"history"`
}

// RefreshResponse acknowledges a refresh.
type RefreshResponse struct {
	Success     bool   `json:"success"`
	RefreshedAt string `json:"refreshedAt"`
}

// Summary handles GET /api/costs
func (h *CostHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.costs.Summary())
}

// History handles GET /api/costs/history
func (h *CostHandler) History(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HistoryResponse{History: h.costs.History()})
}

// Refresh handles POST /api/costs/refresh
func (h *CostHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RefreshResponse{
		Success:     true,
		RefreshedAt: service.FormatTimestamp(h.costs.Refresh()),
	})
}
