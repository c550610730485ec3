package handler

import (
	"net/http"

	"github.com/cloudtrim/cloudtrim/internal/model"
	"github.com/cloudtrim/cloudtrim/internal/service"
)

// AuthHandler serves the placeholder auth endpoints. Nothing is authenticated.
type AuthHandler struct {
	accounts *service.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// MeResponse wraps the current user.
type MeResponse struct {
	User model.User `json:"user"`
}

// Google handles POST /api/auth/google
func (h *AuthHandler) Google(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ack{Success: true, Message: "Google OAuth handler"})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ack{Success: true})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MeResponse{User: h.accounts.CurrentUser()})
}
