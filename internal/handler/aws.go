package handler

import (
	"net/http"

	"github.com/cloudtrim/cloudtrim/internal/service"
)

// AWSHandler serves the fake cloud connection endpoints.
type AWSHandler struct {
	accounts *service.AccountService
}

// NewAWSHandler creates a new AWSHandler.
func NewAWSHandler(accounts *service.AccountService) *AWSHandler {
	return &AWSHandler{accounts: accounts}
}

// AWSStatusResponse reports the connection flag.
type AWSStatusResponse struct {
	Connected bool   `json:"connected"`
	LastSync  string `json:"lastSync"`
}

// Connect handles POST /api/aws/connect
func (h *AWSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	h.accounts.ConnectAWS(r.Context())
	writeJSON(w, http.StatusOK, Ack{Success: true, Message: "AWS credentials encrypted and stored"})
}

// Status handles GET /api/aws/status
func (h *AWSHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.accounts.AWSStatus()
	writeJSON(w, http.StatusOK, AWSStatusResponse{
		Connected: st.Connected,
		LastSync:  service.FormatTimestamp(st.LastSync),
	})
}
