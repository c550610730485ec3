package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cloudtrim/cloudtrim/internal/respond"
	"github.com/cloudtrim/cloudtrim/internal/service"
	"github.com/cloudtrim/cloudtrim/internal/webhook"
)

// BillingHandler serves checkout and the payment webhook.
type BillingHandler struct {
	billing *service.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(billing *service.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// WebhookResponse acknowledges receipt.
type WebhookResponse struct {
	Received bool `json:"received"`
}

// Checkout handles POST /api/checkout
func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) error {
	session, err := h.billing.CreateCheckoutSession(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, session)
	return nil
}

// StripeWebhook handles POST /api/webhook/stripe
// Every readable payload is acknowledged, signed or not.
func (h *BillingHandler) StripeWebhook(w http.ResponseWriter, r *http.Request) error {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil
		}
		return fmt.Errorf("read webhook body: %w", err)
	}

	h.billing.ReceiveWebhook(r.Context(), payload, r.Header.Get(webhook.SignatureHeader))
	writeJSON(w, http.StatusOK, WebhookResponse{Received: true})
	return nil
}
