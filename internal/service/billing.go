package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/cloudtrim/cloudtrim/internal/metrics"
	"github.com/cloudtrim/cloudtrim/internal/model"
	"github.com/cloudtrim/cloudtrim/internal/webhook"
)

// BillingConfig holds the billing placeholders.
type BillingConfig struct {
	CheckoutURL   string
	WebhookSecret string // empty disables signature checks
}

// BillingService fakes checkout sessions and swallows payment webhooks.
type BillingService struct {
	cfg     BillingConfig
	now     Clock
	entropy io.Reader
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewBillingService creates a BillingService.
func NewBillingService(cfg BillingConfig, now Clock, recorder metrics.Recorder, logger *slog.Logger) *BillingService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &BillingService{
		cfg:     cfg,
		now:     orNow(now),
		entropy: ulid.DefaultEntropy(),
		metrics: recorder,
		logger:  logger.With("service", "billing"),
	}
}

// WithEntropy replaces the randomness used for session ids.
func (s *BillingService) WithEntropy(r io.Reader) *BillingService {
	s.entropy = r
	return s
}

// CreateCheckoutSession returns a new placeholder session.
func (s *BillingService) CreateCheckoutSession(ctx context.Context) (model.CheckoutSession, error) {
	id, err := ulid.New(ulid.Timestamp(s.now()), s.entropy)
	if err != nil {
		return model.CheckoutSession{}, fmt.Errorf("generate session id: %w", err)
	}

	session := model.CheckoutSession{
		SessionID: model.CheckoutSessionPrefix + strings.ToLower(id.String()),
		URL:       s.cfg.CheckoutURL,
	}
	s.metrics.IncCheckoutSessionCreated()
	s.logger.InfoContext(ctx, "checkout session created", slog.String("session_id", session.SessionID))
	return session, nil
}

// webhookEnvelope is the subset of an event the receiver logs.
type webhookEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// ReceiveWebhook acknowledges any payload. When a secret is configured the
// signature is checked and the outcome is logged, but never rejected.
func (s *BillingService) ReceiveWebhook(ctx context.Context, payload []byte, signatureHeader string) string {
	outcome := metrics.WebhookUnsigned
	attrs := []any{slog.Int("bytes", len(payload))}

	if s.cfg.WebhookSecret != "" {
		err := webhook.Verify(s.cfg.WebhookSecret, signatureHeader, payload, webhook.DefaultTolerance, s.now())
		switch {
		case err == nil:
			outcome = metrics.WebhookVerified
		case errors.Is(err, webhook.ErrMissingHeader):
			outcome = metrics.WebhookUnsigned
		default:
			outcome = metrics.WebhookUnverified
			attrs = append(attrs, slog.String("verify_error", err.Error()))
		}
	}

	var env webhookEnvelope
	if json.Unmarshal(payload, &env) == nil {
		attrs = append(attrs, slog.String("event_id", env.ID), slog.String("event_type", env.Type))
	}
	attrs = append(attrs, slog.String("outcome", outcome))

	s.metrics.IncWebhookReceived(outcome)
	s.logger.InfoContext(ctx, "webhook received", attrs...)
	return outcome
}
