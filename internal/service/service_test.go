package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/cloudtrim/cloudtrim/internal/metrics"
	"github.com/cloudtrim/cloudtrim/internal/model"
	"github.com/cloudtrim/cloudtrim/internal/webhook"
)

var fixedNow = time.Date(2024, 2, 25, 13, 45, 30, 123_000_000, time.UTC)

func fixedClock() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	got := FormatTimestamp(fixedNow)
	if got != "2024-02-25T13:45:30.123Z" {
		t.Errorf("FormatTimestamp() = %q", got)
	}

	loc := time.FixedZone("UTC+5", 5*3600)
	if got := FormatTimestamp(fixedNow.In(loc)); got != "2024-02-25T13:45:30.123Z" {
		t.Errorf("FormatTimestamp() in other zone = %q, want UTC", got)
	}
}

func TestCostService_HistoryShape(t *testing.T) {
	t.Parallel()

	rec := metrics.NewInMemory()
	svc := NewCostService(fixedClock, nil, rec)

	points := svc.History()
	if len(points) != HistoryDays {
		t.Fatalf("len(History()) = %d, want %d", len(points), HistoryDays)
	}

	if points[len(points)-1].Date != "2024-02-25" {
		t.Errorf("last date = %s, want today", points[len(points)-1].Date)
	}
	if points[0].Date != "2023-11-28" {
		t.Errorf("first date = %s, want 2023-11-28", points[0].Date)
	}

	for i, p := range points {
		if p.Cost < HistoryBaseCost || p.Cost >= HistoryBaseCost+HistoryJitter {
			t.Errorf("points[%d].Cost = %v out of range", i, p.Cost)
		}
		if i == 0 {
			continue
		}
		prev, _ := time.Parse(dateLayout, points[i-1].Date)
		cur, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			t.Fatalf("points[%d].Date %q not parseable: %v", i, p.Date, err)
		}
		if cur.Sub(prev) != 24*time.Hour {
			t.Errorf("points[%d] not consecutive: %s after %s", i, p.Date, points[i-1].Date)
		}
	}

	if got := rec.Snapshot().CostHistoriesGenerated; got != 1 {
		t.Errorf("CostHistoriesGenerated = %d, want 1", got)
	}
}

func TestCostService_HistoryBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    float64
		want float64
	}{
		{"minimum", 0, 2400},
		{"midpoint", 0.5, 2650},
		{"just below one", 0.9999999999999999, 2899.99},
		{"out of range falls back to base", 1.5, 2400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewCostService(fixedClock, func() float64 { return tt.r }, nil)
			for _, p := range svc.History() {
				if p.Cost != tt.want {
					t.Fatalf("Cost = %v, want %v", p.Cost, tt.want)
				}
			}
		})
	}
}

func TestCostService_Summary(t *testing.T) {
	t.Parallel()

	s := NewCostService(fixedClock, nil, nil).Summary()

	if s.Monthly != "2,456.78" {
		t.Errorf("Monthly = %q, want 2,456.78", s.Monthly)
	}
	if s.Waste != "612.50" {
		t.Errorf("Waste = %q, want 612.50", s.Waste)
	}
	if s.SavingsPercent != 25 {
		t.Errorf("SavingsPercent = %d, want 25", s.SavingsPercent)
	}
	if s.ByService["Lambda"] != 356.78 {
		t.Errorf("ByService[Lambda] = %v, want 356.78", s.ByService["Lambda"])
	}
	if len(s.History) != 3 {
		t.Errorf("len(History) = %d, want 3", len(s.History))
	}
}

func TestRecommendationService_ListIsCopy(t *testing.T) {
	t.Parallel()

	svc := NewRecommendationService(fixedClock, nil, discardLogger())

	first := svc.List()
	if len(first) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(first))
	}
	first[0].Title = "mutated"

	if svc.List()[0].Title == "mutated" {
		t.Error("List() must not expose the shared sample slice")
	}

	for _, r := range svc.List() {
		if r.Status != "" {
			t.Errorf("recommendation %s has server-side status %q", r.ID, r.Status)
		}
	}
}

func TestRecommendationService_Remediate(t *testing.T) {
	t.Parallel()

	rec := metrics.NewInMemory()
	svc := NewRecommendationService(fixedClock, rec, discardLogger())

	jobID, err := svc.Remediate(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("Remediate() error = %v", err)
	}
	if len(jobID) != 26 {
		t.Errorf("job id %q is not a ULID", jobID)
	}
	if got := rec.Snapshot().RemediationsRequested; got != 1 {
		t.Errorf("RemediationsRequested = %d, want 1", got)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestBillingService_CreateCheckoutSession(t *testing.T) {
	t.Parallel()

	rec := metrics.NewInMemory()
	svc := NewBillingService(BillingConfig{CheckoutURL: "https://checkout.stripe.com/pay/..."}, fixedClock, rec, discardLogger())

	a, err := svc.CreateCheckoutSession(context.Background())
	if err != nil {
		t.Fatalf("CreateCheckoutSession() error = %v", err)
	}
	b, err := svc.CreateCheckoutSession(context.Background())
	if err != nil {
		t.Fatalf("CreateCheckoutSession() error = %v", err)
	}

	if !strings.HasPrefix(a.SessionID, model.CheckoutSessionPrefix) {
		t.Errorf("SessionID %q missing prefix", a.SessionID)
	}
	if a.SessionID != strings.ToLower(a.SessionID) {
		t.Errorf("SessionID %q is not lowercase", a.SessionID)
	}
	if a.SessionID == b.SessionID {
		t.Error("session ids should differ")
	}
	if a.URL != "https://checkout.stripe.com/pay/..." {
		t.Errorf("URL = %q", a.URL)
	}
	if got := rec.Snapshot().CheckoutSessionsCreated; got != 2 {
		t.Errorf("CheckoutSessionsCreated = %d, want 2", got)
	}
}

func TestBillingService_CreateCheckoutSession_EntropyFailure(t *testing.T) {
	t.Parallel()

	svc := NewBillingService(BillingConfig{}, fixedClock, nil, discardLogger()).WithEntropy(failingReader{})

	if _, err := svc.CreateCheckoutSession(context.Background()); err == nil {
		t.Fatal("expected error when entropy source fails")
	}
}

func TestBillingService_ReceiveWebhook(t *testing.T) {
	t.Parallel()

	const secret = "whsec_test"
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)

	tests := []struct {
		name   string
		secret string
		header string
		body   []byte
		want   string
	}{
		{"no secret configured", "", "t=1,v1=abc", payload, metrics.WebhookUnsigned},
		{"valid signature", secret, webhook.SignHeader(secret, fixedNow, payload), payload, metrics.WebhookVerified},
		{"bad signature", secret, webhook.SignHeader("other", fixedNow, payload), payload, metrics.WebhookUnverified},
		{"missing header", secret, "", payload, metrics.WebhookUnsigned},
		{"non-json payload", "", "", []byte("not json at all"), metrics.WebhookUnsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			rec := metrics.NewInMemory()
			svc := NewBillingService(BillingConfig{WebhookSecret: tt.secret}, fixedClock, rec, logger)

			if got := svc.ReceiveWebhook(context.Background(), tt.body, tt.header); got != tt.want {
				t.Errorf("ReceiveWebhook() = %q, want %q", got, tt.want)
			}
			if !strings.Contains(buf.String(), `"outcome":"`+tt.want+`"`) {
				t.Errorf("log missing outcome: %s", buf.String())
			}
		})
	}
}

func TestAccountService(t *testing.T) {
	t.Parallel()

	svc := NewAccountService(fixedClock, discardLogger())

	u := svc.CurrentUser()
	if u.ID != "1" || u.Email != "user@example.com" || u.Tier != "free" {
		t.Errorf("CurrentUser() = %+v", u)
	}

	st := svc.AWSStatus()
	if !st.Connected {
		t.Error("expected Connected to be true")
	}
	if !st.LastSync.Equal(fixedNow) {
		t.Errorf("LastSync = %v, want %v", st.LastSync, fixedNow)
	}
}
