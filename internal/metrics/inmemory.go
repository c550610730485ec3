package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	CheckoutSessionsCreated uint64
	WebhooksVerified        uint64
	WebhooksUnverified      uint64
	WebhooksUnsigned        uint64
	RemediationsRequested   uint64
	CostHistoriesGenerated  uint64
	RateLimited             uint64
}

// InMemoryRecorder keeps counters in process memory.
// Counters reset on restart.
type InMemoryRecorder struct {
	checkoutSessions   atomic.Uint64
	webhooksVerified   atomic.Uint64
	webhooksUnverified atomic.Uint64
	webhooksUnsigned   atomic.Uint64
	remediations       atomic.Uint64
	costHistories      atomic.Uint64
	rateLimited        atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		CheckoutSessionsCreated: m.checkoutSessions.Load(),
		WebhooksVerified:        m.webhooksVerified.Load(),
		WebhooksUnverified:      m.webhooksUnverified.Load(),
		WebhooksUnsigned:        m.webhooksUnsigned.Load(),
		RemediationsRequested:   m.remediations.Load(),
		CostHistoriesGenerated:  m.costHistories.Load(),
		RateLimited:             m.rateLimited.Load(),
	}
}

// IncCheckoutSessionCreated increments the checkout session counter.
func (m *InMemoryRecorder) IncCheckoutSessionCreated() {
	m.checkoutSessions.Add(1)
}

// IncWebhookReceived increments the webhook counter for the given outcome.
// Unknown outcomes are counted as unsigned.
func (m *InMemoryRecorder) IncWebhookReceived(outcome string) {
	switch outcome {
	case WebhookVerified:
		m.webhooksVerified.Add(1)
	case WebhookUnverified:
		m.webhooksUnverified.Add(1)
	default:
		m.webhooksUnsigned.Add(1)
	}
}

// IncRemediationRequested increments the remediation counter.
func (m *InMemoryRecorder) IncRemediationRequested() {
	m.remediations.Add(1)
}

// IncCostHistoryGenerated increments the synthetic history counter.
func (m *InMemoryRecorder) IncCostHistoryGenerated() {
	m.costHistories.Add(1)
}

// IncRateLimited increments the rejected-request counter.
func (m *InMemoryRecorder) IncRateLimited() {
	m.rateLimited.Add(1)
}
