// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Webhook verification outcomes.
const (
	WebhookVerified   = "verified"
	WebhookUnverified = "unverified"
	WebhookUnsigned   = "unsigned"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	IncCheckoutSessionCreated()
	IncWebhookReceived(outcome string) // outcome: verified, unverified, unsigned
	IncRemediationRequested()
	IncCostHistoryGenerated()
	IncRateLimited()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
