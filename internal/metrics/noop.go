package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncCheckoutSessionCreated() {}
func (n *NoopRecorder) IncWebhookReceived(outcome string) {}
func (n *NoopRecorder) IncRemediationRequested() {}
func (n *NoopRecorder) IncCostHistoryGenerated() {}
func (n *NoopRecorder) IncRateLimited() {}
