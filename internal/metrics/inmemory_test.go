package metrics

import (
	"sync"
	"testing"
)

func TestInMemoryRecorder_Counts(t *testing.T) {
	t.Parallel()

	m := NewInMemory()
	m.IncCheckoutSessionCreated()
	m.IncCheckoutSessionCreated()
	m.IncWebhookReceived(WebhookVerified)
	m.IncWebhookReceived(WebhookUnverified)
	m.IncWebhookReceived(WebhookUnsigned)
	m.IncWebhookReceived("something-else")
	m.IncRemediationRequested()
	m.IncCostHistoryGenerated()
	m.IncRateLimited()

	snap := m.Snapshot()
	want := Snapshot{
		CheckoutSessionsCreated: 2,
		WebhooksVerified:        1,
		WebhooksUnverified:      1,
		WebhooksUnsigned:        2,
		RemediationsRequested:   1,
		CostHistoriesGenerated:  1,
		RateLimited:             1,
	}
	if snap != want {
		t.Errorf("Snapshot() = %+v, want %+v", snap, want)
	}
}

func TestInMemoryRecorder_Concurrent(t *testing.T) {
	t.Parallel()

	m := NewInMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncCheckoutSessionCreated()
		}()
	}
	wg.Wait()

	if got := m.Snapshot().CheckoutSessionsCreated; got != 50 {
		t.Errorf("CheckoutSessionsCreated = %d, want 50", got)
	}
}
