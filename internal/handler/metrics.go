package handler

import (
	"fmt"
	"net/http"

	"github.com/cloudtrim/cloudtrim/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
//
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "cloudtrim_checkout_sessions_created_total %d\n", snap.CheckoutSessionsCreated)
	writeMetric(w, "cloudtrim_webhooks_received_total{outcome=\"verified\"} %d\n", snap.WebhooksVerified)
	writeMetric(w, "cloudtrim_webhooks_received_total{outcome=\"unverified\"} %d\n", snap.WebhooksUnverified)
	writeMetric(w, "cloudtrim_webhooks_received_total{outcome=\"unsigned\"} %d\n", snap.WebhooksUnsigned)
	writeMetric(w, "cloudtrim_remediations_requested_total %d\n", snap.RemediationsRequested)
	writeMetric(w, "cloudtrim_cost_histories_generated_total %d\n", snap.CostHistoriesGenerated)
	writeMetric(w, "cloudtrim_rate_limited_total %d\n", snap.RateLimited)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
