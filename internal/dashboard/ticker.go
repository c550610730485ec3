package dashboard

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTickerDuration is how long a counter takes to reach its target.
const DefaultTickerDuration = 2 * time.Second

// TickerValue is the value an animated counter shows after elapsed:
// floor(target * min(elapsed/duration, 1)). A non-positive duration
// jumps straight to target.
func TickerValue(target float64, elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return target
	}
	progress := float64(elapsed) / float64(duration)
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}
	return math.Floor(target * progress)
}

// TickerDone reports whether the counter has stopped animating.
func TickerDone(elapsed, duration time.Duration) bool {
	return duration <= 0 || elapsed >= duration
}

// TickerText is the rendered counter, e.g. "$1,860" halfway to 3720.
func TickerText(target float64, elapsed, duration time.Duration) string {
	return FormatCurrency(decimal.NewFromFloat(TickerValue(target, elapsed, duration)))
}
