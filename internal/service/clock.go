// Package service holds the canned data and generators behind the mock API.
package service

import "time"

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

// RandFloat returns a pseudo-random number in [0, 1).
type RandFloat func() float64

// timestampLayout is ISO-8601 with milliseconds, e.g. 2024-02-25T13:45:30.123Z.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// dateLayout is the calendar-day format used by cost points.
const dateLayout = "2006-01-02"

// FormatTimestamp renders t in UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
