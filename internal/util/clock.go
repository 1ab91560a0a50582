// Package util holds small shared helpers.
package util

import "time"

// Clock abstracts the wall clock so that time-dependent rules (the weekday
// used by withdrawal fees) stay deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.Instant
}

// FixedWeekday returns a FixedClock whose instant falls on the given
// weekday.
func FixedWeekday(day time.Weekday) FixedClock {
	// 2024-09-01 is a Sunday.
	base := time.Date(2024, time.September, 1, 12, 0, 0, 0, time.UTC)
	offset := (int(day) - int(base.Weekday()) + 7) % 7
	return FixedClock{Instant: base.AddDate(0, 0, offset)}
}
