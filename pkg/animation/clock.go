package animation

import "time"

// Clock is the time source timelines anchor against. The package default
// reads system time; tests swap it out with SetClock, or give a single
// timeline its own clock, to drive frame decisions deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// clock is the package-level time source, replaceable for testing.
var clock Clock = systemClock{}

// SetClock replaces the package time source and returns the previous one
// so callers can restore it during cleanup. It affects every timeline
// without a per-instance clock override.
func SetClock(c Clock) Clock {
	prev := clock
	clock = c
	return prev
}

// Now returns the current time from the active package clock.
func Now() time.Time { return clock.Now() }
