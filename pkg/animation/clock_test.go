package animation_test

import (
	"testing"
	"time"

	"github.com/go-drift/frameclock/pkg/animation"
	fctesting "github.com/go-drift/frameclock/pkg/testing"
)

func TestSetClockInjection(t *testing.T) {
	fake := fctesting.NewFakeClock()
	prev := animation.SetClock(fake)
	defer animation.SetClock(prev)

	if !animation.Now().Equal(fake.Now()) {
		t.Error("Now did not read the injected clock")
	}
	fake.Advance(time.Hour)
	if !animation.Now().Equal(fake.Now()) {
		t.Error("Now did not follow the injected clock")
	}
}

func TestSetClockReturnsPrevious(t *testing.T) {
	fake := fctesting.NewFakeClock()
	prev := animation.SetClock(fake)
	restored := animation.SetClock(prev)
	if restored != animation.Clock(fake) {
		t.Error("SetClock did not return the clock it replaced")
	}
}

// A timeline without a per-instance clock falls back to the package one.
func TestTimelineUsesPackageClock(t *testing.T) {
	fake := fctesting.NewFakeClock()
	prev := animation.SetClock(fake)
	defer animation.SetClock(prev)

	timeline := animation.NewTimeline(uniformSource(3, 100*time.Millisecond, animation.LoopCountInfinite), nil)
	timeline.Start()
	if !timeline.StartTime().Equal(fake.Now()) {
		t.Error("Start did not anchor against the package clock")
	}
}
