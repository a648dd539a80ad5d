package testing

import (
	"time"

	"github.com/go-drift/frameclock/pkg/animation"
)

// ManualTicks is a TickScheduler that collects scheduled ticks instead of
// arming timers. Tests fire ticks explicitly, keeping the whole render
// loop on the test goroutine.
type ManualTicks struct {
	pending []*manualTick
}

type manualTick struct {
	delay     time.Duration
	tick      func()
	cancelled bool
}

var _ animation.TickScheduler = (*ManualTicks)(nil)

// NewManualTicks creates an empty manual tick scheduler.
func NewManualTicks() *ManualTicks {
	return &ManualTicks{}
}

// ScheduleTick queues a tick and returns its cancel function.
func (m *ManualTicks) ScheduleTick(delay time.Duration, tick func()) func() {
	entry := &manualTick{delay: delay, tick: tick}
	m.pending = append(m.pending, entry)
	return func() { entry.cancelled = true }
}

// Pending returns the number of queued, uncancelled ticks.
func (m *ManualTicks) Pending() int {
	count := 0
	for _, entry := range m.pending {
		if !entry.cancelled {
			count++
		}
	}
	return count
}

// LastDelay returns the delay of the most recently scheduled tick and
// whether any tick has been scheduled.
func (m *ManualTicks) LastDelay() (time.Duration, bool) {
	if len(m.pending) == 0 {
		return 0, false
	}
	return m.pending[len(m.pending)-1].delay, true
}

// Fire runs and removes the oldest uncancelled tick. It reports whether
// a tick ran.
func (m *ManualTicks) Fire() bool {
	for len(m.pending) > 0 {
		entry := m.pending[0]
		m.pending = m.pending[1:]
		if entry.cancelled {
			continue
		}
		entry.tick()
		return true
	}
	return false
}

// Clear drops all queued ticks without running them.
func (m *ManualTicks) Clear() {
	m.pending = nil
}
