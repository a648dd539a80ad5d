package animation

import "time"

// TickScheduler is the host's deferred-invocation primitive, typically an
// invalidation queue or vsync-aligned timer. The timeline computes delay
// values and registers ticks against it; it never sleeps itself.
//
// ScheduleTick arranges for tick to run after delay and returns a cancel
// function. Cancel must be safe to call after the tick has fired and must
// guarantee that a cancelled tick never runs.
type TickScheduler interface {
	ScheduleTick(delay time.Duration, tick func()) (cancel func())
}

// timerTicks is the default TickScheduler, backed by the runtime timer
// heap. Ticks fire on a timer goroutine; hosts with a dedicated drawing
// thread should supply their own scheduler that hops to that thread.
type timerTicks struct{}

func (timerTicks) ScheduleTick(delay time.Duration, tick func()) func() {
	timer := time.AfterFunc(delay, tick)
	return func() { timer.Stop() }
}

// TickTracer observes per-tick timing for diagnostics. Implementations
// must be cheap; they run inline on the drawing thread every tick.
type TickTracer interface {
	// TraceTick reports one render tick. jitter is how far the tick ran
	// behind the frame's target render time (only meaningful while the
	// timeline is running), renderTime is the cost of the source render
	// call, and drawn is false when the source dropped the frame.
	TraceTick(frameNumber int, jitter, renderTime time.Duration, drawn bool)
}
