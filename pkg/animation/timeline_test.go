package animation_test

import (
	"testing"
	"time"

	"github.com/go-drift/frameclock/pkg/animation"
	"github.com/go-drift/frameclock/pkg/graphics"
	fctesting "github.com/go-drift/frameclock/pkg/testing"
)

// stubSource is a configurable Source for timeline and scheduler tests.
type stubSource struct {
	durations []time.Duration
	loopCount int

	// renderResult decides the outcome of the nth render call (1-based);
	// nil means every render succeeds.
	renderResult func(call int) bool

	renderCalls  int
	rendered     []int
	bounds       graphics.Rect
	boundsSet    bool
	alpha        float64
	alphaSet     bool
	filter       *graphics.ColorFilter
	filterCalled bool
}

func (s *stubSource) FrameCount() int { return len(s.durations) }

func (s *stubSource) FrameDuration(index int) time.Duration {
	if index < 0 || index >= len(s.durations) {
		return 0
	}
	return s.durations[index]
}

func (s *stubSource) LoopCount() int { return s.loopCount }

func (s *stubSource) RenderFrame(_ graphics.Surface, index int) bool {
	s.renderCalls++
	s.rendered = append(s.rendered, index)
	if s.renderResult != nil {
		return s.renderResult(s.renderCalls)
	}
	return true
}

func (s *stubSource) SetBounds(bounds graphics.Rect) {
	s.bounds = bounds
	s.boundsSet = true
}

func (s *stubSource) SetAlpha(alpha float64) {
	s.alpha = alpha
	s.alphaSet = true
}

func (s *stubSource) SetColorFilter(filter *graphics.ColorFilter) {
	s.filter = filter
	s.filterCalled = true
}

func uniformSource(frames int, duration time.Duration, loops int) *stubSource {
	durations := make([]time.Duration, frames)
	for i := range durations {
		durations[i] = duration
	}
	return &stubSource{durations: durations, loopCount: loops}
}

// harness wires a timeline to deterministic time, manual ticks and a
// recording listener.
type harness struct {
	timeline    *animation.Timeline
	clock       *fctesting.FakeClock
	ticks       *fctesting.ManualTicks
	listener    *fctesting.RecordingListener
	surface     *graphics.ImageSurface
	invalidates int
}

func newHarness(source animation.Source) *harness {
	h := &harness{
		clock:    fctesting.NewFakeClock(),
		ticks:    fctesting.NewManualTicks(),
		listener: &fctesting.RecordingListener{},
		surface:  graphics.NewImageSurface(8, 8),
	}
	h.timeline = animation.NewTimeline(source, func() { h.invalidates++ })
	h.timeline.SetClock(h.clock)
	h.timeline.SetTickScheduler(h.ticks)
	h.timeline.SetListener(h.listener)
	return h
}

func (h *harness) render() {
	h.timeline.Render(h.surface)
}

func TestStartDeclinesNonAnimatableSource(t *testing.T) {
	for _, frames := range []int{0, 1} {
		h := newHarness(uniformSource(frames, 100*time.Millisecond, animation.LoopCountInfinite))
		h.timeline.Start()
		if h.timeline.IsRunning() {
			t.Errorf("timeline running with %d-frame source", frames)
		}
		if h.listener.Starts != 0 {
			t.Errorf("start event fired with %d-frame source", frames)
		}
	}
}

func TestStartDeclinesUnboundSource(t *testing.T) {
	h := newHarness(nil)
	h.timeline.Start()
	if h.timeline.IsRunning() {
		t.Error("timeline running with no source")
	}
	// Render and seek are safe no-ops too.
	h.render()
	h.timeline.JumpToFrame(2)
	if h.timeline.FrameCount() != 0 || h.timeline.LoopCount() != 0 || h.timeline.LoopDuration() != 0 {
		t.Error("unbound getters must be zero-valued")
	}
	if h.timeline.IsInfinite() {
		t.Error("unbound timeline reports infinite")
	}
}

func TestStartStopLifecycle(t *testing.T) {
	h := newHarness(uniformSource(3, 100*time.Millisecond, animation.LoopCountInfinite))

	h.timeline.Start()
	if !h.timeline.IsRunning() {
		t.Fatal("not running after Start")
	}
	if h.invalidates != 1 {
		t.Errorf("invalidates = %d after Start, want 1", h.invalidates)
	}
	if h.timeline.StartTime().IsZero() {
		t.Error("start time not anchored")
	}

	// Second Start is a no-op.
	h.timeline.Start()
	if h.listener.Starts != 1 {
		t.Errorf("Starts = %d, want 1", h.listener.Starts)
	}

	h.timeline.Stop()
	if h.timeline.IsRunning() {
		t.Fatal("running after Stop")
	}
	if !h.timeline.StartTime().IsZero() {
		t.Error("start time not cleared by Stop")
	}

	// Second Stop is a no-op: no duplicate stop event.
	h.timeline.Stop()
	if h.listener.Stops != 1 {
		t.Errorf("Stops = %d, want 1", h.listener.Stops)
	}
}

func TestRenderAdvancesWithClock(t *testing.T) {
	source := uniformSource(3, 100*time.Millisecond, animation.LoopCountInfinite)
	h := newHarness(source)

	h.timeline.Start()
	h.render()
	for range 3 {
		h.clock.Advance(100 * time.Millisecond)
		h.render()
	}

	want := []int{0, 1, 2, 0}
	if len(source.rendered) != len(want) {
		t.Fatalf("rendered %v, want %v", source.rendered, want)
	}
	for i, frame := range want {
		if source.rendered[i] != frame {
			t.Fatalf("rendered %v, want %v", source.rendered, want)
		}
	}

	// Repeat fires on every frame-0 tick: the fresh start's first
	// frame and the wrap back at the loop boundary.
	if h.listener.Repeats != 2 {
		t.Errorf("Repeats = %d, want 2", h.listener.Repeats)
	}
}

func TestRepeatFiresAtLoopBoundaries(t *testing.T) {
	h := newHarness(uniformSource(3, 100*time.Millisecond, animation.LoopCountInfinite))

	h.timeline.Start()
	h.render()
	if h.listener.Repeats != 1 {
		t.Fatalf("repeats on fresh-start frame 0 = %d, want 1", h.listener.Repeats)
	}

	// Ticks landing exactly on the loop boundaries at 300ms, 600ms,
	// 900ms each render frame 0 again and fire one repeat apiece.
	for range 3 {
		h.clock.Advance(300 * time.Millisecond)
		h.render()
	}
	if got := h.listener.Repeats - 1; got != 3 {
		t.Errorf("repeats across boundaries 300/600/900 = %d, want 3", got)
	}

	// Ticks inside a loop do not repeat.
	h.clock.Advance(150 * time.Millisecond)
	h.render()
	if h.listener.Repeats != 4 {
		t.Errorf("mid-loop tick fired a repeat: %d", h.listener.Repeats)
	}
}

func TestRenderSchedulesSelfCorrectingDelay(t *testing.T) {
	h := newHarness(uniformSource(3, 100*time.Millisecond, animation.LoopCountInfinite))

	h.timeline.Start()
	h.render()
	if delay, ok := h.ticks.LastDelay(); !ok || delay != 100*time.Millisecond {
		t.Fatalf("first delay = %v (%v), want 100ms", delay, ok)
	}

	// The next tick arrives 30ms late; the delay after it shrinks so the
	// following frame still lands on its absolute boundary.
	h.clock.Advance(130 * time.Millisecond)
	h.render()
	if delay, _ := h.ticks.LastDelay(); delay != 70*time.Millisecond {
		t.Errorf("delay after late tick = %v, want 70ms", delay)
	}

	// Only one tick may be pending at a time.
	if got := h.ticks.Pending(); got != 1 {
		t.Errorf("pending ticks = %d, want 1", got)
	}
}

func TestRenderCostFoldedIntoDelay(t *testing.T) {
	source := uniformSource(3, 100*time.Millisecond, animation.LoopCountInfinite)
	h := newHarness(source)
	// Renders take 40ms of clock time.
	source.renderResult = func(int) bool {
		h.clock.Advance(40 * time.Millisecond)
		return true
	}

	h.timeline.Start()
	h.render()
	if delay, _ := h.ticks.LastDelay(); delay != 60*time.Millisecond {
		t.Errorf("delay = %v, want 60ms after 40ms render", delay)
	}
}

func TestStopCancelsPendingTick(t *testing.T) {
	h := newHarness(uniformSource(3, 100*time.Millisecond, animation.LoopCountInfinite))

	h.timeline.Start()
	h.render()
	if h.ticks.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", h.ticks.Pending())
	}

	h.timeline.Stop()
	if h.ticks.Pending() != 0 {
		t.Error("pending tick survived Stop")
	}
	// A cancelled tick firing is a no-op.
	invalidatesBefore := h.invalidates
	h.ticks.Fire()
	if h.invalidates != invalidatesBefore {
		t.Error("cancelled tick still invalidated")
	}
}

func TestStoppedTimelineRedrawsDeterministically(t *testing.T) {
	source := uniformSource(3, 100*time.Millisecond, animation.LoopCountInfinite)
	h := newHarness(source)

	h.timeline.Start()
	h.clock.Advance(150 * time.Millisecond)
	h.render()
	h.timeline.Stop()

	// While stopped, renders do not consult the clock.
	h.clock.Advance(5 * time.Second)
	h.render()
	h.render()
	last := source.rendered[len(source.rendered)-1]
	if last != 0 {
		t.Errorf("stopped redraw rendered frame %d, want 0", last)
	}
	if h.ticks.Pending() != 0 {
		t.Error("stopped render scheduled a tick")
	}
}

func TestJumpToFrame(t *testing.T) {
	source := uniformSource(4, 100*time.Millisecond, animation.LoopCountInfinite)
	h := newHarness(source)

	h.timeline.JumpToFrame(2)
	if h.timeline.IsRunning() {
		t.Error("JumpToFrame started the timeline")
	}
	if h.invalidates != 1 {
		t.Errorf("invalidates = %d after jump, want 1", h.invalidates)
	}

	h.render()
	if len(source.rendered) != 1 || source.rendered[0] != 2 {
		t.Errorf("rendered %v after JumpToFrame(2), want [2]", source.rendered)
	}
}

func TestJumpToFrameWhileRunningStopsFirst(t *testing.T) {
	h := newHarness(uniformSource(4, 100*time.Millisecond, animation.LoopCountInfinite))

	h.timeline.Start()
	h.render()
	h.timeline.JumpToFrame(3)
	if h.timeline.IsRunning() {
		t.Error("still running after JumpToFrame")
	}
	if h.listener.Stops != 1 {
		t.Errorf("Stops = %d, want 1", h.listener.Stops)
	}
	if h.ticks.Pending() != 0 {
		t.Error("pending tick survived JumpToFrame")
	}
}

func TestFiniteAnimationCompletes(t *testing.T) {
	source := uniformSource(2, 100*time.Millisecond, 2)
	h := newHarness(source)

	h.timeline.Start()
	h.render()
	h.clock.Advance(500 * time.Millisecond)
	h.render()

	if h.timeline.IsRunning() {
		t.Error("running after natural completion")
	}
	// The final frame is displayed in place of DONE.
	last := source.rendered[len(source.rendered)-1]
	if last != 1 {
		t.Errorf("final rendered frame = %d, want 1", last)
	}
	if h.listener.Stops != 1 {
		t.Errorf("Stops = %d, want 1", h.listener.Stops)
	}
	if h.ticks.Pending() != 0 {
		t.Error("completed animation left a pending tick")
	}

	// Redrawing a completed animation keeps showing the final frame
	// without re-firing the stop event.
	h.render()
	if h.listener.Stops != 1 {
		t.Errorf("Stops after redraw = %d, want 1", h.listener.Stops)
	}
	if got := source.rendered[len(source.rendered)-1]; got != 1 {
		t.Errorf("redraw after completion rendered %d, want 1", got)
	}
}

func TestDroppedFrameAccounting(t *testing.T) {
	source := uniformSource(3, 100*time.Millisecond, animation.LoopCountInfinite)
	source.renderResult = func(call int) bool { return call%3 != 0 }
	h := newHarness(source)

	h.timeline.Start()
	for range 30 {
		h.render()
		h.clock.Advance(100 * time.Millisecond)
	}

	if got := h.timeline.DroppedFrameCount(); got != 10 {
		t.Errorf("DroppedFrameCount = %d, want 10", got)
	}
	// Drops never reset across stop/start.
	h.timeline.Stop()
	h.timeline.Start()
	if got := h.timeline.DroppedFrameCount(); got != 10 {
		t.Errorf("DroppedFrameCount after restart = %d, want 10", got)
	}
}

func TestSetSourceRebindsAndStops(t *testing.T) {
	first := uniformSource(3, 100*time.Millisecond, animation.LoopCountInfinite)
	h := newHarness(first)

	h.timeline.SetBounds(graphics.RectFromLTWH(0, 0, 8, 8))
	h.timeline.SetAlpha(0.5)
	h.timeline.SetColorFilter(graphics.GrayscaleFilter())

	h.timeline.Start()
	h.render()

	second := uniformSource(5, 50*time.Millisecond, 2)
	h.timeline.SetSource(second)

	if h.timeline.IsRunning() {
		t.Error("running after source swap")
	}
	if h.ticks.Pending() != 0 {
		t.Error("stale tick survived source swap")
	}
	if h.timeline.FrameCount() != 5 || h.timeline.LoopCount() != 2 {
		t.Error("metadata still reflects old source")
	}
	if h.timeline.LoopDuration() != 250*time.Millisecond {
		t.Errorf("LoopDuration = %v, want 250ms", h.timeline.LoopDuration())
	}

	// Bounds, alpha and color filter carry over to the new source.
	if !second.boundsSet || second.bounds.Width() != 8 {
		t.Error("bounds not re-applied on rebind")
	}
	if !second.alphaSet || second.alpha != 0.5 {
		t.Error("alpha not re-applied on rebind")
	}
	if !second.filterCalled || second.filter == nil {
		t.Error("color filter not re-applied on rebind")
	}
}

func TestSetSourceNilClears(t *testing.T) {
	h := newHarness(uniformSource(3, 100*time.Millisecond, animation.LoopCountInfinite))

	h.timeline.Start()
	h.timeline.SetSource(nil)
	if h.timeline.Source() != nil {
		t.Error("source not cleared")
	}
	h.render()
	h.timeline.Start()
	if h.timeline.IsRunning() {
		t.Error("started with cleared source")
	}
}

func TestSetListenerNilRestoresNoOp(t *testing.T) {
	h := newHarness(uniformSource(3, 100*time.Millisecond, animation.LoopCountInfinite))
	h.timeline.SetListener(nil)
	h.timeline.Start()
	h.render()
	h.timeline.Stop()
}

func TestPropertiesAppliedBeforeSourceBound(t *testing.T) {
	h := newHarness(nil)
	h.timeline.SetAlpha(0.25)
	h.timeline.SetColorFilter(graphics.TintFilter(graphics.ColorRed, 0.5))

	source := uniformSource(3, 100*time.Millisecond, animation.LoopCountInfinite)
	h.timeline.SetSource(source)
	if !source.alphaSet || source.alpha != 0.25 {
		t.Error("alpha set before bind was not applied")
	}
	if source.filter == nil {
		t.Error("filter set before bind was not applied")
	}
}

func TestFiniteCompletionEventOrder(t *testing.T) {
	h := newHarness(uniformSource(2, 100*time.Millisecond, 1))

	h.timeline.Start()
	h.clock.Advance(250 * time.Millisecond)
	h.render()

	// Completion notifies stop, then the substituted final frame.
	want := []string{"start", "stop", "frame"}
	if len(h.listener.Events) != len(want) {
		t.Fatalf("events = %v, want %v", h.listener.Events, want)
	}
	for i, event := range want {
		if h.listener.Events[i] != event {
			t.Fatalf("events = %v, want %v", h.listener.Events, want)
		}
	}
}
