// Package animation computes which frame of a looping or finite animation
// should be displayed at each render tick, and when the next tick should
// be requested.
//
// # Core Components
//
//   - [Source]: the frame-producing backend. It reports frame count,
//     per-frame durations and loop count, and renders individual frames.
//
//   - [FrameScheduler]: the pure mapping from elapsed animation time to a
//     frame index, created with [NewDropFramesScheduler]. When rendering
//     falls behind, it skips to the frame currently due instead of
//     replaying missed frames.
//
//   - [Timeline]: the play/stop/seek state machine. It anchors wall-clock
//     time, drives the scheduler on every render tick, counts dropped
//     frames and re-arms the next tick with a self-correcting delay.
//
// # Basic Usage
//
// Create a timeline over a source, give it a way to request redraws, and
// call Render from the host's redraw callback:
//
//	timeline := animation.NewTimeline(source, view.Invalidate)
//	timeline.SetListener(myListener)
//	timeline.Start()
//
//	// In the host redraw callback, on the drawing thread:
//	timeline.Render(surface)
//
// The timeline computes the delay until the next frame is due and
// registers a tick with its [TickScheduler]; the tick calls the
// invalidate function, which must lead to another Render call.
package animation

import (
	"sync/atomic"
	"time"

	"github.com/go-drift/frameclock/pkg/graphics"
)

// noElapsed marks that no frame decision has been made this run.
const noElapsed = time.Duration(-1)

// Timeline drives an animation Source over wall-clock time.
//
// All methods except IsRunning must be called from the host's drawing
// thread; the timeline performs no internal locking.
type Timeline struct {
	source    Source
	scheduler FrameScheduler

	// running is the only field read from other threads.
	running atomic.Bool

	// startTime anchors elapsed-time computation; zero while stopped.
	startTime time.Time

	// lastFrameElapsed is the elapsed value used for the most recent
	// frame decision, noElapsed when none has been made this run.
	lastFrameElapsed time.Duration

	droppedFrames int

	listener Listener
	tracer   TickTracer

	clock      Clock
	ticks      TickScheduler
	invalidate func()
	cancelTick func()

	bounds graphics.Rect
	props  *sourceProperties
}

// sourceProperties holds alpha and color filter so they can be re-applied
// when the source is swapped. Created lazily on first mutation.
type sourceProperties struct {
	hasAlpha bool
	alpha    float64
	filter   *graphics.ColorFilter
}

// NewTimeline creates a timeline bound to source, which may be nil.
//
// invalidate is called whenever the host should redraw: immediately on
// Start and JumpToFrame, and via the tick scheduler when the next frame
// comes due. It must eventually lead to a Render call on the drawing
// thread. A nil invalidate leaves the timeline usable for direct Render
// calls but nothing will drive it.
func NewTimeline(source Source, invalidate func()) *Timeline {
	t := &Timeline{
		source:           source,
		listener:         noOpListener,
		ticks:            timerTicks{},
		invalidate:       invalidate,
		lastFrameElapsed: noElapsed,
	}
	if source != nil {
		t.scheduler = NewDropFramesScheduler(source)
	}
	if t.invalidate == nil {
		t.invalidate = func() {}
	}
	return t
}

// Start begins playing from time zero. It is a no-op if the timeline is
// already running, has no source, or the source has one frame or fewer
// (a single frame never animates).
func (t *Timeline) Start() {
	if t.running.Load() || t.source == nil || t.source.FrameCount() <= 1 {
		return
	}
	t.running.Store(true)
	t.startTime = t.now()
	t.lastFrameElapsed = noElapsed
	t.invalidate()
	t.listener.OnAnimationStart(t)
}

// Stop halts the animation at the currently displayed frame and cancels
// any pending tick. It is a no-op if the timeline is not running. A
// subsequent Start restarts from time zero rather than resuming.
func (t *Timeline) Stop() {
	if !t.running.Load() {
		return
	}
	t.running.Store(false)
	t.startTime = time.Time{}
	t.lastFrameElapsed = noElapsed
	t.cancelPendingTick()
	t.listener.OnAnimationStop(t)
}

// IsRunning reports whether the timeline is running. Safe to call from
// any thread.
func (t *Timeline) IsRunning() bool {
	return t.running.Load()
}

// JumpToFrame stops the animation and re-anchors timing so the next
// render tick lands on frameNumber. It does not restart the timeline.
func (t *Timeline) JumpToFrame(frameNumber int) {
	if t.source == nil || t.scheduler == nil {
		return
	}
	t.Stop()
	target := t.scheduler.TargetRenderTime(frameNumber)
	t.startTime = t.now().Add(-target)
	t.lastFrameElapsed = target
	t.invalidate()
}

// Render decides and draws the frame due now. It is the render tick entry
// point, invoked by the host's redraw callback on the drawing thread.
// With no source bound it is a no-op.
func (t *Timeline) Render(surface graphics.Surface) {
	if t.source == nil || t.scheduler == nil {
		return
	}
	renderStart := t.now()

	running := t.running.Load()
	var elapsed time.Duration
	if running {
		elapsed = renderStart.Sub(t.startTime)
	} else {
		// A stopped timeline redraws its last frame deterministically
		// instead of re-deriving position from the clock.
		elapsed = max(t.lastFrameElapsed, 0)
	}

	frameNumber := t.scheduler.FrameNumberToRender(elapsed, t.lastFrameElapsed)
	t.lastFrameElapsed = elapsed

	if frameNumber == FrameNumberDone {
		// Natural completion: pin the final frame and stop re-arming.
		// The stop notification fires only on the running->stopped
		// transition so redraws of a completed animation stay silent.
		frameNumber = t.source.FrameCount() - 1
		if t.running.CompareAndSwap(true, false) {
			t.cancelPendingTick()
			t.listener.OnAnimationStop(t)
		}
		running = false
	} else if frameNumber == 0 {
		t.listener.OnAnimationRepeat(t)
	}

	t.listener.OnAnimationFrame(t, frameNumber)

	drawn := t.source.RenderFrame(surface, frameNumber)
	if !drawn {
		t.droppedFrames++
	}

	renderEnd := t.now()
	if t.tracer != nil {
		var jitter time.Duration
		if running {
			jitter = renderStart.Sub(t.startTime.Add(t.scheduler.TargetRenderTime(frameNumber)))
		}
		t.tracer.TraceTick(frameNumber, jitter, renderEnd.Sub(renderStart), drawn)
	}

	if running {
		// Compute the delay from post-render elapsed time so the cost
		// of this render is folded into when the next tick fires.
		delay := t.scheduler.DelayUntilNextFrame(renderEnd.Sub(t.startTime))
		t.scheduleNextTick(delay)
	}
}

// SetSource rebinds the timeline to a new source, or clears it with nil.
// The source and its scheduler are replaced together and the timeline is
// force-stopped, so no tick can observe a scheduler derived from a
// different source. Bounds and any previously set alpha/color filter are
// re-applied to the new source.
func (t *Timeline) SetSource(source Source) {
	t.cancelPendingTick()
	t.source = source
	if source != nil {
		t.scheduler = NewDropFramesScheduler(source)
		source.SetBounds(t.bounds)
		t.applyProperties(source)
	} else {
		t.scheduler = nil
	}
	t.Stop()
}

// Source returns the currently bound source, or nil.
func (t *Timeline) Source() Source {
	return t.source
}

// SetBounds updates the render area and forwards it to the source.
func (t *Timeline) SetBounds(bounds graphics.Rect) {
	t.bounds = bounds
	if t.source != nil {
		t.source.SetBounds(bounds)
	}
}

// SetAlpha sets the opacity (0-1) applied to rendered frames. The value
// is retained and re-applied if the source is swapped.
func (t *Timeline) SetAlpha(alpha float64) {
	props := t.properties()
	props.hasAlpha = true
	props.alpha = alpha
	if t.source != nil {
		t.source.SetAlpha(alpha)
	}
}

// SetColorFilter sets the color filter applied to rendered frames. The
// filter is retained and re-applied if the source is swapped.
func (t *Timeline) SetColorFilter(filter *graphics.ColorFilter) {
	t.properties().filter = filter
	if t.source != nil {
		t.source.SetColorFilter(filter)
	}
}

// SetListener sets the lifecycle listener. Passing nil restores the
// default no-op listener.
func (t *Timeline) SetListener(listener Listener) {
	if listener == nil {
		listener = noOpListener
	}
	t.listener = listener
}

// SetClock overrides the timeline's time source. Passing nil restores
// the package clock.
func (t *Timeline) SetClock(clock Clock) {
	t.clock = clock
}

// SetTickScheduler replaces the deferred-tick primitive. Passing nil
// restores the default timer-backed scheduler. Any pending tick is
// cancelled.
func (t *Timeline) SetTickScheduler(ticks TickScheduler) {
	t.cancelPendingTick()
	if ticks == nil {
		ticks = timerTicks{}
	}
	t.ticks = ticks
}

// SetTickTracer sets an observer for per-tick timing diagnostics, or
// clears it with nil.
func (t *Timeline) SetTickTracer(tracer TickTracer) {
	t.tracer = tracer
}

// DroppedFrameCount returns the number of frames the source failed to
// render. The counter is never reset for the lifetime of the timeline.
func (t *Timeline) DroppedFrameCount() int {
	return t.droppedFrames
}

// StartTime returns the wall-clock anchor of the current run, or the
// zero time while stopped.
func (t *Timeline) StartTime() time.Time {
	return t.startTime
}

// LoopDuration returns the duration of one loop, or 0 with no source.
func (t *Timeline) LoopDuration() time.Duration {
	if t.scheduler == nil {
		return 0
	}
	return t.scheduler.LoopDuration()
}

// FrameCount returns the source's frame count, or 0 with no source.
func (t *Timeline) FrameCount() int {
	if t.source == nil {
		return 0
	}
	return t.source.FrameCount()
}

// LoopCount returns the source's loop count, or 0 with no source.
func (t *Timeline) LoopCount() int {
	if t.source == nil {
		return 0
	}
	return t.source.LoopCount()
}

// IsInfinite reports whether the bound source loops forever.
func (t *Timeline) IsInfinite() bool {
	return t.scheduler != nil && t.scheduler.IsInfinite()
}

func (t *Timeline) scheduleNextTick(delay time.Duration) {
	t.cancelPendingTick()
	t.cancelTick = t.ticks.ScheduleTick(delay, t.invalidate)
}

func (t *Timeline) cancelPendingTick() {
	if t.cancelTick != nil {
		t.cancelTick()
		t.cancelTick = nil
	}
}

func (t *Timeline) properties() *sourceProperties {
	if t.props == nil {
		t.props = &sourceProperties{}
	}
	return t.props
}

func (t *Timeline) applyProperties(source Source) {
	if t.props == nil {
		return
	}
	if t.props.hasAlpha {
		source.SetAlpha(t.props.alpha)
	}
	if t.props.filter != nil {
		source.SetColorFilter(t.props.filter)
	}
}

func (t *Timeline) now() time.Time {
	if t.clock != nil {
		return t.clock.Now()
	}
	return Now()
}
