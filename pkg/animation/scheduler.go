package animation

import "time"

// FrameNumberDone is returned by FrameNumberToRender once a finite
// animation has played all of its configured loops.
const FrameNumberDone = -1

// FrameScheduler maps elapsed animation time to the frame that should be
// on screen and to the delay until the next frame is due.
//
// Implementations are pure over the bound source's frame metadata: for a
// fixed source the same elapsed time always yields the same frame.
type FrameScheduler interface {
	// FrameNumberToRender returns the frame whose display interval
	// contains elapsed, or FrameNumberDone when a finite animation has
	// exhausted its loops. lastFrameElapsed is the elapsed value used
	// for the previous decision (-1 when no frame has been decided
	// yet); frames whose intervals fall entirely between the two values
	// are skipped, not replayed.
	FrameNumberToRender(elapsed, lastFrameElapsed time.Duration) int

	// TargetRenderTime returns the animation-relative time at which the
	// frame is nominally due within its loop.
	TargetRenderTime(frameNumber int) time.Duration

	// DelayUntilNextFrame returns the time from elapsed until the next
	// frame boundary, floored at zero. The delay is derived from
	// absolute frame target times rather than by adding a nominal frame
	// duration to the current moment, so late ticks self-correct
	// instead of accumulating drift.
	DelayUntilNextFrame(elapsed time.Duration) time.Duration

	// LoopDuration returns the summed duration of all frames in one loop.
	LoopDuration() time.Duration

	// IsInfinite reports whether the source loops forever.
	IsInfinite() bool
}

// NewDropFramesScheduler creates a scheduler over source that skips ahead
// to the frame currently due when render latency exceeds the frame budget,
// rather than replaying every missed frame.
func NewDropFramesScheduler(source Source) FrameScheduler {
	return &dropFramesScheduler{source: source, loopDuration: -1}
}

type dropFramesScheduler struct {
	source Source

	// loopDuration caches the summed frame durations; -1 until first use.
	loopDuration time.Duration
}

func (s *dropFramesScheduler) FrameNumberToRender(elapsed, lastFrameElapsed time.Duration) int {
	if s.source.FrameCount() == 0 {
		return FrameNumberDone
	}
	loopDuration := s.LoopDuration()
	if loopDuration == 0 {
		// All frames have zero duration; pin the first frame rather
		// than spinning through the interval walk.
		return 0
	}
	if !s.IsInfinite() && elapsed/loopDuration >= time.Duration(s.source.LoopCount()) {
		return FrameNumberDone
	}
	return s.frameNumberWithinLoop(elapsed % loopDuration)
}

func (s *dropFramesScheduler) TargetRenderTime(frameNumber int) time.Duration {
	var target time.Duration
	for i := 0; i < frameNumber && i < s.source.FrameCount(); i++ {
		target += s.source.FrameDuration(i)
	}
	return target
}

func (s *dropFramesScheduler) DelayUntilNextFrame(elapsed time.Duration) time.Duration {
	frameCount := s.source.FrameCount()
	loopDuration := s.LoopDuration()
	if frameCount == 0 || loopDuration == 0 {
		return 0
	}
	if !s.IsInfinite() && elapsed/loopDuration >= time.Duration(s.source.LoopCount()) {
		// No further frame is due; the timeline stops re-arming once
		// the animation completes.
		return 0
	}
	positionInLoop := elapsed % loopDuration

	// Walk to the first frame boundary past the current position. The
	// boundary of the frame after the last one is the loop duration
	// itself, i.e. the next loop's frame 0.
	var nextBoundary time.Duration
	for i := 0; i < frameCount; i++ {
		nextBoundary += s.source.FrameDuration(i)
		if nextBoundary > positionInLoop {
			break
		}
	}
	return max(nextBoundary-positionInLoop, 0)
}

func (s *dropFramesScheduler) LoopDuration() time.Duration {
	if s.loopDuration < 0 {
		s.loopDuration = 0
		for i := range s.source.FrameCount() {
			s.loopDuration += s.source.FrameDuration(i)
		}
	}
	return s.loopDuration
}

func (s *dropFramesScheduler) IsInfinite() bool {
	return s.source.LoopCount() == LoopCountInfinite
}

// frameNumberWithinLoop finds the frame whose interval contains the given
// loop-relative position. Zero-duration frames never contain a position
// and are skipped; the walk is bounded by the frame count so degenerate
// metadata cannot spin.
func (s *dropFramesScheduler) frameNumberWithinLoop(positionInLoop time.Duration) int {
	frameCount := s.source.FrameCount()
	var boundary time.Duration
	for i := range frameCount {
		boundary += s.source.FrameDuration(i)
		if positionInLoop < boundary {
			return i
		}
	}
	return frameCount - 1
}
