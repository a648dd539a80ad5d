package animation

import (
	"time"

	"github.com/go-drift/frameclock/pkg/graphics"
)

// LoopCountInfinite is the loop count reported by sources that repeat
// forever.
const LoopCountInfinite = 0

// Source produces the frames of an animation and reports their timing
// metadata. It is the pixel-producing side of the system; the timeline
// and scheduler only consume its metadata and ask it to render.
//
// Frame metadata must be stable for the lifetime of the source: the
// scheduler caches the loop duration derived from it.
type Source interface {
	// FrameCount returns the number of frames in one loop.
	FrameCount() int

	// FrameDuration returns the nominal display duration of a frame.
	// Zero-duration frames are legal and are skipped over by the
	// scheduler.
	FrameDuration(index int) time.Duration

	// LoopCount returns the number of loops to play, or
	// LoopCountInfinite for an endless animation.
	LoopCount() int

	// RenderFrame draws the given frame into the surface. It reports
	// false when the frame could not be produced in time, in which
	// case the timeline counts it as dropped and moves on.
	RenderFrame(surface graphics.Surface, index int) bool

	// SetBounds tells the source the area it will be rendered into.
	SetBounds(bounds graphics.Rect)

	// SetAlpha sets the global opacity (0-1) applied to rendered frames.
	SetAlpha(alpha float64)

	// SetColorFilter sets the color filter applied to rendered frames.
	// A nil filter clears it.
	SetColorFilter(filter *graphics.ColorFilter)
}
