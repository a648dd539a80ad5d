package sources

import (
	"fmt"
	"image"
	"time"

	"github.com/go-drift/frameclock/pkg/animation"
	"github.com/go-drift/frameclock/pkg/errors"
	"github.com/go-drift/frameclock/pkg/graphics"
)

// Frames is an animation.Source backed by pre-rendered images with
// per-frame durations, the shape produced by decoding an animated image
// format upstream. Frames are scaled to the target bounds when rendered.
type Frames struct {
	renderProps

	frames    []image.Image
	durations []time.Duration
	loopCount int
}

var _ animation.Source = (*Frames)(nil)

// NewFrames creates a source over pre-rendered frames. durations must
// have one entry per frame; loopCount is the number of loops to play
// (animation.LoopCountInfinite for endless).
func NewFrames(frames []image.Image, durations []time.Duration, loopCount int) (*Frames, error) {
	if len(frames) == 0 {
		return nil, errors.E("sources.NewFrames", errors.KindSource,
			fmt.Errorf("no frames"))
	}
	if len(durations) != len(frames) {
		return nil, errors.E("sources.NewFrames", errors.KindSource,
			fmt.Errorf("%d durations for %d frames", len(durations), len(frames)))
	}
	for i, d := range durations {
		if d < 0 {
			return nil, errors.E("sources.NewFrames", errors.KindSource,
				fmt.Errorf("frame %d has negative duration %v", i, d))
		}
	}
	if loopCount < 0 {
		return nil, errors.E("sources.NewFrames", errors.KindSource,
			fmt.Errorf("negative loop count %d", loopCount))
	}
	return &Frames{
		renderProps: newRenderProps(),
		frames:      frames,
		durations:   durations,
		loopCount:   loopCount,
	}, nil
}

// FrameCount returns the number of frames in one loop.
func (f *Frames) FrameCount() int { return len(f.frames) }

// FrameDuration returns the duration of the given frame, or 0 for
// out-of-range indices.
func (f *Frames) FrameDuration(index int) time.Duration {
	if index < 0 || index >= len(f.durations) {
		return 0
	}
	return f.durations[index]
}

// LoopCount returns the configured loop count.
func (f *Frames) LoopCount() int { return f.loopCount }

// RenderFrame scales the frame into the target area and applies the
// configured color filter and alpha. It reports false for out-of-range
// frames or a nil surface.
func (f *Frames) RenderFrame(surface graphics.Surface, index int) bool {
	if surface == nil || index < 0 || index >= len(f.frames) {
		return false
	}
	target := f.targetRect(surface)
	if target.IsEmpty() {
		return false
	}

	img := surface.Image()
	graphics.DrawScaled(img, target, f.frames[index])
	graphics.ApplyColorFilter(img, f.filter)
	graphics.ApplyAlpha(img, f.alpha)
	return true
}
