package sources

import (
	"fmt"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/go-drift/frameclock/pkg/animation"
	"github.com/go-drift/frameclock/pkg/errors"
	"github.com/go-drift/frameclock/pkg/graphics"
)

// Gradient is a procedural animation.Source that sweeps a color gradient
// across the surface, one phase step per frame. It needs no decoded
// assets, which makes it useful for demos and for exercising timelines
// in tests and benchmarks.
type Gradient struct {
	renderProps

	stops     []graphics.Color
	durations []time.Duration
	loopCount int
	motion    animation.Curve
}

var _ animation.Source = (*Gradient)(nil)

// NewGradient creates a gradient source cycling through stops. The
// animation has frameCount frames of uniform frameDuration and plays
// loopCount loops (animation.LoopCountInfinite for endless).
func NewGradient(stops []graphics.Color, frameCount int, frameDuration time.Duration, loopCount int) (*Gradient, error) {
	if frameCount <= 0 {
		return nil, errors.E("sources.NewGradient", errors.KindSource,
			fmt.Errorf("frame count must be positive, got %d", frameCount))
	}
	if frameDuration < 0 {
		return nil, errors.E("sources.NewGradient", errors.KindSource,
			fmt.Errorf("negative frame duration %v", frameDuration))
	}
	durations := make([]time.Duration, frameCount)
	for i := range durations {
		durations[i] = frameDuration
	}
	return NewGradientWithDurations(stops, durations, loopCount)
}

// NewGradientWithDurations creates a gradient source with explicit
// per-frame durations.
func NewGradientWithDurations(stops []graphics.Color, durations []time.Duration, loopCount int) (*Gradient, error) {
	if len(stops) < 2 {
		return nil, errors.E("sources.NewGradient", errors.KindSource,
			fmt.Errorf("need at least 2 gradient stops, got %d", len(stops)))
	}
	if len(durations) == 0 {
		return nil, errors.E("sources.NewGradient", errors.KindSource,
			fmt.Errorf("no frame durations"))
	}
	for i, d := range durations {
		if d < 0 {
			return nil, errors.E("sources.NewGradient", errors.KindSource,
				fmt.Errorf("frame %d has negative duration %v", i, d))
		}
	}
	if loopCount < 0 {
		return nil, errors.E("sources.NewGradient", errors.KindSource,
			fmt.Errorf("negative loop count %d", loopCount))
	}
	return &Gradient{
		renderProps: newRenderProps(),
		stops:       stops,
		durations:   durations,
		loopCount:   loopCount,
		motion:      animation.LinearCurve,
	}, nil
}

// SetMotion sets the easing curve that shapes how the gradient phase
// advances from frame to frame. Nil restores linear motion.
func (g *Gradient) SetMotion(curve animation.Curve) {
	if curve == nil {
		curve = animation.LinearCurve
	}
	g.motion = curve
}

// FrameCount returns the number of frames in one loop.
func (g *Gradient) FrameCount() int { return len(g.durations) }

// FrameDuration returns the duration of the given frame, or 0 for
// out-of-range indices.
func (g *Gradient) FrameDuration(index int) time.Duration {
	if index < 0 || index >= len(g.durations) {
		return 0
	}
	return g.durations[index]
}

// LoopCount returns the configured loop count.
func (g *Gradient) LoopCount() int { return g.loopCount }

// RenderFrame fills the target area with the gradient at the frame's
// phase. It reports false for out-of-range frames or a nil surface.
func (g *Gradient) RenderFrame(surface graphics.Surface, index int) bool {
	if surface == nil || index < 0 || index >= len(g.durations) {
		return false
	}

	img := surface.Image()
	target := g.targetRect(surface)
	left, top := int(target.Left), int(target.Top)
	right, bottom := int(target.Right), int(target.Bottom)
	width := right - left
	if width <= 0 || bottom <= top {
		return false
	}

	progress := float64(index) / float64(len(g.durations))
	phase := g.motion(progress)

	// One pass per column: the gradient varies horizontally and scrolls
	// with the frame phase.
	for x := left; x < right; x++ {
		t := math.Mod(phase+float64(x-left)/float64(width), 1)
		c := g.colorAt(t)
		if g.filter != nil {
			c = g.filter.Apply(c)
		}
		c = c.WithAlpha(c.Alpha() * g.alpha)
		r, gc, b, a := c.Components()
		if a != 255 {
			// image.RGBA stores premultiplied alpha.
			r = uint8(uint32(r) * uint32(a) / 255)
			gc = uint8(uint32(gc) * uint32(a) / 255)
			b = uint8(uint32(b) * uint32(a) / 255)
		}
		for y := top; y < bottom; y++ {
			i := img.PixOffset(x, y)
			if i < 0 || i+3 >= len(img.Pix) {
				continue
			}
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, gc, b, a
		}
	}
	return true
}

// colorAt samples the stop cycle at t in [0, 1), blending adjacent stops
// in HCL space.
func (g *Gradient) colorAt(t float64) graphics.Color {
	scaled := t * float64(len(g.stops))
	i := int(scaled) % len(g.stops)
	next := (i + 1) % len(g.stops)
	frac := scaled - math.Floor(scaled)
	blended := g.stops[i].Colorful().BlendHcl(g.stops[next].Colorful(), frac)
	return graphics.FromColorful(blended.Clamped())
}

// Stops returns the configured gradient stops.
func (g *Gradient) Stops() []graphics.Color { return g.stops }

// HCLStop builds a gradient stop from HCL coordinates, which keeps
// perceived lightness even across the sweep.
func HCLStop(h, c, l float64) graphics.Color {
	return graphics.FromColorful(colorful.Hcl(h, c, l).Clamped())
}
