// Package sources provides ready-made animation.Source implementations:
// a procedural gradient animation and a pre-rendered frame sequence.
package sources

import (
	"github.com/go-drift/frameclock/pkg/graphics"
)

// renderProps holds the bounds/alpha/filter state shared by all sources
// in this package.
type renderProps struct {
	bounds    graphics.Rect
	hasBounds bool
	alpha     float64
	filter    *graphics.ColorFilter
}

func newRenderProps() renderProps {
	return renderProps{alpha: 1}
}

// SetBounds sets the area frames are rendered into.
func (p *renderProps) SetBounds(bounds graphics.Rect) {
	p.bounds = bounds
	p.hasBounds = !bounds.IsEmpty()
}

// SetAlpha sets the opacity (0-1) applied to rendered frames.
func (p *renderProps) SetAlpha(alpha float64) {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	p.alpha = alpha
}

// SetColorFilter sets the color filter applied to rendered frames.
func (p *renderProps) SetColorFilter(filter *graphics.ColorFilter) {
	p.filter = filter
}

// targetRect returns the area to draw into: the configured bounds if set,
// otherwise the whole surface.
func (p *renderProps) targetRect(surface graphics.Surface) graphics.Rect {
	if p.hasBounds {
		return p.bounds
	}
	return surface.Bounds()
}
