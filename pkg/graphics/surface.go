package graphics

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Surface is a pixel target that animation frames are rendered into.
//
// The frame source decides how to fill the surface; the surface only owns
// the pixel storage and basic raster operations.
type Surface interface {
	// Bounds returns the drawable area in pixel coordinates.
	Bounds() Rect

	// Image exposes the backing pixels for direct drawing.
	Image() *image.RGBA
}

// ImageSurface is an in-memory Surface backed by an RGBA image.
type ImageSurface struct {
	img *image.RGBA
}

// NewImageSurface creates a surface with the given pixel dimensions.
// Dimensions are clamped to a minimum of 1x1.
func NewImageSurface(width, height int) *ImageSurface {
	width = max(width, 1)
	height = max(height, 1)
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Bounds returns the drawable area.
func (s *ImageSurface) Bounds() Rect {
	b := s.img.Bounds()
	return RectFromLTWH(0, 0, float64(b.Dx()), float64(b.Dy()))
}

// Image returns the backing image.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Fill sets every pixel to c.
func (s *ImageSurface) Fill(c Color) {
	r, g, b, a := c.Components()
	xdraw.Draw(s.img, s.img.Bounds(),
		image.NewUniform(color.RGBA{R: r, G: g, B: b, A: a}),
		image.Point{}, xdraw.Src)
}

// DrawScaled scales src to cover dst's pixel area inside a surface.
// Uses approximate bi-linear interpolation, which is a reasonable
// quality/cost tradeoff for animation frames redrawn every tick.
func DrawScaled(dst *image.RGBA, dstRect Rect, src image.Image) {
	target := image.Rect(
		int(dstRect.Left), int(dstRect.Top),
		int(dstRect.Right), int(dstRect.Bottom),
	)
	xdraw.ApproxBiLinear.Scale(dst, target, src, src.Bounds(), xdraw.Over, nil)
}

// ApplyColorFilter runs every pixel of img through the filter chain.
// A nil filter leaves the image untouched.
func ApplyColorFilter(img *image.RGBA, filter *ColorFilter) {
	if filter == nil {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		offset := img.PixOffset(b.Min.X, y)
		row := img.Pix[offset : offset+b.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			c := RGBA8(row[x], row[x+1], row[x+2], row[x+3])
			fr, fg, fb, fa := filter.Apply(c).Components()
			row[x], row[x+1], row[x+2], row[x+3] = fr, fg, fb, fa
		}
	}
}

// ApplyAlpha multiplies every pixel by a (0-1). All four channels are
// scaled, keeping the image's alpha premultiplication valid.
func ApplyAlpha(img *image.RGBA, a float64) {
	a = clamp01(a)
	if a == 1 {
		return
	}
	for i := 0; i < len(img.Pix); i++ {
		img.Pix[i] = uint8(float64(img.Pix[i]) * a)
	}
}
