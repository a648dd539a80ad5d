package graphics

// ColorFilterType specifies the algorithm used by a ColorFilter.
type ColorFilterType int

const (
	// ColorFilterTint blends a constant color into the input.
	// Requires the Color and Amount fields to be set.
	ColorFilterTint ColorFilterType = iota

	// ColorFilterMatrix applies a 5x4 color transformation matrix.
	// Requires the Matrix field to be set.
	ColorFilterMatrix
)

// ColorFilter transforms colors as frames pass through the rendering path.
//
// Filters can be chained using the Compose method. When composed, the inner
// filter is applied first, then the outer filter processes the result.
//
// Filter chains must be acyclic. Creating cycles (e.g., setting Inner to
// point back to the same filter) causes infinite recursion. Use the Compose
// method to safely build chains.
type ColorFilter struct {
	// Type specifies the filter algorithm.
	Type ColorFilterType

	// Color is the tint color for ColorFilterTint.
	Color Color

	// Amount is the tint strength for ColorFilterTint, from 0 (no effect)
	// to 1 (fully tinted).
	Amount float64

	// Matrix is a 5x4 color transformation matrix for ColorFilterMatrix.
	// The matrix is stored in row-major order as [R, G, B, A, translate] for
	// each output channel:
	//
	//	R' = Matrix[0]*R + Matrix[1]*G + Matrix[2]*B + Matrix[3]*A + Matrix[4]
	//	G' = Matrix[5]*R + Matrix[6]*G + Matrix[7]*B + Matrix[8]*A + Matrix[9]
	//	B' = Matrix[10]*R + Matrix[11]*G + Matrix[12]*B + Matrix[13]*A + Matrix[14]
	//	A' = Matrix[15]*R + Matrix[16]*G + Matrix[17]*B + Matrix[18]*A + Matrix[19]
	//
	// Input values are in the range [0, 255]. Translation values (indices 4,
	// 9, 14, 19) are added after multiplication.
	Matrix [20]float64

	// Inner is an optional filter to apply before this one.
	// Used for filter composition chains.
	Inner *ColorFilter
}

// TintFilter creates a filter that blends color into the input at the given
// strength (0-1).
func TintFilter(color Color, amount float64) *ColorFilter {
	return &ColorFilter{
		Type:   ColorFilterTint,
		Color:  color,
		Amount: clamp01(amount),
	}
}

// MatrixFilter creates a filter applying a 5x4 color transformation matrix.
func MatrixFilter(matrix [20]float64) *ColorFilter {
	return &ColorFilter{Type: ColorFilterMatrix, Matrix: matrix}
}

// GrayscaleFilter creates a matrix filter converting colors to luminance-
// weighted grayscale.
func GrayscaleFilter() *ColorFilter {
	const lr, lg, lb = 0.2126, 0.7152, 0.0722
	return MatrixFilter([20]float64{
		lr, lg, lb, 0, 0,
		lr, lg, lb, 0, 0,
		lr, lg, lb, 0, 0,
		0, 0, 0, 1, 0,
	})
}

// Compose returns a filter that applies inner first, then f.
func (f *ColorFilter) Compose(inner *ColorFilter) *ColorFilter {
	out := *f
	out.Inner = inner
	return &out
}

// Apply transforms a single color through the filter chain.
func (f *ColorFilter) Apply(c Color) Color {
	if f == nil {
		return c
	}
	if f.Inner != nil {
		c = f.Inner.Apply(c)
	}
	switch f.Type {
	case ColorFilterTint:
		return c.Blend(f.Color, f.Amount)
	case ColorFilterMatrix:
		return f.applyMatrix(c)
	default:
		return c
	}
}

func (f *ColorFilter) applyMatrix(c Color) Color {
	r, g, b, a := c.Components()
	in := [4]float64{float64(r), float64(g), float64(b), float64(a)}
	var out [4]float64
	for row := range out {
		v := f.Matrix[row*5+4]
		for col, x := range in {
			v += f.Matrix[row*5+col] * x
		}
		out[row] = clampByte(v)
	}
	return RGBA8(uint8(out[0]), uint8(out[1]), uint8(out[2]), uint8(out[3]))
}

func clampByte(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
