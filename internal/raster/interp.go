package raster

import "math"

// InterpolationMode defines how source sampling is performed when a fragment
// is resampled into a destination rectangle of a different size.
type InterpolationMode uint8

const (
	// InterpNearest selects the closest pixel (no interpolation).
	// Fast, and the right choice for pixel-art fragments.
	InterpNearest InterpolationMode = iota

	// InterpBilinear performs linear interpolation between 4 neighboring
	// pixels. Good balance between quality and performance.
	InterpBilinear
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

// Sample samples the buffer at normalized coordinates (u, v) using the
// specified interpolation mode. u and v are in the range [0.0, 1.0] where
// (0,0) is top-left and (1,1) is bottom-right. Out-of-bounds coordinates
// are clamped to the edge.
func Sample(src *Buffer, u, v float64, mode InterpolationMode) (r, g, b, a byte) {
	switch mode {
	case InterpNearest:
		return SampleNearest(src, u, v)
	case InterpBilinear:
		return SampleBilinear(src, u, v)
	default:
		return 0, 0, 0, 0
	}
}

// SampleNearest performs nearest-neighbor sampling at normalized
// coordinates (u, v).
func SampleNearest(src *Buffer, u, v float64) (r, g, b, a byte) {
	w, h := src.Bounds()

	// Floor selects the pixel containing the coordinate.
	x := int(math.Floor(u * float64(w)))
	y := int(math.Floor(v * float64(h)))

	x = clamp(x, 0, w-1)
	y = clamp(y, 0, h-1)

	return src.GetRGBA(x, y)
}

// SampleBilinear performs bilinear interpolation at normalized
// coordinates (u, v) between the 4 neighboring pixels.
func SampleBilinear(src *Buffer, u, v float64) (r, g, b, a byte) {
	w, h := src.Bounds()

	// Convert normalized coords to continuous pixel coords.
	// Pixel centers sit at integer coordinates after the 0.5 shift.
	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := x0 + 1
	y1 := y0 + 1

	// Clamp to edge
	x0 = clamp(x0, 0, w-1)
	y0 = clamp(y0, 0, h-1)
	x1 = clamp(x1, 0, w-1)
	y1 = clamp(y1, 0, h-1)

	r00, g00, b00, a00 := src.GetRGBA(x0, y0)
	r10, g10, b10, a10 := src.GetRGBA(x1, y0)
	r01, g01, b01, a01 := src.GetRGBA(x0, y1)
	r11, g11, b11, a11 := src.GetRGBA(x1, y1)

	r = byte(lerp2D(float64(r00), float64(r10), float64(r01), float64(r11), tx, ty))
	g = byte(lerp2D(float64(g00), float64(g10), float64(g01), float64(g11), tx, ty))
	b = byte(lerp2D(float64(b00), float64(b10), float64(b01), float64(b11), tx, ty))
	a = byte(lerp2D(float64(a00), float64(a10), float64(a01), float64(a11), tx, ty))

	return r, g, b, a
}

// clamp clamps an integer value to [minVal, maxVal].
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}
