package raster

// Rect represents a rectangular region in pixel coordinates.
type Rect struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions
}

// IsEmpty returns true if the rectangle covers no pixels.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// DrawParams specifies parameters for the Draw operation.
type DrawParams struct {
	// DstRect defines the destination rectangle to draw into, in
	// destination pixel coordinates. The source is resampled to cover it
	// exactly. Parts outside the destination bounds are clipped away
	// without shifting the sampling of the remaining parts.
	DstRect Rect

	// Interp specifies the interpolation mode for resampling.
	Interp InterpolationMode
}

// Draw composites the whole source buffer into the destination rectangle of
// dst using source-over alpha blending on straight-alpha values.
//
// The operation performs the following steps:
//  1. Clip DstRect against the destination bounds
//  2. For each remaining destination pixel, map its center back into
//     normalized source coordinates relative to the unclipped DstRect
//  3. Sample the source using the specified interpolation
//  4. Blend over the destination pixel
//
// The destination buffer is modified in place. Pixels outside the
// destination are discarded, never wrapped.
func Draw(dst, src *Buffer, params DrawParams) {
	place := params.DstRect
	if place.IsEmpty() || src.IsEmpty() {
		return
	}

	dstWidth, dstHeight := dst.Bounds()

	// Clip the placement rectangle against the destination, remembering how
	// many pixels were cut off the left and top edges so that sampling
	// stays aligned with the unclipped placement.
	clipped := place
	cutX, cutY := 0, 0
	if clipped.X < 0 {
		cutX = -clipped.X
		clipped.Width -= cutX
		clipped.X = 0
	}
	if clipped.Y < 0 {
		cutY = -clipped.Y
		clipped.Height -= cutY
		clipped.Y = 0
	}
	if clipped.X+clipped.Width > dstWidth {
		clipped.Width = dstWidth - clipped.X
	}
	if clipped.Y+clipped.Height > dstHeight {
		clipped.Height = dstHeight - clipped.Y
	}
	if clipped.IsEmpty() {
		return
	}

	for dy := 0; dy < clipped.Height; dy++ {
		for dx := 0; dx < clipped.Width; dx++ {
			dstX := clipped.X + dx
			dstY := clipped.Y + dy

			// Normalized position of the pixel center within the
			// unclipped placement rectangle.
			u := (float64(cutX+dx) + 0.5) / float64(place.Width)
			v := (float64(cutY+dy) + 0.5) / float64(place.Height)

			srcR, srcG, srcB, srcA := Sample(src, u, v, params.Interp)
			if srcA == 0 {
				continue
			}

			dstR, dstG, dstB, dstA := dst.GetRGBA(dstX, dstY)
			r, g, b, a := sourceOver(srcR, srcG, srcB, srcA, dstR, dstG, dstB, dstA)
			dst.SetRGBA(dstX, dstY, r, g, b, a)
		}
	}
}

// sourceOver performs standard source-over alpha blending on straight
// (non-premultiplied) values.
func sourceOver(srcR, srcG, srcB, srcA, dstR, dstG, dstB, dstA uint8) (r, g, b, a byte) {
	if srcA == 255 {
		// Fully opaque source, just return source
		return srcR, srcG, srcB, 255
	}

	if dstA == 0 {
		// Transparent destination, just return source
		return srcR, srcG, srcB, srcA
	}

	// Porter-Duff "source over" formula
	// out_a = src_a + dst_a * (1 - src_a)
	// out_c = (src_c * src_a + dst_c * dst_a * (1 - src_a)) / out_a

	srcAlpha := float64(srcA) / 255.0
	dstAlpha := float64(dstA) / 255.0

	outAlpha := srcAlpha + dstAlpha*(1-srcAlpha)

	if outAlpha == 0 {
		return 0, 0, 0, 0
	}

	r = uint8((float64(srcR)*srcAlpha + float64(dstR)*dstAlpha*(1-srcAlpha)) / outAlpha)
	g = uint8((float64(srcG)*srcAlpha + float64(dstG)*dstAlpha*(1-srcAlpha)) / outAlpha)
	b = uint8((float64(srcB)*srcAlpha + float64(dstB)*dstAlpha*(1-srcAlpha)) / outAlpha)
	a = uint8(outAlpha * 255.0)

	return r, g, b, a
}
