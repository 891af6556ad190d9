package raster

import "testing"

func solid(t *testing.T, w, h int, r, g, b, a uint8) *Buffer {
	t.Helper()
	buf, err := New(w, h, FormatRGBA8)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	buf.Fill(r, g, b, a)
	return buf
}

func TestDrawIdentity(t *testing.T) {
	src := solid(t, 2, 2, 255, 0, 0, 255)
	dst, _ := New(4, 4, FormatRGBA8)

	Draw(dst, src, DrawParams{
		DstRect: Rect{X: 1, Y: 1, Width: 2, Height: 2},
		Interp:  InterpNearest,
	})

	for y := 1; y <= 2; y++ {
		for x := 1; x <= 2; x++ {
			r, g, b, a := dst.GetRGBA(x, y)
			if r != 255 || g != 0 || b != 0 || a != 255 {
				t.Errorf("pixel (%d, %d) = (%d, %d, %d, %d), want red", x, y, r, g, b, a)
			}
		}
	}

	corners := [][2]int{{0, 0}, {3, 0}, {0, 3}, {3, 3}}
	for _, c := range corners {
		if _, _, _, a := dst.GetRGBA(c[0], c[1]); a != 0 {
			t.Errorf("corner (%d, %d) touched, want transparent", c[0], c[1])
		}
	}
}

func TestDrawStretch(t *testing.T) {
	// A 1x1 fragment stretched to 4x4 covers the whole destination rect
	src := solid(t, 1, 1, 0, 200, 0, 255)
	dst, _ := New(4, 4, FormatRGBA8)

	Draw(dst, src, DrawParams{
		DstRect: Rect{X: 0, Y: 0, Width: 4, Height: 4},
		Interp:  InterpBilinear,
	})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			_, g, _, a := dst.GetRGBA(x, y)
			if g != 200 || a != 255 {
				t.Errorf("pixel (%d, %d) g,a = %d,%d, want 200,255", x, y, g, a)
			}
		}
	}
}

func TestDrawShrink(t *testing.T) {
	// A 4x4 fragment squeezed into 2x2 still fills exactly that rect
	src := solid(t, 4, 4, 10, 20, 30, 255)
	dst, _ := New(4, 4, FormatRGBA8)

	Draw(dst, src, DrawParams{
		DstRect: Rect{X: 1, Y: 1, Width: 2, Height: 2},
		Interp:  InterpBilinear,
	})

	covered := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if _, _, _, a := dst.GetRGBA(x, y); a != 0 {
				covered++
				if x < 1 || x > 2 || y < 1 || y > 2 {
					t.Errorf("pixel (%d, %d) outside target rect was touched", x, y)
				}
			}
		}
	}
	if covered != 4 {
		t.Errorf("covered pixels = %d, want 4", covered)
	}
}

func TestDrawClipKeepsAlignment(t *testing.T) {
	// Distinct columns: left half red, right half green
	src, _ := New(2, 1, FormatRGBA8)
	src.SetRGBA(0, 0, 255, 0, 0, 255)
	src.SetRGBA(1, 0, 0, 255, 0, 255)

	// Unclipped reference
	ref, _ := New(4, 1, FormatRGBA8)
	Draw(ref, src, DrawParams{
		DstRect: Rect{X: 0, Y: 0, Width: 4, Height: 1},
		Interp:  InterpNearest,
	})

	// Same placement shifted off the left edge: the surviving pixels must
	// show the same colors as the corresponding unclipped pixels
	dst, _ := New(2, 1, FormatRGBA8)
	Draw(dst, src, DrawParams{
		DstRect: Rect{X: -2, Y: 0, Width: 4, Height: 1},
		Interp:  InterpNearest,
	})

	for x := 0; x < 2; x++ {
		wr, wg, wb, wa := ref.GetRGBA(x+2, 0)
		r, g, b, a := dst.GetRGBA(x, 0)
		if r != wr || g != wg || b != wb || a != wa {
			t.Errorf("clipped pixel (%d, 0) = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
				x, r, g, b, a, wr, wg, wb, wa)
		}
	}
}

func TestDrawFullyOffCanvas(t *testing.T) {
	src := solid(t, 2, 2, 255, 0, 0, 255)
	dst, _ := New(4, 4, FormatRGBA8)

	rects := []Rect{
		{X: -10, Y: 0, Width: 2, Height: 2},
		{X: 0, Y: 10, Width: 2, Height: 2},
		{X: 4, Y: 4, Width: 2, Height: 2},
	}
	for _, r := range rects {
		Draw(dst, src, DrawParams{DstRect: r, Interp: InterpNearest})
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if _, _, _, a := dst.GetRGBA(x, y); a != 0 {
				t.Errorf("pixel (%d, %d) touched by off-canvas draw", x, y)
			}
		}
	}
}

func TestDrawEmptyRectNoop(t *testing.T) {
	src := solid(t, 2, 2, 255, 0, 0, 255)
	dst, _ := New(4, 4, FormatRGBA8)

	Draw(dst, src, DrawParams{DstRect: Rect{X: 1, Y: 1, Width: 0, Height: 2}})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if _, _, _, a := dst.GetRGBA(x, y); a != 0 {
				t.Errorf("pixel (%d, %d) touched by empty-rect draw", x, y)
			}
		}
	}
}

func TestSourceOverOpaque(t *testing.T) {
	r, g, b, a := sourceOver(10, 20, 30, 255, 200, 200, 200, 255)
	if r != 10 || g != 20 || b != 30 || a != 255 {
		t.Errorf("opaque over = (%d, %d, %d, %d), want source", r, g, b, a)
	}
}

func TestSourceOverTransparentDst(t *testing.T) {
	r, g, b, a := sourceOver(10, 20, 30, 128, 0, 0, 0, 0)
	if r != 10 || g != 20 || b != 30 || a != 128 {
		t.Errorf("over transparent = (%d, %d, %d, %d), want source untouched", r, g, b, a)
	}
}

func TestSourceOverHalfAlpha(t *testing.T) {
	// 50% white over opaque black: mid gray, still opaque
	r, g, b, a := sourceOver(255, 255, 255, 128, 0, 0, 0, 255)
	if a != 255 {
		t.Errorf("out alpha = %d, want 255", a)
	}
	if r < 126 || r > 130 || r != g || g != b {
		t.Errorf("blend = (%d, %d, %d), want mid gray", r, g, b)
	}
}
