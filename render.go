package paperdoll

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/paperdoll/internal/raster"
)

// renderKey identifies a cached canvas. The version component makes every
// model edit a natural cache invalidation.
type renderKey struct {
	doll    DollID
	version uint64
}

// Render flattens the doll's current selection state into a single canvas
// of the doll's size. Slots are painted back-to-front in paint order; empty
// slots contribute nothing. The output is a pure function of model state:
// identical state yields a byte-identical buffer.
//
// Render fails with ErrDanglingReference if a selected candidate references
// a fragment that no longer exists, and with ErrRequiredEmpty if a required
// slot is empty. On error no buffer is returned; rendering never emits a
// partial canvas.
func (f *Factory) Render(dollID DollID) (*Pixmap, error) {
	doll, ok := f.dolls[dollID]
	if !ok {
		return nil, fmt.Errorf("render: doll %d: %w", dollID, ErrNotFound)
	}

	if f.renderCache != nil {
		key := renderKey{doll: dollID, version: f.version}
		if cached, hit := f.renderCache.Get(key); hit {
			return cached.Clone(), nil
		}

		out, err := f.render(doll, nil)
		if err != nil {
			return nil, err
		}
		f.renderCache.Set(key, out.Clone())
		return out, nil
	}

	return f.render(doll, nil)
}

// RenderPaperdoll flattens a doll under the selection overrides of a
// Paperdoll snapshot without touching the slots' stored selections. Slots
// absent from the snapshot fall back to their stored selection.
func (f *Factory) RenderPaperdoll(p Paperdoll) (*Pixmap, error) {
	doll, ok := f.dolls[p.Doll]
	if !ok {
		return nil, fmt.Errorf("render: doll %d: %w", p.Doll, ErrNotFound)
	}
	return f.render(doll, p.Selection)
}

// render performs the flattening pass. overrides may be nil.
func (f *Factory) render(doll *Doll, overrides map[SlotID]int) (*Pixmap, error) {
	canvas := NewPixmap(doll.width, doll.height)
	dst, err := raster.FromRaw(canvas.Data(), doll.width, doll.height,
		raster.FormatRGBA8, doll.width*4)
	if err != nil {
		return nil, fmt.Errorf("render: doll %d canvas: %w", doll.id, err)
	}

	pieces := 0

	if bg, ok := doll.Background(); ok {
		frag, found := f.fragments[bg]
		if !found {
			return nil, fmt.Errorf("render: doll %d background fragment %d: %w",
				doll.id, bg, ErrDanglingReference)
		}
		f.drawAnchored(dst, frag, doll.offset)
		pieces++
	}

	for _, slotID := range doll.slots {
		slot, found := f.slots[slotID]
		if !found {
			return nil, fmt.Errorf("render: doll %d slot %d: %w",
				doll.id, slotID, ErrDanglingReference)
		}

		selected := slot.selected
		if idx, ok := overrides[slotID]; ok {
			if idx != SelectionEmpty && (idx < 0 || idx >= len(slot.candidates)) {
				return nil, fmt.Errorf("render: slot %d index %d: %w",
					slotID, idx, ErrOutOfRange)
			}
			selected = idx
		}

		if selected == SelectionEmpty {
			if slot.required {
				return nil, fmt.Errorf("render: slot %d: %w", slotID, ErrRequiredEmpty)
			}
			continue
		}

		candidate := slot.candidates[selected]
		frag, found := f.fragments[candidate.Fragment]
		if !found {
			return nil, fmt.Errorf("render: slot %d fragment %d: %w",
				slotID, candidate.Fragment, ErrDanglingReference)
		}

		switch candidate.Mode {
		case Constrained:
			f.drawConstrained(dst, frag, slot.region)
		case Anchored:
			f.drawAnchored(dst, frag, slot.anchor)
		}
		pieces++
	}

	Logger().Debug("rendered doll",
		slog.Uint64("doll", uint64(doll.id)),
		slog.Int("width", doll.width),
		slog.Int("height", doll.height),
		slog.Int("pieces", pieces))

	return canvas, nil
}

// drawConstrained resamples the fragment to fill the region exactly. Width
// and height stretch independently; aspect ratio is not preserved.
func (f *Factory) drawConstrained(dst *raster.Buffer, frag *Fragment, region Rect) {
	raster.Draw(dst, fragmentBuffer(frag), raster.DrawParams{
		DstRect: raster.Rect{
			X:      roundCoord(region.X),
			Y:      roundCoord(region.Y),
			Width:  roundCoord(region.Width),
			Height: roundCoord(region.Height),
		},
		Interp: f.interp,
	})
}

// drawAnchored places the fragment at native size so that its pivot lands
// on the anchor point.
func (f *Factory) drawAnchored(dst *raster.Buffer, frag *Fragment, anchor Point) {
	topLeft := anchor.Sub(frag.pivot)
	w, h := frag.Size()

	raster.Draw(dst, fragmentBuffer(frag), raster.DrawParams{
		DstRect: raster.Rect{
			X:      roundCoord(topLeft.X),
			Y:      roundCoord(topLeft.Y),
			Width:  w,
			Height: h,
		},
		// Unscaled placement copies pixels one-to-one; nearest sampling is
		// exact here.
		Interp: raster.InterpNearest,
	})
}

// fragmentBuffer wraps a fragment's pixmap as a raster buffer without
// copying. The buffer is read-only during rendering.
func fragmentBuffer(frag *Fragment) *raster.Buffer {
	w, h := frag.Size()
	// Pixmap data always satisfies the buffer contract.
	buf, _ := raster.FromRaw(frag.pixels.Data(), w, h, raster.FormatRGBA8, w*4)
	return buf
}

// roundCoord rounds a continuous coordinate to a pixel index, half away
// from zero.
func roundCoord(v float64) int {
	return int(math.Round(v))
}
