package paperdoll

// DollID is a stable handle to a doll for the doll's lifetime.
type DollID uint32

// Doll is the top-level composable unit: an ordered stack of slots rendered
// onto one canvas. The slot order is the paint order, first slot
// bottom-most. A doll may carry a background fragment drawn beneath all
// slots.
type Doll struct {
	id DollID

	// Desc is a free-form description for editors. It has no effect on
	// rendering.
	Desc string

	width  int
	height int

	slots []SlotID

	background *FragmentID
	offset     Point
}

// ID returns the doll's handle.
func (d *Doll) ID() DollID {
	return d.id
}

// CanvasSize returns the output dimensions, fixed for the doll's lifetime.
func (d *Doll) CanvasSize() (width, height int) {
	return d.width, d.height
}

// Slots returns a copy of the slot paint order, bottom-most first.
func (d *Doll) Slots() []SlotID {
	out := make([]SlotID, len(d.slots))
	copy(out, d.slots)
	return out
}

// Background returns the background fragment drawn beneath all slots, if
// any.
func (d *Doll) Background() (FragmentID, bool) {
	if d.background == nil {
		return 0, false
	}
	return *d.background, true
}

// Offset returns the placement offset of the background fragment.
func (d *Doll) Offset() Point {
	return d.offset
}

// hasSlot reports whether the slot is part of the paint order.
func (d *Doll) hasSlot(id SlotID) bool {
	for _, s := range d.slots {
		if s == id {
			return true
		}
	}
	return false
}
