package paperdoll

// SlotID is a stable handle to a slot for the slot's lifetime.
type SlotID uint32

// PlacementMode determines how a candidate fragment is placed into a slot.
type PlacementMode uint8

const (
	// Anchored places the fragment so that its pivot point lands exactly on
	// the slot's anchor point. The fragment keeps its native size; resizing
	// never happens.
	Anchored PlacementMode = iota

	// Constrained treats the fragment as the background of the slot: it is
	// resampled to fill the slot's region exactly, stretching width and
	// height independently.
	Constrained
)

// String returns a string representation of the placement mode.
func (m PlacementMode) String() string {
	switch m {
	case Anchored:
		return "Anchored"
	case Constrained:
		return "Constrained"
	default:
		return "Unknown"
	}
}

// Candidate pairs a fragment with the placement mode used when the fragment
// is selected into the slot.
type Candidate struct {
	Fragment FragmentID
	Mode     PlacementMode
}

// SelectionEmpty marks a slot with no selected candidate. An empty slot
// contributes nothing to the rendered output.
const SelectionEmpty = -1

// Slot is a position inside a doll where alternative fragments can appear.
// A slot holds an ordered candidate list and at most one selection. The
// candidate order is display order for pickers; it does not affect
// rendering.
type Slot struct {
	id SlotID

	// Desc is a free-form description for editors. It has no effect on
	// rendering.
	Desc string

	anchor   Point
	region   Rect
	required bool

	candidates []Candidate
	selected   int
}

// ID returns the slot's handle.
func (s *Slot) ID() SlotID {
	return s.id
}

// Anchor returns the alignment target for anchored candidates, in doll
// coordinates.
func (s *Slot) Anchor() Point {
	return s.anchor
}

// Region returns the fill rectangle for constrained candidates, in doll
// coordinates.
func (s *Slot) Region() Rect {
	return s.region
}

// Required reports whether rendering fails when this slot is empty.
func (s *Slot) Required() bool {
	return s.required
}

// Candidates returns a copy of the candidate list.
func (s *Slot) Candidates() []Candidate {
	out := make([]Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Selected returns the index of the selected candidate, or SelectionEmpty.
// A returned index is always valid for the current candidate list.
func (s *Slot) Selected() int {
	return s.selected
}
