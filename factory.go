package paperdoll

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/gogpu/paperdoll/internal/cache"
)

// Factory owns all fragments, slots, and dolls of one model and enforces
// the referential invariants between them: a selected candidate is always a
// valid index, every candidate references a live fragment, and a doll's
// paint order lists live slots without duplicates.
//
// Every editing operation either succeeds completely or returns an error
// and leaves the model unchanged.
//
// Factory does no internal locking. A host that edits from multiple
// goroutines must serialize access itself.
type Factory struct {
	// Meta carries model-level metadata such as the project name.
	Meta Meta

	fragmentIDs *idAllocator
	slotIDs     *idAllocator
	dollIDs     *idAllocator

	fragments map[FragmentID]*Fragment
	slots     map[SlotID]*Slot
	dolls     map[DollID]*Doll

	// version increments on every successful mutation and keys the render
	// cache.
	version uint64

	interp      Interpolation
	renderCache *cache.Cache[renderKey, *Pixmap]
}

// NewFactory creates an empty model.
func NewFactory(opts ...Option) *Factory {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	f := &Factory{
		fragmentIDs: newIDAllocator(),
		slotIDs:     newIDAllocator(),
		dollIDs:     newIDAllocator(),
		fragments:   make(map[FragmentID]*Fragment),
		slots:       make(map[SlotID]*Slot),
		dolls:       make(map[DollID]*Doll),
		interp:      o.interp,
	}
	if o.renderCacheCap > 0 {
		f.renderCache = cache.New[renderKey, *Pixmap](o.renderCacheCap)
	}
	return f
}

// Version returns a counter that increments on every successful mutation.
// Two calls returning the same value bracket an unchanged model.
func (f *Factory) Version() uint64 {
	return f.version
}

func (f *Factory) bump() {
	f.version++
}

// ---- Fragment store ----

// RegisterFragment registers a pixel buffer as a new fragment and returns
// its handle. The buffer is cloned, so later changes to pixels do not leak
// into the model. The pivot is in fragment-local coordinates and may lie
// outside the pixel bounds.
func (f *Factory) RegisterFragment(pixels *Pixmap, pivot Point) (FragmentID, error) {
	if pixels == nil || pixels.Width() <= 0 || pixels.Height() <= 0 {
		return 0, fmt.Errorf("register fragment: %w", ErrInvalidDimensions)
	}

	id, err := f.fragmentIDs.next()
	if err != nil {
		return 0, fmt.Errorf("register fragment: %w", err)
	}

	f.fragments[FragmentID(id)] = &Fragment{
		id:     FragmentID(id),
		pivot:  pivot,
		pixels: pixels.Clone(),
	}
	f.bump()
	return FragmentID(id), nil
}

// Fragment returns the fragment with the given id.
func (f *Factory) Fragment(id FragmentID) (*Fragment, error) {
	frag, ok := f.fragments[id]
	if !ok {
		return nil, fmt.Errorf("fragment %d: %w", id, ErrNotFound)
	}
	return frag, nil
}

// Fragments returns all fragment ids in ascending order.
func (f *Factory) Fragments() []FragmentID {
	return slices.Sorted(maps.Keys(f.fragments))
}

// SetPivot moves the pivot point of a fragment.
func (f *Factory) SetPivot(id FragmentID, pivot Point) error {
	frag, ok := f.fragments[id]
	if !ok {
		return fmt.Errorf("set pivot: fragment %d: %w", id, ErrNotFound)
	}
	frag.pivot = pivot
	f.bump()
	return nil
}

// RemoveFragment removes a fragment and cascades: every candidate
// referencing it is deleted from its slot, selections pointing at deleted
// candidates become empty, and doll backgrounds referencing it are cleared.
// The consistency pass runs synchronously inside the removal, so the model
// is valid as soon as RemoveFragment returns.
func (f *Factory) RemoveFragment(id FragmentID) error {
	if _, ok := f.fragments[id]; !ok {
		return fmt.Errorf("remove fragment %d: %w", id, ErrNotFound)
	}

	delete(f.fragments, id)
	f.fragmentIDs.release(uint32(id))

	for _, slot := range f.slots {
		kept := slot.candidates[:0]
		selected := slot.selected
		for i, c := range slot.candidates {
			if c.Fragment == id {
				switch {
				case slot.selected == i:
					selected = SelectionEmpty
					Logger().Warn("selection invalidated by fragment removal",
						slog.Uint64("slot", uint64(slot.id)),
						slog.Uint64("fragment", uint64(id)))
				case slot.selected > i && selected != SelectionEmpty:
					selected--
				}
				continue
			}
			kept = append(kept, c)
		}
		slot.candidates = kept
		slot.selected = selected
	}

	for _, doll := range f.dolls {
		if doll.background != nil && *doll.background == id {
			doll.background = nil
			Logger().Warn("background cleared by fragment removal",
				slog.Uint64("doll", uint64(doll.id)),
				slog.Uint64("fragment", uint64(id)))
		}
	}

	f.bump()
	return nil
}

// ---- Slot model ----

// CreateSlot creates a slot with the given anchor point and region
// rectangle. The anchor is meaningful for anchored candidates, the region
// for constrained ones; either may be zero when unused.
func (f *Factory) CreateSlot(anchor Point, region Rect) (SlotID, error) {
	id, err := f.slotIDs.next()
	if err != nil {
		return 0, fmt.Errorf("create slot: %w", err)
	}

	f.slots[SlotID(id)] = &Slot{
		id:       SlotID(id),
		anchor:   anchor,
		region:   region,
		selected: SelectionEmpty,
	}
	f.bump()
	return SlotID(id), nil
}

// Slot returns the slot with the given id.
func (f *Factory) Slot(id SlotID) (*Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, fmt.Errorf("slot %d: %w", id, ErrNotFound)
	}
	return slot, nil
}

// Slots returns all slot ids in ascending order.
func (f *Factory) Slots() []SlotID {
	return slices.Sorted(maps.Keys(f.slots))
}

// SetSlotAnchor moves the slot's anchor point.
func (f *Factory) SetSlotAnchor(id SlotID, anchor Point) error {
	slot, ok := f.slots[id]
	if !ok {
		return fmt.Errorf("set anchor: slot %d: %w", id, ErrNotFound)
	}
	slot.anchor = anchor
	f.bump()
	return nil
}

// SetSlotRegion moves or resizes the slot's region rectangle.
func (f *Factory) SetSlotRegion(id SlotID, region Rect) error {
	slot, ok := f.slots[id]
	if !ok {
		return fmt.Errorf("set region: slot %d: %w", id, ErrNotFound)
	}
	slot.region = region
	f.bump()
	return nil
}

// SetSlotRequired marks or unmarks the slot as required. Rendering a doll
// with an empty required slot fails with ErrRequiredEmpty.
func (f *Factory) SetSlotRequired(id SlotID, required bool) error {
	slot, ok := f.slots[id]
	if !ok {
		return fmt.Errorf("set required: slot %d: %w", id, ErrNotFound)
	}
	slot.required = required
	f.bump()
	return nil
}

// AddCandidate appends a (fragment, mode) candidate to the slot and returns
// its index in the candidate list.
func (f *Factory) AddCandidate(slotID SlotID, fragmentID FragmentID, mode PlacementMode) (int, error) {
	slot, ok := f.slots[slotID]
	if !ok {
		return 0, fmt.Errorf("add candidate: slot %d: %w", slotID, ErrNotFound)
	}
	if _, ok := f.fragments[fragmentID]; !ok {
		return 0, fmt.Errorf("add candidate: fragment %d: %w", fragmentID, ErrNotFound)
	}

	slot.candidates = append(slot.candidates, Candidate{Fragment: fragmentID, Mode: mode})
	f.bump()
	return len(slot.candidates) - 1, nil
}

// RemoveCandidate removes the candidate at index. Indices of subsequent
// candidates shift down by one; callers holding indices must re-resolve by
// value. If the removed candidate was selected, the slot becomes empty.
func (f *Factory) RemoveCandidate(slotID SlotID, index int) error {
	slot, ok := f.slots[slotID]
	if !ok {
		return fmt.Errorf("remove candidate: slot %d: %w", slotID, ErrNotFound)
	}
	if index < 0 || index >= len(slot.candidates) {
		return fmt.Errorf("remove candidate: slot %d index %d: %w", slotID, index, ErrOutOfRange)
	}

	slot.candidates = append(slot.candidates[:index], slot.candidates[index+1:]...)
	switch {
	case slot.selected == index:
		slot.selected = SelectionEmpty
	case slot.selected > index:
		slot.selected--
	}
	f.bump()
	return nil
}

// Select sets the slot's selection to the candidate at index, or empties
// the slot when index is SelectionEmpty.
func (f *Factory) Select(slotID SlotID, index int) error {
	slot, ok := f.slots[slotID]
	if !ok {
		return fmt.Errorf("select: slot %d: %w", slotID, ErrNotFound)
	}
	if index != SelectionEmpty && (index < 0 || index >= len(slot.candidates)) {
		return fmt.Errorf("select: slot %d index %d: %w", slotID, index, ErrOutOfRange)
	}

	slot.selected = index
	f.bump()
	return nil
}

// CandidateCount returns the number of candidates in the slot.
func (f *Factory) CandidateCount(slotID SlotID) (int, error) {
	slot, ok := f.slots[slotID]
	if !ok {
		return 0, fmt.Errorf("candidate count: slot %d: %w", slotID, ErrNotFound)
	}
	return len(slot.candidates), nil
}

// DestroySlot removes a slot from the model and detaches it from the paint
// order of every doll that lists it.
func (f *Factory) DestroySlot(id SlotID) error {
	if _, ok := f.slots[id]; !ok {
		return fmt.Errorf("destroy slot %d: %w", id, ErrNotFound)
	}

	delete(f.slots, id)
	f.slotIDs.release(uint32(id))

	for _, doll := range f.dolls {
		if i := slices.Index(doll.slots, id); i >= 0 {
			doll.slots = append(doll.slots[:i], doll.slots[i+1:]...)
		}
	}

	f.bump()
	return nil
}

// ---- Doll model ----

// CreateDoll creates an empty doll with the given canvas size. The canvas
// size is fixed for the doll's lifetime.
func (f *Factory) CreateDoll(width, height int) (DollID, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("create doll: %w", ErrInvalidDimensions)
	}

	id, err := f.dollIDs.next()
	if err != nil {
		return 0, fmt.Errorf("create doll: %w", err)
	}

	f.dolls[DollID(id)] = &Doll{
		id:     DollID(id),
		width:  width,
		height: height,
	}
	f.bump()
	return DollID(id), nil
}

// Doll returns the doll with the given id.
func (f *Factory) Doll(id DollID) (*Doll, error) {
	doll, ok := f.dolls[id]
	if !ok {
		return nil, fmt.Errorf("doll %d: %w", id, ErrNotFound)
	}
	return doll, nil
}

// Dolls returns all doll ids in ascending order.
func (f *Factory) Dolls() []DollID {
	return slices.Sorted(maps.Keys(f.dolls))
}

// RemoveDoll removes a doll and destroys the slots it lists. Fragments are
// independently owned and are never destroyed by doll removal.
func (f *Factory) RemoveDoll(id DollID) error {
	doll, ok := f.dolls[id]
	if !ok {
		return fmt.Errorf("remove doll %d: %w", id, ErrNotFound)
	}

	delete(f.dolls, id)
	f.dollIDs.release(uint32(id))

	for _, slotID := range slices.Clone(doll.slots) {
		// Slots may already be gone if shared and destroyed elsewhere.
		_ = f.DestroySlot(slotID)
	}

	f.bump()
	return nil
}

// AddSlot appends a slot to the doll's paint order, making it the top-most
// layer.
func (f *Factory) AddSlot(dollID DollID, slotID SlotID) error {
	doll, ok := f.dolls[dollID]
	if !ok {
		return fmt.Errorf("add slot: doll %d: %w", dollID, ErrNotFound)
	}
	if _, ok := f.slots[slotID]; !ok {
		return fmt.Errorf("add slot: slot %d: %w", slotID, ErrNotFound)
	}
	if doll.hasSlot(slotID) {
		return fmt.Errorf("add slot: doll %d slot %d: %w", dollID, slotID, ErrDuplicate)
	}

	doll.slots = append(doll.slots, slotID)
	f.bump()
	return nil
}

// RemoveSlot detaches a slot from the doll's paint order. The slot itself
// survives; use DestroySlot to remove it from the model.
func (f *Factory) RemoveSlot(dollID DollID, slotID SlotID) error {
	doll, ok := f.dolls[dollID]
	if !ok {
		return fmt.Errorf("remove slot: doll %d: %w", dollID, ErrNotFound)
	}
	i := slices.Index(doll.slots, slotID)
	if i < 0 {
		return fmt.Errorf("remove slot: doll %d slot %d: %w", dollID, slotID, ErrNotFound)
	}

	doll.slots = append(doll.slots[:i], doll.slots[i+1:]...)
	f.bump()
	return nil
}

// ReorderSlot moves a slot to a new position in the doll's paint order.
// Position 0 is bottom-most.
func (f *Factory) ReorderSlot(dollID DollID, slotID SlotID, newPos int) error {
	doll, ok := f.dolls[dollID]
	if !ok {
		return fmt.Errorf("reorder slot: doll %d: %w", dollID, ErrNotFound)
	}
	i := slices.Index(doll.slots, slotID)
	if i < 0 {
		return fmt.Errorf("reorder slot: doll %d slot %d: %w", dollID, slotID, ErrNotFound)
	}
	if newPos < 0 || newPos >= len(doll.slots) {
		return fmt.Errorf("reorder slot: doll %d position %d: %w", dollID, newPos, ErrOutOfRange)
	}

	doll.slots = append(doll.slots[:i], doll.slots[i+1:]...)
	doll.slots = slices.Insert(doll.slots, newPos, slotID)
	f.bump()
	return nil
}

// SetBackground sets the doll's background fragment, drawn beneath all
// slots at the doll's offset.
func (f *Factory) SetBackground(dollID DollID, fragmentID FragmentID) error {
	doll, ok := f.dolls[dollID]
	if !ok {
		return fmt.Errorf("set background: doll %d: %w", dollID, ErrNotFound)
	}
	if _, ok := f.fragments[fragmentID]; !ok {
		return fmt.Errorf("set background: fragment %d: %w", fragmentID, ErrNotFound)
	}

	id := fragmentID
	doll.background = &id
	f.bump()
	return nil
}

// ClearBackground removes the doll's background fragment.
func (f *Factory) ClearBackground(dollID DollID) error {
	doll, ok := f.dolls[dollID]
	if !ok {
		return fmt.Errorf("clear background: doll %d: %w", dollID, ErrNotFound)
	}

	doll.background = nil
	f.bump()
	return nil
}

// SetDollOffset sets the placement offset of the doll's background.
func (f *Factory) SetDollOffset(dollID DollID, offset Point) error {
	doll, ok := f.dolls[dollID]
	if !ok {
		return fmt.Errorf("set offset: doll %d: %w", dollID, ErrNotFound)
	}

	doll.offset = offset
	f.bump()
	return nil
}
