package paperdoll

import "fmt"

// Paperdoll is an immutable snapshot of one way to assemble a doll: a doll
// id plus candidate selections per slot. Rendering a Paperdoll does not
// touch the selections stored in the slots, so hosts can preview or export
// combinations without mutating the model.
type Paperdoll struct {
	// Doll is the doll to assemble.
	Doll DollID

	// Selection maps slot ids to candidate indices. Slots absent from the
	// map fall back to their stored selection; SelectionEmpty forces a slot
	// empty.
	Selection map[SlotID]int
}

// Builder assembles a Paperdoll snapshot, validating ids and indices
// against the factory as they are set. The first failure sticks and is
// reported by Build.
//
// Example:
//
//	pd, err := f.Builder().
//	    Doll(face).
//	    Set(eyes, 1).
//	    Set(hair, paperdoll.SelectionEmpty).
//	    Build()
type Builder struct {
	f         *Factory
	doll      DollID
	selection map[SlotID]int
	err       error
}

// Builder returns a Paperdoll builder bound to this factory.
func (f *Factory) Builder() *Builder {
	return &Builder{
		f:         f,
		selection: make(map[SlotID]int),
	}
}

// Doll sets the doll to assemble.
func (b *Builder) Doll(id DollID) *Builder {
	if b.err != nil {
		return b
	}
	if _, ok := b.f.dolls[id]; !ok {
		b.err = fmt.Errorf("builder: doll %d: %w", id, ErrNotFound)
		return b
	}
	b.doll = id
	return b
}

// Set selects the candidate at index for the slot, or SelectionEmpty to
// force the slot empty.
func (b *Builder) Set(slotID SlotID, index int) *Builder {
	if b.err != nil {
		return b
	}
	slot, ok := b.f.slots[slotID]
	if !ok {
		b.err = fmt.Errorf("builder: slot %d: %w", slotID, ErrNotFound)
		return b
	}
	if index != SelectionEmpty && (index < 0 || index >= len(slot.candidates)) {
		b.err = fmt.Errorf("builder: slot %d index %d: %w", slotID, index, ErrOutOfRange)
		return b
	}
	b.selection[slotID] = index
	return b
}

// Build returns the assembled snapshot, or the first error encountered.
func (b *Builder) Build() (Paperdoll, error) {
	if b.err != nil {
		return Paperdoll{}, b.err
	}
	selection := make(map[SlotID]int, len(b.selection))
	for k, v := range b.selection {
		selection[k] = v
	}
	return Paperdoll{Doll: b.doll, Selection: selection}, nil
}
