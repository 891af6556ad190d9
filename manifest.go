package paperdoll

import "fmt"

// ManifestVersion is the current manifest schema version.
const ManifestVersion = 1

// Meta carries model-level metadata.
type Meta struct {
	Name string `json:"name"`
}

// CandidateRecord is the serialized form of a slot candidate.
type CandidateRecord struct {
	Fragment FragmentID    `json:"fragment"`
	Mode     PlacementMode `json:"mode"`
}

// FragmentRecord is the serialized form of a fragment, pixel data included.
type FragmentRecord struct {
	ID     FragmentID `json:"id"`
	Desc   string     `json:"desc,omitempty"`
	Pivot  Point      `json:"pivot"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Pixels []byte     `json:"pixels"`
}

// SlotRecord is the serialized form of a slot, selection included.
type SlotRecord struct {
	ID         SlotID            `json:"id"`
	Desc       string            `json:"desc,omitempty"`
	Required   bool              `json:"required,omitempty"`
	Anchor     Point             `json:"anchor"`
	Region     Rect              `json:"region"`
	Candidates []CandidateRecord `json:"candidates"`
	Selected   int               `json:"selected"`
}

// DollRecord is the serialized form of a doll.
type DollRecord struct {
	ID         DollID      `json:"id"`
	Desc       string      `json:"desc,omitempty"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Slots      []SlotID    `json:"slots"`
	Background *FragmentID `json:"background,omitempty"`
	Offset     Point       `json:"offset"`
}

// Manifest is a complete snapshot of a factory's state. It is the exchange
// format for external persistence: an archive component serializes a
// Manifest however it likes and reconstructs an equivalent model with
// FromManifest.
type Manifest struct {
	Version   int              `json:"version"`
	Meta      Meta             `json:"meta"`
	Dolls     []DollRecord     `json:"dolls"`
	Slots     []SlotRecord     `json:"slots"`
	Fragments []FragmentRecord `json:"fragments"`
}

// Manifest captures the factory's full state. Records are ordered by
// ascending id; pixel data is copied.
func (f *Factory) Manifest() Manifest {
	m := Manifest{
		Version: ManifestVersion,
		Meta:    f.Meta,
	}

	for _, id := range f.Dolls() {
		doll := f.dolls[id]
		rec := DollRecord{
			ID:     id,
			Desc:   doll.Desc,
			Width:  doll.width,
			Height: doll.height,
			Slots:  doll.Slots(),
			Offset: doll.offset,
		}
		if doll.background != nil {
			bg := *doll.background
			rec.Background = &bg
		}
		m.Dolls = append(m.Dolls, rec)
	}

	for _, id := range f.Slots() {
		slot := f.slots[id]
		rec := SlotRecord{
			ID:       id,
			Desc:     slot.Desc,
			Required: slot.required,
			Anchor:   slot.anchor,
			Region:   slot.region,
			Selected: slot.selected,
		}
		for _, c := range slot.candidates {
			rec.Candidates = append(rec.Candidates, CandidateRecord{
				Fragment: c.Fragment,
				Mode:     c.Mode,
			})
		}
		m.Slots = append(m.Slots, rec)
	}

	for _, id := range f.Fragments() {
		frag := f.fragments[id]
		w, h := frag.Size()
		pixels := make([]byte, len(frag.pixels.Data()))
		copy(pixels, frag.pixels.Data())
		m.Fragments = append(m.Fragments, FragmentRecord{
			ID:     id,
			Desc:   frag.Desc,
			Pivot:  frag.pivot,
			Width:  w,
			Height: h,
			Pixels: pixels,
		})
	}

	return m
}

// FromManifest reconstructs a factory from a snapshot. Every reference in
// the manifest is validated; an inconsistent manifest is rejected without
// producing a model.
func FromManifest(m Manifest, opts ...Option) (*Factory, error) {
	f := NewFactory(opts...)
	f.Meta = m.Meta

	for _, rec := range m.Fragments {
		if rec.Width <= 0 || rec.Height <= 0 {
			return nil, fmt.Errorf("manifest: fragment %d: %w", rec.ID, ErrInvalidDimensions)
		}
		if len(rec.Pixels) < rec.Width*rec.Height*4 {
			return nil, fmt.Errorf("manifest: fragment %d: pixel data too small for %dx%d",
				rec.ID, rec.Width, rec.Height)
		}
		if err := f.fragmentIDs.takeUp(uint32(rec.ID)); err != nil {
			return nil, fmt.Errorf("manifest: fragment %d: %w", rec.ID, err)
		}

		pm := NewPixmap(rec.Width, rec.Height)
		copy(pm.Data(), rec.Pixels)
		f.fragments[rec.ID] = &Fragment{
			id:     rec.ID,
			Desc:   rec.Desc,
			pivot:  rec.Pivot,
			pixels: pm,
		}
	}

	for _, rec := range m.Slots {
		if err := f.slotIDs.takeUp(uint32(rec.ID)); err != nil {
			return nil, fmt.Errorf("manifest: slot %d: %w", rec.ID, err)
		}

		slot := &Slot{
			id:       rec.ID,
			Desc:     rec.Desc,
			required: rec.Required,
			anchor:   rec.Anchor,
			region:   rec.Region,
			selected: rec.Selected,
		}
		for _, c := range rec.Candidates {
			if _, ok := f.fragments[c.Fragment]; !ok {
				return nil, fmt.Errorf("manifest: slot %d candidate fragment %d: %w",
					rec.ID, c.Fragment, ErrNotFound)
			}
			slot.candidates = append(slot.candidates, Candidate{
				Fragment: c.Fragment,
				Mode:     c.Mode,
			})
		}
		if rec.Selected != SelectionEmpty &&
			(rec.Selected < 0 || rec.Selected >= len(slot.candidates)) {
			return nil, fmt.Errorf("manifest: slot %d selected %d: %w",
				rec.ID, rec.Selected, ErrOutOfRange)
		}
		f.slots[rec.ID] = slot
	}

	for _, rec := range m.Dolls {
		if rec.Width <= 0 || rec.Height <= 0 {
			return nil, fmt.Errorf("manifest: doll %d: %w", rec.ID, ErrInvalidDimensions)
		}
		if err := f.dollIDs.takeUp(uint32(rec.ID)); err != nil {
			return nil, fmt.Errorf("manifest: doll %d: %w", rec.ID, err)
		}

		doll := &Doll{
			id:     rec.ID,
			Desc:   rec.Desc,
			width:  rec.Width,
			height: rec.Height,
			offset: rec.Offset,
		}
		for _, slotID := range rec.Slots {
			if _, ok := f.slots[slotID]; !ok {
				return nil, fmt.Errorf("manifest: doll %d slot %d: %w",
					rec.ID, slotID, ErrNotFound)
			}
			if doll.hasSlot(slotID) {
				return nil, fmt.Errorf("manifest: doll %d slot %d: %w",
					rec.ID, slotID, ErrDuplicate)
			}
			doll.slots = append(doll.slots, slotID)
		}
		if rec.Background != nil {
			if _, ok := f.fragments[*rec.Background]; !ok {
				return nil, fmt.Errorf("manifest: doll %d background fragment %d: %w",
					rec.ID, *rec.Background, ErrNotFound)
			}
			bg := *rec.Background
			doll.background = &bg
		}
		f.dolls[rec.ID] = doll
	}

	f.bump()
	return f, nil
}
