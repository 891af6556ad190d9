package paperdoll

// FragmentID is a stable handle to a fragment for the fragment's lifetime.
type FragmentID uint32

// Fragment is an immutable raster image asset with a pivot point. Fragments
// are owned by the Factory; slots and dolls reference them by id only, so
// one fragment can appear as a candidate in any number of slots across any
// number of dolls.
type Fragment struct {
	id FragmentID

	// Desc is a free-form description for editors. It has no effect on
	// rendering.
	Desc string

	pivot  Point
	pixels *Pixmap
}

// ID returns the fragment's handle.
func (f *Fragment) ID() FragmentID {
	return f.id
}

// Pivot returns the pivot point in fragment-local coordinates. The pivot may
// lie outside the pixel bounds.
func (f *Fragment) Pivot() Point {
	return f.pivot
}

// Pixels returns the fragment's pixel buffer. The buffer is shared, not
// copied; callers must not modify it.
func (f *Fragment) Pixels() *Pixmap {
	return f.pixels
}

// Size returns the fragment's intrinsic dimensions.
func (f *Fragment) Size() (width, height int) {
	return f.pixels.Width(), f.pixels.Height()
}
