package paperdoll

import "errors"

// Model and rendering errors. Editing operations return these wrapped with
// context; failed operations leave the model unchanged.
var (
	// ErrNotFound is returned when a referenced id does not exist.
	ErrNotFound = errors.New("paperdoll: not found")

	// ErrOutOfRange is returned when an index is outside valid bounds.
	ErrOutOfRange = errors.New("paperdoll: index out of range")

	// ErrDuplicate is returned when adding an already-present relation or id.
	ErrDuplicate = errors.New("paperdoll: duplicate")

	// ErrDanglingReference is returned by Render when a selected candidate
	// references a fragment that no longer exists. This signals an invariant
	// violation upstream; the model never produces it through its own
	// editing operations.
	ErrDanglingReference = errors.New("paperdoll: dangling fragment reference")

	// ErrRequiredEmpty is returned by Render when a slot marked Required
	// has no selected candidate.
	ErrRequiredEmpty = errors.New("paperdoll: required slot is empty")

	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("paperdoll: invalid dimensions")

	// ErrIDExhausted is returned when no free id remains in the id space.
	ErrIDExhausted = errors.New("paperdoll: no id left")
)
