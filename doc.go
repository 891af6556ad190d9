// Package paperdoll provides a data model and deterministic compositor for
// 2D pixel-based stationary paper dolls.
//
// # Overview
//
// A paper doll is an ordered stack of interchangeable image parts rendered
// onto a single canvas. The model consists of three parts:
//
//   - Doll: the top-level assembled object (a face, a body, a full outfit).
//     A doll owns a canvas size and an ordered list of slots; the order is
//     the paint order, first slot bottom-most.
//   - Slot: a position inside a doll where alternative styles can appear
//     (eyes, mouth, hair). A slot lists candidate fragments and holds at
//     most one selection. An empty slot draws nothing: an empty "hair"
//     slot means the character is bald.
//   - Fragment: an immutable raster image asset with a pivot point. One
//     fragment can serve as a candidate in any number of slots.
//
// Candidates connect to slots in one of two placement modes:
//
//   - Constrained: the fragment acts as the background of the slot. It is
//     resampled to fill the slot's region exactly, stretching if needed.
//   - Anchored: slot and fragment join like mortise and tenon. The
//     fragment's pivot point is placed on the slot's anchor point and the
//     fragment keeps its original size; resizing never happens.
//
// # Quick Start
//
//	pd := paperdoll.NewFactory()
//
//	hair, _ := pd.RegisterFragment(hairPixels, paperdoll.Pt(12, 30))
//	slot, _ := pd.CreateSlot(paperdoll.Pt(40, 8), paperdoll.Rect{})
//	idx, _ := pd.AddCandidate(slot, hair, paperdoll.Anchored)
//	_ = pd.Select(slot, idx)
//
//	doll, _ := pd.CreateDoll(128, 128)
//	_ = pd.AddSlot(doll, slot)
//
//	out, _ := pd.Render(doll)
//	_ = out.SavePNG("doll.png")
//
// # Determinism
//
// Render is a pure function of model state: identical state always yields a
// byte-identical canvas. Rendering never partially fails; it either returns
// a complete canvas or an error and no buffer.
//
// # Concurrency
//
// The engine does no internal cross-object locking. A single logical caller
// may freely interleave edits and renders; hosts that edit from multiple
// goroutines must serialize access to a Factory themselves. Renders of
// independent factories may run concurrently.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. Pivot and
// anchor coordinates are continuous; placement rounds half away from zero.
//
// Animations and transformations are not supported. Vector images and basic
// shapes are not supported.
package paperdoll
