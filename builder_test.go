package paperdoll

import (
	"errors"
	"testing"
)

// buildTwoCandidateScene returns a factory with one doll, one slot holding
// a red and a green constrained candidate, selection on the red one.
func buildTwoCandidateScene(t *testing.T) (*Factory, DollID, SlotID) {
	t.Helper()
	f := NewFactory()

	red, err := f.RegisterFragment(solidPixmap(4, 4, 255, 0, 0, 255), Pt(0, 0))
	if err != nil {
		t.Fatalf("RegisterFragment() error: %v", err)
	}
	green, err := f.RegisterFragment(solidPixmap(4, 4, 0, 255, 0, 255), Pt(0, 0))
	if err != nil {
		t.Fatalf("RegisterFragment() error: %v", err)
	}

	slot, err := f.CreateSlot(Pt(0, 0), Rc(0, 0, 8, 8))
	if err != nil {
		t.Fatalf("CreateSlot() error: %v", err)
	}
	iRed, _ := f.AddCandidate(slot, red, Constrained)
	_, _ = f.AddCandidate(slot, green, Constrained)
	if err := f.Select(slot, iRed); err != nil {
		t.Fatalf("Select() error: %v", err)
	}

	doll, err := f.CreateDoll(8, 8)
	if err != nil {
		t.Fatalf("CreateDoll() error: %v", err)
	}
	if err := f.AddSlot(doll, slot); err != nil {
		t.Fatalf("AddSlot() error: %v", err)
	}
	return f, doll, slot
}

func TestBuilderBuild(t *testing.T) {
	f, doll, slot := buildTwoCandidateScene(t)

	pd, err := f.Builder().Doll(doll).Set(slot, 1).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if pd.Doll != doll {
		t.Errorf("pd.Doll = %d, want %d", pd.Doll, doll)
	}
	if idx, ok := pd.Selection[slot]; !ok || idx != 1 {
		t.Errorf("pd.Selection[%d] = (%d, %v), want (1, true)", slot, idx, ok)
	}
}

func TestBuilderUnknownDoll(t *testing.T) {
	f, _, _ := buildTwoCandidateScene(t)

	_, err := f.Builder().Doll(99).Build()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Build() error = %v, want ErrNotFound", err)
	}
}

func TestBuilderUnknownSlot(t *testing.T) {
	f, doll, _ := buildTwoCandidateScene(t)

	_, err := f.Builder().Doll(doll).Set(99, 0).Build()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Build() error = %v, want ErrNotFound", err)
	}
}

func TestBuilderIndexOutOfRange(t *testing.T) {
	f, doll, slot := buildTwoCandidateScene(t)

	_, err := f.Builder().Doll(doll).Set(slot, 2).Build()
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Build() error = %v, want ErrOutOfRange", err)
	}

	// SelectionEmpty is always in range
	if _, err := f.Builder().Doll(doll).Set(slot, SelectionEmpty).Build(); err != nil {
		t.Errorf("Build() with SelectionEmpty error: %v", err)
	}
}

func TestBuilderErrorSticks(t *testing.T) {
	f, doll, slot := buildTwoCandidateScene(t)

	// A valid call after the failure must not clear it
	pd, err := f.Builder().Doll(99).Doll(doll).Set(slot, 0).Build()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Build() error = %v, want the first failure (ErrNotFound)", err)
	}
	if pd.Selection != nil {
		t.Error("Build() returned a snapshot alongside the error")
	}
}

func TestRenderPaperdollOverrides(t *testing.T) {
	f, doll, slot := buildTwoCandidateScene(t)

	pd, err := f.Builder().Doll(doll).Set(slot, 1).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	out, err := f.RenderPaperdoll(pd)
	if err != nil {
		t.Fatalf("RenderPaperdoll() error: %v", err)
	}
	if r, g, _, _ := out.GetRGBA(2, 2); g != 255 || r != 0 {
		t.Errorf("override pixel = (r=%d, g=%d), want green (candidate 1)", r, g)
	}

	// The slot's stored selection stays on candidate 0
	slotState, err := f.Slot(slot)
	if err != nil {
		t.Fatalf("Slot() error: %v", err)
	}
	if slotState.Selected() != 0 {
		t.Errorf("stored selection = %d, want 0 (untouched by snapshot render)", slotState.Selected())
	}
	plain, _ := f.Render(doll)
	if r, _, _, _ := plain.GetRGBA(2, 2); r != 255 {
		t.Error("plain Render() no longer shows the stored selection")
	}
}

func TestRenderPaperdollForcedEmpty(t *testing.T) {
	f, doll, slot := buildTwoCandidateScene(t)

	pd, _ := f.Builder().Doll(doll).Set(slot, SelectionEmpty).Build()
	out, err := f.RenderPaperdoll(pd)
	if err != nil {
		t.Fatalf("RenderPaperdoll() error: %v", err)
	}
	if _, _, _, a := out.GetRGBA(2, 2); a != 0 {
		t.Error("forced-empty slot still painted")
	}
}

func TestRenderPaperdollStaleSnapshot(t *testing.T) {
	f, doll, slot := buildTwoCandidateScene(t)

	pd, _ := f.Builder().Doll(doll).Set(slot, 1).Build()

	// Shrink the candidate list after the snapshot was built
	if err := f.RemoveCandidate(slot, 1); err != nil {
		t.Fatalf("RemoveCandidate() error: %v", err)
	}

	if _, err := f.RenderPaperdoll(pd); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("RenderPaperdoll() error = %v, want ErrOutOfRange", err)
	}
}
