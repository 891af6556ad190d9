package paperdoll

// idAllocator hands out unique uint32 ids. Ids of removed entities become
// available again; the cursor wraps around when the end of the id space is
// reached.
type idAllocator struct {
	cursor uint32
	used   map[uint32]struct{}
}

func newIDAllocator() *idAllocator {
	return &idAllocator{used: make(map[uint32]struct{})}
}

// next returns the next free id, advancing past occupied ones.
// Returns ErrIDExhausted when every id is taken.
func (a *idAllocator) next() (uint32, error) {
	start := a.cursor

	for {
		if _, taken := a.used[a.cursor]; !taken {
			break
		}
		a.cursor++ // wraps at math.MaxUint32

		if a.cursor == start {
			return 0, ErrIDExhausted
		}
	}

	id := a.cursor
	a.used[id] = struct{}{}
	return id, nil
}

// takeUp reserves an explicit id, e.g. when restoring from a manifest.
// Returns ErrDuplicate if the id is already in use.
func (a *idAllocator) takeUp(id uint32) error {
	if _, taken := a.used[id]; taken {
		return ErrDuplicate
	}
	a.used[id] = struct{}{}
	return nil
}

// release frees an id. Returns true if the id was in use.
func (a *idAllocator) release(id uint32) bool {
	_, taken := a.used[id]
	delete(a.used, id)
	return taken
}
