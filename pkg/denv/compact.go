package denv

// noopMutex guards the scratch table built during Cleanup. The scratch
// table is never shared outside this goroutine, so no real exclusion is
// needed. overlay still takes a Mutex value for the Table's mu field, and
// setLocked never calls Lock/Unlock on it (Cleanup calls setLocked
// directly without going through Set), so this just satisfies the field.
type noopMutex struct{}

func (noopMutex) Lock() error   { return nil }
func (noopMutex) Unlock() error { return nil }

// heapSegment is a Segment backed by a plain heap allocation, used for the
// scratch table Cleanup rebuilds into before copying it back over the
// live shared segment.
type heapSegment struct{ b []byte }

func (s *heapSegment) Bytes() []byte { return s.b }

// Cleanup compacts the table: it discards tombstoned entries and abandoned
// arena fragments by rebuilding into a scratch table and copying the
// result back over the live one.
//
// Held under the mutex for the entire call; the re-insertion pass below
// calls setLocked directly rather than Set, so it never re-acquires the
// lock.
func (t *Table) Cleanup() error {
	if err := t.mu.Lock(); err != nil {
		return err
	}
	defer t.mu.Unlock()

	scratch, err := overlay(&heapSegment{b: make([]byte, tableSize)}, noopMutex{})
	if err != nil {
		return err
	}

	scratch.Magic = magic
	scratch.Flags = tableInitialized
	scratch.TotalSize = uint64(tableSize)

	for i := range t.Element.Array {
		if e := &t.Element.Array[i]; e.live() {
			name, value := t.nameValue(e.DataIndex)
			if err := scratch.setLocked(name, value, ElementFlag(e.Flags)&callerFlagMask); err != nil {
				return err
			}
		}
	}

	for i := range t.Element.CollisionArray {
		if e := &t.Element.CollisionArray[i]; e.live() {
			name, value := t.nameValue(e.DataIndex)
			if err := scratch.setLocked(name, value, ElementFlag(e.Flags)&callerFlagMask); err != nil {
				return err
			}
		}
	}

	copy(t.seg.Bytes(), scratch.seg.Bytes())

	return nil
}
