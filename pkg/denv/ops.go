package denv

import "fmt"

// Set inserts or updates name with value. extra may only carry [FlagIsEnv]; every other bit is stripped. Held under the table's
// mutex for the entire call.
//
// On return, the target element's UPDATED flag is set, which [Table.Await]
// consumes.
func (t *Table) Set(name, value string, extra ElementFlag) error {
	if err := t.mu.Lock(); err != nil {
		return err
	}
	defer t.mu.Unlock()

	return t.setLocked(name, value, extra)
}

// setLocked is Set's body, callable while the mutex is already held (used
// by Cleanup's re-insertion pass, which must not re-acquire the lock).
func (t *Table) setLocked(name, value string, extra ElementFlag) error {
	extra &= callerFlagMask

	needWords := roundWords(len(name) + len(value) + 2)

	h := bucketOf(name)
	e := &t.Element.Array[h]

	if !e.has(FlagUsed) {
		idx, err := t.allocate(needWords)
		if err != nil {
			return err
		}

		e.DataIndex = idx
		e.DataWordSize = needWords
		t.writePayload(idx, name, value)
		e.set(FlagUsed | FlagUpdated | extra)
		e.clear(FlagFreed)
		t.Element.Used++

		return nil
	}

	existingName := t.name(e.DataIndex)
	if existingName == name {
		return t.rewrite(e, name, value, needWords, extra)
	}

	if !e.has(FlagHasCollision) {
		return t.appendCollision(e, name, value, needWords, extra)
	}

	next := e.CollisionNext
	for {
		ce := &t.Element.CollisionArray[next&(elementCount-1)]
		if t.name(ce.DataIndex) == name {
			return t.rewrite(ce, name, value, needWords, extra)
		}

		if !ce.has(FlagHasCollision) {
			return t.appendCollision(ce, name, value, needWords, extra)
		}

		next = ce.CollisionNext
	}
}

// rewrite applies the in-place-or-reallocate update rule to an element
// already known to hold name.
func (t *Table) rewrite(e *Element, name, value string, needWords uint64, extra ElementFlag) error {
	if e.DataWordSize >= needWords {
		t.writePayload(e.DataIndex, name, value)
	} else {
		idx, err := t.allocate(needWords)
		if err != nil {
			return err
		}

		e.DataIndex = idx
		e.DataWordSize = needWords
		t.writePayload(idx, name, value)
	}

	e.set(FlagUpdated | extra)
	e.clear(FlagFreed)

	return nil
}

// appendCollision links a brand-new collision element after predecessor.
func (t *Table) appendCollision(predecessor *Element, name, value string, needWords uint64, extra ElementFlag) error {
	if t.Element.CollisionUsed >= elementCount {
		return fmt.Errorf("denv: collision array exhausted: %w", ErrFull)
	}

	idx, err := t.allocate(needWords)
	if err != nil {
		return err
	}

	newIdx := t.Element.CollisionUsed
	ce := &t.Element.CollisionArray[newIdx]
	ce.DataIndex = idx
	ce.DataWordSize = needWords
	t.writePayload(idx, name, value)
	ce.set(FlagUsed | FlagUpdated | extra)
	ce.clear(FlagFreed)

	predecessor.set(FlagHasCollision)
	predecessor.CollisionNext = newIdx

	t.Element.CollisionUsed++

	return nil
}

// Get looks up name, returning its value and true on a live hit, or
// ("", false, nil) on a miss. Held under the mutex only for the duration
// of the lookup; the returned string is a copy, stable after the call
// returns (this package never exposes the raw arena pointer to callers).
func (t *Table) Get(name string) (string, bool, error) {
	if err := t.mu.Lock(); err != nil {
		return "", false, err
	}
	defer t.mu.Unlock()

	e := t.find(name)
	if e == nil || !e.live() {
		return "", false, nil
	}

	_, value := t.nameValue(e.DataIndex)

	return value, true, nil
}

// find returns the element matching name (primary or collision chain),
// regardless of its FREED state, or nil if name was never inserted under
// this bucket. Callers must check live() themselves. Must be called with
// the mutex already held.
func (t *Table) find(name string) *Element {
	h := bucketOf(name)
	e := &t.Element.Array[h]

	if !e.has(FlagUsed) {
		return nil
	}

	if t.name(e.DataIndex) == name {
		return e
	}

	if !e.has(FlagHasCollision) {
		return nil
	}

	next := e.CollisionNext
	for {
		ce := &t.Element.CollisionArray[next&(elementCount-1)]
		if t.name(ce.DataIndex) == name {
			return ce
		}

		if !ce.has(FlagHasCollision) {
			return nil
		}

		next = ce.CollisionNext
	}
}

// Delete tombstones name. Returns true if a live element was found and
// tombstoned, false if name was already absent. The primary Used counter
// decrements only for primary-slot hits; the arena slice backing the
// entry is not reclaimed until Cleanup.
func (t *Table) Delete(name string) (bool, error) {
	if err := t.mu.Lock(); err != nil {
		return false, err
	}
	defer t.mu.Unlock()

	h := bucketOf(name)
	primary := &t.Element.Array[h]

	e := t.find(name)
	if e == nil || !e.live() {
		return false, nil
	}

	e.set(FlagFreed)

	if e == primary {
		t.Element.Used--
	}

	return true, nil
}

// allocate reserves needWords contiguous words from the arena. Fails
// with [ErrFull] if the remaining capacity is insufficient.
func (t *Table) allocate(needWords uint64) (uint64, error) {
	if needWords > blockWords-t.CurrentWordBlockOffset {
		return 0, fmt.Errorf("denv: arena exhausted: need %d words, have %d: %w",
			needWords, blockWords-t.CurrentWordBlockOffset, ErrFull)
	}

	idx := t.CurrentWordBlockOffset
	t.CurrentWordBlockOffset += needWords

	return idx, nil
}
