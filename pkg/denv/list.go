package denv

// NameEntry is one live key as seen by List: its name and whether it
// carries the IS_ENV annotation.
type NameEntry struct {
	Name  string
	IsEnv bool
}

// List enumerates every live element's name, primary array first then the
// collision chain, under the mutex for the duration of the scan.
func (t *Table) List() ([]NameEntry, error) {
	if err := t.mu.Lock(); err != nil {
		return nil, err
	}
	defer t.mu.Unlock()

	var names []NameEntry

	collect := func(e *Element) {
		if e.live() {
			names = append(names, NameEntry{Name: t.name(e.DataIndex), IsEnv: e.has(FlagIsEnv)})
		}
	}

	for i := range t.Element.Array {
		collect(&t.Element.Array[i])
	}

	for i := range t.Element.CollisionArray {
		collect(&t.Element.CollisionArray[i])
	}

	return names, nil
}
