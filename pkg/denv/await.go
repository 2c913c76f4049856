package denv

import (
	"context"
	"time"
)

// Await blocks, polling every poll interval, until name receives a Set by
// any attaching process. If name does not exist yet, it polls until the
// element appears, then proceeds with the UPDATED check.
//
// This is explicitly polling-based, not a futex/condvar wait. ctx lets
// callers impose a deadline; passing context.Background() blocks
// indefinitely.
func (t *Table) Await(ctx context.Context, name string, poll time.Duration) error {
	for {
		consumed, err := t.tryConsumeUpdate(name)
		if err != nil {
			return err
		}

		if consumed {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(poll):
		}
	}
}

// tryConsumeUpdate reports whether name currently exists and has UPDATED
// set; if so it atomically clears UPDATED under the mutex and returns
// true. Otherwise it returns false without error.
func (t *Table) tryConsumeUpdate(name string) (bool, error) {
	if err := t.mu.Lock(); err != nil {
		return false, err
	}
	defer t.mu.Unlock()

	e := t.find(name)
	if e == nil || !e.live() {
		return false, nil
	}

	if e.has(FlagUpdated) {
		e.clear(FlagUpdated)
		return true, nil
	}

	return false, nil
}
