package denv

import "errors"

// Sentinel errors returned by Table operations.
//
// Callers should use [errors.Is] to check error types:
//
//	if errors.Is(err, denv.ErrNotFound) {
//	    // key does not exist
//	}
var (
	// ErrCorrupt indicates the segment or snapshot bytes are not a valid
	// denv table (bad magic, truncated data).
	ErrCorrupt = errors.New("denv: corrupt table")

	// ErrNotFound indicates a lookup miss. The CLI's `get` returns it;
	// [Table.Get] and [Table.Delete] themselves report a miss through
	// their bool result, not through this error.
	ErrNotFound = errors.New("denv: name not found")

	// ErrFull indicates the arena or the collision array is exhausted.
	// Recovery: Cleanup, which reclaims tombstoned and abandoned slices.
	ErrFull = errors.New("denv: table full")

	// ErrInvalidName indicates a name failed environment-variable name
	// validation ([A-Za-z_][A-Za-z0-9_]*), which the CLI's `set -e`
	// applies. Table.Set and Table.Clone do not validate names.
	ErrInvalidName = errors.New("denv: invalid environment variable name")

	// ErrClosed indicates an operation on a Table whose segment has
	// already been detached.
	ErrClosed = errors.New("denv: table closed")
)
