package denv

// Segment is a named shared-memory region of fixed byte length, attached
// and concurrently mapped by multiple processes. Bytes returned by
// [Segment.Bytes] must have length exactly [tableSize] and must alias the
// same underlying storage across every call and every process attaching
// the same identity.
//
// Implementations live in internal/shm (System V shared memory) for
// production use, and in-process fakes for tests. denv itself never
// creates or destroys segments; it only overlays a [Table] onto one.
type Segment interface {
	// Bytes returns the attached region as a byte slice of length
	// [tableSize].
	Bytes() []byte
}

// Mutex is a binary, process-shared mutual-exclusion capability. A single
// Mutex instance guards an entire [Table]: every mutating or reading index
// operation acquires it for the duration of the call.
//
// Implementations live in internal/shm (a System V semaphore set) for
// production use, and sync.Mutex-backed fakes for tests.
type Mutex interface {
	Lock() error
	Unlock() error
}
