// Package denv implements a persistent, cross-process key/value table
// backed by a fixed-size shared-memory segment.
//
// A [Table] is a single contiguous record overlaid directly onto the bytes
// of a shared-memory [Segment]: a fixed open-addressed hash index with a
// separate collision array, and a monotonic word-addressed arena that backs
// every variable-length name+value payload. Any number of unrelated
// processes may attach the same segment and observe each other's writes
// immediately; all mutating and reading index operations are serialized by
// a single binary [Mutex] shared across attachers.
//
// denv is not a general-purpose database. There is no dynamic growth: the
// table has a hard ceiling of 2048 live primary keys plus 2048 collision
// slots, and the arena is never compacted except by an explicit [Table.Cleanup]
// call. It trades all of that away for O(1) attach and lock-free-adjacent
// reads under a single semaphore, which is exactly what an environment-like
// variable store needs.
package denv
