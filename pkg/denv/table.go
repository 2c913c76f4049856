package denv

import (
	"fmt"
	"unsafe"
)

const (
	// elementCount is the primary array size, and also the size of the
	// overflow collision array.
	elementCount = 2048

	// blockWords is the arena size in words, chosen so the whole Table
	// is roughly 8 MiB.
	blockWords = 1 << 20

	wordBytes = 8

	// magic is DENV_MAGIC from original_source/denv.h's 64-bit build:
	// ASCII "DENV" in the high 32 bits.
	magic uint64 = 0x44454e5600000000
)

// tableFlags are bits of Table.Flags.
const (
	tableInitialized uint64 = 1 << iota
	tableBusy
)

// elementSet is the pair of parallel arrays backing the index: a
// primary array indexed by hash, and an overflow array linked as a
// singly-linked chain for collisions.
type elementSet struct {
	Used           uint64
	CollisionUsed  uint64
	Array          [elementCount]Element
	CollisionArray [elementCount]Element
}

// Table is the outer record combining magic, flags, element arrays, arena
// offset, and arena. A Table is never constructed directly; it is always
// an [unsafe.Pointer] overlay onto a [Segment]'s bytes, obtained via
// [Open].
//
// The inter-process semaphore is modeled as an external [Mutex]
// capability rather than bytes inside this struct — see mu below and
// DESIGN.md for the rationale.
type Table struct {
	Magic                  uint64
	Flags                  uint64
	Element                elementSet
	TotalSize              uint64
	CurrentWordBlockOffset uint64
	Block                  [blockWords]uint64

	// mu is the capability guarding every operation below. It is not
	// part of the serialized byte layout: it is supplied fresh by every
	// attacher via Open, since the OS-level semaphore it wraps is
	// identified independently (by the same path-derived IPC key as the
	// segment itself), not by bytes stored in the segment.
	mu Mutex

	// seg is the Segment this Table is overlaid on; Save, Load and Cleanup
	// read and write the raw table bytes through it. denv does not detach
	// segments itself; see cmd-level Drop.
	seg Segment
}

// tableSize is the exact byte length every Segment must provide: the size
// of the serialized prefix (Magic through Block), excluding the
// bookkeeping-only mu/seg fields that follow it in the struct.
var tableSize = int(unsafe.Offsetof(Table{}.mu))

// TableSize is the exact number of bytes a [Segment] must provide. Callers
// wiring up a real shared-memory segment (see internal/shm) need this to
// size the System V allocation before attaching.
func TableSize() int {
	return tableSize
}

// overlay returns the Table overlaid onto seg's bytes. The returned
// pointer aliases seg's storage for every field through Block; mu and seg
// are ordinary Go fields layered on top for bookkeeping and are NOT
// read from or written to shared memory (see tableSize, which ends
// where mu begins).
func overlay(seg Segment, mu Mutex) (*Table, error) {
	b := seg.Bytes()
	if len(b) < tableSize {
		return nil, fmt.Errorf("denv: segment too small: got %d bytes, need %d: %w", len(b), tableSize, ErrCorrupt)
	}

	t := (*Table)(unsafe.Pointer(&b[0]))
	t.mu = mu
	t.seg = seg

	return t, nil
}

// Open attaches to the table backed by seg, guarded by mu. If the segment
// has never been initialized (Flags lacks tableInitialized), the calling
// process becomes the initializer: it seeds the magic, zeroes the element
// counts and arena cursor, and sets tableInitialized. Concurrent first
// attaches are serialized by mu.
//
// If the segment was already initialized, Open validates Magic and
// returns [ErrCorrupt] on mismatch.
func Open(seg Segment, mu Mutex) (*Table, error) {
	t, err := overlay(seg, mu)
	if err != nil {
		return nil, err
	}

	if err := mu.Lock(); err != nil {
		return nil, fmt.Errorf("denv: attach: %w", err)
	}
	defer mu.Unlock()

	if t.Flags&tableInitialized == 0 {
		t.Magic = magic
		t.Element.Used = 0
		t.Element.CollisionUsed = 0
		t.TotalSize = uint64(tableSize)
		t.CurrentWordBlockOffset = 0
		t.Flags |= tableInitialized

		return t, nil
	}

	if t.Magic != magic {
		return nil, ErrCorrupt
	}

	return t, nil
}

// TableStats is the read-only summary printed by the `stats` subcommand.
type TableStats struct {
	TotalSizeBytes int64
	DataOffsetWords int64
	UsedHash        int64
	UsedCollision   int64
}

// UsedTotal is UsedHash + UsedCollision.
func (s TableStats) UsedTotal() int64 {
	return s.UsedHash + s.UsedCollision
}

// Stats returns a point-in-time snapshot of table occupancy, under the
// lock (so the three counters are mutually consistent).
func (t *Table) Stats() (TableStats, error) {
	if err := t.mu.Lock(); err != nil {
		return TableStats{}, err
	}
	defer t.mu.Unlock()

	return TableStats{
		TotalSizeBytes:  int64(t.TotalSize),
		DataOffsetWords: int64(t.CurrentWordBlockOffset),
		UsedHash:        int64(t.Element.Used),
		UsedCollision:   int64(t.Element.CollisionUsed),
	}, nil
}

// name reads the NUL-terminated name at the given arena word offset.
func (t *Table) name(wordOffset uint64) string {
	base := wordOffset * wordBytes
	raw := (*[blockWords * wordBytes]byte)(unsafe.Pointer(&t.Block[0]))[base:]

	end := 0
	for end < len(raw) && raw[end] != 0 {
		end++
	}

	return string(raw[:end])
}

// nameValue reads the NUL-terminated name and value pair at wordOffset.
func (t *Table) nameValue(wordOffset uint64) (name, value string) {
	base := wordOffset * wordBytes
	raw := (*[blockWords * wordBytes]byte)(unsafe.Pointer(&t.Block[0]))[base:]

	nameEnd := 0
	for nameEnd < len(raw) && raw[nameEnd] != 0 {
		nameEnd++
	}
	name = string(raw[:nameEnd])

	valStart := nameEnd + 1
	valEnd := valStart
	for valEnd < len(raw) && raw[valEnd] != 0 {
		valEnd++
	}
	value = string(raw[valStart:valEnd])

	return name, value
}

// writePayload writes name\0value\0 at wordOffset.
func (t *Table) writePayload(wordOffset uint64, name, value string) {
	base := wordOffset * wordBytes
	raw := (*[blockWords * wordBytes]byte)(unsafe.Pointer(&t.Block[0]))[base:]

	n := copy(raw, name)
	raw[n] = 0
	n++
	n += copy(raw[n:], value)
	raw[n] = 0
}
