package denv

import (
	"compress/flate"
	"fmt"
	"io"
)

// snapshotChunk is the write granularity into the deflate stream (512 KiB).
const snapshotChunk = 1 << 19

// Save streams the table's raw bytes through a deflate writer at the
// default compression level.
//
// Save deliberately does NOT hold the mutex while streaming: it never
// acquires the semaphore at all. Concurrent Set/Delete calls from other
// attachers during
// Save may therefore produce a snapshot that reflects a torn, partially-
// consistent state. This is a documented, intentional hazard, not an
// oversight: callers that need a consistent snapshot must quiesce
// writers externally first.
func (t *Table) Save(w io.Writer) error {
	zw, err := flate.NewWriter(w, flate.DefaultCompression)
	if err != nil {
		return fmt.Errorf("denv: save: %w", err)
	}

	raw := t.seg.Bytes()[:tableSize]

	for off := 0; off < len(raw); off += snapshotChunk {
		end := off + snapshotChunk
		if end > len(raw) {
			end = len(raw)
		}

		if _, err := zw.Write(raw[off:end]); err != nil {
			return fmt.Errorf("denv: save: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("denv: save: %w", err)
	}

	return nil
}

// Load decompresses r directly over the table's bytes, replacing magic,
// flags, the arena, and both element arrays wholesale.
//
// Load holds the mutex for the entire call (acquire, decompress, post),
// so no concurrent reader/writer runs while the bytes are being replaced.
// The stream is decompressed directly over the live bytes: a Load that
// fails (truncated stream or magic mismatch) returns [ErrCorrupt] and
// leaves whatever it had already written in place.
func (t *Table) Load(r io.Reader) error {
	if err := t.mu.Lock(); err != nil {
		return err
	}
	defer t.mu.Unlock()

	zr := flate.NewReader(r)
	defer zr.Close()

	dst := t.seg.Bytes()[:tableSize]

	if _, err := io.ReadFull(zr, dst); err != nil {
		return fmt.Errorf("denv: load: %w", ErrCorrupt)
	}

	if t.Magic != magic {
		return ErrCorrupt
	}

	return nil
}
