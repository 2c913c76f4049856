package denv

import (
	"sync"
	"testing"
)

// testMutex adapts sync.Mutex to the Mutex capability for in-process
// tests; it never leaves the test binary.
type testMutex struct {
	mu sync.Mutex
}

func (m *testMutex) Lock() error {
	m.mu.Lock()
	return nil
}

func (m *testMutex) Unlock() error {
	m.mu.Unlock()
	return nil
}

// newTestTable returns a fresh Table backed by a heap allocation, as if
// freshly attached by the first process on the segment.
func newTestTable(t *testing.T) *Table {
	t.Helper()

	tbl, err := Open(&heapSegment{b: make([]byte, tableSize)}, &testMutex{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	return tbl
}

// collidingNames returns two distinct strings whose FNV-1a bucket is the
// same, by brute-force search, for tests that need to exercise the
// collision chain explicitly.
func collidingNames(t *testing.T) (a, b string) {
	t.Helper()

	seen := make(map[uint64]string)

	for i := 0; ; i++ {
		name := "k" + itoa(i)
		h := bucketOf(name)

		if prev, ok := seen[h]; ok {
			return prev, name
		}

		seen[h] = name

		if i > 1_000_000 {
			t.Fatal("no collision found within search bound")
		}
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}

	neg := i < 0
	if neg {
		i = -i
	}

	var buf [20]byte
	pos := len(buf)

	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}

	if neg {
		pos--
		buf[pos] = '-'
	}

	return string(buf[pos:])
}
