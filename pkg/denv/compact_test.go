package denv

import "testing"

func TestCleanupReclaimsTombstones(t *testing.T) {
	tbl := newTestTable(t)

	mustSet(t, tbl, "K", "v1")

	if _, err := tbl.Delete("K"); err != nil {
		t.Fatal(err)
	}

	if err := tbl.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	stats, err := tbl.Stats()
	if err != nil {
		t.Fatal(err)
	}

	if stats.UsedHash != 0 || stats.UsedCollision != 0 || stats.DataOffsetWords != 0 {
		t.Fatalf("stats after cleanup = %+v; want all zero", stats)
	}

	_, ok, err := tbl.Get("K")
	if err != nil || ok {
		t.Fatalf("Get(K) after cleanup should still miss")
	}
}

func TestCleanupPreservesLiveEntries(t *testing.T) {
	tbl := newTestTable(t)

	a, b := collidingNames(t)

	mustSet(t, tbl, a, "x")
	mustSet(t, tbl, b, "y")
	mustSet(t, tbl, "other", "z")

	if _, err := tbl.Delete("other"); err != nil {
		t.Fatal(err)
	}

	if err := tbl.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	va, ok, err := tbl.Get(a)
	if err != nil || !ok || va != "x" {
		t.Fatalf("Get(%q) after cleanup = %q, %v, %v", a, va, ok, err)
	}

	vb, ok, err := tbl.Get(b)
	if err != nil || !ok || vb != "y" {
		t.Fatalf("Get(%q) after cleanup = %q, %v, %v", b, vb, ok, err)
	}

	_, ok, err = tbl.Get("other")
	if err != nil || ok {
		t.Fatalf("Get(other) after cleanup should miss (was tombstoned)")
	}
}
