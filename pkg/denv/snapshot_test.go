package denv

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	src := newTestTable(t)

	mustSet(t, src, "A", "1")
	mustSet(t, src, "B", "2")

	if err := src.Set("PATH", "/tmp", FlagIsEnv); err != nil {
		t.Fatal(err)
	}

	if _, err := src.Delete("A"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := src.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	dst := newTestTable(t)
	if err := dst.Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantNames, err := src.List()
	if err != nil {
		t.Fatal(err)
	}

	gotNames, err := dst.List()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(wantNames, gotNames); diff != "" {
		t.Fatalf("List mismatch after round-trip (-want +got):\n%s", diff)
	}

	v, ok, err := dst.Get("B")
	if err != nil || !ok || v != "2" {
		t.Fatalf("Get(B) after load = %q, %v, %v", v, ok, err)
	}

	_, ok, err = dst.Get("A")
	if err != nil || ok {
		t.Fatalf("Get(A) after load should still miss (it was deleted before Save)")
	}
}

func TestLoadRejectsCorruptStream(t *testing.T) {
	tbl := newTestTable(t)

	err := tbl.Load(bytes.NewReader([]byte("not a deflate stream")))
	if err == nil {
		t.Fatal("expected error loading garbage")
	}
}
