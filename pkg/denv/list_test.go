package denv

import "testing"

func TestListMarksEnvEntries(t *testing.T) {
	tbl := newTestTable(t)

	mustSet(t, tbl, "PLAIN", "1")

	if err := tbl.Set("PATH", "/tmp", FlagIsEnv); err != nil {
		t.Fatal(err)
	}

	names, err := tbl.List()
	if err != nil {
		t.Fatal(err)
	}

	byName := make(map[string]bool, len(names))
	for _, n := range names {
		byName[n.Name] = n.IsEnv
	}

	if byName["PLAIN"] {
		t.Fatal("PLAIN should not be marked IS_ENV")
	}

	if !byName["PATH"] {
		t.Fatal("PATH should be marked IS_ENV")
	}
}

func TestListOmitsTombstones(t *testing.T) {
	tbl := newTestTable(t)

	mustSet(t, tbl, "A", "1")
	mustSet(t, tbl, "B", "2")

	if _, err := tbl.Delete("A"); err != nil {
		t.Fatal(err)
	}

	names, err := tbl.List()
	if err != nil {
		t.Fatal(err)
	}

	if len(names) != 1 || names[0].Name != "B" {
		t.Fatalf("List() = %v; want only B", names)
	}
}
