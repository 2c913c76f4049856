package denv

import (
	"context"
	"testing"
	"time"
)

func TestAwaitReturnsAfterSet(t *testing.T) {
	tbl := newTestTable(t)

	mustSet(t, tbl, "X", "v0")

	// Drain the UPDATED flag from the initial Set so Await actually
	// blocks on the *next* one.
	if _, err := tbl.tryConsumeUpdate("X"); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)

	go func() {
		done <- tbl.Await(context.Background(), "X", 5*time.Millisecond)
	}()

	time.Sleep(20 * time.Millisecond)
	mustSet(t, tbl, "X", "v1")

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Await: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Await did not return within 1s of the Set")
	}
}

func TestAwaitWaitsForNameToAppear(t *testing.T) {
	tbl := newTestTable(t)

	done := make(chan error, 1)

	go func() {
		done <- tbl.Await(context.Background(), "LATER", 5*time.Millisecond)
	}()

	time.Sleep(20 * time.Millisecond)
	mustSet(t, tbl, "LATER", "here")

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Await: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Await did not return after the name appeared")
	}
}

func TestAwaitRespectsContextCancellation(t *testing.T) {
	tbl := newTestTable(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := tbl.Await(ctx, "NEVER", 5*time.Millisecond)
	if err == nil {
		t.Fatal("expected context deadline error")
	}
}
