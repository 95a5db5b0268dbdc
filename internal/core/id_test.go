package core

import "testing"

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id == "" {
			t.Fatalf("empty id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s after %d generations", id, i)
		}
		seen[id] = struct{}{}
	}
}

func TestNewIDOrderedWithinRun(t *testing.T) {
	// Monotonic entropy keeps ULIDs sortable even within a millisecond.
	prev := NewID()
	for i := 0; i < 100; i++ {
		next := NewID()
		if next <= prev {
			t.Fatalf("ids not increasing: %s then %s", prev, next)
		}
		prev = next
	}
}
