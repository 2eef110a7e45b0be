package drag

import "testing"

func TestOrderedSet(t *testing.T) {
	s := newOrderedSet()
	for _, id := range []string{"a", "b", "c"} {
		if !s.Add(id) {
			t.Fatalf("Add(%s) = false on first insert", id)
		}
	}
	if s.Add("b") {
		t.Error("Add() of an existing id should return false")
	}

	if !s.Remove("a") {
		t.Fatal("Remove(a) = false")
	}
	if s.Remove("a") {
		t.Error("second Remove(a) should return false")
	}
	if got := s.Values(); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("Values() = %v, want [b c]", got)
	}

	// keyed removal still works after reindexing
	if !s.Remove("c") || !s.Has("b") || s.Len() != 1 {
		t.Errorf("unexpected state after removals: %v", s.Values())
	}

	s.Clear()
	if s.Len() != 0 || s.Has("b") {
		t.Error("Clear() should empty the set")
	}
}
