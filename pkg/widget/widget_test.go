package widget

import "testing"

func TestAllocatorUnique(t *testing.T) {
	var a Allocator
	seen := map[ID]bool{}
	for i := 0; i < 10; i++ {
		id := a.Next(Kind(i % 3))
		if id.IsZero() {
			t.Fatal("allocated the zero ID")
		}
		if seen[id] {
			t.Fatalf("duplicate ID %v", id)
		}
		seen[id] = true
	}
}

func TestIDString(t *testing.T) {
	var a Allocator
	a.Next(Input)
	if got := a.Next(Scrollable).String(); got != "scrollable-2" {
		t.Errorf("String() = %q, want scrollable-2", got)
	}
	if got := (ID{}).String(); got != "none" {
		t.Errorf("zero String() = %q, want none", got)
	}
}
