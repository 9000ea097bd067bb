// Package widget allocates identifiers for focusable and scrollable panes.
//
// Each pane gets its ID when it is constructed and keeps it for its
// lifetime; messages that target a pane (focus, scroll) carry the ID
// explicitly.
package widget

import "fmt"

// Kind is the sort of widget an ID refers to.
type Kind int

const (
	Input Kind = iota
	Scrollable
	Pane
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Scrollable:
		return "scrollable"
	case Pane:
		return "pane"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ID identifies one widget. The zero ID is never allocated.
type ID struct {
	Kind Kind
	N    int
}

// IsZero reports whether id was never allocated.
func (id ID) IsZero() bool {
	return id.N == 0
}

func (id ID) String() string {
	if id.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%s-%d", id.Kind, id.N)
}

// Allocator hands out IDs. It is owned by the root model and is not safe
// for concurrent use.
type Allocator struct {
	next int
}

// Next returns a fresh ID of the given kind.
func (a *Allocator) Next(kind Kind) ID {
	a.next++
	return ID{Kind: kind, N: a.next}
}
