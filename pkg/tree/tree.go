// Package tree holds a nested outline of labelled entries and addresses it by
// flat index: the position of a node in a depth-first pre-order walk that
// counts every node, hidden or not.
//
// Nodes live in an arena and refer to their children by handle, so there is
// no recursive ownership chain to walk when mutating. The flat index is the
// address views use: a row drawn from Flatten()[i] is mutated with the same i.
package tree

import "fmt"

// State is the display state of an entry.
type State int

const (
	// Show means the entry's children are expanded.
	Show State = iota
	// Hide means the entry is collapsed; its descendants are not visible.
	Hide
	// Editing means the entry's text is being edited.
	Editing
)

func (s State) String() string {
	switch s {
	case Show:
		return "show"
	case Hide:
		return "hide"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// NodeID is a stable handle to an entry in the arena. Handles of deleted
// entries may be reused.
type NodeID int32

// NoNode is the handle of no entry.
const NoNode NodeID = -1

// Entry is one node of the outline.
type Entry struct {
	Text  string
	State State

	// resume is the state FinishEdit returns to.
	resume   State
	parent   NodeID
	children []NodeID
}

// HasChildren reports whether the entry has at least one child.
func (e *Entry) HasChildren() bool {
	return len(e.children) > 0
}

// hidesChildren reports whether the entry is collapsed, or is being edited
// after having been collapsed.
func (e *Entry) hidesChildren() bool {
	return e.State == Hide || (e.State == Editing && e.resume == Hide)
}

// Parent returns the handle of the entry's parent, or NoNode for a root.
func (e *Entry) Parent() NodeID {
	return e.parent
}

// Children returns the handles of the entry's children in order. The slice
// must not be modified.
func (e *Entry) Children() []NodeID {
	return e.children
}

// Tree is an ordered forest of entries.
type Tree struct {
	nodes []*Entry // arena; nil slots are free
	free  []NodeID
	roots []NodeID
	count int
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Len returns the number of entries, visible or not.
func (t *Tree) Len() int {
	return t.count
}

// IsEmpty reports whether the tree has no entries.
func (t *Tree) IsEmpty() bool {
	return t.count == 0
}

// Roots returns the handles of the top-level entries. The slice must not be
// modified.
func (t *Tree) Roots() []NodeID {
	return t.roots
}

// Node returns the entry for a handle, or nil if the handle is not live.
func (t *Tree) Node(id NodeID) *Entry {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// AddRoot appends a top-level entry and returns its handle.
func (t *Tree) AddRoot(text string) NodeID {
	id := t.alloc(&Entry{Text: text, State: Show, parent: NoNode})
	t.roots = append(t.roots, id)
	return id
}

// Append adds an entry as the last child of parent and returns its handle.
// It returns NoNode if parent is not live.
func (t *Tree) Append(parent NodeID, text string, state State) NodeID {
	p := t.Node(parent)
	if p == nil {
		return NoNode
	}
	id := t.alloc(&Entry{Text: text, State: state, parent: parent})
	p.children = append(p.children, id)
	return id
}

// Depth returns the number of ancestors of an entry, or -1 if the handle is
// not live.
func (t *Tree) Depth(id NodeID) int {
	e := t.Node(id)
	if e == nil {
		return -1
	}
	depth := 0
	for e.parent != NoNode {
		depth++
		e = t.nodes[e.parent]
	}
	return depth
}

func (t *Tree) alloc(e *Entry) NodeID {
	t.count++
	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[id] = e
		return id
	}
	t.nodes = append(t.nodes, e)
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) release(id NodeID) {
	for _, c := range t.nodes[id].children {
		t.release(c)
	}
	t.nodes[id] = nil
	t.free = append(t.free, id)
	t.count--
}

// Spec describes an entry and its children for literal construction.
type Spec struct {
	Text     string
	State    State
	Children []Spec
}

// E returns a shown entry spec with the given children.
func E(text string, children ...Spec) Spec {
	return Spec{Text: text, State: Show, Children: children}
}

// Collapsed returns a copy of s in the Hide state.
func (s Spec) Collapsed() Spec {
	s.State = Hide
	return s
}

// Build returns a tree holding the given entries as roots.
func Build(specs ...Spec) *Tree {
	t := New()
	for _, s := range specs {
		id := t.AddRoot(s.Text)
		t.nodes[id].State = s.State
		t.buildChildren(id, s.Children)
	}
	return t
}

func (t *Tree) buildChildren(parent NodeID, specs []Spec) {
	for _, s := range specs {
		id := t.Append(parent, s.Text, s.State)
		t.buildChildren(id, s.Children)
	}
}

// Sample returns the outline the tree tab starts with.
func Sample() *Tree {
	return Build(
		E("entry 1"),
		E("entry 2",
			E("2.1"),
			E("2.2", E("2.2.1")),
		),
		E("entry 3"),
	)
}
