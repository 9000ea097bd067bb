package tree

import "fmt"

// ToggleCollapse flips the entry at flatID between Show and Hide. It returns
// false if there is no such entry.
//
// Collapsing an entry that is being edited is a caller bug and panics; views
// never offer the control while an edit is open.
func (t *Tree) ToggleCollapse(flatID int) bool {
	e, ok := t.Get(flatID)
	if !ok {
		return false
	}
	switch e.State {
	case Show:
		e.State = Hide
	case Hide:
		e.State = Show
	default:
		panic(fmt.Sprintf("tree: ToggleCollapse on entry %d in state %v", flatID, e.State))
	}
	return true
}

// AddChild appends an empty entry in the Editing state as the last child of
// the entry at flatID and returns the new entry's flat index.
func (t *Tree) AddChild(flatID int) (int, bool) {
	parent, ok := t.Lookup(flatID)
	if !ok {
		return 0, false
	}
	child := t.Append(parent, "", Editing)
	return t.FlatIndex(child)
}

// EditText replaces the text of the entry at flatID.
func (t *Tree) EditText(flatID int, text string) bool {
	e, ok := t.Get(flatID)
	if !ok {
		return false
	}
	e.Text = text
	return true
}

// StartEdit puts the entry at flatID in the Editing state. A collapsed entry
// stays collapsed once the edit is finished.
func (t *Tree) StartEdit(flatID int) bool {
	e, ok := t.Get(flatID)
	if !ok {
		return false
	}
	if e.State != Editing {
		e.resume = e.State
		e.State = Editing
	}
	return true
}

// FinishEdit leaves the Editing state when the entry has text, returning to
// the state it had before the edit (Show for new entries). Entries with empty
// text stay in Editing. It returns whether the edit was committed.
func (t *Tree) FinishEdit(flatID int) bool {
	e, ok := t.Get(flatID)
	if !ok || e.State != Editing || e.Text == "" {
		return false
	}
	e.State = e.resume
	e.resume = Show
	return true
}

// Delete removes the entry at flatID together with its descendants.
func (t *Tree) Delete(flatID int) bool {
	id, ok := t.Lookup(flatID)
	if !ok {
		return false
	}
	e := t.nodes[id]
	if e.parent == NoNode {
		t.roots = without(t.roots, id)
	} else {
		p := t.nodes[e.parent]
		p.children = without(p.children, id)
	}
	t.release(id)
	return true
}

// SetCollapsedAll collapses or expands every entry that has children.
// Entries being edited are left alone.
func (t *Tree) SetCollapsedAll(collapsed bool) {
	want := Show
	if collapsed {
		want = Hide
	}
	for _, e := range t.nodes {
		if e == nil || e.State == Editing || len(e.children) == 0 {
			continue
		}
		e.State = want
	}
}

func without(ids []NodeID, id NodeID) []NodeID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
