package tree

import "sort"

// Selection is a set of flat indices. It says nothing about the tree it was
// taken from, so it must be cleared whenever entries shift.
type Selection struct {
	ids map[int]struct{}
}

// Toggle flips membership of id and reports whether it is now selected.
func (s *Selection) Toggle(id int) bool {
	if s.ids == nil {
		s.ids = make(map[int]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected indices.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
}

// IDs returns the selected indices in ascending order.
func (s *Selection) IDs() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Outline is a tree together with a selection over its flat indices.
// Structural changes made through Outline clear the selection.
type Outline struct {
	*Tree
	Selection Selection
}

// NewOutline wraps t. A nil t starts an empty outline.
func NewOutline(t *Tree) *Outline {
	if t == nil {
		t = New()
	}
	return &Outline{Tree: t}
}

// AddChild appends an empty entry being edited under flatID and clears the
// selection, since every later flat index shifts by one.
func (o *Outline) AddChild(flatID int) (int, bool) {
	child, ok := o.Tree.AddChild(flatID)
	if ok {
		o.Selection.Clear()
	}
	return child, ok
}

// AddRoot appends a top-level entry being edited and returns its flat index.
func (o *Outline) AddRoot() int {
	id := o.Tree.AddRoot("")
	o.Tree.nodes[id].State = Editing
	o.Selection.Clear()
	return o.Tree.Len() - 1
}

// Delete removes the entry at flatID and its descendants and clears the
// selection.
func (o *Outline) Delete(flatID int) bool {
	ok := o.Tree.Delete(flatID)
	if ok {
		o.Selection.Clear()
	}
	return ok
}

// ToggleSelect flips selection of the entry at flatID. Indices outside the
// tree are ignored.
func (o *Outline) ToggleSelect(flatID int) bool {
	if flatID < 0 || flatID >= o.Tree.Len() {
		return false
	}
	o.Selection.Toggle(flatID)
	return true
}

// DeleteSelected removes every selected entry and returns how many were
// removed. Entries already removed along with an ancestor are not counted.
func (o *Outline) DeleteSelected() int {
	ids := o.Selection.IDs()
	handles := make([]NodeID, 0, len(ids))
	for _, id := range ids {
		if h, ok := o.Tree.Lookup(id); ok {
			handles = append(handles, h)
		}
	}
	removed := 0
	for _, h := range handles {
		if at, ok := o.Tree.FlatIndex(h); ok && o.Tree.Delete(at) {
			removed++
		}
	}
	o.Selection.Clear()
	return removed
}
