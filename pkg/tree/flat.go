package tree

// FlatEntry is a read-only projection of one entry at flatten time.
type FlatEntry struct {
	Node        NodeID
	Depth       int
	Visible     bool // no ancestor is collapsed
	HasChildren bool
	Collapsed   bool
	Editing     bool
	Description string
}

// Flatten returns every entry in depth-first pre-order. The position of an
// entry in the result is its flat index.
func (t *Tree) Flatten() []FlatEntry {
	out := make([]FlatEntry, 0, t.count)
	for _, id := range t.roots {
		out = t.flatten(out, id, true, 0)
	}
	return out
}

func (t *Tree) flatten(out []FlatEntry, id NodeID, visible bool, depth int) []FlatEntry {
	e := t.nodes[id]
	out = append(out, FlatEntry{
		Node:        id,
		Depth:       depth,
		Visible:     visible,
		HasChildren: len(e.children) > 0,
		Collapsed:   e.State == Hide,
		Editing:     e.State == Editing,
		Description: e.Text,
	})

	childrenVisible := visible && !e.hidesChildren()
	for _, c := range e.children {
		out = t.flatten(out, c, childrenVisible, depth+1)
	}
	return out
}

// VisibleRows returns the flat indices of the entries not hidden by a
// collapsed ancestor, in order.
func VisibleRows(flat []FlatEntry) []int {
	rows := make([]int, 0, len(flat))
	for i, e := range flat {
		if e.Visible {
			rows = append(rows, i)
		}
	}
	return rows
}

// Lookup returns the handle of the entry at flat index flatID.
func (t *Tree) Lookup(flatID int) (NodeID, bool) {
	if flatID < 0 {
		return NoNode, false
	}
	budget := flatID
	for _, root := range t.roots {
		var hit NodeID
		var ok bool
		budget, hit, ok = t.lookup(root, budget)
		if ok {
			return hit, true
		}
	}
	return NoNode, false
}

// lookup spends one unit of budget per entry walked and returns the entry
// where the budget runs out, or the residual budget if the subtree is too
// small.
func (t *Tree) lookup(id NodeID, budget int) (int, NodeID, bool) {
	if budget == 0 {
		return 0, id, true
	}
	budget--
	for _, c := range t.nodes[id].children {
		var hit NodeID
		var ok bool
		budget, hit, ok = t.lookup(c, budget)
		if ok {
			return 0, hit, true
		}
	}
	return budget, NoNode, false
}

// Get returns the entry at flat index flatID.
func (t *Tree) Get(flatID int) (*Entry, bool) {
	id, ok := t.Lookup(flatID)
	if !ok {
		return nil, false
	}
	return t.nodes[id], true
}

// FlatIndex returns the flat index of a live entry.
func (t *Tree) FlatIndex(id NodeID) (int, bool) {
	if t.Node(id) == nil {
		return 0, false
	}
	index := 0
	for _, root := range t.roots {
		n, found := t.indexOf(root, id)
		if found {
			return index + n, true
		}
		index += n
	}
	return 0, false
}

// indexOf returns the offset of target within the subtree at id when found,
// otherwise the size of the subtree.
func (t *Tree) indexOf(id, target NodeID) (int, bool) {
	if id == target {
		return 0, true
	}
	n := 1
	for _, c := range t.nodes[id].children {
		m, found := t.indexOf(c, target)
		if found {
			return n + m, true
		}
		n += m
	}
	return n, false
}
