package tree

// SavedNode is the persisted form of an entry. Edit state is not saved; an
// entry that was still being edited comes back in the state it had before the
// edit, and one that never got any text is dropped.
type SavedNode struct {
	Text      string      `json:"text"`
	Collapsed bool        `json:"collapsed,omitempty"`
	Children  []SavedNode `json:"children,omitempty"`
}

// Saved returns the persisted form of the tree's roots.
func (t *Tree) Saved() []SavedNode {
	return t.saved(t.roots)
}

func (t *Tree) saved(ids []NodeID) []SavedNode {
	var out []SavedNode
	for _, id := range ids {
		e := t.nodes[id]
		if e.State == Editing && e.Text == "" {
			continue
		}
		out = append(out, SavedNode{
			Text:      e.Text,
			Collapsed: e.hidesChildren(),
			Children:  t.saved(e.children),
		})
	}
	return out
}

// FromSaved rebuilds a tree from its persisted form.
func FromSaved(nodes []SavedNode) *Tree {
	return Build(specsOf(nodes)...)
}

func specsOf(nodes []SavedNode) []Spec {
	specs := make([]Spec, 0, len(nodes))
	for _, n := range nodes {
		s := E(n.Text, specsOf(n.Children)...)
		if n.Collapsed {
			s = s.Collapsed()
		}
		specs = append(specs, s)
	}
	return specs
}
