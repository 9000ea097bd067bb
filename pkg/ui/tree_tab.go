package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lazyview/pkg/export"
	"github.com/vanderheijden86/lazyview/pkg/store"
	"github.com/vanderheijden86/lazyview/pkg/tree"
)

// TreeModel is the outline tab: a collapsible tree of editable entries with
// multi-selection.
type TreeModel struct {
	theme Theme
	keys  listKeys

	outline *tree.Outline
	file    *store.OutlineFile
	loaded  bool
	dirty   bool
	saving  bool

	cursor  int // position in the visible rows
	rows    rowWindow
	editor  textinput.Model
	editing tree.NodeID
	// Text before the edit, and whether a/A created the entry.
	original string
	created  bool
}

// NewTreeModel creates the tab. With a nil file the sample outline is shown
// and nothing is persisted.
func NewTreeModel(theme Theme, file *store.OutlineFile) *TreeModel {
	editor := textinput.New()
	editor.Placeholder = "New entry"
	editor.Prompt = ""

	m := &TreeModel{
		theme:   theme,
		keys:    defaultListKeys(),
		file:    file,
		editor:  editor,
		editing: tree.NoNode,
	}
	if file == nil {
		m.outline = tree.NewOutline(tree.Sample())
		m.loaded = true
	}
	return m
}

func (m *TreeModel) Title() string {
	if m.dirty {
		return "Tree*"
	}
	return "Tree"
}

// Outline exposes the tree and selection (for tests and export).
func (m *TreeModel) Outline() *tree.Outline {
	return m.outline
}

func (m *TreeModel) Capturing() bool {
	return m.editing != tree.NoNode
}

func (m *TreeModel) Init() tea.Cmd {
	if m.file == nil {
		return nil
	}
	f := *m.file
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		t, err := f.Load(ctx)
		return outlineLoadedMsg{tree: t, err: err}
	}
}

func (m *TreeModel) saveCmd() tea.Cmd {
	if m.file == nil || !m.dirty || m.saving {
		return nil
	}
	m.dirty = false
	m.saving = true
	f := *m.file
	snapshot := tree.FromSaved(m.outline.Saved())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return outlineSavedMsg{err: f.Save(ctx, snapshot)}
	}
}

func (m *TreeModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case outlineLoadedMsg:
		m.outline = tree.NewOutline(msg.tree)
		m.loaded = true
		m.cursor = 0
		if msg.err != nil && !store.IsNotExist(msg.err) {
			log.Printf("warning: loading outline, using sample: %v", msg.err)
			return statusCmd("Outline unreadable, showing sample", true)
		}
		return nil

	case outlineSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.dirty = true
			log.Printf("warning: saving outline: %v", msg.err)
			return statusCmd("Save failed: "+msg.err.Error(), true)
		}
		return m.saveCmd()

	case clipboardMsg:
		if msg.err != nil {
			return statusCmd("Clipboard unavailable: "+msg.err.Error(), true)
		}
		if n := strings.Count(msg.text, "\n"); n > 1 {
			return statusCmd(fmt.Sprintf("Copied %d lines", n), false)
		}
		return statusCmd("Copied "+truncate(msg.text, 40), false)

	case tea.KeyMsg:
		if !m.loaded {
			return nil
		}
		if m.editing != tree.NoNode {
			return tea.Batch(m.handleEditKey(msg), m.saveCmd())
		}
		return tea.Batch(m.handleKey(msg), m.saveCmd())
	}
	return nil
}

// current returns the flat index under the cursor.
func (m *TreeModel) current(flat []tree.FlatEntry) (int, bool) {
	rows := tree.VisibleRows(flat)
	if len(rows) == 0 {
		return 0, false
	}
	m.cursor = clampCursor(m.cursor, len(rows))
	return rows[m.cursor], true
}

// moveTo puts the cursor on the entry with handle id if it is visible.
func (m *TreeModel) moveTo(id tree.NodeID) {
	flat := m.outline.Flatten()
	for i, row := range tree.VisibleRows(flat) {
		if flat[row].Node == id {
			m.cursor = i
			return
		}
	}
}

func (m *TreeModel) startEditing(flatID int, created bool) tea.Cmd {
	e, ok := m.outline.Get(flatID)
	if !ok {
		return nil
	}
	id, _ := m.outline.Lookup(flatID)
	m.editing = id
	m.original = e.Text
	m.created = created
	m.moveTo(id)
	m.editor.SetValue(e.Text)
	m.editor.CursorEnd()
	return m.editor.Focus()
}

func (m *TreeModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	flat := m.outline.Flatten()
	n := len(tree.VisibleRows(flat))

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, n)
		return nil
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, n)
		return nil
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		return nil
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = clampCursor(n-1, n)
		return nil
	case key.Matches(msg, m.keys.PgUp):
		m.cursor = clampCursor(m.cursor-10, n)
		return nil
	case key.Matches(msg, m.keys.PgDown):
		m.cursor = clampCursor(m.cursor+10, n)
		return nil
	}

	switch msg.String() {
	case "A":
		m.dirty = true
		return m.startEditing(m.outline.AddRoot(), true)
	case "E":
		m.outline.SetCollapsedAll(false)
		m.dirty = true
		return nil
	case "C":
		m.outline.SetCollapsedAll(true)
		m.cursor = clampCursor(m.cursor, len(tree.VisibleRows(m.outline.Flatten())))
		m.dirty = true
		return nil
	case "D":
		if m.outline.Selection.Len() == 0 {
			return statusCmd("Nothing selected", false)
		}
		removed := m.outline.DeleteSelected()
		m.dirty = true
		m.cursor = clampCursor(m.cursor, len(tree.VisibleRows(m.outline.Flatten())))
		return statusCmd(fmt.Sprintf("Deleted %d entr%s", removed, pluralY(removed)), false)
	case "esc":
		m.outline.Selection.Clear()
		return nil
	case "Y":
		return copyCmd(export.OutlineMarkdown(flat))
	}

	at, ok := m.current(flat)
	if !ok {
		return nil
	}
	entry := flat[at]

	switch msg.String() {
	case " ", "enter", "l", "h", "right", "left":
		if !entry.HasChildren || entry.Editing {
			return nil
		}
		switch msg.String() {
		case "l", "right":
			if !entry.Collapsed {
				return nil
			}
		case "h", "left":
			if entry.Collapsed {
				return nil
			}
		}
		m.outline.ToggleCollapse(at)
		m.dirty = true
	case "a":
		if entry.Collapsed {
			m.outline.ToggleCollapse(at)
		}
		child, ok := m.outline.AddChild(at)
		if !ok {
			return nil
		}
		m.dirty = true
		return m.startEditing(child, true)
	case "e":
		m.outline.StartEdit(at)
		return m.startEditing(at, false)
	case "d", "delete":
		m.outline.Delete(at)
		m.dirty = true
		m.cursor = clampCursor(m.cursor, len(tree.VisibleRows(m.outline.Flatten())))
	case "s", "x":
		m.outline.ToggleSelect(at)
	case "y":
		return copyCmd(entry.Description)
	}
	return nil
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{text: text, err: clipboard.WriteAll(text)}
	}
}

func (m *TreeModel) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	at, ok := m.outline.FlatIndex(m.editing)
	if !ok {
		m.stopEditing()
		return nil
	}

	switch msg.String() {
	case "enter":
		m.outline.EditText(at, m.editor.Value())
		if m.outline.FinishEdit(at) {
			m.stopEditing()
			m.dirty = true
		}
		return nil
	case "esc":
		text := m.editor.Value()
		switch {
		case text == "" && m.created:
			// A new entry that never got text is dropped.
			m.outline.Delete(at)
			m.cursor = clampCursor(m.cursor, len(tree.VisibleRows(m.outline.Flatten())))
			m.dirty = true
		case text == "":
			m.outline.EditText(at, m.original)
			m.outline.FinishEdit(at)
		default:
			m.outline.EditText(at, text)
			m.outline.FinishEdit(at)
			m.dirty = m.dirty || text != m.original
		}
		m.stopEditing()
		return nil
	case "ctrl+x":
		m.outline.Delete(at)
		m.stopEditing()
		m.dirty = true
		m.cursor = clampCursor(m.cursor, len(tree.VisibleRows(m.outline.Flatten())))
		return nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.outline.EditText(at, m.editor.Value())
	return cmd
}

func (m *TreeModel) stopEditing() {
	m.editing = tree.NoNode
	m.original = ""
	m.created = false
	m.editor.Blur()
	m.editor.SetValue("")
}

func (m *TreeModel) Hints() string {
	if m.editing != tree.NoNode {
		return "enter: save • esc: done • ctrl+x: delete"
	}
	return "space: fold • a/A: add child/root • e: edit • d: delete • s: select • D: delete selected • y/Y: copy"
}

func (m *TreeModel) View(width, height int) string {
	t := m.theme
	r := t.Renderer
	if !m.loaded {
		return r.NewStyle().Foreground(t.Muted).Render("Loading outline...")
	}

	flat := m.outline.Flatten()
	rows := tree.VisibleRows(flat)

	header := r.NewStyle().Foreground(t.Primary).Bold(true).Render("Outline")
	if n := m.outline.Selection.Len(); n > 0 {
		header += r.NewStyle().Foreground(t.Highlight).Render(fmt.Sprintf("  %d selected", n))
	}
	listHeight := max(height-2, 1)

	if len(rows) == 0 {
		empty := r.NewStyle().Foreground(t.Muted).Italic(true).Render("Empty outline. Press A to add an entry.")
		return lipgloss.JoinVertical(lipgloss.Left, header, "", empty)
	}
	m.cursor = clampCursor(m.cursor, len(rows))

	rng := m.rows.visible(len(rows), listHeight, m.cursor)
	lines := make([]string, 0, rng.Len())
	for i := rng.Start; i <= rng.End; i++ {
		lines = append(lines, m.renderRow(rows[i], flat[rows[i]], i == m.cursor, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", strings.Join(lines, "\n"))
}

func (m *TreeModel) renderRow(flatID int, e tree.FlatEntry, isCursor bool, width int) string {
	t := m.theme
	r := t.Renderer
	var sb strings.Builder

	prefix := m.branchPrefix(e.Node)
	sb.WriteString(r.NewStyle().Foreground(t.Muted).Render(prefix))

	indicator := "•"
	switch {
	case e.HasChildren && e.Collapsed:
		indicator = "▸"
	case e.HasChildren:
		indicator = "▾"
	}
	sb.WriteString(r.NewStyle().Foreground(t.Secondary).Render(indicator))
	sb.WriteString(" ")

	if e.Editing && e.Node == m.editing {
		m.editor.Width = max(width-lipgloss.Width(prefix)-4, 10)
		sb.WriteString(m.editor.View())
		return sb.String()
	}

	text := truncate(e.Description, width-lipgloss.Width(prefix)-4)
	style := t.Base
	switch {
	case m.outline.Selection.Contains(flatID):
		style = t.Marked
	case e.Editing:
		style = r.NewStyle().Foreground(t.Danger).Italic(true)
	}
	line := sb.String() + style.Render(text)
	if isCursor {
		line = t.Selected.Render(line)
	}
	return line
}

// branchPrefix draws the guide lines for id from its ancestors.
func (m *TreeModel) branchPrefix(id tree.NodeID) string {
	node := m.outline.Node(id)
	if node == nil || node.Parent() == tree.NoNode {
		return ""
	}

	var parts []string
	if m.isLast(id) {
		parts = append(parts, "└── ")
	} else {
		parts = append(parts, "├── ")
	}
	for p := node.Parent(); m.outline.Node(p).Parent() != tree.NoNode; p = m.outline.Node(p).Parent() {
		if m.isLast(p) {
			parts = append(parts, "    ")
		} else {
			parts = append(parts, "│   ")
		}
	}

	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteString(parts[i])
	}
	return sb.String()
}

func (m *TreeModel) isLast(id tree.NodeID) bool {
	siblings := m.outline.Roots()
	if p := m.outline.Node(id).Parent(); p != tree.NoNode {
		siblings = m.outline.Node(p).Children()
	}
	return len(siblings) > 0 && siblings[len(siblings)-1] == id
}

func (m *TreeModel) HelpMarkdown() string {
	return helpTree
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
