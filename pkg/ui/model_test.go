package ui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lazyview/pkg/store"
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	opts.Renderer = lipgloss.NewRenderer(io.Discard)
	m := NewModel(opts)
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

// send delivers msg to the root model and returns the updated copy.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// TestModelStartTab verifies the configured tab is shown first
func TestModelStartTab(t *testing.T) {
	tests := []struct {
		tab  string
		want string
	}{
		{"", "Checklist"},
		{"checklist", "Checklist"},
		{"tree", "Tree"},
		{"lazy-scroll", "Lazy Scroll"},
		{"tiles", "Tiles"},
		{"nonsense", "Checklist"},
	}
	for _, tt := range tests {
		m := newTestModel(t, Options{StartTab: tt.tab})
		if got := m.ActiveTitle(); got != tt.want {
			t.Errorf("StartTab %q: active tab %q, want %q", tt.tab, got, tt.want)
		}
	}
}

// TestModelTabSwitching verifies ctrl+n/ctrl+p cycle and number keys jump
func TestModelTabSwitching(t *testing.T) {
	m := newTestModel(t, Options{StartTab: "tree"})

	m = send(t, m, specialKey(tea.KeyCtrlN))
	if got := m.ActiveTitle(); got != "Lazy Scroll" {
		t.Errorf("ctrl+n: got %q", got)
	}
	m = send(t, m, specialKey(tea.KeyCtrlN))
	m = send(t, m, specialKey(tea.KeyCtrlN))
	if got := m.ActiveTitle(); got != "Checklist" {
		t.Errorf("ctrl+n should wrap to the first tab, got %q", got)
	}
	m = send(t, m, specialKey(tea.KeyCtrlP))
	if got := m.ActiveTitle(); got != "Tiles" {
		t.Errorf("ctrl+p should wrap to the last tab, got %q", got)
	}

	m = send(t, m, keyMsg("3"))
	if got := m.ActiveTitle(); got != "Tree" {
		t.Errorf("3 should jump to Tree, got %q", got)
	}
}

// TestModelCapturingTabGetsDigits verifies number keys reach a focused text
// field instead of switching tabs
func TestModelCapturingTabGetsDigits(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, keyMsg("3"))
	m = send(t, m, keyMsg("q"))

	if got := m.ActiveTitle(); got != "Checklist" {
		t.Errorf("tab switched while typing: %q", got)
	}
	if got := m.Checklist().input.Value(); got != "3q" {
		t.Errorf("expected input '3q', got %q", got)
	}
}

// TestModelQuit verifies q quits unless a tab is capturing, and ctrl+c
// always quits
func TestModelQuit(t *testing.T) {
	m := newTestModel(t, Options{StartTab: "tree"})
	if _, cmd := m.Update(keyMsg("q")); !isQuit(cmd) {
		t.Error("q should quit from the tree tab")
	}

	m = newTestModel(t, Options{})
	if _, cmd := m.Update(keyMsg("q")); isQuit(cmd) {
		t.Error("q should be typed into the checklist input, not quit")
	}
	if _, cmd := m.Update(specialKey(tea.KeyCtrlC)); !isQuit(cmd) {
		t.Error("ctrl+c should always quit")
	}
}

// TestModelHelpOverlay verifies ? opens help and esc closes it
func TestModelHelpOverlay(t *testing.T) {
	m := newTestModel(t, Options{StartTab: "tree"})

	m = send(t, m, keyMsg("?"))
	if !m.showHelp {
		t.Fatal("expected help overlay")
	}
	view := m.View()
	if !strings.Contains(view, "esc, ?: close") {
		t.Errorf("help footer missing:\n%s", view)
	}
	if !strings.Contains(view, "Tree") {
		t.Errorf("tree help missing:\n%s", view)
	}

	// Keys do not reach the tab while help is open.
	m = send(t, m, keyMsg("d"))
	if m.Tree().Outline().Len() != 6 {
		t.Error("keys leaked through the help overlay")
	}

	m = send(t, m, specialKey(tea.KeyEsc))
	if m.showHelp {
		t.Error("esc should close help")
	}
}

// TestModelStatusBar verifies status messages show until the next key
func TestModelStatusBar(t *testing.T) {
	m := newTestModel(t, Options{StartTab: "tree"})
	m = send(t, m, statusMsg{text: "Copied entry 1"})

	if view := m.View(); !strings.Contains(view, "Copied entry 1") {
		t.Errorf("status missing:\n%s", view)
	}
	m = send(t, m, keyMsg("j"))
	if view := m.View(); strings.Contains(view, "Copied entry 1") {
		t.Errorf("status should clear on the next key:\n%s", view)
	}
}

// TestModelViewRendersEveryTab verifies every tab renders at several sizes
func TestModelViewRendersEveryTab(t *testing.T) {
	sizes := []tea.WindowSizeMsg{{Width: 100, Height: 30}, {Width: 40, Height: 10}, {Width: 20, Height: 5}}
	for _, size := range sizes {
		m := newTestModel(t, Options{})
		m = send(t, m, size)
		for i := 0; i < 5; i++ {
			view := m.View()
			if view == "" {
				t.Errorf("empty view for tab %q at %dx%d", m.ActiveTitle(), size.Width, size.Height)
			}
			if !strings.Contains(view, "1 Checklist") {
				t.Errorf("tab bar missing at %dx%d:\n%s", size.Width, size.Height, view)
			}
			m = send(t, m, specialKey(tea.KeyCtrlN))
		}
	}
}

// TestModelBroadcastsLoads verifies results of background loads reach tabs
// that are not visible
func TestModelBroadcastsLoads(t *testing.T) {
	dir := t.TempDir()
	s := store.NewJSONStore(filepath.Join(dir, store.TodosJSONFile))
	m := newTestModel(t, Options{Store: s, StartTab: "tree"})

	msgs := collect(m.Todos().Init())
	if len(msgs) != 1 {
		t.Fatalf("expected one load result, got %d", len(msgs))
	}
	m = send(t, m, msgs[0])
	if !m.Todos().Loaded() {
		t.Error("todos should load while another tab is visible")
	}
}

// TestModelWidgetIDsAreDistinct verifies each pane gets its own identifier
func TestModelWidgetIDsAreDistinct(t *testing.T) {
	m := newTestModel(t, Options{})
	ids := []string{
		m.Todos().InputID().String(),
		m.LazyScroll().scrollID.String(),
		m.Tiles().Pane().ScrollID.String(),
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "none" || seen[id] {
			t.Errorf("bad or duplicate id %q in %v", id, ids)
		}
		seen[id] = true
	}
}
