package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lazyview/pkg/store"
	"github.com/vanderheijden86/lazyview/pkg/todo"
	"github.com/vanderheijden86/lazyview/pkg/widget"
)

const storeTimeout = 5 * time.Second

type todosFocus int

const (
	todosFocusInput todosFocus = iota
	todosFocusList
)

// TodosModel is the todo list tab: an input line for new tasks, a filtered
// list and autosave through a store.
type TodosModel struct {
	theme Theme
	keys  listKeys
	store store.Store

	list   *todo.List
	loaded bool

	input   textinput.Model
	inputID widget.ID
	editor  textinput.Model
	editing int // task position being edited, -1 when none

	focus  todosFocus
	cursor int // index into list.Visible()
	rows   rowWindow

	picker       *FilterPickerModel
	confirm      *huh.Form
	confirmClear bool
}

// NewTodosModel creates the tab. A nil store keeps the list in memory only.
func NewTodosModel(theme Theme, s store.Store, ids *widget.Allocator) *TodosModel {
	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.Prompt = "› "

	editor := textinput.New()
	editor.Placeholder = "Describe your task..."
	editor.Prompt = ""

	return &TodosModel{
		theme:   theme,
		keys:    defaultListKeys(),
		store:   s,
		list:    &todo.List{},
		input:   input,
		inputID: ids.Next(widget.Input),
		editor:  editor,
		editing: -1,
	}
}

func (m *TodosModel) Title() string {
	if !m.loaded {
		return "Todos"
	}
	return m.list.Title()
}

// InputID identifies the new-task input.
func (m *TodosModel) InputID() widget.ID {
	return m.inputID
}

// List exposes the underlying list (for tests and export).
func (m *TodosModel) List() *todo.List {
	return m.list
}

// Loaded reports whether the initial load finished.
func (m *TodosModel) Loaded() bool {
	return m.loaded
}

// Capturing reports whether keys should go to a text field or modal rather
// than the global bindings.
func (m *TodosModel) Capturing() bool {
	return m.loaded && (m.focus == todosFocusInput || m.editing >= 0 || m.picker != nil || m.confirm != nil)
}

func (m *TodosModel) Init() tea.Cmd {
	return m.loadCmd(false)
}

func (m *TodosModel) loadCmd(reload bool) tea.Cmd {
	s := m.store
	if s == nil {
		return func() tea.Msg {
			return todosLoadedMsg{err: &store.LoadError{Kind: store.LoadFile, Err: fmt.Errorf("no store configured")}}
		}
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		state, err := s.Load(ctx)
		return todosLoadedMsg{state: state, err: err, reload: reload}
	}
}

// saveCmd writes the list if it has unsaved changes and no write is in
// flight.
func (m *TodosModel) saveCmd() tea.Cmd {
	snap, ok := m.list.PendingSave()
	if !ok {
		return nil
	}
	s := m.store
	if s == nil {
		m.list.Saved(nil)
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return todosSavedMsg{err: s.Save(ctx, snap)}
	}
}

func (m *TodosModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		return m.handleLoaded(msg)

	case todosSavedMsg:
		m.list.Saved(msg.err)
		if msg.err != nil {
			log.Printf("warning: saving todos: %v", msg.err)
			return statusCmd("Save failed: "+msg.err.Error(), true)
		}
		// Changes made while the write was in flight.
		return m.saveCmd()

	case todosChangedMsg:
		if m.loaded && !m.list.Dirty() && !m.list.Saving() && m.editing < 0 {
			return m.loadCmd(true)
		}
		return nil

	case tea.KeyMsg:
		if !m.loaded {
			return nil
		}
		cmd := m.handleKey(msg)
		return tea.Batch(cmd, m.saveCmd())
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	return nil
}

func (m *TodosModel) handleLoaded(msg todosLoadedMsg) tea.Cmd {
	if msg.reload {
		if msg.err != nil {
			log.Printf("warning: reloading todos: %v", msg.err)
			return nil
		}
		if m.list.Dirty() || m.list.Saving() || m.editing >= 0 || sameTodos(m.list.Snapshot(), msg.state) {
			return nil
		}
		m.list = todo.FromSaved(msg.state)
		m.input.SetValue(m.list.InputValue)
		m.cursor = clampCursor(m.cursor, len(m.list.Visible()))
		return statusCmd("Todos reloaded from disk", false)
	}

	if msg.err != nil {
		if m.store != nil && !store.IsNotExist(msg.err) {
			log.Printf("warning: loading todos, starting empty: %v", msg.err)
		}
		m.list = &todo.List{}
	} else {
		m.list = todo.FromSaved(msg.state)
	}
	m.loaded = true
	m.input.SetValue(m.list.InputValue)
	m.focus = todosFocusInput
	return m.input.Focus()
}

func (m *TodosModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case m.confirm != nil:
		if msg.String() == "esc" {
			m.confirm = nil
			return nil
		}
		return m.updateConfirm(msg)
	case m.picker != nil:
		return m.handlePickerKey(msg)
	case m.editing >= 0:
		return m.handleEditKey(msg)
	case m.focus == todosFocusInput:
		return m.handleInputKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *TodosModel) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, focusKeys.Next, focusKeys.Prev), msg.String() == "esc":
		m.focus = todosFocusList
		m.input.Blur()
		return nil
	case msg.String() == "enter":
		m.list.InputChanged(m.input.Value())
		m.list.CreateTask()
		m.input.SetValue(m.list.InputValue)
		return nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.list.InputChanged(v)
	}
	return cmd
}

func (m *TodosModel) handleListKey(msg tea.KeyMsg) tea.Cmd {
	visible := m.list.Visible()
	m.cursor = clampCursor(m.cursor, len(visible))

	switch {
	case key.Matches(msg, focusKeys.Next, focusKeys.Prev):
		m.focus = todosFocusInput
		return m.input.Focus()
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(visible))
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(visible))
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = clampCursor(len(visible)-1, len(visible))
	}

	switch msg.String() {
	case "f":
		counts := map[todo.Filter]int{}
		for _, f := range todo.Filters {
			for _, t := range m.list.Tasks {
				if f.Matches(t) {
					counts[f]++
				}
			}
		}
		p := NewFilterPickerModel(m.list.Filter, counts, m.theme)
		m.picker = &p
		return nil
	case "C":
		if len(m.list.Tasks) == m.list.TasksLeft() {
			return statusCmd("No completed tasks to clear", false)
		}
		return m.openConfirm()
	}

	if len(visible) == 0 {
		return nil
	}
	id := visible[m.cursor]

	switch msg.String() {
	case " ", "x":
		m.list.Update(id, todo.SetCompleted(!m.list.Tasks[id].Completed))
		m.cursor = clampCursor(m.cursor, len(m.list.Visible()))
	case "e", "enter":
		m.list.Update(id, todo.Edit{})
		m.editing = id
		m.editor.SetValue(m.list.Tasks[id].Description)
		m.editor.CursorEnd()
		return m.editor.Focus()
	case "d", "delete":
		m.list.Update(id, todo.Delete{})
		m.cursor = clampCursor(m.cursor, len(m.list.Visible()))
	}
	return nil
}

func (m *TodosModel) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	id := m.editing
	switch msg.String() {
	case "enter", "esc":
		m.list.Update(id, todo.DescriptionEdited(m.editor.Value()))
		m.list.Update(id, todo.FinishEdit{})
		if m.list.Tasks[id].State == todo.Idle {
			m.editing = -1
			m.editor.Blur()
		}
		return nil
	case "ctrl+x":
		m.list.Update(id, todo.Delete{})
		m.editing = -1
		m.editor.Blur()
		m.cursor = clampCursor(m.cursor, len(m.list.Visible()))
		return nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.list.Update(id, todo.DescriptionEdited(m.editor.Value()))
	return cmd
}

func (m *TodosModel) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.picker.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.picker.MoveDown()
	case msg.String() == "enter":
		m.list.SetFilter(m.picker.SelectedFilter())
		m.picker = nil
		m.cursor = 0
	case msg.String() == "esc", msg.String() == "f":
		m.picker = nil
	}
	return nil
}

func (m *TodosModel) openConfirm() tea.Cmd {
	done := len(m.list.Tasks) - m.list.TasksLeft()
	m.confirmClear = false
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Clear %d completed task%s?", done, plural(done))).
				Affirmative("Clear").
				Negative("Keep").
				Value(&m.confirmClear),
		),
	).WithShowHelp(false)
	return m.confirm.Init()
}

func (m *TodosModel) updateConfirm(msg tea.Msg) tea.Cmd {
	model, cmd := m.confirm.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.confirm = f
	}
	switch m.confirm.State {
	case huh.StateCompleted:
		m.confirm = nil
		return tea.Batch(cmd, m.clearCompleted(m.confirmClear), m.saveCmd())
	case huh.StateAborted:
		m.confirm = nil
	}
	return cmd
}

// clearCompleted applies the answer of the confirmation dialog.
func (m *TodosModel) clearCompleted(confirmed bool) tea.Cmd {
	if !confirmed {
		return nil
	}
	n := m.list.ClearCompleted()
	m.cursor = clampCursor(m.cursor, len(m.list.Visible()))
	return statusCmd(fmt.Sprintf("Cleared %d completed task%s", n, plural(n)), false)
}

func (m *TodosModel) Hints() string {
	switch {
	case m.confirm != nil:
		return "y/n: answer • esc: cancel"
	case m.picker != nil:
		return "j/k: move • enter: apply • esc: cancel"
	case m.editing >= 0:
		return "enter: done • ctrl+x: delete"
	case m.focus == todosFocusInput:
		return "enter: add • tab: list • esc: list"
	default:
		return "space: done • e: edit • d: delete • f: filter • C: clear done • tab: input"
	}
}

func (m *TodosModel) View(width, height int) string {
	t := m.theme
	r := t.Renderer

	if !m.loaded {
		return r.NewStyle().Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(t.Muted).Render("Loading...")
	}
	if m.picker != nil {
		m.picker.SetSize(width, height)
		return m.picker.View()
	}
	if m.confirm != nil {
		box := r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Danger).
			Padding(1, 2).Render(m.confirm.View())
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	}

	contentWidth := min(width, 80)

	title := r.NewStyle().Width(contentWidth).Align(lipgloss.Center).
		Foreground(t.Muted).Bold(true).Render("t o d o s")

	inputBorder := t.Border
	if m.focus == todosFocusInput {
		inputBorder = t.Primary
	}
	m.input.Width = max(contentWidth-6, 10)
	input := r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(inputBorder).
		Width(contentWidth - 2).Render(m.input.View())

	controls := m.renderControls(contentWidth)

	header := lipgloss.JoinVertical(lipgloss.Left, title, "", input, controls, "")
	listHeight := max(height-lipgloss.Height(header), 1)

	body := m.renderTasks(contentWidth, listHeight)
	content := lipgloss.JoinVertical(lipgloss.Left, header, body)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (m *TodosModel) renderControls(width int) string {
	t := m.theme
	r := t.Renderer

	left := r.NewStyle().Foreground(t.Subtext).Render(m.list.TasksLeftLabel())

	var buttons []string
	for _, f := range todo.Filters {
		style := r.NewStyle().Padding(0, 1).Foreground(t.Muted)
		if f == m.list.Filter {
			style = style.Foreground(t.Primary).Bold(true).Underline(true)
		}
		buttons = append(buttons, style.Render(f.String()))
	}
	right := strings.Join(buttons, "")

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m *TodosModel) renderTasks(width, height int) string {
	t := m.theme
	r := t.Renderer

	visible := m.list.Visible()
	if len(visible) == 0 {
		return r.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(t.Muted).Italic(true).
			Render(m.list.Filter.EmptyMessage())
	}
	m.cursor = clampCursor(m.cursor, len(visible))

	rng := m.rows.visible(len(visible), height, m.cursor)
	var lines []string
	for i := rng.Start; i <= rng.End; i++ {
		id := visible[i]
		task := m.list.Tasks[id]
		selected := m.focus == todosFocusList && i == m.cursor

		if id == m.editing {
			m.editor.Width = max(width-22, 10)
			del := r.NewStyle().Foreground(t.Danger).Render("ctrl+x delete")
			lines = append(lines, "✎ "+m.editor.View()+"  "+del)
			continue
		}

		mark := "[ ]"
		style := t.Base
		if task.Completed {
			mark = "[x]"
			style = r.NewStyle().Foreground(t.Muted).Strikethrough(true)
		}
		line := mark + " " + style.Render(truncate(task.Description, width-4))
		if selected {
			line = t.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *TodosModel) HelpMarkdown() string {
	return helpTodos
}

func sameTodos(a, b todo.SavedState) bool {
	if a.InputValue != b.InputValue || a.Filter != b.Filter || len(a.Tasks) != len(b.Tasks) {
		return false
	}
	for i := range a.Tasks {
		if a.Tasks[i].Description != b.Tasks[i].Description || a.Tasks[i].Completed != b.Tasks[i].Completed {
			return false
		}
	}
	return true
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
