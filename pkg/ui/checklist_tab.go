package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lazyview/pkg/checklist"
)

// ChecklistModel is the in-memory checklist tab. Entries cycle through
// unchecked, partial and done.
type ChecklistModel struct {
	theme Theme
	keys  listKeys

	list    checklist.Checklist
	input   textinput.Model
	editor  textinput.Model
	editing int
	inList  bool
	cursor  int
	rows    rowWindow
	bar     progress.Model
}

func NewChecklistModel(theme Theme) *ChecklistModel {
	input := textinput.New()
	input.Placeholder = "Add an item"
	input.Prompt = "+ "
	input.Focus()

	editor := textinput.New()
	editor.Prompt = ""

	return &ChecklistModel{
		theme:   theme,
		keys:    defaultListKeys(),
		input:   input,
		editor:  editor,
		editing: -1,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m *ChecklistModel) Title() string { return "Checklist" }

func (m *ChecklistModel) Init() tea.Cmd { return nil }

// Checklist exposes the entries (for tests).
func (m *ChecklistModel) Checklist() *checklist.Checklist {
	return &m.list
}

func (m *ChecklistModel) Capturing() bool {
	return !m.inList || m.editing >= 0
}

func (m *ChecklistModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case m.editing >= 0:
		return m.updateEditor(keyMsg)
	case !m.inList:
		return m.updateInput(keyMsg)
	default:
		return m.updateList(keyMsg)
	}
}

func (m *ChecklistModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, focusKeys.Next, focusKeys.Prev), msg.String() == "esc":
		m.inList = true
		m.input.Blur()
		return nil
	case msg.String() == "enter":
		if m.list.Create() {
			m.cursor = len(m.list.Entries) - 1
		}
		m.input.SetValue(m.list.InputValue)
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.list.InputChanged(m.input.Value())
	return cmd
}

func (m *ChecklistModel) updateList(msg tea.KeyMsg) tea.Cmd {
	n := len(m.list.Entries)
	switch {
	case key.Matches(msg, focusKeys.Next, focusKeys.Prev):
		m.inList = false
		return m.input.Focus()
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
	}
	if n == 0 {
		return nil
	}
	m.cursor = clampCursor(m.cursor, n)
	id := m.cursor

	switch msg.String() {
	case " ", "x":
		m.list.Update(id, checklist.SetChecked(m.list.Entries[id].Checked.Next()))
	case "e", "enter":
		m.list.Update(id, checklist.Edit{})
		m.editing = id
		m.editor.SetValue(m.list.Entries[id].Description)
		m.editor.CursorEnd()
		return m.editor.Focus()
	case "d", "delete":
		m.list.Update(id, checklist.Delete{})
		m.cursor = clampCursor(m.cursor, len(m.list.Entries))
	}
	return nil
}

func (m *ChecklistModel) updateEditor(msg tea.KeyMsg) tea.Cmd {
	id := m.editing
	switch msg.String() {
	case "enter", "esc":
		m.list.Update(id, checklist.FinishEdit{})
		if m.list.Entries[id].State == checklist.Idle {
			m.editing = -1
			m.editor.Blur()
		}
		return nil
	case "ctrl+x":
		m.list.Update(id, checklist.Delete{})
		m.editing = -1
		m.editor.Blur()
		m.cursor = clampCursor(m.cursor, len(m.list.Entries))
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.list.Update(id, checklist.DescriptionEdited(m.editor.Value()))
	return cmd
}

func (m *ChecklistModel) Hints() string {
	switch {
	case m.editing >= 0:
		return "enter: done • ctrl+x: delete"
	case !m.inList:
		return "enter: add • tab: list"
	default:
		return "space: cycle • e: edit • d: delete • tab: input"
	}
}

func (m *ChecklistModel) View(width, height int) string {
	t := m.theme
	r := t.Renderer
	contentWidth := min(width, 72)

	done, total := m.list.Progress()
	percent := 0.0
	if total > 0 {
		percent = float64(done) / float64(total)
	}
	m.bar.Width = max(contentWidth-12, 10)
	summary := r.NewStyle().Foreground(t.Subtext).Render(fmt.Sprintf(" %d/%d", done, total))
	header := m.bar.ViewAs(percent) + summary

	m.input.Width = max(contentWidth-4, 10)
	inputLine := m.input.View()

	top := lipgloss.JoinVertical(lipgloss.Left, header, "", inputLine, "")
	listHeight := max(height-lipgloss.Height(top), 1)

	var body string
	if total == 0 {
		body = r.NewStyle().Foreground(t.Muted).Italic(true).Render("Nothing here yet.")
	} else {
		rng := m.rows.visible(total, listHeight, m.cursor)
		var lines []string
		for i := rng.Start; i <= rng.End; i++ {
			e := m.list.Entries[i]
			if i == m.editing {
				lines = append(lines, "✎ "+m.editor.View())
				continue
			}
			style := t.Base
			if e.Checked == checklist.Done {
				style = r.NewStyle().Foreground(t.Muted)
			}
			line := e.Checked.Mark() + " " + style.Render(truncate(e.Description, contentWidth-4))
			if m.inList && i == m.cursor {
				line = t.Selected.Render(line)
			}
			lines = append(lines, line)
		}
		body = strings.Join(lines, "\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Left, top, body))
}

func (m *ChecklistModel) HelpMarkdown() string {
	return helpChecklist
}
