package ui

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Help content per tab. The overlay appends helpGlobal to the active tab's
// text.
const helpGlobal = `
## Everywhere

| Key | Action |
|-----|--------|
| ctrl+n / ctrl+p | next / previous tab |
| 1-5 | jump to tab |
| ? | toggle this help |
| q, ctrl+c | quit |
`

const helpChecklist = `# Checklist

An in-memory list. Each entry cycles between unchecked and done.

| Key | Action |
|-----|--------|
| tab | switch between input and list |
| enter | add the typed entry |
| space, x | cycle the check box |
| e | edit the entry |
| d | delete the entry |
| ctrl+x | delete while editing |
`

const helpTodos = `# Todos

Tasks are saved to the data directory after every change and reloaded when
another process rewrites the file.

| Key | Action |
|-----|--------|
| tab | switch between input and list |
| enter | add the typed task |
| space, x | mark done / open |
| e | edit the task |
| d | delete the task |
| f | choose a filter (All, Active, Completed) |
| C | clear completed tasks |
| ctrl+x | delete while editing |
`

const helpTree = `# Tree

A collapsible outline. New entries start in edit mode; an entry left empty
is removed when editing ends.

| Key | Action |
|-----|--------|
| space, enter | collapse / expand |
| h / l | collapse / expand |
| a | add a child |
| A | add a top-level entry |
| e | edit |
| d | delete with descendants |
| s, x | toggle selection |
| D | delete selected entries |
| esc | clear selection |
| E / C | expand / collapse all |
| y | copy the entry text |
| Y | copy the outline as Markdown |
`

const helpLazyScroll = `# Lazy Scroll

A grid of placeholders. Only the tiles inside the viewport are built; the
status line shows the range.

| Key | Action |
|-----|--------|
| j / k | scroll one row |
| pgdown / pgup | scroll one page |
| g / G | top / bottom |
`

const helpTiles = `# Tiles

Images from the configured directories, drawn with half-block characters.

| Key | Action |
|-----|--------|
| + / - | zoom in / out |
| j / k | scroll one row |
| g | scroll to start |
| G | scroll to end |
`

// helpOverlay renders tab help through glamour inside a scrollable viewport.
type helpOverlay struct {
	theme    Theme
	viewport viewport.Model
	content  string
	width    int
}

func newHelpOverlay(theme Theme) helpOverlay {
	return helpOverlay{theme: theme}
}

// open renders markdown for the given screen size.
func (h *helpOverlay) open(markdown string, width, height int) {
	boxWidth := min(max(width-4, 20), 84)
	h.width = boxWidth
	h.viewport = viewport.New(boxWidth-4, max(height-8, 3))
	h.content = strings.TrimSpace(markdown) + "\n" + helpGlobal

	rendered := h.content
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(boxWidth-6),
	)
	if err == nil {
		if out, rerr := r.Render(h.content); rerr == nil {
			rendered = out
		} else {
			err = rerr
		}
	}
	if err != nil {
		log.Printf("warning: rendering help: %v", err)
	}
	h.viewport.SetContent(rendered)
}

func (h *helpOverlay) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return cmd
}

func (h *helpOverlay) view(width, height int) string {
	t := h.theme
	r := t.Renderer

	footer := r.NewStyle().Foreground(t.Muted).Italic(true).
		Render("j/k: scroll │ esc, ?: close")
	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Padding(0, 1).
		Width(h.width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, h.viewport.View(), footer))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
