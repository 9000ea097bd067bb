package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lazyview/pkg/widget"
	"github.com/vanderheijden86/lazyview/pkg/window"
)

// LazyScrollModel shows a grid of placeholder tiles and only builds the ones
// inside the viewport.
type LazyScrollModel struct {
	theme    Theme
	keys     listKeys
	elements []string
	tileW    int
	tileH    int
	offset   float32
	scrollID widget.ID

	// From the last View.
	viewport window.Size
	columns  int
	built    window.BoundedRange
}

// NewLazyScrollModel creates n placeholders of tileW x tileH cells.
func NewLazyScrollModel(theme Theme, ids *widget.Allocator, n, tileW, tileH int) *LazyScrollModel {
	elements := make([]string, n)
	for i := range elements {
		elements[i] = fmt.Sprintf("Placeholder-%d", i)
	}
	return &LazyScrollModel{
		theme:    theme,
		keys:     defaultListKeys(),
		elements: elements,
		tileW:    max(tileW, 4),
		tileH:    max(tileH, 3),
		scrollID: ids.Next(widget.Scrollable),
		columns:  1,
		built:    window.BoundedRange{Start: 0, End: -1},
	}
}

func (m *LazyScrollModel) Title() string { return "Lazy Scroll" }
func (m *LazyScrollModel) Init() tea.Cmd { return nil }
func (m *LazyScrollModel) Capturing() bool { return false }
func (m *LazyScrollModel) HelpMarkdown() string { return helpLazyScroll }

// Offset is the normalized scroll position.
func (m *LazyScrollModel) Offset() float32 { return m.offset }

// Built is the range of tiles the last View materialized.
func (m *LazyScrollModel) Built() window.BoundedRange { return m.built }

func (m *LazyScrollModel) rowCount() int {
	return (len(m.elements) + m.columns - 1) / m.columns
}

func (m *LazyScrollModel) firstRow() int {
	if len(m.elements) == 0 {
		return 0
	}
	return window.VisibleRows(m.rowCount(), float32(m.tileH), m.viewport, m.offset).Start
}

func (m *LazyScrollModel) scrollTo(row int) {
	rows := m.rowCount()
	row = max(min(row, window.MaxFirstRow(rows, float32(m.tileH), m.viewport)), 0)
	m.offset = window.OffsetFor(row, rows, float32(m.tileH), m.viewport)
}

func (m *LazyScrollModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case scrollToMsg:
		if msg.target == m.scrollID {
			m.offset = msg.offset
		}
	case tea.KeyMsg:
		if len(m.elements) == 0 {
			return nil
		}
		page := max(int(window.RowsInView(float32(m.tileH), m.viewport)), 1)
		switch {
		case key.Matches(msg, m.keys.Up):
			m.scrollTo(m.firstRow() - 1)
		case key.Matches(msg, m.keys.Down):
			m.scrollTo(m.firstRow() + 1)
		case key.Matches(msg, m.keys.PgUp):
			m.scrollTo(m.firstRow() - page)
		case key.Matches(msg, m.keys.PgDown):
			m.scrollTo(m.firstRow() + page)
		case key.Matches(msg, m.keys.Top):
			m.offset = 0
		case key.Matches(msg, m.keys.Bottom):
			m.offset = 1
		}
	}
	return nil
}

func (m *LazyScrollModel) Hints() string {
	return "j/k: scroll • pgup/pgdn: page • g/G: top/bottom"
}

func (m *LazyScrollModel) View(width, height int) string {
	t := m.theme
	r := t.Renderer

	status := r.NewStyle().Foreground(t.Muted)
	bodyHeight := max(height-1, 1)
	m.viewport = window.Size{Width: float32(width), Height: float32(bodyHeight)}
	m.columns = window.ColumnsFor(width, m.tileW)

	if len(m.elements) == 0 {
		m.built = window.BoundedRange{Start: 0, End: -1}
		return status.Render("No elements")
	}

	m.built = window.VisibleTiles(m.columns, len(m.elements), float32(m.tileH), m.viewport, m.offset)

	tile := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Secondary).
		Width(m.tileW-2).
		Height(m.tileH-2).
		Align(lipgloss.Center, lipgloss.Center)

	var rows []string
	for start := m.built.Start; start <= m.built.End; start += m.columns {
		end := min(start+m.columns-1, m.built.End)
		cells := make([]string, 0, m.columns)
		for i := start; i <= end; i++ {
			label := truncate(m.elements[i]+": vis", m.tileW-2)
			cells = append(cells, tile.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	body := strings.Split(strings.Join(rows, "\n"), "\n")
	if len(body) > bodyHeight {
		body = body[:bodyHeight]
	}

	info := status.Render(fmt.Sprintf("%d elements • built %s (%d) • offset %.2f",
		len(m.elements), m.built, m.built.Len(), m.offset))
	return lipgloss.JoinVertical(lipgloss.Left, info, strings.Join(body, "\n"))
}
