package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lazyview/pkg/todo"
)

// FilterPickerModel provides a quick filter selection modal for the todo
// list.
type FilterPickerModel struct {
	filters       []todo.Filter
	currentFilter todo.Filter
	selectedIndex int
	counts        map[todo.Filter]int
	width         int
	height        int
	theme         Theme
}

// NewFilterPickerModel creates a picker with current highlighted. counts
// holds how many tasks each filter shows.
func NewFilterPickerModel(current todo.Filter, counts map[todo.Filter]int, theme Theme) FilterPickerModel {
	selectedIdx := 0
	for i, f := range todo.Filters {
		if f == current {
			selectedIdx = i
			break
		}
	}

	return FilterPickerModel{
		filters:       todo.Filters,
		currentFilter: current,
		selectedIndex: selectedIdx,
		counts:        counts,
		theme:         theme,
	}
}

// SetSize updates the picker dimensions
func (m *FilterPickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// MoveUp moves selection up
func (m *FilterPickerModel) MoveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

// MoveDown moves selection down
func (m *FilterPickerModel) MoveDown() {
	if m.selectedIndex < len(m.filters)-1 {
		m.selectedIndex++
	}
}

// SelectedFilter returns the highlighted filter
func (m *FilterPickerModel) SelectedFilter() todo.Filter {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.filters) {
		return m.filters[m.selectedIndex]
	}
	return todo.All
}

// View renders the picker overlay
func (m *FilterPickerModel) View() string {
	if m.width == 0 {
		m.width = 60
	}
	if m.height == 0 {
		m.height = 20
	}

	t := m.theme

	boxWidth := 32
	if m.width < 42 {
		boxWidth = m.width - 10
	}
	if boxWidth < 24 {
		boxWidth = 24
	}

	var lines []string

	titleStyle := t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true)
	lines = append(lines, titleStyle.Render("Show Tasks"))
	lines = append(lines, "")

	countStyle := t.Renderer.NewStyle().Foreground(t.Muted)
	for i, f := range m.filters {
		isSelected := i == m.selectedIndex
		isCurrent := f == m.currentFilter

		itemStyle := t.Renderer.NewStyle()
		if isSelected {
			itemStyle = itemStyle.Foreground(t.Primary).Bold(true)
		} else {
			itemStyle = itemStyle.Foreground(t.Base.GetForeground())
		}

		prefix := "  "
		if isSelected {
			prefix = "> "
		}

		suffix := " " + countStyle.Render("("+strconv.Itoa(m.counts[f])+")")
		if isCurrent {
			checkStyle := t.Renderer.NewStyle().Foreground(t.Secondary)
			suffix += " " + checkStyle.Render("✓")
		}

		lines = append(lines, itemStyle.Render(prefix+f.String())+suffix)
	}

	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Italic(true)
	lines = append(lines, footerStyle.Render("j/k: navigate | enter: apply | esc: cancel"))

	content := strings.Join(lines, "\n")

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		boxStyle.Render(content),
	)
}
