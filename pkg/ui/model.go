package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lazyview/pkg/config"
	"github.com/vanderheijden86/lazyview/pkg/store"
	"github.com/vanderheijden86/lazyview/pkg/watcher"
	"github.com/vanderheijden86/lazyview/pkg/widget"
)

// tab is one page of the application. Tabs are pointers so the root model
// can be copied by value.
type tab interface {
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	// Hints is the key summary for the status bar.
	Hints() string
	// Capturing reports whether the tab wants every key, e.g. while a text
	// field has focus.
	Capturing() bool
	HelpMarkdown() string
}

// Options wires the model to its collaborators. Zero values are valid: a nil
// Store keeps todos in memory, a nil Outline shows the sample tree.
type Options struct {
	Store   store.Store
	Outline *store.OutlineFile
	Watcher *watcher.Watcher

	ImagePaths []string
	TileSize   int
	LoadLimit  int

	LazyElements   int
	LazyTileWidth  int
	LazyTileHeight int

	// StartTab is one of config.TabNames.
	StartTab string
	Renderer *lipgloss.Renderer
}

// Model is the root bubbletea model.
type Model struct {
	theme Theme
	keys  globalKeys

	tabs      []tab
	active    int
	checklist *ChecklistModel
	todos     *TodosModel
	tree      *TreeModel
	lazy      *LazyScrollModel
	tiles     *TilesModel

	watcher *watcher.Watcher

	help     helpOverlay
	showHelp bool

	status    string
	statusErr bool

	width  int
	height int
	ready  bool
}

// NewModel builds every tab. Nothing is loaded until Init.
func NewModel(opts Options) Model {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	theme := DefaultTheme(r)

	def := config.DefaultConfig()
	if opts.LazyElements <= 0 {
		opts.LazyElements = def.LazyScroll.Elements
	}
	if opts.LazyTileWidth <= 0 {
		opts.LazyTileWidth = def.LazyScroll.TileWidth
	}
	if opts.LazyTileHeight <= 0 {
		opts.LazyTileHeight = def.LazyScroll.TileHeight
	}
	if opts.LoadLimit <= 0 {
		opts.LoadLimit = def.Tiles.LoadLimit
	}

	var ids widget.Allocator
	m := Model{
		theme:     theme,
		checklist: NewChecklistModel(theme),
		todos:     NewTodosModel(theme, opts.Store, &ids),
		tree:      NewTreeModel(theme, opts.Outline),
		lazy:      NewLazyScrollModel(theme, &ids, opts.LazyElements, opts.LazyTileWidth, opts.LazyTileHeight),
		tiles:     NewTilesModel(theme, &ids, opts.ImagePaths, opts.TileSize, opts.LoadLimit),
		watcher:   opts.Watcher,
		help:      newHelpOverlay(theme),
	}
	// Same order as config.TabNames.
	m.tabs = []tab{m.checklist, m.todos, m.tree, m.lazy, m.tiles}
	m.keys = defaultGlobalKeys(len(m.tabs))

	for i, name := range config.TabNames {
		if name == opts.StartTab {
			m.active = i
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs)+1)
	for _, t := range m.tabs {
		cmds = append(cmds, t.Init())
	}
	cmds = append(cmds, waitForChange(m.watcher))
	return tea.Batch(cmds...)
}

// waitForChange blocks until the watcher reports a change to the todo file.
func waitForChange(w *watcher.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		<-w.Events()
		return todosChangedMsg{}
	}
}

// ActiveTitle is the title of the visible tab.
func (m Model) ActiveTitle() string {
	return m.tabs[m.active].Title()
}

// Todos returns the todo tab.
func (m Model) Todos() *TodosModel { return m.todos }

// Tree returns the outline tab.
func (m Model) Tree() *TreeModel { return m.tree }

// Checklist returns the checklist tab.
func (m Model) Checklist() *ChecklistModel { return m.checklist }

// Tiles returns the image tab.
func (m Model) Tiles() *TilesModel { return m.tiles }

// LazyScroll returns the placeholder grid tab.
func (m Model) LazyScroll() *LazyScrollModel { return m.lazy }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.showHelp {
			m.help.open(m.tabs[m.active].HelpMarkdown(), m.width, m.height)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.isErr
		return m, nil

	case todosChangedMsg:
		return m, tea.Batch(m.broadcast(msg), waitForChange(m.watcher))
	}

	if m.showHelp {
		return m, tea.Batch(m.help.update(msg), m.broadcast(msg))
	}
	return m, m.broadcast(msg)
}

// broadcast hands a non-key message to every tab. Loads and saves finish in
// the background and must reach their tab even when it is not visible.
func (m Model) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs))
	for _, t := range m.tabs {
		cmds = append(cmds, t.Update(msg))
	}
	return tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case msg.String() == "esc", key.Matches(msg, m.keys.Help), msg.String() == "q":
			m.showHelp = false
			return m, nil
		}
		return m, m.help.update(msg)
	}

	m.status = ""
	active := m.tabs[m.active]

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.active = (m.active + 1) % len(m.tabs)
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.active = (m.active + len(m.tabs) - 1) % len(m.tabs)
		return m, nil
	}

	if !active.Capturing() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			m.help.open(active.HelpMarkdown(), m.width, m.height)
			return m, nil
		}
		for i, b := range m.keys.JumpTabs {
			if key.Matches(msg, b) {
				m.active = i
				return m, nil
			}
		}
	}

	return m, active.Update(msg)
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderTabs()
	footer := m.renderFooter()
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-1, 1)

	var body string
	if m.showHelp {
		body = m.help.view(m.width, bodyHeight)
	} else {
		body = m.tabs[m.active].View(m.width, bodyHeight)
	}
	body = m.theme.Renderer.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, footer)
}

func (m Model) renderTabs() string {
	t := m.theme
	r := t.Renderer

	parts := make([]string, 0, len(m.tabs))
	for i, tb := range m.tabs {
		label := string(rune('1'+i)) + " " + tb.Title()
		style := r.NewStyle().Padding(0, 1).Foreground(t.Muted)
		if i == m.active {
			style = style.Foreground(t.Primary).Bold(true).Underline(true)
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderFooter() string {
	t := m.theme
	r := t.Renderer

	keysStyle := r.NewStyle().Foreground(t.Subtext).Padding(0, 1)
	keys := m.tabs[m.active].Hints()
	if m.showHelp {
		keys = "esc: close help"
	} else if !m.tabs[m.active].Capturing() {
		keys += " • ?: help • q: quit"
	}
	keysSection := keysStyle.Render(keys)

	var statusSection string
	if m.status != "" {
		style := r.NewStyle().Padding(0, 1).Bold(true).Foreground(t.Success)
		if m.statusErr {
			style = style.Foreground(t.Danger)
		}
		statusSection = style.Render(m.status)
	}

	gap := m.width - lipgloss.Width(keysSection) - lipgloss.Width(statusSection)
	if gap < 0 {
		room := max(m.width-lipgloss.Width(statusSection)-2, 0)
		keysSection = keysStyle.Render(truncate(keys, room))
		gap = max(m.width-lipgloss.Width(keysSection)-lipgloss.Width(statusSection), 0)
	}
	return keysSection + strings.Repeat(" ", gap) + statusSection
}
