package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lazyview/pkg/tiles"
	"github.com/vanderheijden86/lazyview/pkg/widget"
	"github.com/vanderheijden86/lazyview/pkg/window"
)

type previewKey struct {
	index      int
	cols, rows int
}

// TilesModel is the image pane: a zoomable grid of half-block previews.
type TilesModel struct {
	theme Theme
	keys  listKeys

	pane    *tiles.Pane
	paths   []string
	limit   int
	loading bool

	cache    map[previewKey]string
	lastView window.Size
}

// NewTilesModel creates the pane for paths. Images are decoded by Init.
func NewTilesModel(theme Theme, ids *widget.Allocator, paths []string, tileSize, limit int) *TilesModel {
	pane := tiles.NewPane(ids.Next(widget.Scrollable), nil)
	if tileSize > 0 {
		pane.Update(tiles.ZoomChanged(tileSize))
	}
	return &TilesModel{
		theme: theme,
		keys:  defaultListKeys(),
		pane:  pane,
		paths: paths,
		limit: limit,
		cache: make(map[previewKey]string),
	}
}

func (m *TilesModel) Title() string { return "Tiles" }
func (m *TilesModel) Capturing() bool { return false }
func (m *TilesModel) HelpMarkdown() string { return helpTiles }

// Pane exposes the pane state (for tests).
func (m *TilesModel) Pane() *tiles.Pane {
	return m.pane
}

func (m *TilesModel) Init() tea.Cmd {
	if len(m.paths) == 0 {
		return nil
	}
	m.loading = true
	paths, limit := m.paths, m.limit
	return func() tea.Msg {
		loaded, err := tiles.LoadAll(context.Background(), paths, limit)
		return tilesLoadedMsg{tiles: loaded, err: err}
	}
}

func (m *TilesModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tilesLoadedMsg:
		m.loading = false
		m.pane.Tiles = msg.tiles
		clear(m.cache)
		if msg.err != nil {
			log.Printf("warning: loading images: %v", msg.err)
			return statusCmd("Image loading stopped: "+msg.err.Error(), true)
		}
		failed := 0
		for _, t := range msg.tiles {
			if t.Err != nil {
				failed++
				log.Printf("warning: %v", t.Err)
			}
		}
		if failed > 0 {
			return statusCmd(fmt.Sprintf("%d of %d images failed to load", failed, len(msg.tiles)), true)
		}
		return nil

	case scrollToMsg:
		if msg.target == m.pane.ScrollID {
			m.pane.Update(tiles.Scrolled(msg.offset))
		}
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *TilesModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "+", "=":
		m.zoom(m.pane.TileSize + tiles.ZoomStep)
		return nil
	case "-", "_":
		m.zoom(m.pane.TileSize - tiles.ZoomStep)
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Top):
		return scrollCmd(m.pane.Update(tiles.ScrollToStart{}))
	case key.Matches(msg, m.keys.Bottom):
		m.pane.Update(tiles.Scrolled(1))
	case key.Matches(msg, m.keys.Up):
		m.scrollRows(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollRows(1)
	case key.Matches(msg, m.keys.PgUp):
		m.scrollRows(-m.pageRows())
	case key.Matches(msg, m.keys.PgDown):
		m.scrollRows(m.pageRows())
	}
	return nil
}

func (m *TilesModel) zoom(size int) {
	before := m.pane.TileSize
	m.pane.Update(tiles.ZoomChanged(size))
	if m.pane.TileSize != before {
		clear(m.cache)
	}
}

func (m *TilesModel) gridRows(layout tiles.Layout) int {
	return (len(m.pane.Tiles) + layout.Columns - 1) / layout.Columns
}

func (m *TilesModel) pageRows() int {
	_, rows := m.pane.TileCells()
	return max(int(m.lastView.Height)/(rows+1), 1)
}

func (m *TilesModel) scrollRows(delta int) {
	if len(m.pane.Tiles) == 0 {
		return
	}
	layout := m.pane.Layout(int(m.lastView.Width), int(m.lastView.Height))
	total := m.gridRows(layout)
	extent := float32(layout.RowHeight)
	first := window.VisibleRows(total, extent, m.lastView, m.pane.Offset).Start
	target := max(min(first+delta, window.MaxFirstRow(total, extent, m.lastView)), 0)
	m.pane.Update(tiles.Scrolled(window.OffsetFor(target, total, extent, m.lastView)))
}

func (m *TilesModel) Hints() string {
	return "+/-: zoom • j/k: scroll • g: start • G: end"
}

func (m *TilesModel) View(width, height int) string {
	t := m.theme
	r := t.Renderer
	muted := r.NewStyle().Foreground(t.Muted)

	switch {
	case m.loading:
		return muted.Render(fmt.Sprintf("Loading %d images...", len(m.paths)))
	case len(m.pane.Tiles) == 0:
		return muted.Italic(true).Render("No images. Pass -images <dir> or set tiles.images in the config.")
	}

	info := muted.Render(fmt.Sprintf("%d images • %dpx • offset %.2f",
		len(m.pane.Tiles), m.pane.TileSize, m.pane.Offset))
	bodyHeight := max(height-1, 1)
	m.lastView = window.Size{Width: float32(width), Height: float32(bodyHeight)}

	layout := m.pane.Layout(width, bodyHeight)
	cols, rows := m.pane.TileCells()

	caption := r.NewStyle().Foreground(t.Subtext).Width(cols).MaxWidth(cols)
	failed := r.NewStyle().Foreground(t.Danger)

	var gridRows []string
	for start := layout.Visible.Start; start <= layout.Visible.End; start += layout.Columns {
		end := min(start+layout.Columns-1, layout.Visible.End)
		cells := make([]string, 0, 2*layout.Columns)
		for i := start; i <= end; i++ {
			if i > start {
				cells = append(cells, strings.Repeat(" \n", rows)+" ")
			}
			tile := m.pane.Tiles[i]
			var img string
			if tile.Loaded() {
				img = m.preview(i, tile, cols, rows)
			} else {
				img = failed.Render(tiles.Placeholder(r, "failed", cols, rows))
			}
			cells = append(cells, lipgloss.JoinVertical(lipgloss.Left, img, caption.Render(truncate(tile.Name(), cols))))
		}
		gridRows = append(gridRows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	body := strings.Split(strings.Join(gridRows, "\n"), "\n")
	if len(body) > bodyHeight {
		body = body[:bodyHeight]
	}
	return lipgloss.JoinVertical(lipgloss.Left, info, strings.Join(body, "\n"))
}

func (m *TilesModel) preview(i int, tile *tiles.ImageTile, cols, rows int) string {
	k := previewKey{index: i, cols: cols, rows: rows}
	if s, ok := m.cache[k]; ok {
		return s
	}
	s := tiles.Preview(m.theme.Renderer, tile.Image, cols, rows)
	// Thumbnails keep the aspect ratio, so pad to the full cell block.
	s = m.theme.Renderer.NewStyle().Width(cols).Height(rows).Render(s)
	m.cache[k] = s
	return s
}
