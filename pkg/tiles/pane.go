package tiles

import (
	"github.com/vanderheijden86/lazyview/pkg/widget"
	"github.com/vanderheijden86/lazyview/pkg/window"
)

// Zoom bounds in pixels.
const (
	MinTileSize     = 50
	MaxTileSize     = 512
	DefaultTileSize = 128
	ZoomStep        = 16
)

// A terminal cell covers CellWidth x CellHeight pixels of a tile.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Msg changes the pane.
type Msg interface {
	paneMsg()
}

type (
	// ScrollToStart jumps back to the first row.
	ScrollToStart struct{}
	// Scrolled records a relative offset reported by the view.
	Scrolled float32
	// ZoomChanged sets the tile size in pixels.
	ZoomChanged int
)

func (ScrollToStart) paneMsg() {}
func (Scrolled) paneMsg()      {}
func (ZoomChanged) paneMsg()   {}

// ScrollCommand asks the view to move the scrollable identified by Target.
// The zero command does nothing.
type ScrollCommand struct {
	Target widget.ID
	Offset float32
}

// IsNone reports whether the command is empty.
func (c ScrollCommand) IsNone() bool {
	return c.Target.IsZero()
}

// Pane is the zoomable, scrollable grid of image tiles.
type Pane struct {
	TileSize int
	Offset   float32
	Tiles    []*ImageTile
	ScrollID widget.ID
}

// NewPane returns a pane at the default zoom, scrolled to the top.
func NewPane(scrollID widget.ID, tiles []*ImageTile) *Pane {
	return &Pane{
		TileSize: DefaultTileSize,
		Tiles:    tiles,
		ScrollID: scrollID,
	}
}

// Update applies msg. Only ScrollToStart yields a command.
func (p *Pane) Update(msg Msg) ScrollCommand {
	switch m := msg.(type) {
	case ScrollToStart:
		p.Offset = 0
		return ScrollCommand{Target: p.ScrollID, Offset: p.Offset}
	case Scrolled:
		p.Offset = min(max(float32(m), 0), 1)
	case ZoomChanged:
		p.TileSize = ClampTileSize(int(m))
	}
	return ScrollCommand{}
}

// ClampTileSize limits size to [MinTileSize, MaxTileSize].
func ClampTileSize(size int) int {
	return min(max(size, MinTileSize), MaxTileSize)
}

// TileCells is the size of one tile in terminal cells.
func (p *Pane) TileCells() (cols, rows int) {
	return max(p.TileSize/CellWidth, 1), max(p.TileSize/CellHeight, 1)
}

// Layout is how the pane fits a viewport of terminal cells.
type Layout struct {
	Columns int
	// RowHeight includes the caption line under each tile.
	RowHeight int
	Visible   window.BoundedRange
}

// Layout computes the grid for a width x height viewport. Visible is the
// zero range when there are no tiles.
func (p *Pane) Layout(width, height int) Layout {
	cols, rows := p.TileCells()
	l := Layout{
		Columns:   window.ColumnsFor(width, cols+1),
		RowHeight: rows + 1,
	}
	if len(p.Tiles) == 0 {
		return l
	}
	viewport := window.Size{Width: float32(width), Height: float32(height)}
	l.Visible = window.VisibleTiles(l.Columns, len(p.Tiles), float32(l.RowHeight), viewport, p.Offset)
	return l
}
