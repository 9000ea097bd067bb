// Package window computes which rows or tiles of a virtualized list or grid
// fall inside a viewport, so views only materialize what can be seen.
//
// Offsets are normalized: 0 puts the first row at the top of the viewport,
// 1 puts the last row at the bottom.
package window

import (
	"fmt"
	"math"
)

// Size is a viewport or element size in the caller's units (cells, pixels).
type Size struct {
	Width  float32
	Height float32
}

// BoundedRange is an inclusive [Start, End] index range.
type BoundedRange struct {
	Start int
	End   int
}

// Contains reports whether i lies within the range.
func (r BoundedRange) Contains(i int) bool {
	return r.Start <= i && i <= r.End
}

// Len returns the number of indices in the range.
func (r BoundedRange) Len() int {
	return r.End - r.Start + 1
}

func (r BoundedRange) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// RowsInView returns the fractional number of rows of the given extent that
// fit in the viewport height.
func RowsInView(extent float32, viewport Size) float32 {
	return viewport.Height / extent
}

// VisibleRows returns the rows of a list of total elements, each extent tall,
// that intersect the viewport when scrolled to offset.
//
// total must be positive and extent greater than zero; anything else is a
// programming error and panics. Offsets outside [0, 1] are clamped. When the
// content is shorter than the viewport every row is visible.
func VisibleRows(total int, extent float32, viewport Size, offset float32) BoundedRange {
	if total <= 0 {
		panic(fmt.Sprintf("window: VisibleRows with %d elements", total))
	}
	if !(extent > 0) {
		panic(fmt.Sprintf("window: VisibleRows with element extent %v", extent))
	}
	offset = clampOffset(offset)

	rows := RowsInView(extent, viewport)
	n := float32(total)
	span := n - rows
	if span < 0 {
		span = 0
	}

	// last is measured from the unrounded position: a row cut at the top
	// edge shows a cut row at the bottom too.
	pos := span * offset
	last := pos + rows
	if last > n-1 {
		last = n - 1
	}

	r := BoundedRange{Start: int(pos), End: int(last)}
	if r.Start < 0 || r.Start > r.End || r.End >= total {
		panic(fmt.Sprintf("window: computed range %v outside %d elements", r, total))
	}
	return r
}

// VisibleTiles returns the tile indices visible in a grid of total elements
// laid out in rows of columns tiles. A trailing partial row counts as a row;
// the returned range is row aligned except that End never passes the last
// element.
func VisibleTiles(columns, total int, extent float32, viewport Size, offset float32) BoundedRange {
	if columns < 1 {
		columns = 1
	}
	rows := (total + columns - 1) / columns
	visible := VisibleRows(rows, extent, viewport, offset)

	r := BoundedRange{
		Start: visible.Start * columns,
		End:   (visible.End+1)*columns - 1,
	}
	if r.End > total-1 {
		r.End = total - 1
	}
	return r
}

// ColumnsFor returns how many tiles of tileWidth fit across width, never
// fewer than one.
func ColumnsFor(width, tileWidth int) int {
	if tileWidth <= 0 {
		return 1
	}
	if n := width / tileWidth; n > 1 {
		return n
	}
	return 1
}

// OffsetFor is the inverse of VisibleRows: it returns the normalized offset
// that puts firstRow at the top of the viewport.
func OffsetFor(firstRow, total int, extent float32, viewport Size) float32 {
	span := float64(total) - float64(RowsInView(extent, viewport))
	if span <= 0 || firstRow <= 0 {
		return 0
	}
	// Nudge past the row boundary so truncation in VisibleRows lands on firstRow.
	return clampOffset(float32((float64(firstRow) + 1e-3) / span))
}

// MaxFirstRow is the largest row index that can sit at the top of the
// viewport.
func MaxFirstRow(total int, extent float32, viewport Size) int {
	span := float32(total) - RowsInView(extent, viewport)
	if span <= 0 {
		return 0
	}
	return int(math.Floor(float64(span)))
}

func clampOffset(offset float32) float32 {
	switch {
	case math.IsNaN(float64(offset)), offset < 0:
		return 0
	case offset > 1:
		return 1
	}
	return offset
}
