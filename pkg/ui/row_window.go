package ui

import "github.com/vanderheijden86/lazyview/pkg/window"

// rowWindow keeps a cursor in view over a list of one-line rows.
type rowWindow struct {
	first int
}

// visible moves the window just enough to show cursor and returns the rows
// to draw. The range is empty (End < Start) when there is nothing to draw.
func (w *rowWindow) visible(total, height, cursor int) window.BoundedRange {
	if total <= 0 || height <= 0 {
		w.first = 0
		return window.BoundedRange{Start: 0, End: -1}
	}
	if cursor < w.first {
		w.first = cursor
	}
	if cursor >= w.first+height {
		w.first = cursor - height + 1
	}

	vp := window.Size{Height: float32(height)}
	w.first = max(min(w.first, window.MaxFirstRow(total, 1, vp)), 0)

	r := window.VisibleRows(total, 1, vp, window.OffsetFor(w.first, total, 1, vp))
	// The last row may start exactly at the bottom edge.
	if r.Len() > height {
		r.End = r.Start + height - 1
	}
	return r
}

// clampCursor keeps cursor inside [0, n).
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
