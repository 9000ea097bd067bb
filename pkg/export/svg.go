package export

import (
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/vanderheijden86/lazyview/pkg/tree"
)

// Outline drawing metrics in pixels.
const (
	svgRowHeight = 24
	svgIndent    = 20
	svgMargin    = 16
	svgCharWidth = 8
	svgMinWidth  = 240
)

// OutlineSVG draws the visible rows of a flattened outline as an indented
// list with connectors from each entry to its parent. Collapsed entries get
// a closed marker and their descendants are left out.
func OutlineSVG(w io.Writer, flat []tree.FlatEntry) {
	rows := tree.VisibleRows(flat)

	width := svgMinWidth
	for _, i := range rows {
		e := flat[i]
		right := svgMargin + e.Depth*svgIndent + 16 + len([]rune(e.Description))*svgCharWidth + svgMargin
		width = max(width, right)
	}
	height := 2*svgMargin + max(len(rows), 1)*svgRowHeight

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")
	canvas.Gstyle("font-family:monospace;font-size:14px;fill:#222")

	// parentY[d] is the marker y of the last row drawn at depth d.
	var parentY []int
	for row, i := range rows {
		e := flat[i]
		x := svgMargin + e.Depth*svgIndent
		y := svgMargin + row*svgRowHeight + svgRowHeight/2

		if e.Depth > 0 && e.Depth-1 < len(parentY) {
			px := x - svgIndent + 4
			canvas.Line(px, parentY[e.Depth-1]+6, px, y, "stroke:#999;stroke-width:1")
			canvas.Line(px, y, x, y, "stroke:#999;stroke-width:1")
		}
		if e.Depth < len(parentY) {
			parentY = parentY[:e.Depth]
		}
		parentY = append(parentY, y)

		switch {
		case e.HasChildren && e.Collapsed:
			canvas.Polygon([]int{x, x + 8, x}, []int{y - 5, y, y + 5}, "fill:#555")
		case e.HasChildren:
			canvas.Polygon([]int{x, x + 10, x + 5}, []int{y - 4, y - 4, y + 4}, "fill:#555")
		default:
			canvas.Circle(x+4, y, 3, "fill:#555")
		}

		if e.Editing {
			canvas.Text(x+16, y+5, e.Description, "font-style:italic;fill:#a33")
		} else {
			canvas.Text(x+16, y+5, e.Description)
		}
	}

	canvas.Gend()
	canvas.End()
}

// SaveOutlineSVG writes the drawing of flat to filename.
func SaveOutlineSVG(flat []tree.FlatEntry, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	OutlineSVG(f, flat)
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}
