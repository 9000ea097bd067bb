package export

import (
	"fmt"
	"image"

	"git.sr.ht/~sbinet/gg"

	"github.com/vanderheijden86/lazyview/pkg/tiles"
)

const (
	sheetGap     = 12
	sheetCaption = 18
)

// ContactSheet lays tiles out in a grid of size x size cells, columns wide,
// with each file name under its thumbnail. Tiles that did not load are drawn
// as an outlined box.
func ContactSheet(items []*tiles.ImageTile, columns, size int) image.Image {
	columns = max(columns, 1)
	size = tiles.ClampTileSize(size)
	rows := max((len(items)+columns-1)/columns, 1)

	cellW, cellH := size+sheetGap, size+sheetCaption+sheetGap
	dc := gg.NewContext(columns*cellW+sheetGap, rows*cellH+sheetGap)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for i, t := range items {
		x := sheetGap + (i%columns)*cellW
		y := sheetGap + (i/columns)*cellH

		if t.Loaded() {
			thumb := tiles.Thumbnail(t.Image, size, size)
			b := thumb.Bounds()
			dc.DrawImage(thumb, x+(size-b.Dx())/2, y+(size-b.Dy())/2)
		} else {
			dc.SetRGB(0.6, 0.6, 0.6)
			dc.SetLineWidth(1)
			dc.DrawRectangle(float64(x)+0.5, float64(y)+0.5, float64(size-1), float64(size-1))
			dc.Stroke()
		}

		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(t.Name(), float64(x+size/2), float64(y+size+sheetCaption/2), 0.5, 0.5)
	}
	return dc.Image()
}

// SaveContactSheet writes the sheet for items to filename as PNG.
func SaveContactSheet(items []*tiles.ImageTile, columns, size int, filename string) error {
	img := ContactSheet(items, columns, size)
	if err := gg.SavePNG(filename, img); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}
