package tiles

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const upperHalf = "▀"

// Preview renders img into cols x rows terminal cells. Each cell shows two
// pixels stacked vertically: the upper half block takes the top pixel as its
// foreground and the bottom pixel as its background.
func Preview(r *lipgloss.Renderer, img image.Image, cols, rows int) string {
	if img == nil || cols < 1 || rows < 1 {
		return ""
	}
	thumb := Thumbnail(img, cols, rows*2)
	b := thumb.Bounds()

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			top, bottom := pixelAt(thumb, b, x, 2*y), pixelAt(thumb, b, x, 2*y+1)
			if top == nil && bottom == nil {
				sb.WriteByte(' ')
				continue
			}
			style := r.NewStyle()
			if top != nil {
				style = style.Foreground(hexColor(top))
			}
			if bottom != nil {
				style = style.Background(hexColor(bottom))
			}
			sb.WriteString(style.Render(upperHalf))
		}
	}
	return sb.String()
}

// Placeholder fills cols x rows with a centered label, for tiles that have
// not loaded or failed to.
func Placeholder(r *lipgloss.Renderer, label string, cols, rows int) string {
	return r.NewStyle().
		Width(cols).
		Height(rows).
		MaxWidth(cols).
		MaxHeight(rows).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
}

// pixelAt returns nil outside the thumbnail, which is smaller than the cell
// area when the aspect ratios differ.
func pixelAt(img *image.RGBA, b image.Rectangle, x, y int) color.Color {
	p := image.Pt(b.Min.X+x, b.Min.Y+y)
	if !p.In(b) {
		return nil
	}
	return img.At(p.X, p.Y)
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
