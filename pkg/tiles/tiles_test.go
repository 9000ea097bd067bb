package tiles

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lazyview/pkg/widget"
	"github.com/vanderheijden86/lazyview/pkg/window"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImageTileLoad(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "still.png", 40, 20)
	bad := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"decodes png", good, false},
		{"rejects garbage", bad, true},
		{"missing file", filepath.Join(dir, "nope.png"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := NewImageTile(tt.path)
			err := tile.Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tile.Loaded() == tt.wantErr {
				t.Errorf("Loaded() = %v after error %v", tile.Loaded(), err)
			}
			if tt.wantErr && tile.Err == nil {
				t.Error("failure not kept on the tile")
			}
		})
	}
}

// TestLoadAllKeepsFailuresOnTiles verifies a bad file does not stop the batch.
func TestLoadAllKeepsFailuresOnTiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePNG(t, dir, "a.png", 8, 8),
		filepath.Join(dir, "missing.png"),
		writePNG(t, dir, "c.png", 8, 8),
	}
	tiles, err := LoadAll(context.Background(), paths, 2)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(tiles) != 3 {
		t.Fatalf("got %d tiles, want 3", len(tiles))
	}
	if !tiles[0].Loaded() || tiles[1].Loaded() || !tiles[2].Loaded() {
		t.Errorf("loaded = %v %v %v, want true false true",
			tiles[0].Loaded(), tiles[1].Loaded(), tiles[2].Loaded())
	}
	if tiles[1].Err == nil {
		t.Error("missing file has no error")
	}
}

func TestLoadAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tiles, err := LoadAll(ctx, []string{"a.png", "b.png"}, 4)
	if err == nil {
		t.Fatal("LoadAll on a cancelled context should fail")
	}
	if len(tiles) != 2 {
		t.Errorf("got %d tiles, want placeholders for both paths", len(tiles))
	}
}

func TestThumbnailKeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{100, 100, 100, 50},
		{40, 10, 20, 10},
		{0, 0, 1, 1},
	}
	for _, tt := range tests {
		b := Thumbnail(src, tt.w, tt.h).Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("Thumbnail(%d, %d) = %dx%d, want %dx%d",
				tt.w, tt.h, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestPaneUpdate(t *testing.T) {
	var ids widget.Allocator
	id := ids.Next(widget.Scrollable)
	p := NewPane(id, nil)

	if cmd := p.Update(Scrolled(0.7)); !cmd.IsNone() || p.Offset != 0.7 {
		t.Errorf("Scrolled: cmd=%+v offset=%v", cmd, p.Offset)
	}
	if p.Update(Scrolled(3)); p.Offset != 1 {
		t.Errorf("Scrolled(3) offset = %v, want clamped to 1", p.Offset)
	}

	cmd := p.Update(ScrollToStart{})
	if cmd.Target != id || cmd.Offset != 0 || p.Offset != 0 {
		t.Errorf("ScrollToStart: cmd=%+v offset=%v, want target %v at 0", cmd, p.Offset, id)
	}

	for _, tt := range []struct{ in, want int }{{10, MinTileSize}, {300, 300}, {9000, MaxTileSize}} {
		p.Update(ZoomChanged(tt.in))
		if p.TileSize != tt.want {
			t.Errorf("ZoomChanged(%d) size = %d, want %d", tt.in, p.TileSize, tt.want)
		}
	}
}

func TestPaneLayout(t *testing.T) {
	tiles := make([]*ImageTile, 30)
	for i := range tiles {
		tiles[i] = NewImageTile("x.png")
	}
	p := NewPane(widget.ID{}, tiles)

	// 128px tiles are 16x8 cells plus a gap column and a caption line.
	l := p.Layout(80, 27)
	if l.Columns != 4 || l.RowHeight != 9 {
		t.Fatalf("Layout = %+v, want 4 columns of height 9", l)
	}
	if want := (window.BoundedRange{Start: 0, End: 15}); l.Visible != want {
		t.Errorf("Visible = %v, want %v", l.Visible, want)
	}

	p.Update(Scrolled(1))
	if l := p.Layout(80, 27); l.Visible.End != len(tiles)-1 {
		t.Errorf("Visible at bottom = %v, want to end at %d", l.Visible, len(tiles)-1)
	}

	if l := NewPane(widget.ID{}, nil).Layout(80, 27); l.Visible != (window.BoundedRange{}) {
		t.Errorf("empty pane Visible = %v, want zero range", l.Visible)
	}
}

func TestPreviewDimensions(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	out := Preview(r, src, 8, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("Preview has %d lines, want 4", len(lines))
	}
	for i, line := range lines {
		if n := lipgloss.Width(line); n != 8 {
			t.Errorf("line %d width = %d, want 8", i, n)
		}
	}
	if Preview(r, nil, 8, 4) != "" {
		t.Error("nil image should render nothing")
	}
}
