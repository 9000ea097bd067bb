// Package tiles loads images for the tile pane and keeps the pane's zoom and
// scroll state.
package tiles

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/webp"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// ImageTile is one image of the pane. Image is nil until Load succeeds;
// Err holds the last load failure.
type ImageTile struct {
	Path  string
	Image image.Image
	Err   error
}

// NewImageTile returns an unloaded tile.
func NewImageTile(path string) *ImageTile {
	return &ImageTile{Path: path}
}

// Name is the file name shown under the tile.
func (t *ImageTile) Name() string {
	return filepath.Base(t.Path)
}

// Loaded reports whether the tile has a decoded image.
func (t *ImageTile) Loaded() bool {
	return t.Image != nil
}

// Load decodes the file. Any format registered with the image package is
// accepted: PNG, JPEG, GIF and WebP.
func (t *ImageTile) Load() error {
	f, err := os.Open(t.Path)
	if err != nil {
		t.Err = fmt.Errorf("opening image: %w", err)
		return t.Err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		t.Err = fmt.Errorf("decoding %s: %w", t.Name(), err)
		return t.Err
	}
	t.Image, t.Err = img, nil
	return nil
}

// LoadAll builds a tile per path and decodes them with at most limit files
// in flight. Decode failures stay on their tile; the returned error is only
// set when ctx is cancelled.
func LoadAll(ctx context.Context, paths []string, limit int) ([]*ImageTile, error) {
	tiles := make([]*ImageTile, len(paths))
	for i, p := range paths {
		tiles[i] = NewImageTile(p)
	}
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, tile := range tiles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_ = tile.Load()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return tiles, err
	}
	return tiles, ctx.Err()
}

// Thumbnail scales img to fit inside w x h, keeping its aspect ratio.
func Thumbnail(img image.Image, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	src := img.Bounds()
	sw, sh := src.Dx(), src.Dy()
	if sw == 0 || sh == 0 {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}

	tw, th := w, sh*w/sw
	if th > h {
		tw, th = sw*h/sh, h
	}
	tw, th = max(tw, 1), max(th, 1)

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}
