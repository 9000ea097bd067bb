package export

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vanderheijden86/lazyview/pkg/tiles"
	"github.com/vanderheijden86/lazyview/pkg/todo"
	"github.com/vanderheijden86/lazyview/pkg/tree"
)

func TestTodoMarkdown(t *testing.T) {
	state := todo.SavedState{
		Filter: todo.Completed,
		Tasks: []todo.Task{
			{Description: "buy *milk*"},
			{Description: "file taxes", Completed: true},
		},
	}
	generated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	got := TodoMarkdown(state, "Todos", generated)

	want := `# Todos

Generated: Fri, 01 Mar 2024 12:00:00 UTC

## Summary

- **Total**: 2
- **Open**: 1
- **Completed**: 1
- **Filter**: Completed

## Open

- [ ] buy \*milk\*

## Completed

- [x] file taxes
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TodoMarkdown mismatch (-want +got):\n%s", diff)
	}
}

func TestTodoMarkdownEmpty(t *testing.T) {
	got := TodoMarkdown(todo.SavedState{}, "Todos", time.Unix(0, 0).UTC())
	if !strings.Contains(got, todo.All.EmptyMessage()) {
		t.Errorf("empty report missing the empty message:\n%s", got)
	}
	if strings.Contains(got, "## Open") {
		t.Error("empty report should not list sections")
	}
}

func TestOutlineMarkdown(t *testing.T) {
	got := OutlineMarkdown(tree.Sample().Flatten())
	want := "- entry 1\n- entry 2\n  - 2.1\n  - 2.2\n    - 2.2.1\n- entry 3\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OutlineMarkdown mismatch (-want +got):\n%s", diff)
	}
}

// TestOutlineSVGSkipsCollapsedChildren verifies hidden rows are not drawn.
func TestOutlineSVGSkipsCollapsedChildren(t *testing.T) {
	tr := tree.Sample()
	tr.ToggleCollapse(3) // 2.2

	var buf bytes.Buffer
	OutlineSVG(&buf, tr.Flatten())
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an SVG document:\n%s", out)
	}
	for _, label := range []string{"entry 1", "entry 2", "2.1", "2.2", "entry 3"} {
		if !strings.Contains(out, ">"+label+"<") {
			t.Errorf("SVG missing %q", label)
		}
	}
	if strings.Contains(out, ">2.2.1<") {
		t.Error("SVG drew a child of a collapsed entry")
	}
}

func TestContactSheet(t *testing.T) {
	loaded := tiles.NewImageTile("a.png")
	loaded.Image = image.NewRGBA(image.Rect(0, 0, 10, 10))
	missing := tiles.NewImageTile("b.png")

	img := ContactSheet([]*tiles.ImageTile{loaded, missing}, 2, 50)
	b := img.Bounds()
	wantW := 2*(50+sheetGap) + sheetGap
	wantH := 50 + sheetCaption + 2*sheetGap
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("sheet is %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestSaveContactSheetWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.png")
	if err := SaveContactSheet(nil, 3, 64, path); err != nil {
		t.Fatalf("SaveContactSheet: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}
