package main

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/lazyview/pkg/config"
	"github.com/vanderheijden86/lazyview/pkg/store"
	"github.com/vanderheijden86/lazyview/pkg/todo"
)

func TestLoadConfig_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := loadConfig(path, false)
	if err != nil {
		t.Fatalf("implicit missing config should fall back to defaults: %v", err)
	}
	if cfg.Store != "json" || cfg.Tab != "checklist" {
		t.Errorf("expected defaults, got store=%q tab=%q", cfg.Store, cfg.Tab)
	}

	if _, err := loadConfig(path, true); err == nil {
		t.Error("an explicit config path that does not exist should fail")
	}
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "store: sqlite\ntab: tree\ntiles:\n  size: 256\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, false)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Store != "sqlite" || cfg.Tab != "tree" || cfg.Tiles.Size != 256 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.LazyScroll.Elements != 100 {
		t.Errorf("defaults should fill unset fields, elements=%d", cfg.LazyScroll.Elements)
	}
}

func TestOverridesApply(t *testing.T) {
	tests := []struct {
		name    string
		o       overrides
		wantErr string
		check   func(t *testing.T, cfg config.Config)
	}{
		{
			name: "empty keeps file values",
			o:    overrides{},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Tab != "checklist" {
					t.Errorf("tab changed to %q", cfg.Tab)
				}
			},
		},
		{
			name: "flags replace values",
			o:    overrides{dataDir: "/tmp/x", store: "sqlite", tab: "tiles"},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.DataDir != "/tmp/x" || cfg.Store != "sqlite" || cfg.Tab != "tiles" {
					t.Errorf("unexpected config %+v", cfg)
				}
			},
		},
		{
			name: "images directory is scanned first",
			o:    overrides{images: "pics"},
			check: func(t *testing.T, cfg config.Config) {
				if len(cfg.Discovery.ScanPaths) != 2 || cfg.Discovery.ScanPaths[0] != "pics" {
					t.Errorf("unexpected scan paths %v", cfg.Discovery.ScanPaths)
				}
			},
		},
		{name: "bad store", o: overrides{store: "csv"}, wantErr: "store"},
		{name: "bad tab", o: overrides{tab: "board"}, wantErr: "tab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Discovery.ScanPaths = []string{"existing"}
			err := tt.o.apply(&cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestSheetColumns(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{4, 2},
		{5, 3},
		{9, 3},
		{10, 4},
		{200, 8},
	}
	for _, tt := range tests {
		if got := sheetColumns(tt.n); got != tt.want {
			t.Errorf("sheetColumns(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestRunExports(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := store.NewJSONStore(filepath.Join(dir, store.TodosJSONFile))
	state := todo.SavedState{Tasks: []todo.Task{todo.NewTask("write docs")}}
	if err := s.Save(ctx, state); err != nil {
		t.Fatal(err)
	}

	imgPath := filepath.Join(dir, "one.png")
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	f, err := os.Create(imgPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	e := exports{
		svg: filepath.Join(dir, "outline.svg"),
		png: filepath.Join(dir, "sheet.png"),
		md:  filepath.Join(dir, "todos.md"),
	}
	outline := &store.OutlineFile{Path: store.OutlinePath(dir)}
	if err := runExports(ctx, e, s, outline, []string{imgPath}, config.DefaultConfig()); err != nil {
		t.Fatalf("runExports: %v", err)
	}

	svg, err := os.ReadFile(e.svg)
	if err != nil {
		t.Fatal(err)
	}
	// No outline saved yet, so the sample is exported.
	if !strings.Contains(string(svg), ">2.2.1<") {
		t.Errorf("svg missing sample entries:\n%s", svg)
	}

	md, err := os.ReadFile(e.md)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "write docs") {
		t.Errorf("markdown missing task:\n%s", md)
	}

	if info, err := os.Stat(e.png); err != nil || info.Size() == 0 {
		t.Errorf("contact sheet not written: %v", err)
	}
}

func TestRunExports_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s := store.NewJSONStore(filepath.Join(dir, store.TodosJSONFile))
	outline := &store.OutlineFile{Path: store.OutlinePath(dir)}

	e := exports{md: filepath.Join(dir, "missing", "todos.md")}
	if err := runExports(ctx, e, s, outline, nil, config.DefaultConfig()); err == nil {
		t.Error("expected an error writing into a missing directory")
	}
}

// TestRunReturnsExitCodes verifies run reports failures as exit codes and
// releases the store on every path
func TestRunReturnsExitCodes(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("store: sqlite\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	dataDir := filepath.Join(dir, ".lv")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"version", []string{"-version"}, 0},
		{"unknown flag", []string{"-bogus"}, 2},
		{"bad store", []string{"-config", cfgPath, "-store", "csv"}, 1},
		{"export", []string{"-config", cfgPath, "-data-dir", dataDir, "-export-md", filepath.Join(dir, "todos.md")}, 0},
		{"failed export", []string{"-config", cfgPath, "-data-dir", dataDir, "-export-md", filepath.Join(dir, "missing", "todos.md")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%q) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "todos.md")); err != nil {
		t.Errorf("export not written: %v", err)
	}

	// The database left behind by the failed run is usable.
	s, err := store.OpenSQLite(context.Background(), filepath.Join(dataDir, store.TodosSQLiteFile))
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer s.Close()
	if _, err := s.Load(context.Background()); err != nil {
		t.Errorf("loading store: %v", err)
	}
}
