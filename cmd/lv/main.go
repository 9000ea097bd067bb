package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/vanderheijden86/lazyview/pkg/config"
	"github.com/vanderheijden86/lazyview/pkg/export"
	"github.com/vanderheijden86/lazyview/pkg/loader"
	"github.com/vanderheijden86/lazyview/pkg/store"
	"github.com/vanderheijden86/lazyview/pkg/tiles"
	"github.com/vanderheijden86/lazyview/pkg/ui"
	"github.com/vanderheijden86/lazyview/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// overrides holds the flags that replace config file values.
type overrides struct {
	dataDir string
	store   string
	tab     string
	images  string
}

// exports holds the headless export targets.
type exports struct {
	svg string
	png string
	md  string
}

func (e exports) any() bool {
	return e.svg != "" || e.png != "" || e.md != ""
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the whole program. It returns the exit code so deferred cleanup
// (watcher, store, debug log) runs before the process exits.
func run(args []string) int {
	fs := flag.NewFlagSet("lv", flag.ContinueOnError)
	help := fs.Bool("help", false, "Show help")
	versionFlag := fs.Bool("version", false, "Show version")
	configPath := fs.String("config", "", "Config file (default: ~/.config/lv/config.yaml)")
	debugLog := fs.String("debug-log", "", "Write log output to this file")

	var o overrides
	fs.StringVar(&o.dataDir, "data-dir", "", "Data directory (default: nearest .lv/)")
	fs.StringVar(&o.store, "store", "", "Todo store backend: json or sqlite")
	fs.StringVar(&o.tab, "tab", "", "Tab shown at startup: "+strings.Join(config.TabNames, ", "))
	fs.StringVar(&o.images, "images", "", "Directory scanned for images in the tiles tab")

	var e exports
	fs.StringVar(&e.svg, "export-svg", "", "Export the outline as SVG and exit")
	fs.StringVar(&e.png, "export-png", "", "Export an image contact sheet as PNG and exit")
	fs.StringVar(&e.md, "export-md", "", "Export the todo list as Markdown and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *help {
		fmt.Println("Usage: lv [options]")
		fmt.Println("\nA terminal demo of lazily rendered lists, outlines and image tiles.")
		fs.PrintDefaults()
		return 0
	}

	if *versionFlag {
		fmt.Printf("lv %s\n", version)
		return 0
	}

	explicit := *configPath != ""
	if !explicit {
		*configPath = config.DefaultPath()
	}
	cfg, err := loadConfig(*configPath, explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := o.apply(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *debugLog != "" {
		f, err := tea.LogToFile(*debugLog, "lv")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			return 1
		}
		defer f.Close()
	} else if !e.any() {
		log.SetOutput(io.Discard)
	}

	dataDir := cfg.ResolvedDataDir()
	if err := loader.PrepareDataDir(dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing %s: %v\n", dataDir, err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := store.Open(ctx, store.Backend(cfg.Store), dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return 1
	}
	defer s.Close()

	outline := &store.OutlineFile{Path: store.OutlinePath(dataDir)}
	images := config.DiscoverImages(cfg)

	if e.any() {
		if err := runExports(ctx, e, s, outline, images, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: lv needs a terminal (use -export-svg, -export-png or -export-md for headless output)")
		return 1
	}

	w, err := watcher.New(s.Path())
	if err != nil {
		log.Printf("warning: file watching disabled: %v", err)
	} else if err := w.Start(ctx); err != nil {
		log.Printf("warning: file watching disabled: %v", err)
		w = nil
	} else {
		defer w.Stop()
	}

	m := ui.NewModel(ui.Options{
		Store:          s,
		Outline:        outline,
		Watcher:        w,
		ImagePaths:     images,
		TileSize:       cfg.Tiles.Size,
		LoadLimit:      cfg.Tiles.LoadLimit,
		LazyElements:   cfg.LazyScroll.Elements,
		LazyTileWidth:  cfg.LazyScroll.TileWidth,
		LazyTileHeight: cfg.LazyScroll.TileHeight,
		StartTab:       cfg.Tab,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running lv: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads path. A missing file falls back to the defaults unless
// the user named it explicitly.
func loadConfig(path string, explicit bool) (config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return config.DefaultConfig(), nil
	}
	return config.Config{}, err
}

// apply copies the set flags into cfg and validates the result.
func (o overrides) apply(cfg *config.Config) error {
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.store != "" {
		cfg.Store = o.store
	}
	if o.tab != "" {
		cfg.Tab = o.tab
	}
	if o.images != "" {
		cfg.Discovery.ScanPaths = append([]string{o.images}, cfg.Discovery.ScanPaths...)
	}
	return cfg.Validate()
}

// runExports writes every requested export. It keeps going after a failure
// and reports all of them.
func runExports(ctx context.Context, e exports, s store.Store, outline *store.OutlineFile, images []string, cfg config.Config) error {
	var errs []error

	if e.svg != "" {
		t, err := outline.Load(ctx)
		if err != nil && !store.IsNotExist(err) {
			log.Printf("warning: loading outline: %v", err)
		}
		if err := export.SaveOutlineSVG(t.Flatten(), e.svg); err != nil {
			errs = append(errs, err)
		} else {
			fmt.Printf("Wrote outline to %s\n", e.svg)
		}
	}

	if e.png != "" {
		loaded, err := tiles.LoadAll(ctx, images, cfg.Tiles.LoadLimit)
		if err != nil {
			errs = append(errs, fmt.Errorf("loading images: %w", err))
		} else if err := export.SaveContactSheet(loaded, sheetColumns(len(loaded)), cfg.Tiles.Size, e.png); err != nil {
			errs = append(errs, err)
		} else {
			fmt.Printf("Wrote %d images to %s\n", len(loaded), e.png)
		}
	}

	if e.md != "" {
		state, err := s.Load(ctx)
		if err != nil && !store.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("loading todos: %w", err))
		} else if err := export.SaveTodoMarkdown(state, e.md); err != nil {
			errs = append(errs, err)
		} else {
			fmt.Printf("Wrote %d todos to %s\n", len(state.Tasks), e.md)
		}
	}

	return errors.Join(errs...)
}

// sheetColumns picks a near-square grid for n images, at most 8 wide.
func sheetColumns(n int) int {
	cols := 1
	for cols*cols < n && cols < 8 {
		cols++
	}
	return cols
}
