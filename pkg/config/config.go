// Package config loads the user configuration file (~/.config/lv/config.yaml)
// and locates the data directory and image files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DataDirName is the per-project data directory.
const DataDirName = ".lv"

// Tab names accepted by the tab setting and the -tab flag.
var TabNames = []string{"checklist", "todos", "tree", "lazy-scroll", "tiles"}

// Config is the user configuration.
type Config struct {
	// DataDir overrides the data directory (default: nearest .lv/ above the
	// working directory, else ./.lv)
	DataDir string `yaml:"data_dir,omitempty"`

	// Store selects the todo backend: json or sqlite (default: json)
	Store string `yaml:"store,omitempty"`

	// Tab is the tab shown at startup (default: checklist)
	Tab string `yaml:"tab,omitempty"`

	Tiles      TilesConfig      `yaml:"tiles,omitempty"`
	LazyScroll LazyScrollConfig `yaml:"lazy_scroll,omitempty"`
	Discovery  DiscoveryConfig  `yaml:"discovery,omitempty"`
}

// TilesConfig controls the tile pane.
type TilesConfig struct {
	// Size is the initial tile size in pixels, 50 to 512 (default: 128)
	Size int `yaml:"size,omitempty"`

	// Images are explicit image files, shown before discovered ones
	Images []string `yaml:"images,omitempty"`

	// LoadLimit caps concurrent decodes (default: 4)
	LoadLimit int `yaml:"load_limit,omitempty"`
}

// LazyScrollConfig controls the lazy scroll demo grid.
type LazyScrollConfig struct {
	// Elements is the number of placeholders (default: 100)
	Elements int `yaml:"elements,omitempty"`

	// TileWidth and TileHeight are in terminal cells (default: 20 x 5)
	TileWidth  int `yaml:"tile_width,omitempty"`
	TileHeight int `yaml:"tile_height,omitempty"`
}

// DiscoveryConfig controls the image scan.
type DiscoveryConfig struct {
	// ScanPaths are directories searched for images
	ScanPaths []string `yaml:"scan_paths,omitempty"`

	// MaxDepth limits directory traversal depth (default: 2)
	MaxDepth int `yaml:"max_depth,omitempty"`

	// Extensions are the file extensions treated as images
	// (default: .png .jpg .jpeg .gif .webp)
	Extensions []string `yaml:"extensions,omitempty"`
}

// DefaultImageExtensions returns the extensions the tile pane can decode.
func DefaultImageExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.Store == "" {
		c.Store = "json"
	}
	if c.Tab == "" {
		c.Tab = TabNames[0]
	}
	if c.Tiles.Size == 0 {
		c.Tiles.Size = 128
	}
	if c.Tiles.LoadLimit == 0 {
		c.Tiles.LoadLimit = 4
	}
	if c.LazyScroll.Elements == 0 {
		c.LazyScroll.Elements = 100
	}
	if c.LazyScroll.TileWidth == 0 {
		c.LazyScroll.TileWidth = 20
	}
	if c.LazyScroll.TileHeight == 0 {
		c.LazyScroll.TileHeight = 5
	}
	if c.Discovery.MaxDepth == 0 {
		c.Discovery.MaxDepth = 2
	}
	if len(c.Discovery.Extensions) == 0 {
		c.Discovery.Extensions = DefaultImageExtensions()
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	switch c.Store {
	case "json", "sqlite":
	default:
		return fmt.Errorf("store: unknown backend %q (want json or sqlite)", c.Store)
	}
	if !ValidTab(c.Tab) {
		return fmt.Errorf("tab: unknown tab %q (want one of %s)", c.Tab, strings.Join(TabNames, ", "))
	}
	if c.Tiles.Size < 50 || c.Tiles.Size > 512 {
		return fmt.Errorf("tiles.size: %d is outside 50..512", c.Tiles.Size)
	}
	if c.Tiles.LoadLimit < 1 {
		return fmt.Errorf("tiles.load_limit: must be positive, got %d", c.Tiles.LoadLimit)
	}
	if c.LazyScroll.Elements < 1 {
		return fmt.Errorf("lazy_scroll.elements: must be positive, got %d", c.LazyScroll.Elements)
	}
	if c.LazyScroll.TileWidth < 1 || c.LazyScroll.TileHeight < 1 {
		return fmt.Errorf("lazy_scroll: tile size must be positive, got %dx%d",
			c.LazyScroll.TileWidth, c.LazyScroll.TileHeight)
	}
	if c.Discovery.MaxDepth < 0 {
		return fmt.Errorf("discovery.max_depth: must not be negative, got %d", c.Discovery.MaxDepth)
	}
	for i, ext := range c.Discovery.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("discovery.extensions[%d]: %q must start with a dot", i, ext)
		}
	}
	return nil
}

// ValidTab reports whether name is one of TabNames.
func ValidTab(name string) bool {
	for _, t := range TabNames {
		if t == name {
			return true
		}
	}
	return false
}

// DefaultPath returns ~/.config/lv/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "lv", "config.yaml")
	}
	return filepath.Join(home, ".config", "lv", "config.yaml")
}

// Load reads a configuration file, applies defaults and validates it. A
// missing file is reported with an error wrapping os.ErrNotExist.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolvedDataDir returns DataDir with ~ expanded, or the detected default.
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return expandHome(c.DataDir)
	}
	if dir, ok := DetectDataDir(); ok {
		return dir
	}
	return DataDirName
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
