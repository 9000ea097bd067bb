package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoverImages returns the configured image files followed by those found
// under the scan paths, without duplicates.
func DiscoverImages(cfg Config) []string {
	seen := make(map[string]bool)
	var result []string

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			result = append(result, path)
		}
	}

	for _, p := range cfg.Tiles.Images {
		add(expandHome(p))
	}

	exts := cfg.Discovery.Extensions
	if len(exts) == 0 {
		exts = DefaultImageExtensions()
	}
	for _, scanPath := range cfg.Discovery.ScanPaths {
		maxDepth := cfg.Discovery.MaxDepth
		if maxDepth <= 0 {
			maxDepth = 2
		}
		for _, f := range scanForImages(scanPath, maxDepth, exts) {
			add(f)
		}
	}

	return result
}

// scanForImages walks a directory tree up to maxDepth levels deep, collecting
// files whose extension is in exts.
func scanForImages(root string, maxDepth int, exts []string) []string {
	root = expandHome(root)
	var results []string

	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			currentDepth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
			if currentDepth > maxDepth {
				return filepath.SkipDir
			}
			// Skip hidden directories, including our own data directory
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if hasImageExt(d.Name(), exts) {
			results = append(results, path)
		}
		return nil
	})

	return results
}

func hasImageExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// DetectDataDir finds the data directory by walking up from the current
// directory looking for .lv/.
func DetectDataDir() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return findDataDir(dir)
}

// findDataDir walks up from dir looking for a .lv/ directory.
func findDataDir(dir string) (string, bool) {
	home, _ := os.UserHomeDir()

	for {
		dataDir := filepath.Join(dir, DataDirName)
		if info, err := os.Stat(dataDir); err == nil && info.IsDir() {
			return dataDir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		// Don't go above home directory
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return "", false
}
