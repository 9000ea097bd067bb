package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vanderheijden86/lazyview/pkg/tree"
)

// OutlineState is the persisted outline.
//
// File format (JSON):
//
//	{
//	  "version": 1,
//	  "nodes": [
//	    {"text": "entry 1"},
//	    {"text": "entry 2", "collapsed": true, "children": [...]}
//	  ]
//	}
//
// Missing or corrupt files load as the sample tree.
type OutlineState struct {
	Version int              `json:"version"`
	Nodes   []tree.SavedNode `json:"nodes"`
}

// OutlineVersion is the current schema version.
const OutlineVersion = 1

// OutlineFile reads and writes the outline document.
type OutlineFile struct {
	Path string
}

// OutlinePath returns the outline file inside dataDir.
func OutlinePath(dataDir string) string {
	return filepath.Join(dataDir, OutlineFileName)
}

// Load returns the saved tree. On any error it also returns the sample tree
// so the caller always has something to show.
func (f OutlineFile) Load(ctx context.Context) (*tree.Tree, error) {
	var state OutlineState
	if err := readJSON(ctx, f.Path, &state); err != nil {
		return tree.Sample(), err
	}
	if state.Version != OutlineVersion {
		err := fmt.Errorf("unsupported outline version %d", state.Version)
		return tree.Sample(), &LoadError{Kind: LoadFormat, Path: f.Path, Err: err}
	}
	return tree.FromSaved(state.Nodes), nil
}

// Save writes t, dropping edit state.
func (f OutlineFile) Save(ctx context.Context, t *tree.Tree) error {
	return writeJSON(ctx, f.Path, OutlineState{
		Version: OutlineVersion,
		Nodes:   t.Saved(),
	})
}
