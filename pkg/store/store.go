// Package store persists the todo list and the outline between sessions.
//
// Two backends hold the todo list: a pretty-printed JSON file and a SQLite
// database. Failures are reported as LoadError or SaveError so callers can
// tell a missing file from a corrupt one; the application falls back to an
// empty list in either case.
package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vanderheijden86/lazyview/pkg/todo"
)

// Backend names a todo store implementation.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// File names inside the data directory.
const (
	TodosJSONFile   = "todos.json"
	TodosSQLiteFile = "todos.db"
	OutlineFileName = "outline.json"
)

// Store loads and saves the todo list.
type Store interface {
	Load(ctx context.Context) (todo.SavedState, error)
	Save(ctx context.Context, state todo.SavedState) error
	// Path is the file the store reads and writes.
	Path() string
	Close() error
}

// Open returns the store for backend rooted at dataDir.
func Open(ctx context.Context, backend Backend, dataDir string) (Store, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSONStore(filepath.Join(dataDir, TodosJSONFile)), nil
	case BackendSQLite:
		return OpenSQLite(ctx, filepath.Join(dataDir, TodosSQLiteFile))
	default:
		return nil, fmt.Errorf("unknown store backend %q (want json or sqlite)", backend)
	}
}
