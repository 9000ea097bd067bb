package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/lazyview/pkg/todo"
)

// JSONStore keeps the todo list in a pretty-printed JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads and decodes the file.
func (s *JSONStore) Load(ctx context.Context) (todo.SavedState, error) {
	var state todo.SavedState
	if err := readJSON(ctx, s.path, &state); err != nil {
		return todo.SavedState{}, err
	}
	return state, nil
}

// Save encodes state and replaces the file.
func (s *JSONStore) Save(ctx context.Context, state todo.SavedState) error {
	return writeJSON(ctx, s.path, state)
}

// Close is a no-op.
func (s *JSONStore) Close() error {
	return nil
}

func readJSON(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return &LoadError{Kind: LoadFile, Path: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Kind: LoadFile, Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &LoadError{Kind: LoadFormat, Path: path, Err: err}
	}
	return nil
}

// writeJSON writes through a temporary file in the same directory and renames
// it over path, so readers never see a half-written file.
func writeJSON(ctx context.Context, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &SaveError{Kind: SaveFormat, Path: path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return &SaveError{Kind: SaveFile, Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &SaveError{Kind: SaveFile, Path: path, Err: err}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &SaveError{Kind: SaveFile, Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return &SaveError{Kind: SaveWrite, Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &SaveError{Kind: SaveWrite, Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &SaveError{Kind: SaveFile, Path: path, Err: err}
	}
	return nil
}
