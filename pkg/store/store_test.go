package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vanderheijden86/lazyview/pkg/todo"
	"github.com/vanderheijden86/lazyview/pkg/tree"
)

func sampleState() todo.SavedState {
	return todo.SavedState{
		InputValue: "half typed",
		Filter:     todo.Active,
		Tasks: []todo.Task{
			{Description: "write tests", Completed: true},
			{Description: "ship it"},
		},
	}
}

// TestStoresRoundTrip verifies both backends return what they saved.
func TestStoresRoundTrip(t *testing.T) {
	for _, backend := range []Backend{BackendJSON, BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			ctx := context.Background()
			dir := filepath.Join(t.TempDir(), ".lv")
			s, err := Open(ctx, backend, dir)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer s.Close()

			want := sampleState()
			if err := s.Save(ctx, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			// A second save replaces rather than appends.
			want.Tasks = want.Tasks[:1]
			if err := s.Save(ctx, want); err != nil {
				t.Fatalf("second Save: %v", err)
			}
			got, err = s.Load(ctx)
			if err != nil {
				t.Fatalf("second Load: %v", err)
			}
			if len(got.Tasks) != 1 {
				t.Errorf("tasks after second save = %d, want 1", len(got.Tasks))
			}
		})
	}
}

func TestJSONStoreMissingFile(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "todos.json"))
	_, err := s.Load(context.Background())

	var le *LoadError
	if !errors.As(err, &le) || le.Kind != LoadFile {
		t.Fatalf("Load() error = %v, want LoadError{LoadFile}", err)
	}
	if !IsNotExist(err) {
		t.Error("IsNotExist should see through LoadError")
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewJSONStore(path).Load(context.Background())

	var le *LoadError
	if !errors.As(err, &le) || le.Kind != LoadFormat {
		t.Fatalf("Load() error = %v, want LoadError{LoadFormat}", err)
	}
	if IsNotExist(err) {
		t.Error("corrupt file reported as missing")
	}
}

func TestJSONStoreUnknownFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	doc := `{"input_value": "", "filter": "Someday", "tasks": []}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewJSONStore(path).Load(context.Background())

	var le *LoadError
	if !errors.As(err, &le) || le.Kind != LoadFormat {
		t.Fatalf("Load() error = %v, want LoadError{LoadFormat}", err)
	}
}

func TestJSONStoreSaveIntoFile(t *testing.T) {
	// The parent "directory" is a regular file, so MkdirAll fails.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	err := NewJSONStore(filepath.Join(blocker, "todos.json")).Save(context.Background(), sampleState())

	var se *SaveError
	if !errors.As(err, &se) || se.Kind != SaveFile {
		t.Fatalf("Save() error = %v, want SaveError{SaveFile}", err)
	}
}

func TestJSONStoreWritesPrettyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	if err := NewJSONStore(path).Save(context.Background(), sampleState()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "input_value": "half typed",
  "filter": "Active",
  "tasks": [
    {
      "description": "write tests",
      "completed": true
    },
    {
      "description": "ship it",
      "completed": false
    }
  ]
}
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("file contents mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), "csv", t.TempDir()); err == nil {
		t.Error("Open(csv) should fail")
	}
}

func TestSQLiteStoreEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "todos.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load on a fresh database: %v", err)
	}
	if got.Filter != todo.All || len(got.Tasks) != 0 || got.InputValue != "" {
		t.Errorf("fresh database loaded %+v, want zero state", got)
	}
}

func TestOutlineFile(t *testing.T) {
	ctx := context.Background()
	f := OutlineFile{Path: OutlinePath(t.TempDir())}

	t.Run("missing file loads the sample", func(t *testing.T) {
		got, err := f.Load(ctx)
		if !IsNotExist(err) {
			t.Fatalf("Load() error = %v, want not-exist", err)
		}
		if got.Len() != tree.Sample().Len() {
			t.Errorf("fallback tree has %d nodes, want %d", got.Len(), tree.Sample().Len())
		}
	})

	t.Run("round trip keeps collapse state", func(t *testing.T) {
		want := tree.Sample()
		want.ToggleCollapse(1)
		if err := f.Save(ctx, want); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := f.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if diff := cmp.Diff(want.Saved(), got.Saved()); diff != "" {
			t.Errorf("outline mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("wrong version falls back", func(t *testing.T) {
		if err := os.WriteFile(f.Path, []byte(`{"version": 99, "nodes": []}`), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := f.Load(ctx)
		var le *LoadError
		if !errors.As(err, &le) || le.Kind != LoadFormat {
			t.Fatalf("Load() error = %v, want LoadError{LoadFormat}", err)
		}
		if got == nil || got.IsEmpty() {
			t.Error("fallback tree is empty")
		}
	})
}
