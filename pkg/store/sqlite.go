package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/lazyview/pkg/todo"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
	position    INTEGER PRIMARY KEY,
	description TEXT NOT NULL,
	completed   INTEGER NOT NULL DEFAULT 0
);`

// SQLiteStore keeps the todo list in a SQLite database. Tasks are rows
// ordered by position; the input value and filter live in a settings table.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// One writer at a time; the database is local to this process.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema in %s: %w", path, err)
	}
	return &SQLiteStore{path: path, db: db}, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Load reads the settings and every task in position order.
func (s *SQLiteStore) Load(ctx context.Context) (todo.SavedState, error) {
	var state todo.SavedState

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return state, &LoadError{Kind: LoadFile, Path: s.path, Err: err}
	}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			rows.Close()
			return todo.SavedState{}, &LoadError{Kind: LoadFormat, Path: s.path, Err: err}
		}
		switch key {
		case "input_value":
			state.InputValue = value
		case "filter":
			if err := state.Filter.UnmarshalText([]byte(value)); err != nil {
				rows.Close()
				return todo.SavedState{}, &LoadError{Kind: LoadFormat, Path: s.path, Err: err}
			}
		}
	}
	if err := rows.Close(); err != nil {
		return todo.SavedState{}, &LoadError{Kind: LoadFile, Path: s.path, Err: err}
	}

	rows, err = s.db.QueryContext(ctx, `SELECT description, completed FROM tasks ORDER BY position`)
	if err != nil {
		return todo.SavedState{}, &LoadError{Kind: LoadFile, Path: s.path, Err: err}
	}
	defer rows.Close()
	for rows.Next() {
		var task todo.Task
		if err := rows.Scan(&task.Description, &task.Completed); err != nil {
			return todo.SavedState{}, &LoadError{Kind: LoadFormat, Path: s.path, Err: err}
		}
		state.Tasks = append(state.Tasks, task)
	}
	if err := rows.Err(); err != nil {
		return todo.SavedState{}, &LoadError{Kind: LoadFile, Path: s.path, Err: err}
	}
	return state, nil
}

// Save replaces the stored state in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, state todo.SavedState) error {
	filter, err := state.Filter.MarshalText()
	if err != nil {
		return &SaveError{Kind: SaveFormat, Path: s.path, Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &SaveError{Kind: SaveFile, Path: s.path, Err: err}
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.ExecContext(ctx, upsert, "input_value", state.InputValue); err != nil {
		return &SaveError{Kind: SaveWrite, Path: s.path, Err: err}
	}
	if _, err := tx.ExecContext(ctx, upsert, "filter", string(filter)); err != nil {
		return &SaveError{Kind: SaveWrite, Path: s.path, Err: err}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return &SaveError{Kind: SaveWrite, Path: s.path, Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tasks (position, description, completed) VALUES (?, ?, ?)`)
	if err != nil {
		return &SaveError{Kind: SaveWrite, Path: s.path, Err: err}
	}
	defer stmt.Close()
	for i, task := range state.Tasks {
		if _, err := stmt.ExecContext(ctx, i, task.Description, task.Completed); err != nil {
			return &SaveError{Kind: SaveWrite, Path: s.path, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &SaveError{Kind: SaveWrite, Path: s.path, Err: err}
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
