// Package todo implements the task list: tasks addressed by position, a
// completion filter, and the dirty/saving bookkeeping that drives autosave.
package todo

import (
	"fmt"
	"strings"
)

// TaskState is the transient edit state of a task. It is never persisted.
type TaskState int

const (
	Idle TaskState = iota
	Editing
)

// Task is one entry of the list.
type Task struct {
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	State       TaskState `json:"-"`
}

// NewTask returns an idle, open task.
func NewTask(description string) Task {
	return Task{Description: description}
}

// Filter selects which tasks are shown.
type Filter int

const (
	All Filter = iota
	Active
	Completed
)

// Filters lists every filter in display order.
var Filters = []Filter{All, Active, Completed}

// Matches reports whether the filter shows task.
func (f Filter) Matches(task Task) bool {
	switch f {
	case Active:
		return !task.Completed
	case Completed:
		return task.Completed
	default:
		return true
	}
}

func (f Filter) String() string {
	switch f {
	case All:
		return "All"
	case Active:
		return "Active"
	case Completed:
		return "Completed"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

// ParseFilter is the inverse of Filter.String, case-insensitive.
func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return All, fmt.Errorf("unknown filter %q", s)
}

// MarshalText encodes the filter by name.
func (f Filter) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a filter name.
func (f *Filter) UnmarshalText(b []byte) error {
	parsed, err := ParseFilter(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// EmptyMessage is shown when the filter leaves nothing to display.
func (f Filter) EmptyMessage() string {
	switch f {
	case Active:
		return "All your tasks are done."
	case Completed:
		return "You have not completed a task yet..."
	default:
		return "You have not created a task yet..."
	}
}

// SavedState is the persisted document.
type SavedState struct {
	InputValue string `json:"input_value"`
	Filter     Filter `json:"filter"`
	Tasks      []Task `json:"tasks"`
}
