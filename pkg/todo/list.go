package todo

import "fmt"

// TaskMsg is a change addressed to one task.
type TaskMsg interface {
	taskMsg()
}

// SetCompleted marks a task done or open.
type SetCompleted bool

// Edit starts editing a task's description.
type Edit struct{}

// DescriptionEdited replaces a task's description.
type DescriptionEdited string

// FinishEdit commits an edit if the description is not empty.
type FinishEdit struct{}

// Delete removes a task.
type Delete struct{}

func (SetCompleted) taskMsg()      {}
func (Edit) taskMsg()              {}
func (DescriptionEdited) taskMsg() {}
func (FinishEdit) taskMsg()        {}
func (Delete) taskMsg()            {}

// List is the task list with its input line and filter.
//
// Every change marks the list dirty. PendingSave hands out one snapshot at a
// time and Saved reports that it has been written.
type List struct {
	InputValue string
	Filter     Filter
	Tasks      []Task

	dirty  bool
	saving bool
}

// FromSaved restores a list from its persisted form. Edit state starts idle.
func FromSaved(s SavedState) *List {
	tasks := make([]Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	for i := range tasks {
		tasks[i].State = Idle
	}
	return &List{InputValue: s.InputValue, Filter: s.Filter, Tasks: tasks}
}

// Snapshot returns the persisted form of the list.
func (l *List) Snapshot() SavedState {
	tasks := make([]Task, len(l.Tasks))
	copy(tasks, l.Tasks)
	return SavedState{InputValue: l.InputValue, Filter: l.Filter, Tasks: tasks}
}

// InputChanged replaces the new-task input.
func (l *List) InputChanged(value string) {
	l.InputValue = value
	l.dirty = true
}

// CreateTask appends a task from the input and clears it. An empty input
// creates nothing.
func (l *List) CreateTask() bool {
	l.dirty = true
	if l.InputValue == "" {
		return false
	}
	l.Tasks = append(l.Tasks, NewTask(l.InputValue))
	l.InputValue = ""
	return true
}

// SetFilter changes which tasks are shown.
func (l *List) SetFilter(f Filter) {
	l.Filter = f
	l.dirty = true
}

// Update applies msg to the task at position id. Positions outside the list
// are ignored. It reports whether a task was found.
func (l *List) Update(id int, msg TaskMsg) bool {
	l.dirty = true
	if id < 0 || id >= len(l.Tasks) {
		return false
	}
	if _, ok := msg.(Delete); ok {
		l.Tasks = append(l.Tasks[:id:id], l.Tasks[id+1:]...)
		return true
	}

	task := &l.Tasks[id]
	switch m := msg.(type) {
	case SetCompleted:
		task.Completed = bool(m)
	case Edit:
		task.State = Editing
	case DescriptionEdited:
		task.Description = string(m)
	case FinishEdit:
		if task.Description != "" {
			task.State = Idle
		}
	default:
		panic(fmt.Sprintf("todo: unknown task message %T", msg))
	}
	return true
}

// ClearCompleted removes every completed task and returns how many went.
func (l *List) ClearCompleted() int {
	kept := l.Tasks[:0:0]
	for _, t := range l.Tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(l.Tasks) - len(kept)
	l.Tasks = kept
	l.dirty = true
	return removed
}

// Visible returns the positions of the tasks the filter shows.
func (l *List) Visible() []int {
	var ids []int
	for i, t := range l.Tasks {
		if l.Filter.Matches(t) {
			ids = append(ids, i)
		}
	}
	return ids
}

// TasksLeft counts open tasks.
func (l *List) TasksLeft() int {
	n := 0
	for _, t := range l.Tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// TasksLeftLabel renders TasksLeft as "1 task left" / "3 tasks left".
func (l *List) TasksLeftLabel() string {
	n := l.TasksLeft()
	if n == 1 {
		return "1 task left"
	}
	return fmt.Sprintf("%d tasks left", n)
}

// Dirty reports whether the list changed since the last snapshot handed out.
func (l *List) Dirty() bool {
	return l.dirty
}

// Saving reports whether a snapshot is being written.
func (l *List) Saving() bool {
	return l.saving
}

// PendingSave returns a snapshot to write if the list is dirty and no write
// is in flight, and marks the write in flight.
func (l *List) PendingSave() (SavedState, bool) {
	if !l.dirty || l.saving {
		return SavedState{}, false
	}
	l.dirty = false
	l.saving = true
	return l.Snapshot(), true
}

// Saved records that the in-flight write finished. A failed write marks the
// list dirty again so the next change retries it.
func (l *List) Saved(err error) {
	l.saving = false
	if err != nil {
		l.dirty = true
	}
}

// Title is the window title, starred while there are unsaved changes.
func (l *List) Title() string {
	if l.dirty {
		return "Todos*"
	}
	return "Todos"
}
