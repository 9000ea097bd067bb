package todo

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func listWith(descriptions ...string) *List {
	l := &List{}
	for _, d := range descriptions {
		l.Tasks = append(l.Tasks, NewTask(d))
	}
	return l
}

func TestCreateTask(t *testing.T) {
	l := &List{}
	if l.CreateTask() {
		t.Error("CreateTask with empty input should create nothing")
	}

	l.InputChanged("buy milk")
	if !l.CreateTask() {
		t.Fatal("CreateTask refused a non-empty input")
	}
	if l.InputValue != "" {
		t.Errorf("input not cleared: %q", l.InputValue)
	}
	if len(l.Tasks) != 1 || l.Tasks[0].Description != "buy milk" || l.Tasks[0].Completed {
		t.Errorf("tasks = %+v, want one open 'buy milk'", l.Tasks)
	}
}

func TestUpdateTask(t *testing.T) {
	l := listWith("a", "b")

	l.Update(1, SetCompleted(true))
	if !l.Tasks[1].Completed {
		t.Error("task 1 not completed")
	}

	l.Update(0, Edit{})
	if l.Tasks[0].State != Editing {
		t.Error("task 0 not editing")
	}
	l.Update(0, DescriptionEdited(""))
	l.Update(0, FinishEdit{})
	if l.Tasks[0].State != Editing {
		t.Error("empty description committed")
	}
	l.Update(0, DescriptionEdited("a2"))
	l.Update(0, FinishEdit{})
	if l.Tasks[0].State != Idle || l.Tasks[0].Description != "a2" {
		t.Errorf("task 0 = %+v, want idle a2", l.Tasks[0])
	}
}

func TestDeleteByPosition(t *testing.T) {
	l := listWith("a", "b", "c")
	if !l.Update(1, Delete{}) {
		t.Fatal("Delete(1) found no task")
	}
	var got []string
	for _, task := range l.Tasks {
		got = append(got, task.Description)
	}
	if diff := cmp.Diff([]string{"a", "c"}, got); diff != "" {
		t.Errorf("after delete (-want +got):\n%s", diff)
	}
}

func TestUpdateOutOfRange(t *testing.T) {
	l := listWith("a")
	for _, id := range []int{-1, 1, 10} {
		if l.Update(id, Delete{}) {
			t.Errorf("Update(%d) should report not found", id)
		}
	}
	if len(l.Tasks) != 1 {
		t.Errorf("tasks changed: %+v", l.Tasks)
	}
}

func TestFilterVisible(t *testing.T) {
	l := listWith("a", "b", "c")
	l.Update(1, SetCompleted(true))

	tests := []struct {
		filter Filter
		want   []int
	}{
		{All, []int{0, 1, 2}},
		{Active, []int{0, 2}},
		{Completed, []int{1}},
	}
	for _, tt := range tests {
		l.SetFilter(tt.filter)
		if diff := cmp.Diff(tt.want, l.Visible()); diff != "" {
			t.Errorf("%v: Visible() (-want +got):\n%s", tt.filter, diff)
		}
	}
	if l.TasksLeftLabel() != "2 tasks left" {
		t.Errorf("TasksLeftLabel() = %q", l.TasksLeftLabel())
	}
	l.Update(0, SetCompleted(true))
	if l.TasksLeftLabel() != "1 task left" {
		t.Errorf("TasksLeftLabel() = %q", l.TasksLeftLabel())
	}
}

func TestClearCompleted(t *testing.T) {
	l := listWith("a", "b", "c")
	l.Update(0, SetCompleted(true))
	l.Update(2, SetCompleted(true))
	if got := l.ClearCompleted(); got != 2 {
		t.Errorf("ClearCompleted() = %d, want 2", got)
	}
	if len(l.Tasks) != 1 || l.Tasks[0].Description != "b" {
		t.Errorf("tasks = %+v, want [b]", l.Tasks)
	}
}

func TestAutosaveStateMachine(t *testing.T) {
	l := &List{}
	if _, ok := l.PendingSave(); ok {
		t.Fatal("clean list should not need saving")
	}

	l.InputChanged("x")
	if l.Title() != "Todos*" {
		t.Errorf("Title() = %q, want starred", l.Title())
	}
	snap, ok := l.PendingSave()
	if !ok || snap.InputValue != "x" {
		t.Fatalf("PendingSave() = %+v, %v", snap, ok)
	}
	if !l.Saving() {
		t.Error("not marked saving")
	}

	// A change during the write waits for it to finish.
	l.CreateTask()
	if _, ok := l.PendingSave(); ok {
		t.Error("second save started while one is in flight")
	}
	l.Saved(nil)
	snap, ok = l.PendingSave()
	if !ok || len(snap.Tasks) != 1 {
		t.Fatalf("PendingSave() after write = %+v, %v", snap, ok)
	}

	l.Saved(errors.New("disk full"))
	if !l.Dirty() {
		t.Error("failed write should leave the list dirty")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	l := listWith("a", "b")
	l.Update(0, Edit{})
	l.Update(1, SetCompleted(true))
	l.SetFilter(Active)
	l.InputChanged("draft")

	back := FromSaved(l.Snapshot())
	if back.Tasks[0].State != Idle {
		t.Error("edit state should not survive a snapshot")
	}
	if back.Filter != Active || back.InputValue != "draft" || !back.Tasks[1].Completed {
		t.Errorf("restored = %+v", back)
	}

	// The snapshot must not alias the live list.
	snap := l.Snapshot()
	snap.Tasks[0].Description = "changed"
	if l.Tasks[0].Description != "a" {
		t.Error("snapshot aliases task storage")
	}
}

func TestFilterText(t *testing.T) {
	for _, f := range Filters {
		b, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Filter
		if err := back.UnmarshalText(b); err != nil || back != f {
			t.Errorf("round trip of %v = %v, %v", f, back, err)
		}
	}
	if _, err := ParseFilter("someday"); err == nil {
		t.Error("ParseFilter accepted an unknown name")
	}
	if f, _ := ParseFilter("active"); f != Active {
		t.Errorf("ParseFilter is case sensitive: got %v", f)
	}
}
