// Package checklist implements a flat list of entries with a tri-state check
// box, each editable in place.
package checklist

import "fmt"

// Checked is the state of an entry's check box.
type Checked int

const (
	Unchecked Checked = iota
	Partial
	Done
)

// Next cycles Unchecked -> Done -> Unchecked. Partial moves to Done.
func (c Checked) Next() Checked {
	if c == Done {
		return Unchecked
	}
	return Done
}

// Mark returns the check box glyph.
func (c Checked) Mark() string {
	switch c {
	case Done:
		return "[x]"
	case Partial:
		return "[-]"
	default:
		return "[ ]"
	}
}

// EntryState is whether an entry is being edited.
type EntryState int

const (
	Idle EntryState = iota
	Editing
)

// Entry is one line of the checklist.
type Entry struct {
	Description string
	Checked     Checked
	State       EntryState
}

// Msg is a change addressed to one entry.
type Msg interface {
	entryMsg()
}

type (
	// SetChecked sets the check box.
	SetChecked Checked
	// Edit starts editing.
	Edit struct{}
	// DescriptionEdited replaces the description.
	DescriptionEdited string
	// FinishEdit commits when the description is not empty.
	FinishEdit struct{}
	// Delete removes the entry.
	Delete struct{}
)

func (SetChecked) entryMsg()        {}
func (Edit) entryMsg()              {}
func (DescriptionEdited) entryMsg() {}
func (FinishEdit) entryMsg()        {}
func (Delete) entryMsg()            {}

// Checklist is the list plus its new-entry input.
type Checklist struct {
	InputValue string
	Entries    []Entry
}

// InputChanged replaces the new-entry input.
func (c *Checklist) InputChanged(value string) {
	c.InputValue = value
}

// Create appends an entry from the input and clears it.
func (c *Checklist) Create() bool {
	if c.InputValue == "" {
		return false
	}
	c.Entries = append(c.Entries, Entry{Description: c.InputValue})
	c.InputValue = ""
	return true
}

// Update applies msg to the entry at position id. It reports whether the
// entry exists.
func (c *Checklist) Update(id int, msg Msg) bool {
	if id < 0 || id >= len(c.Entries) {
		return false
	}
	if _, ok := msg.(Delete); ok {
		c.Entries = append(c.Entries[:id:id], c.Entries[id+1:]...)
		return true
	}

	e := &c.Entries[id]
	switch m := msg.(type) {
	case SetChecked:
		e.Checked = Checked(m)
	case Edit:
		e.State = Editing
	case DescriptionEdited:
		e.Description = string(m)
	case FinishEdit:
		if e.Description != "" {
			e.State = Idle
		}
	default:
		panic(fmt.Sprintf("checklist: unknown entry message %T", msg))
	}
	return true
}

// Progress returns how many entries are done out of the total. Partial
// entries count as not done.
func (c *Checklist) Progress() (done, total int) {
	for _, e := range c.Entries {
		if e.Checked == Done {
			done++
		}
	}
	return done, len(c.Entries)
}
