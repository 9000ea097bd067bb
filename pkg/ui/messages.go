package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lazyview/pkg/tiles"
	"github.com/vanderheijden86/lazyview/pkg/todo"
	"github.com/vanderheijden86/lazyview/pkg/tree"
	"github.com/vanderheijden86/lazyview/pkg/widget"
)

// todosLoadedMsg carries the result of reading the todo store. reload is set
// when the read was triggered by a change on disk.
type todosLoadedMsg struct {
	state  todo.SavedState
	err    error
	reload bool
}

type todosSavedMsg struct {
	err error
}

// todosChangedMsg is sent when another process rewrites the todo file.
type todosChangedMsg struct{}

type outlineLoadedMsg struct {
	tree *tree.Tree
	err  error
}

type outlineSavedMsg struct {
	err error
}

type tilesLoadedMsg struct {
	tiles []*tiles.ImageTile
	err   error
}

type clipboardMsg struct {
	text string
	err  error
}

// scrollToMsg moves the scrollable identified by target.
type scrollToMsg struct {
	target widget.ID
	offset float32
}

// statusMsg shows text in the status bar.
type statusMsg struct {
	text  string
	isErr bool
}

func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// scrollCmd turns a pane's scroll command into a message for the view.
func scrollCmd(c tiles.ScrollCommand) tea.Cmd {
	if c.IsNone() {
		return nil
	}
	return func() tea.Msg {
		return scrollToMsg{target: c.Target, offset: c.Offset}
	}
}
