package ui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func newTestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(io.Discard))
}

// keyMsg creates a KeyMsg for typed runes.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{
		Type:  tea.KeyRunes,
		Runes: []rune(key),
	}
}

// specialKey creates a KeyMsg for a non-rune key.
func specialKey(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

type updater interface {
	Update(msg tea.Msg) tea.Cmd
}

// press sends keys to u one after the other and runs the resulting
// commands.
func press(t *testing.T, u updater, keys ...tea.KeyMsg) {
	t.Helper()
	for _, k := range keys {
		drain(t, u, u.Update(k))
	}
}

// drain runs cmd and feeds the application messages it produces back into
// u until no more commands come out. Messages from bubbles internals (cursor
// blink and the like) are dropped.
func drain(t *testing.T, u updater, cmd tea.Cmd) {
	t.Helper()
	for depth := 0; cmd != nil; depth++ {
		if depth > 10 {
			t.Fatal("commands did not settle")
		}
		var next []tea.Cmd
		for _, msg := range collect(cmd) {
			next = append(next, u.Update(msg))
		}
		cmd = tea.Batch(next...)
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(2 * time.Second):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	switch msg.(type) {
	case todosLoadedMsg, todosSavedMsg, todosChangedMsg, outlineLoadedMsg, outlineSavedMsg,
		tilesLoadedMsg, statusMsg, scrollToMsg:
		return []tea.Msg{msg}
	}
	return nil
}
