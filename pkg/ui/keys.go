package ui

import "github.com/charmbracelet/bubbles/key"

// globalKeys are handled by the root model before the active tab sees a key.
type globalKeys struct {
	Quit     key.Binding
	Help     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	JumpTabs []key.Binding
}

func defaultGlobalKeys(tabCount int) globalKeys {
	k := globalKeys{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		NextTab: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev tab")),
	}
	for i := 0; i < tabCount && i < 9; i++ {
		n := string(rune('1' + i))
		k.JumpTabs = append(k.JumpTabs, key.NewBinding(key.WithKeys(n)))
	}
	return k
}

// listKeys are shared by the tabs that show a cursor over rows.
type listKeys struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	PgUp   key.Binding
	PgDown key.Binding
}

func defaultListKeys() listKeys {
	return listKeys{
		Up:     key.NewBinding(key.WithKeys("k", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down")),
		Top:    key.NewBinding(key.WithKeys("g", "home")),
		Bottom: key.NewBinding(key.WithKeys("G", "end")),
		PgUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		PgDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
	}
}

// focusKeys move focus between the input line and the list in a tab.
var focusKeys = struct {
	Next key.Binding
	Prev key.Binding
}{
	Next: key.NewBinding(key.WithKeys("tab")),
	Prev: key.NewBinding(key.WithKeys("shift+tab")),
}
