package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	enter  key.Binding
	toggle key.Binding
	next   key.Binding
	prev   key.Binding
	tab    key.Binding
	logout key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play playlist")),
		toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		next:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next track")),
		prev:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous track")),
		tab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		logout: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.tab, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.toggle, k.next, k.prev},
		{k.tab, k.logout, k.quit},
	}
}
