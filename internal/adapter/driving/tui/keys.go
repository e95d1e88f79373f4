package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the explorer key bindings.
type keyMap struct {
	Graph   key.Binding
	List    key.Binding
	Next    key.Binding
	Prev    key.Binding
	All     key.Binding
	Refresh key.Binding
	Cancel  key.Binding
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Graph:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "graph")),
		List:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "list")),
		Next:    key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→", "next language")),
		Prev:    key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "prev language")),
		All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all languages")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Up:      key.NewBinding(key.WithKeys("up", "k")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpBindings returns the bindings listed in the footer, in display order.
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Graph, k.List, k.Prev, k.Next, k.All, k.Refresh, k.Quit}
}
