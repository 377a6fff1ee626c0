package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Jump   key.Binding
	Scroll key.Binding
	Theme  key.Binding
	Mute   key.Binding
	Stats  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("ctrl+t", "tab", "right"),
			key.WithHelp("ctrl+t/→", "next tab"),
		),
		Prev: key.NewBinding(
			key.WithKeys("ctrl+p", "shift+tab", "left"),
			key.WithHelp("ctrl+p/←", "prev tab"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "jump to tab"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "pgup", "pgdown"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Theme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Mute:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		Stats: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Scroll, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Jump, k.Scroll},
		{k.Theme, k.Mute, k.Stats},
		{k.Help, k.Quit},
	}
}
