package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keybindings for the countdown view.
type keyMap struct {
	Pause key.Binding
	Quit  key.Binding
}

// ShortHelp returns bindings for the single-line help footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Quit}
}

// FullHelp returns bindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause},
		{k.Quit},
	}
}

var defaultKeyMap = keyMap{
	Pause: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause/resume"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "stop"),
	),
}
