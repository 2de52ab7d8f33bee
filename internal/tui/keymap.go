package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the browser.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Apply         key.Binding
	Reset         key.Binding
	CycleSort     key.Binding
	EditKeywords  key.Binding
	SavePreset    key.Binding
	LoadPreset    key.Binding
	MarkSubmitted key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the standard key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Apply: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a", "apply filters"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset filters"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "cycle sort order"),
		),
		EditKeywords: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "edit keywords"),
		),
		SavePreset: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save preset"),
		),
		LoadPreset: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "load preset"),
		),
		MarkSubmitted: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark submitted"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
