package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Picker
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding

	// Actions
	Picker   key.Binding
	Mode     key.Binding
	CopyLink key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Picker, k.Mode, k.CopyLink, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Picker, k.Mode, k.CopyLink},
		{k.Up, k.Down, k.Select, k.Close},
		{k.Help, k.Quit},
	}
}

// PickerHelp is shown while the theme picker is open.
func (k KeyMap) PickerHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Close}
}

// DefaultKeyMap returns the default key bindings. shortcut opens the theme
// picker; an empty value uses "t".
func DefaultKeyMap(shortcut string) KeyMap {
	if shortcut == "" {
		shortcut = "t"
	}
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply theme"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Picker: key.NewBinding(
			key.WithKeys(shortcut),
			key.WithHelp(shortcut, "themes"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "dark/light"),
		),
		CopyLink: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
