package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Home    key.Binding
	End     key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding

	// Actions
	Quit         key.Binding
	ForceQuit    key.Binding
	Escape       key.Binding
	Focus        key.Binding
	Filter       key.Binding
	ToggleMode   key.Binding
	ToggleWindow key.Binding
	ToggleSaved  key.Binding
	Refresh      key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev tab"),
		),
		Tab1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		Tab2: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "search")),
		Tab3: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "suggest")),
		Tab4: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "saved")),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Focus: key.NewBinding(
			key.WithKeys("i", "/"),
			key.WithHelp("i", "type query"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "keyword/AI"),
		),
		ToggleWindow: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "day/week"),
		),
		ToggleSaved: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save/unsave"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
