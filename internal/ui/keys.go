package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Selection
	Select key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	// Log view
	Back            key.Binding
	Clear           key.Binding
	ClearFilter     key.Binding
	ToggleTimestamp key.Binding
	ToggleWrap      key.Binding
	Copy            key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "Help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down", "Scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Up 10 lines"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "Down 10 lines"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "Oldest line"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "Follow tail"),
		),

		Back: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Select target"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("f", "F"),
			key.WithHelp("f", "Clear filter"),
		),
		ToggleTimestamp: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Timestamps"),
		),
		ToggleWrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Wrap"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy visible"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Back, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Clear, k.ClearFilter, k.ToggleTimestamp, k.ToggleWrap, k.Copy},
		{k.Back, k.CycleTheme, k.Help, k.Quit},
	}
}

// selectHelp returns the footer bindings shown in selection mode.
func (k keyMap) selectHelp() []key.Binding {
	return []key.Binding{k.Select, k.Help, k.Quit}
}
