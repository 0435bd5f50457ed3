package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Watch panel
	Copy          key.Binding
	Reload        key.Binding
	Faster        key.Binding
	Slower        key.Binding
	ToggleVisible key.Binding
	ToggleLogs    key.Binding
	Up            key.Binding
	Down          key.Binding
	HalfPageUp    key.Binding
	HalfPageDown  key.Binding
	Top           key.Binding
	Bottom        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		// Watch panel
		Copy: key.NewBinding(
			key.WithKeys("c", "y"),
			key.WithHelp("c", "Copy"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload now"),
		),
		Faster: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Poll more often"),
		),
		Slower: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Poll less often"),
		),
		ToggleVisible: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Hide/show"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Toggle framewatch log"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "Half page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Reload, k.Slower, k.Faster, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Watch
		{k.Copy, k.Reload, k.Slower, k.Faster, k.ToggleVisible, k.ToggleLogs},
		// Scrolling
		{k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.Top, k.Bottom},
		// General
		{k.CycleTheme, k.Help, k.Quit},
	}
}
