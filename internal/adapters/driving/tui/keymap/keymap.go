// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Edit opens an editor on the selection.
	Edit key.Binding

	// NextTag and PrevTag cycle a region's drafted tag.
	NextTag key.Binding
	PrevTag key.Binding

	// Metadata opens the metadata view.
	Metadata key.Binding

	// Generate opens the generation dialog.
	Generate key.Binding

	// Open shows the artifact in a browser.
	Open key.Binding

	// Save writes the artifact to disk.
	Save key.Binding

	// Retry reruns the last generation.
	Retry key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		NextTag: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next tag"),
		),
		PrevTag: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev tag"),
		),
		Metadata: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "metadata"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "regenerate"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// ReviewHelp returns keybindings for the review view.
func (k *KeyMap) ReviewHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Metadata, k.Generate, k.Back}
}

// EditingHelp returns keybindings while a tag draft is open.
func (k *KeyMap) EditingHelp() []key.Binding {
	return []key.Binding{k.PrevTag, k.NextTag, k.Select, k.Back}
}

// GenerateHelp returns keybindings for the generation dialog.
func (k *KeyMap) GenerateHelp() []key.Binding {
	return []key.Binding{k.Open, k.Save, k.Retry, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Edit, k.PrevTag, k.NextTag},
		{k.Metadata, k.Generate, k.Open, k.Save, k.Retry},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
