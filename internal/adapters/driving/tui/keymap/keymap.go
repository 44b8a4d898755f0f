// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application. q only applies outside text fields.
	Quit key.Binding

	// Back leaves the current view or clears the current field.
	Back key.Binding

	// Focus cycles focus between search, tags and results.
	Focus key.Binding

	// FocusBack cycles focus in reverse.
	FocusBack key.Binding

	Up   key.Binding
	Down key.Binding

	// Left and Right move the tag cursor and cycle the type field.
	Left  key.Binding
	Right key.Binding

	// Open shows the selected fragment.
	Open key.Binding

	// Toggle selects or deselects the tag under the cursor.
	Toggle key.Binding

	// ClearTags deselects every tag filter.
	ClearTags key.Binding

	// New opens the editor for a new fragment.
	New key.Binding

	// Edit opens the editor for the shown fragment.
	Edit key.Binding

	// Delete asks to delete the shown fragment.
	Delete key.Binding

	// Confirm and Deny answer the delete prompt.
	Confirm key.Binding
	Deny    key.Binding

	// Save stores the fragment in the editor.
	Save key.Binding

	// SearchFocus jumps to the search field.
	SearchFocus key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		FocusBack: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle tag"),
		),
		ClearTags: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear tags"),
		),
		New: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		SearchFocus: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
	}
}

// BrowseHelp returns keybindings for the browse view.
func (k *KeyMap) BrowseHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Open, k.New, k.Quit}
}

// TagsHelp returns keybindings for the tag bar.
func (k *KeyMap) TagsHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Toggle, k.ClearTags}
}

// DetailHelp returns keybindings for the detail view.
func (k *KeyMap) DetailHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Delete, k.Back}
}

// ConfirmHelp returns keybindings for the delete prompt.
func (k *KeyMap) ConfirmHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Deny}
}

// EditorHelp returns keybindings for the editor.
func (k *KeyMap) EditorHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Save, k.Back}
}
