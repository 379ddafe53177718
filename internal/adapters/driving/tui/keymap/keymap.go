// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
// Card inputs take plain keys, so every action is on a control chord.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Add appends a blank row.
	Add key.Binding

	// Delete removes the focused row.
	Delete key.Binding

	// Up moves focus to the previous row.
	Up key.Binding

	// Down moves focus to the next row.
	Down key.Binding

	// Send mails the list.
	Send key.Binding

	// Theme toggles light and dark.
	Theme key.Binding

	// SignIn starts Google sign-in.
	SignIn key.Binding

	// SignOut logs out.
	SignOut key.Binding

	// Dismiss closes a notice.
	Dismiss key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Add: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "add item"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑/shift+tab", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "tab"),
			key.WithHelp("↓/tab", "next"),
		),
		Send: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "send shopping list"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		SignIn: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "sign in with Google"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "log out"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "ok"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Delete, k.Quit}
}

// AccountHelp returns the bindings shown in the top bar.
func (k *KeyMap) AccountHelp(signedIn bool) []key.Binding {
	if signedIn {
		return []key.Binding{k.SignOut, k.Theme}
	}
	return []key.Binding{k.SignIn, k.Theme}
}

// ActionHelp returns the bindings shown in the bottom bar.
func (k *KeyMap) ActionHelp() []key.Binding {
	return []key.Binding{k.Add, k.Send}
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
