package shell

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of a session. Printable keys not bound here
// are typed into the line.
type KeyMap struct {
	Quit      key.Binding
	Submit    key.Binding
	Complete  key.Binding
	Backspace key.Binding
}

// DefaultQuitKeys are the keys that end a session unless configured otherwise.
var DefaultQuitKeys = []string{"esc", "ctrl+c", "ctrl+d"}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(DefaultQuitKeys)
}

// NewKeyMap returns the default bindings with quit bound to the given keys.
func NewKeyMap(quit []string) KeyMap {
	if len(quit) == 0 {
		quit = DefaultQuitKeys
	}
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys(quit...)),
		Submit:    key.NewBinding(key.WithKeys("enter")),
		Complete:  key.NewBinding(key.WithKeys("tab")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	}
}
