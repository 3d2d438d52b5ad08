package notebook

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the notebook widget.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	ExitEdit key.Binding
	AddBelow key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Save     key.Binding
	Quit     key.Binding
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Edit, k.Save, k.Quit}
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous cell"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next cell"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter", "i"),
		key.WithHelp("enter", "edit cell"),
	),
	ExitEdit: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "leave editor"),
	),
	AddBelow: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add cell below"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete cell"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "move cell up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "move cell down"),
	),
	Save: key.NewBinding(
		key.WithKeys("s", "ctrl+s"),
		key.WithHelp("s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
