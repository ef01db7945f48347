package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Convert key.Binding
	Folder  key.Binding
	About   key.Binding
	Quit    key.Binding

	// Folder picker
	Choose key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Convert: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter", "convert"),
		),
		Folder: key.NewBinding(
			key.WithKeys("o", "f"),
			key.WithHelp("o", "choose folder"),
		),
		About: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "about"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Choose: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "use this folder"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap for the main screen
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Convert, k.Folder, k.About, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Choose, k.Cancel}}
}

// pickerKeys is the help shown under the folder picker
type pickerKeys struct {
	keyMap
}

func (k pickerKeys) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter/l", "open")),
		key.NewBinding(key.WithKeys("h"), key.WithHelp("h/esc", "up")),
		k.Choose,
		k.Cancel,
	}
}

// syncEnabled locks folder selection while a batch runs
func (k *keyMap) syncEnabled(s *ScreenState) {
	k.Folder.SetEnabled(s.CanChangeFolder())
}
