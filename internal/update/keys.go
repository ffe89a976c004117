package update

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the chat screen's key bindings.
type KeyMap struct {
	Submit     key.Binding
	Newline    key.Binding
	Upload     key.Binding
	OpenPicker key.Binding
	Cancel     key.Binding
	Export     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ask")),
		// Shift+Enter has no key string of its own; iTerm2, kitty and WezTerm
		// can be set to send it as alt+enter, VS Code and Windows Terminal as ctrl+j.
		Newline:    key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "newline")),
		Upload:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "upload")),
		OpenPicker: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "pick file")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Export:     key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "scroll down")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Newline, k.OpenPicker, k.Upload, k.Export, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Newline},
		{k.OpenPicker, k.Upload, k.Cancel},
		{k.Export, k.PageUp, k.PageDown, k.Quit},
	}
}

var Keys = DefaultKeyMap()
