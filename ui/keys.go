package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the viewer
type KeyMap struct {
	Quit        key.Binding
	FocusNext   key.Binding
	Refresh     key.Binding
	NewSession  key.Binding
	Select      key.Binding
	Up          key.Binding
	Down        key.Binding
	OpenDesktop key.Binding
	Reconnect   key.Binding
	FitMode     key.Binding
	LockAspect  key.Binding
	WidthDown   key.Binding
	WidthUp     key.Binding
	HeightDown  key.Binding
	HeightUp    key.Binding
	Preset1     key.Binding
	Preset2     key.Binding
	Preset3     key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		FocusNext:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh sessions")),
		NewSession:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new session")),
		Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/send")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		OpenDesktop: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "open desktop")),
		Reconnect:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reconnect desktop")),
		FitMode:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit to container")),
		LockAspect:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "lock aspect")),
		WidthDown:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "narrower")),
		WidthUp:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "wider")),
		HeightDown:  key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "shorter")),
		HeightUp:    key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "taller")),
		Preset1:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "1024x768")),
		Preset2:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "1280x800")),
		Preset3:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "1920x1080")),
	}
}
