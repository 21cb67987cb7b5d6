package tui

import "github.com/charmbracelet/bubbles/key"

// DefaultGesture is the chord that switches between the managers.
const DefaultGesture = "ctrl+b"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Open        key.Binding
	Tab         key.Binding
	Add         key.Binding
	Rename      key.Binding
	Delete      key.Binding
	Pin         key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Sort        key.Binding
	ShowPath    key.Binding
	TypeFilter  key.Binding
	Filter      key.Binding
	Yank        key.Binding
	AutoLoad    key.Binding
	ClearRecent key.Binding
	AutoOpen    key.Binding
	RunElevated key.Binding
	Gesture     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter/o", "open"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "saved/recent"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add from explorer"),
		),
		Rename: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove"),
		),
		Pin: key.NewBinding(
			key.WithKeys("*"),
			key.WithHelp("*", "pin/unpin"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "move up in order"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "move down in order"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort"),
		),
		ShowPath: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "show paths"),
		),
		TypeFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "file type"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		AutoLoad: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "auto-load"),
		),
		ClearRecent: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear recent"),
		),
		AutoOpen: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "auto-open list"),
		),
		RunElevated: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "run as admin"),
		),
		Gesture: GestureBinding(DefaultGesture),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "close"),
		),
	}
}

// GestureBinding binds the manager switch to chord. Tap once for folders,
// twice for files.
func GestureBinding(chord string) key.Binding {
	if chord == "" {
		chord = DefaultGesture
	}
	return key.NewBinding(
		key.WithKeys(chord),
		key.WithHelp(chord, "folders (x2: files)"),
	)
}
