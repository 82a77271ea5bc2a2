package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left, Right, Up, Down key.Binding
	Toggle                key.Binding
	Delete                key.Binding
	Refresh               key.Binding
	MoveLeft, MoveRight   key.Binding
	Cancel                key.Binding
	Help                  key.Binding
	Quit                  key.Binding
}

func newKeyMap(draggable bool) keyMap {
	k := keyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete selected")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		MoveLeft:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move back")),
		MoveRight: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move forward")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	if !draggable {
		k.MoveLeft.SetEnabled(false)
		k.MoveRight.SetEnabled(false)
		k.Cancel.SetEnabled(false)
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.Refresh, k.MoveLeft, k.MoveRight, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Toggle, k.Delete, k.Refresh},
		{k.MoveLeft, k.MoveRight, k.Cancel},
		{k.Help, k.Quit},
	}
}
