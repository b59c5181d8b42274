package cli

import "github.com/charmbracelet/bubbles/key"

// boardKeys are the bindings of the view command.
type boardKeys struct {
	Up, Down, Left, Right key.Binding

	Focus  key.Binding
	Select key.Binding
	PickUp key.Binding
	Drop   key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

var keys = boardKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "select")),
	PickUp: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pick up")),
	Drop:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "drop")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// keyHelp adapts the bindings relevant to one board mode to help.KeyMap.
type keyHelp []key.Binding

func (k keyHelp) ShortHelp() []key.Binding   { return k }
func (k keyHelp) FullHelp() [][]key.Binding { return [][]key.Binding{k} }

func selectorHelp() keyHelp {
	return keyHelp{keys.Up, keys.Down, keys.Select, keys.Focus, keys.Quit}
}

func boardHelp(dragging bool) keyHelp {
	if dragging {
		return keyHelp{keys.Left, keys.Right, keys.Up, keys.Down, keys.Drop, keys.Cancel}
	}
	return keyHelp{keys.Left, keys.Right, keys.Up, keys.Down, keys.PickUp, keys.Focus, keys.Quit}
}
