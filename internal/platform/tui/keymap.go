package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/comfy-wars/internal/core"
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Back    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	EndTurn key.Binding
	Reload  key.Binding
	Shot    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Confirm, k.Cancel, k.EndTurn, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Back, k.Confirm, k.Cancel},
		{k.EndTurn, k.Reload, k.Shot},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "pointer up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "pointer down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "pointer left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "pointer right"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select/move"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("bksp", "deselect"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		EndTurn: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "end turn"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "reload unit"),
		),
		Shot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Button maps a key to the game button it presses.
// Returns core.ButtonNone for keys that are not game buttons.
func (k KeyMap) Button(msg tea.KeyMsg) core.Button {
	switch {
	case key.Matches(msg, k.Select):
		return core.MouseLeft
	case key.Matches(msg, k.Back):
		return core.MouseRight
	case key.Matches(msg, k.Confirm):
		return core.ButtonConfirm
	case key.Matches(msg, k.Cancel):
		return core.ButtonCancel
	case key.Matches(msg, k.EndTurn):
		return core.ButtonEndTurn
	}
	return core.ButtonNone
}

// Direction maps a key to a pointer step in tiles.
func (k KeyMap) Direction(msg tea.KeyMsg) (dx, dy int, ok bool) {
	switch {
	case key.Matches(msg, k.Up):
		return 0, -1, true
	case key.Matches(msg, k.Down):
		return 0, 1, true
	case key.Matches(msg, k.Left):
		return -1, 0, true
	case key.Matches(msg, k.Right):
		return 1, 0, true
	}
	return 0, 0, false
}

// MouseButton maps a mouse press to a game button.
func MouseButton(msg tea.MouseMsg) core.Button {
	if msg.Action != tea.MouseActionPress {
		return core.ButtonNone
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		return core.MouseLeft
	case tea.MouseButtonRight:
		return core.MouseRight
	}
	return core.ButtonNone
}
