package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"snake-arcade/internal/engine"
)

// ControlAction represents a non-movement control derived from input.
type ControlAction int

const (
	ControlNone ControlAction = iota
	ControlPause
	ControlRestart
	ControlQuit
)

// KeyMapper translates Bubble Tea key messages to game input.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapDirection translates a key message to a movement direction.
// Returns false when the key is not a movement key.
func (km *KeyMapper) MapDirection(msg tea.KeyMsg) (engine.Direction, bool) {
	switch msg.String() {
	case "up", "w", "k": // vim-style k for up
		return engine.Up, true
	case "down", "s", "j":
		return engine.Down, true
	case "left", "a", "h":
		return engine.Left, true
	case "right", "d", "l":
		return engine.Right, true
	}
	return engine.Direction{}, false
}

// MapControl translates a key message to a control action.
func (km *KeyMapper) MapControl(msg tea.KeyMsg) ControlAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return ControlQuit
	case "p", "esc", " ":
		return ControlPause
	case "r":
		return ControlRestart
	}
	return ControlNone
}
