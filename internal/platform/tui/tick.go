// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, and the game-over
// score submission flow.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. gen identifies the tick
// chain the message belongs to; a message from a superseded chain (pause,
// restart) is dropped so the cadence never doubles.
type TickMsg struct {
	gen int
}

// tickCmd returns a Bubble Tea command that sends the next tick message.
// The interval is derived from the current speed in ticks per second, so
// the snake visibly accelerates as the level climbs.
func tickCmd(speed float64, gen int) tea.Cmd {
	if speed <= 0 {
		speed = 1
	}
	interval := time.Duration(float64(time.Second) / speed)
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{gen: gen}
	})
}
