package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"snake-arcade/internal/engine"
)

// Cell glyphs. Each board cell is two characters wide so the grid looks
// roughly square in a terminal.
const (
	glyphHead     = "()"
	glyphBody     = "[]"
	glyphFood     = "<>"
	glyphObstacle = "##"
	glyphEmpty    = "  "
)

var (
	headStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	bodyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	foodStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	obstacleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("229")).
			Padding(1, 3)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// renderView renders the complete frame for the model.
func renderView(m Model) string {
	snap := m.eng.Snapshot()

	var b strings.Builder
	b.WriteString(renderHUD(snap, m.playerName))
	b.WriteString("\n")
	b.WriteString(boardStyle.Render(renderBoard(snap)))
	b.WriteString("\n")

	switch m.phase {
	case phasePlaying:
		b.WriteString(helpStyle.Render("arrows/wasd move  p pause  q quit"))
	case phasePaused:
		b.WriteString(renderOverlay("PAUSED", "p resume  r restart  q quit"))
	case phaseNameEntry:
		b.WriteString(renderNameEntry(m, snap))
	case phaseSubmitted:
		b.WriteString(renderResult(m, snap))
	}

	out := b.String()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, out)
	}
	return out
}

// renderHUD renders the status line above the board.
func renderHUD(snap engine.Snapshot, playerName string) string {
	hud := fmt.Sprintf("Score %d   Level %d   Speed %.1f", snap.Score, snap.Level, snap.Speed)
	if playerName != "" {
		hud = playerName + "   " + hud
	}
	return hudStyle.Render(hud)
}

// renderBoard renders the grid contents without the border.
func renderBoard(snap engine.Snapshot) string {
	// Cell lookup tables keyed by position.
	type cellKind int
	const (
		cellEmpty cellKind = iota
		cellHead
		cellBody
		cellFood
		cellObstacle
	)

	cells := make(map[engine.Position]cellKind, len(snap.Snake)+len(snap.Obstacles)+1)
	for _, p := range snap.Obstacles {
		cells[p] = cellObstacle
	}
	if snap.Food.X >= 0 && snap.Food.Y >= 0 {
		cells[snap.Food] = cellFood
	}
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		kind := cellBody
		if i == 0 {
			kind = cellHead
		}
		cells[snap.Snake[i]] = kind
	}

	var b strings.Builder
	b.Grow(snap.Width * snap.Height * 3)
	for y := 0; y < snap.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < snap.Width; x++ {
			switch cells[engine.Position{X: x, Y: y}] {
			case cellHead:
				b.WriteString(headStyle.Render(glyphHead))
			case cellBody:
				b.WriteString(bodyStyle.Render(glyphBody))
			case cellFood:
				b.WriteString(foodStyle.Render(glyphFood))
			case cellObstacle:
				b.WriteString(obstacleStyle.Render(glyphObstacle))
			default:
				b.WriteString(glyphEmpty)
			}
		}
	}
	return b.String()
}

// renderNameEntry renders the game-over prompt with the name input.
func renderNameEntry(m Model, snap engine.Snapshot) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("GAME OVER"))
	b.WriteString(fmt.Sprintf("\n\nFinal score: %d (level %d)\n\n", snap.Score, snap.Level))
	b.WriteString("Save your score as:\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter save  esc skip"))
	return overlayStyle.Render(b.String())
}

// renderResult renders the post-submission summary.
func renderResult(m Model, snap engine.Snapshot) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("GAME OVER"))
	b.WriteString(fmt.Sprintf("\n\nFinal score: %d (level %d)\n", snap.Score, snap.Level))

	switch {
	case m.skipped:
		b.WriteString("\nScore not saved.\n")
	case m.submitErr != nil:
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Could not save score: %v", m.submitErr)))
		b.WriteString("\n")
	case m.result.IsNewBest:
		b.WriteString(fmt.Sprintf("\nNew personal best! Rank #%d\n", m.result.Rank))
	default:
		b.WriteString(fmt.Sprintf("\nNot a new best. Current rank #%d\n", m.result.Rank))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("r play again  q quit"))
	return overlayStyle.Render(b.String())
}

// renderOverlay renders a titled overlay box with a help line.
func renderOverlay(title, help string) string {
	return overlayStyle.Render(titleStyle.Render(title) + "\n\n" + helpStyle.Render(help))
}
