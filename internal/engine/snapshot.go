package engine

// Snapshot captures the complete session state for rendering, determinism
// testing and replay. Slices are copies; mutating them does not affect the
// engine.
type Snapshot struct {
	Tick      uint64
	Score     int
	Level     int
	Speed     float64
	GameOver  bool
	Width     int
	Height    int
	Snake     []Position // Head at index 0
	Food      Position
	Obstacles []Position
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	snake := make([]Position, len(e.snake))
	copy(snake, e.snake)

	obstacles := make([]Position, 0, len(e.obstacles))
	for p := range e.obstacles {
		obstacles = append(obstacles, p)
	}

	return Snapshot{
		Tick:      e.tick,
		Score:     e.score,
		Level:     e.diff.Level(e.score),
		Speed:     e.diff.Speed(e.score),
		GameOver:  e.gameOver,
		Width:     e.width,
		Height:    e.height,
		Snake:     snake,
		Food:      e.food,
		Obstacles: obstacles,
	}
}
