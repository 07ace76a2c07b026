// Package engine provides the deterministic Snake simulation: grid geometry,
// tick-based movement, collision detection, food and obstacle placement, and
// score-driven difficulty scaling. It contains no external dependencies to
// keep the game logic pure and testable.
package engine

import "math"

// Position represents a cell on the grid.
type Position struct {
	X, Y int
}

// Direction is a unit vector with exactly one nonzero component.
type Direction struct {
	DX, DY int
}

// The four legal movement directions.
var (
	Up    = Direction{0, -1}
	Down  = Direction{0, 1}
	Left  = Direction{-1, 0}
	Right = Direction{1, 0}
)

// Valid reports whether d is a unit vector along exactly one axis.
func (d Direction) Valid() bool {
	return (d.DX == 0) != (d.DY == 0) && abs(d.DX)+abs(d.DY) == 1
}

// IsOpposite reports whether d is the exact reverse of o.
func (d Direction) IsOpposite(o Direction) bool {
	return d.DX == -o.DX && d.DY == -o.DY
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "invalid"
	}
}

// wrap maps v onto [0, m) so the grid behaves as a torus.
func wrap(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

// Distance returns the Euclidean distance between two cells.
func Distance(a, b Position) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
