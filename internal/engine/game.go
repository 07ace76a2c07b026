package engine

import "math/rand"

const (
	// Bounded placement budgets. When exhausted, food placement falls back
	// to an exhaustive free-cell scan and obstacle placement accepts the
	// partial set.
	maxFoodAttempts     = 64
	maxObstacleAttempts = 50

	// Obstacles must spawn farther than this from the snake head.
	minHeadClearance = 3.0
)

// Config holds the parameters for a single game session.
type Config struct {
	Width, Height int
	PointsPerFood int
	Seed          int64
	Difficulty    Difficulty
}

// DefaultConfig returns a 20x20 session with standard scoring.
func DefaultConfig() Config {
	return Config{
		Width:         20,
		Height:        20,
		PointsPerFood: 10,
		Difficulty:    DefaultDifficulty(),
	}
}

// Engine is a single-session Snake state machine advanced one tick at a time.
// It is single-threaded cooperative: the caller drives Tick at a cadence of
// its choosing and must never invoke the engine concurrently. Once a terminal
// collision occurs the state is frozen and further ticks are no-ops.
type Engine struct {
	width  int
	height int
	points int
	diff   Difficulty
	rng    *rand.Rand

	tick      uint64
	snake     []Position // Head at index 0
	direction Direction
	pending   Direction // Buffered direction applied on next tick
	food      Position
	obstacles map[Position]bool
	score     int
	gameOver  bool
}

// New creates a session with the snake at the grid center, heading right.
func New(cfg Config) *Engine {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.PointsPerFood <= 0 {
		cfg.PointsPerFood = DefaultConfig().PointsPerFood
	}
	if cfg.Difficulty == (Difficulty{}) {
		cfg.Difficulty = DefaultDifficulty()
	}

	e := &Engine{
		width:     cfg.Width,
		height:    cfg.Height,
		points:    cfg.PointsPerFood,
		diff:      cfg.Difficulty,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		snake:     []Position{{X: cfg.Width / 2, Y: cfg.Height / 2}},
		direction: Right,
		pending:   Right,
		obstacles: make(map[Position]bool),
	}
	e.spawnFood()
	return e
}

// HandleInput buffers a direction change for the next tick. Invalid vectors
// and exact reversals of the current direction are ignored; otherwise the
// request overwrites any previously pending direction.
func (e *Engine) HandleInput(d Direction) {
	if !d.Valid() || d.IsOpposite(e.direction) {
		return
	}
	e.pending = d
}

// Tick advances the simulation by one step. A no-op after game over.
func (e *Engine) Tick() {
	if e.gameOver {
		return
	}
	e.tick++
	e.direction = e.pending

	head := e.snake[0]
	newHead := Position{
		X: wrap(head.X+e.direction.DX, e.width),
		Y: wrap(head.Y+e.direction.DY, e.height),
	}

	// Body or obstacle collision ends the session. Not an error: the state
	// freezes and the final score stands.
	if e.isSnakeAt(newHead) || e.obstacles[newHead] {
		e.gameOver = true
		return
	}

	e.snake = append([]Position{newHead}, e.snake...)

	if newHead == e.food {
		e.score += e.points
		e.spawnFood()
		e.regenerateObstacles()
	} else if len(e.snake) > 1 {
		e.snake = e.snake[:len(e.snake)-1]
	}
}

// spawnFood places food on a random free cell. Random sampling is bounded;
// on a crowded grid it degrades to an exhaustive scan of free cells so
// placement always terminates.
func (e *Engine) spawnFood() {
	for range maxFoodAttempts {
		p := Position{X: e.rng.Intn(e.width), Y: e.rng.Intn(e.height)}
		if !e.isSnakeAt(p) && !e.obstacles[p] {
			e.food = p
			return
		}
	}

	var free []Position
	for y := range e.height {
		for x := range e.width {
			p := Position{X: x, Y: y}
			if !e.isSnakeAt(p) && !e.obstacles[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		// Grid is fully packed; park the food off-grid.
		e.food = Position{X: -1, Y: -1}
		return
	}
	e.food = free[e.rng.Intn(len(free))]
}

// regenerateObstacles rebuilds the obstacle set to the difficulty target.
// Placement is best-effort: the attempt budget is shared across the whole
// set, and a partial set is accepted silently when it runs out.
func (e *Engine) regenerateObstacles() {
	target := e.diff.ObstacleTarget(e.score)
	obstacles := make(map[Position]bool, target)
	head := e.snake[0]

	for attempts := 0; len(obstacles) < target && attempts < maxObstacleAttempts; attempts++ {
		p := Position{X: e.rng.Intn(e.width), Y: e.rng.Intn(e.height)}
		if e.isSnakeAt(p) || p == e.food || obstacles[p] {
			continue
		}
		if Distance(p, head) <= minHeadClearance {
			continue
		}
		obstacles[p] = true
	}

	e.obstacles = obstacles
}

func (e *Engine) isSnakeAt(p Position) bool {
	for _, seg := range e.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// GameOver reports whether the session has reached its terminal state.
func (e *Engine) GameOver() bool {
	return e.gameOver
}

// Level returns the current difficulty level.
func (e *Engine) Level() int {
	return e.diff.Level(e.score)
}

// Speed returns the tick cadence the external driver should run at, in
// ticks per second. The engine itself is cadence-free.
func (e *Engine) Speed() float64 {
	return e.diff.Speed(e.score)
}

// Size returns the grid dimensions.
func (e *Engine) Size() (width, height int) {
	return e.width, e.height
}
