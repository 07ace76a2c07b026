package engine

import (
	"reflect"
	"testing"
)

func newTestEngine(seed int64) *Engine {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return New(cfg)
}

func TestDeterminism(t *testing.T) {
	// Two engines with the same seed and inputs must produce identical snapshots.
	g1 := newTestEngine(12345)
	g2 := newTestEngine(12345)

	for i := 0; i < 200; i++ {
		if i == 20 {
			g1.HandleInput(Down)
			g2.HandleInput(Down)
		}
		if i == 40 {
			g1.HandleInput(Left)
			g2.HandleInput(Left)
		}
		g1.Tick()
		g2.Tick()
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	s1.Obstacles, s2.Obstacles = nil, nil // map iteration order differs
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("Snapshots diverged:\n%+v\n%+v", s1, s2)
	}
	if len(g1.obstacles) != len(g2.obstacles) {
		t.Errorf("Obstacle count mismatch: %d vs %d", len(g1.obstacles), len(g2.obstacles))
	}
	for p := range g1.obstacles {
		if !g2.obstacles[p] {
			t.Errorf("Obstacle at %v missing from second engine", p)
		}
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestEngine(42)

	if g.direction != Right {
		t.Fatalf("Expected initial direction right, got %v", g.direction)
	}

	// Exact reverse of the current direction must be ignored.
	g.HandleInput(Left)
	if g.pending == Left {
		t.Error("Reversal from right to left should be rejected")
	}

	// A perpendicular turn is buffered for the next tick.
	g.HandleInput(Down)
	if g.pending != Down {
		t.Errorf("Expected pending direction down, got %v", g.pending)
	}
	if g.direction != Right {
		t.Error("Buffered direction should not apply before the next tick")
	}

	g.Tick()
	if g.direction != Down {
		t.Errorf("Expected direction down after tick, got %v", g.direction)
	}
}

func TestInvalidInputIgnored(t *testing.T) {
	g := newTestEngine(7)

	for _, d := range []Direction{{0, 0}, {1, 1}, {2, 0}, {-1, -1}} {
		g.HandleInput(d)
		if g.pending != Right {
			t.Errorf("Invalid direction %v should be ignored, pending became %v", d, g.pending)
		}
	}
}

func TestPendingOverwrite(t *testing.T) {
	g := newTestEngine(7)

	// The latest legal request within a tick wins.
	g.HandleInput(Up)
	g.HandleInput(Down)
	if g.pending != Down {
		t.Errorf("Expected pending down, got %v", g.pending)
	}
}

func TestToroidalWrap(t *testing.T) {
	g := newTestEngine(1)

	// Head moving past the right edge reappears on the left, same row.
	g.snake = []Position{{X: g.width - 1, Y: 5}}
	g.Tick()

	if g.gameOver {
		t.Fatal("Crossing the grid edge must not end the game")
	}
	if head := g.snake[0]; head.X != 0 || head.Y != 5 {
		t.Errorf("Expected head at (0, 5), got (%d, %d)", head.X, head.Y)
	}

	// And past the top edge reappears at the bottom.
	g.snake = []Position{{X: 3, Y: 0}}
	g.direction, g.pending = Up, Up
	g.Tick()
	if head := g.snake[0]; head.X != 3 || head.Y != g.height-1 {
		t.Errorf("Expected head at (3, %d), got (%d, %d)", g.height-1, head.X, head.Y)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := newTestEngine(999)
	g.score = 200
	g.regenerateObstacles()

	for i := 0; i < 200; i++ {
		g.spawnFood()

		if g.isSnakeAt(g.food) {
			t.Errorf("Food spawned on snake at %v", g.food)
		}
		if g.obstacles[g.food] {
			t.Errorf("Food spawned on obstacle at %v", g.food)
		}
		if g.food.X < 0 || g.food.X >= g.width || g.food.Y < 0 || g.food.Y >= g.height {
			t.Errorf("Food out of bounds at %v", g.food)
		}
	}
}

func TestFoodSpawnOnDenseGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 3, 3
	cfg.Seed = 5
	g := New(cfg)

	// Fill every cell but one with snake so random sampling must fall back
	// to the exhaustive scan.
	g.snake = nil
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 2 && y == 2 {
				continue
			}
			g.snake = append(g.snake, Position{X: x, Y: y})
		}
	}

	g.spawnFood()
	if (g.food != Position{X: 2, Y: 2}) {
		t.Errorf("Expected food at the only free cell (2, 2), got %v", g.food)
	}

	// With no free cell at all, placement still terminates.
	g.snake = append(g.snake, Position{X: 2, Y: 2})
	g.spawnFood()
	if (g.food != Position{X: -1, Y: -1}) {
		t.Errorf("Expected off-grid food on a packed grid, got %v", g.food)
	}
}

func TestSelfCollision(t *testing.T) {
	g := newTestEngine(111)

	// A spiral snake whose head runs into its own body on the next move.
	g.snake = []Position{
		{X: 5, Y: 5}, // Head
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}
	g.direction, g.pending = Right, Right
	g.Tick()

	if !g.gameOver {
		t.Error("Game should be over after self collision")
	}
}

func TestObstacleCollision(t *testing.T) {
	g := newTestEngine(222)

	head := g.snake[0]
	g.obstacles[Position{X: head.X + 1, Y: head.Y}] = true
	g.Tick()

	if !g.gameOver {
		t.Error("Game should be over after hitting an obstacle")
	}
}

func TestStateFrozenAfterGameOver(t *testing.T) {
	g := newTestEngine(333)

	head := g.snake[0]
	g.obstacles[Position{X: head.X + 1, Y: head.Y}] = true
	g.Tick()
	if !g.gameOver {
		t.Fatal("Expected game over")
	}

	before := g.Snapshot()
	g.HandleInput(Down)
	for i := 0; i < 10; i++ {
		g.Tick()
	}
	after := g.Snapshot()

	before.Obstacles, after.Obstacles = nil, nil
	if !reflect.DeepEqual(before, after) {
		t.Errorf("State mutated after game over:\n%+v\n%+v", before, after)
	}
}

func TestGrowthAndScore(t *testing.T) {
	g := newTestEngine(444)

	head := g.snake[0]
	g.food = Position{X: head.X + 1, Y: head.Y}
	initialLen := len(g.snake)

	g.Tick()

	if len(g.snake) != initialLen+1 {
		t.Errorf("Snake should grow by 1 after eating, got %d vs %d", len(g.snake), initialLen+1)
	}
	if g.score != 10 {
		t.Errorf("Score should be 10 after eating, got %d", g.score)
	}
	if g.food == g.snake[0] {
		t.Error("Food should regenerate after being eaten")
	}
}

func TestNoDuplicateSegments(t *testing.T) {
	g := newTestEngine(555)

	dirs := []Direction{Right, Down, Left, Up}
	for i := 0; i < 500 && !g.gameOver; i++ {
		g.HandleInput(dirs[(i/3)%len(dirs)])
		g.Tick()

		seen := make(map[Position]bool, len(g.snake))
		for _, seg := range g.snake {
			if seen[seg] {
				t.Fatalf("Duplicate segment at %v on tick %d", seg, g.tick)
			}
			seen[seg] = true
		}
	}
}

func TestObstacleRegenerationScenario(t *testing.T) {
	g := newTestEngine(666)

	// Session starts at level 1 with no obstacles.
	if g.Level() != 1 {
		t.Fatalf("Expected starting level 1, got %d", g.Level())
	}
	if len(g.obstacles) != 0 {
		t.Fatalf("Expected no obstacles at start, got %d", len(g.obstacles))
	}

	// Eat food at score 90 to cross into level 3 at score 100.
	g.score = 90
	head := g.snake[0]
	g.food = Position{X: head.X + 1, Y: head.Y}
	g.Tick()

	if g.score != 100 {
		t.Fatalf("Expected score 100, got %d", g.score)
	}
	if g.Level() != 3 {
		t.Errorf("Expected level 3 at score 100, got %d", g.Level())
	}
	if len(g.obstacles) < 2 {
		t.Errorf("Expected at least 2 obstacles at level 3, got %d", len(g.obstacles))
	}

	newHead := g.snake[0]
	for p := range g.obstacles {
		if d := Distance(p, newHead); d <= minHeadClearance {
			t.Errorf("Obstacle at %v is %.2f from head, want > %.1f", p, d, minHeadClearance)
		}
		if g.isSnakeAt(p) {
			t.Errorf("Obstacle at %v overlaps snake", p)
		}
		if p == g.food {
			t.Errorf("Obstacle at %v overlaps food", p)
		}
	}
}

func TestSpeedReflectsScore(t *testing.T) {
	g := newTestEngine(777)

	if g.Speed() != 4.0 {
		t.Errorf("Expected base speed 4.0, got %f", g.Speed())
	}
	g.score = 300
	if g.Speed() != 12.0 {
		t.Errorf("Expected capped speed 12.0, got %f", g.Speed())
	}
}
