package engine

import (
	"math"
	"testing"
)

func TestLevelFormula(t *testing.T) {
	d := DefaultDifficulty()

	tests := []struct {
		score, want int
	}{
		{0, 1},
		{49, 1},
		{50, 2},
		{99, 2},
		{100, 3},
		{500, 11},
	}

	for _, tt := range tests {
		if got := d.Level(tt.score); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestLevelMonotonic(t *testing.T) {
	d := DefaultDifficulty()

	prev := d.Level(0)
	for score := 1; score <= 1000; score++ {
		level := d.Level(score)
		if level < prev {
			t.Fatalf("Level decreased from %d to %d at score %d", prev, level, score)
		}
		prev = level
	}
}

func TestSpeedScaling(t *testing.T) {
	d := DefaultDifficulty()

	tests := []struct {
		score int
		want  float64
	}{
		{0, 4.0},    // level 1
		{50, 5.5},   // level 2
		{100, 7.0},  // level 3
		{250, 11.5}, // level 6
		{300, 12.0}, // level 7, cap reached
		{1000, 12.0},
	}

	for _, tt := range tests {
		if got := d.Speed(tt.score); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Speed(%d) = %f, want %f", tt.score, got, tt.want)
		}
	}
}

func TestObstacleTarget(t *testing.T) {
	d := DefaultDifficulty()

	tests := []struct {
		score, want int
	}{
		{0, 0},   // level 1
		{50, 0},  // level 2
		{100, 3}, // level 3: 2 + 3/3
		{250, 4}, // level 6: 2 + 6/3
		{400, 5}, // level 9: 2 + 9/3
	}

	for _, tt := range tests {
		if got := d.ObstacleTarget(tt.score); got != tt.want {
			t.Errorf("ObstacleTarget(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}
