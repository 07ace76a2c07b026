package engine

import (
	"math"
	"testing"
)

func TestDirectionValid(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		want bool
	}{
		{"up", Up, true},
		{"down", Down, true},
		{"left", Left, true},
		{"right", Right, true},
		{"zero", Direction{0, 0}, false},
		{"diagonal", Direction{1, 1}, false},
		{"too long", Direction{2, 0}, false},
		{"negative too long", Direction{0, -2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dir.Valid(); got != tt.want {
				t.Errorf("Valid(%v) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestDirectionIsOpposite(t *testing.T) {
	tests := []struct {
		a, b Direction
		want bool
	}{
		{Up, Down, true},
		{Down, Up, true},
		{Left, Right, true},
		{Right, Left, true},
		{Up, Left, false},
		{Right, Right, false},
	}

	for _, tt := range tests {
		if got := tt.a.IsOpposite(tt.b); got != tt.want {
			t.Errorf("IsOpposite(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, m, want int
	}{
		{0, 20, 0},
		{19, 20, 19},
		{20, 20, 0},
		{21, 20, 1},
		{-1, 20, 19},
		{-20, 20, 0},
	}

	for _, tt := range tests {
		if got := wrap(tt.v, tt.m); got != tt.want {
			t.Errorf("wrap(%d, %d) = %d, want %d", tt.v, tt.m, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b Position
		want float64
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{3, 4}, 5},
		{Position{2, 2}, Position{2, 5}, 3},
		{Position{1, 1}, Position{2, 2}, math.Sqrt(2)},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Distance(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
		}
	}
}
