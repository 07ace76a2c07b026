package engine

// Difficulty maps cumulative score to speed and obstacle-count parameters.
// It is pure and stateless: the same score always yields the same values.
type Difficulty struct {
	BaseSpeed float64 // Ticks per second at level 1
	MaxSpeed  float64 // Speed cap
}

// DefaultDifficulty returns the standard scaling parameters.
func DefaultDifficulty() Difficulty {
	return Difficulty{
		BaseSpeed: 4.0,
		MaxSpeed:  12.0,
	}
}

// Level returns the difficulty level for a score. Levels start at 1 and
// advance every 50 points.
func (d Difficulty) Level(score int) int {
	return 1 + score/50
}

// Speed returns the tick cadence in ticks per second for a score. Speed grows
// by 1.5 per level above the first and is capped at MaxSpeed.
func (d Difficulty) Speed(score int) float64 {
	speed := d.BaseSpeed + float64(d.Level(score)-1)*1.5
	if speed > d.MaxSpeed {
		speed = d.MaxSpeed
	}
	return speed
}

// ObstacleTarget returns how many obstacles the grid should carry at a score.
// Obstacles appear from level 3 onward.
func (d Difficulty) ObstacleTarget(score int) int {
	level := d.Level(score)
	if level < 3 {
		return 0
	}
	return 2 + level/3
}
