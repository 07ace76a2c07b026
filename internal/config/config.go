// Package config provides YAML-based configuration loading for the snake
// arcade: game parameters, difficulty scaling, server settings and storage
// paths.
package config

// Config is the top-level configuration document.
type Config struct {
	Game       GameConfig       `yaml:"game"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
}

// GameConfig defines the grid and scoring parameters.
type GameConfig struct {
	GridWidth     int `yaml:"grid_width"`
	GridHeight    int `yaml:"grid_height"`
	PointsPerFood int `yaml:"points_per_food"`
}

// DifficultyConfig defines the speed scaling bounds. Levels always advance
// every 50 points; only the cadence range is tunable.
type DifficultyConfig struct {
	BaseSpeed float64 `yaml:"base_speed"` // Ticks per second at level 1
	MaxSpeed  float64 `yaml:"max_speed"`  // Cadence cap
}

// ServerConfig defines the HTTP API settings.
type ServerConfig struct {
	Addr        string          `yaml:"addr"`
	CORSOrigins []string        `yaml:"cors_origins"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines per-IP request throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// StorageConfig defines where durable state lives.
type StorageConfig struct {
	LeaderboardPath string `yaml:"leaderboard_path"`
	HistoryDBPath   string `yaml:"history_db_path"`
}
