package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

// Default returns the built-in configuration, used when no YAML file is
// available anywhere in the search path.
func Default() Config {
	return Config{
		Game: GameConfig{
			GridWidth:     20,
			GridHeight:    20,
			PointsPerFood: 10,
		},
		Difficulty: DifficultyConfig{
			BaseSpeed: 4.0,
			MaxSpeed:  12.0,
		},
		Server: ServerConfig{
			Addr: ":8000",
			CORSOrigins: []string{
				"http://localhost:*",
				"http://127.0.0.1:*",
			},
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 10,
				Burst:             20,
			},
		},
		Storage: StorageConfig{
			LeaderboardPath: "~/.snake-arcade/leaderboard.json",
			HistoryDBPath:   "~/.snake-arcade/history.db",
		},
	}
}

// DefaultYAML returns the embedded default config document.
func DefaultYAML() []byte {
	return defaultYAML
}
