package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration.
// Search order: customPath -> ~/.snake-arcade/config.yaml -> ./configs/config.yaml -> embedded default
func Load(customPath string) (Config, error) {
	var cfg Config

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return applyFallbacks(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return applyFallbacks(cfg), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return applyFallbacks(cfg), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return applyFallbacks(cfg), nil
}

// userConfigPath returns the path to a user config file, or empty if home is
// unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake-arcade", filename)
}

// applyFallbacks fills zero values from the hardcoded defaults so a partial
// YAML document still yields a usable config.
func applyFallbacks(cfg Config) Config {
	def := Default()

	if cfg.Game.GridWidth <= 0 {
		cfg.Game.GridWidth = def.Game.GridWidth
	}
	if cfg.Game.GridHeight <= 0 {
		cfg.Game.GridHeight = def.Game.GridHeight
	}
	if cfg.Game.PointsPerFood <= 0 {
		cfg.Game.PointsPerFood = def.Game.PointsPerFood
	}
	if cfg.Difficulty.BaseSpeed <= 0 {
		cfg.Difficulty.BaseSpeed = def.Difficulty.BaseSpeed
	}
	if cfg.Difficulty.MaxSpeed <= 0 {
		cfg.Difficulty.MaxSpeed = def.Difficulty.MaxSpeed
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.CORSOrigins == nil {
		cfg.Server.CORSOrigins = def.Server.CORSOrigins
	}
	if cfg.Server.RateLimit.RequestsPerSecond <= 0 {
		cfg.Server.RateLimit.RequestsPerSecond = def.Server.RateLimit.RequestsPerSecond
	}
	if cfg.Server.RateLimit.Burst <= 0 {
		cfg.Server.RateLimit.Burst = def.Server.RateLimit.Burst
	}
	if cfg.Storage.LeaderboardPath == "" {
		cfg.Storage.LeaderboardPath = def.Storage.LeaderboardPath
	}
	if cfg.Storage.HistoryDBPath == "" {
		cfg.Storage.HistoryDBPath = def.Storage.HistoryDBPath
	}

	return cfg
}
