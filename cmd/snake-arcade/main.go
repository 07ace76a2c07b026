// snake-arcade is a terminal snake game with a shared leaderboard.
//
// Usage:
//
//	snake-arcade play             - Play in the current terminal
//	snake-arcade serve            - Start the HTTP leaderboard API
//	snake-arcade ssh              - Start the SSH game server
//	snake-arcade scores           - Show the leaderboard
//
// Global flags:
//
//	--config <path>       - Path to a config YAML file
//	--leaderboard <path>  - Leaderboard file (default: ~/.snake-arcade/leaderboard.json)
//	--history-db <path>   - Session history database (default: ~/.snake-arcade/history.db)
//	--seed <value>        - RNG seed for reproducible gameplay
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"snake-arcade/internal/config"
	"snake-arcade/internal/engine"
	"snake-arcade/internal/leaderboard"
	"snake-arcade/internal/storage"
)

var (
	// Global flags
	flagConfig      string
	flagLeaderboard string
	flagHistoryDB   string
	flagSeed        int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake-arcade",
	Short: "Snake with a shared leaderboard, in your terminal",
	Long: `snake-arcade is a terminal snake game. Eat food, dodge obstacles,
climb the difficulty curve and compete on a shared leaderboard.

Available commands:
  play     - Play in the current terminal
  serve    - Start the HTTP leaderboard API
  ssh      - Start the SSH game server
  scores   - View the leaderboard

Examples:
  snake-arcade play --name alice
  snake-arcade serve --addr :8000
  snake-arcade ssh --ssh :2222
  snake-arcade scores --limit 20`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML file")
	rootCmd.PersistentFlags().StringVar(&flagLeaderboard, "leaderboard", "", "Path to leaderboard file")
	rootCmd.PersistentFlags().StringVar(&flagHistoryDB, "history-db", "", "Path to session history database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig loads configuration and applies command line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagLeaderboard != "" {
		cfg.Storage.LeaderboardPath = flagLeaderboard
	}
	if flagHistoryDB != "" {
		cfg.Storage.HistoryDBPath = flagHistoryDB
	}
	return cfg, nil
}

// engineConfig builds engine parameters from the loaded configuration.
func engineConfig(cfg config.Config) engine.Config {
	return engine.Config{
		Width:         cfg.Game.GridWidth,
		Height:        cfg.Game.GridHeight,
		PointsPerFood: cfg.Game.PointsPerFood,
		Seed:          flagSeed,
		Difficulty: engine.Difficulty{
			BaseSpeed: cfg.Difficulty.BaseSpeed,
			MaxSpeed:  cfg.Difficulty.MaxSpeed,
		},
	}
}

// openService opens the leaderboard and optional session history.
// The caller must close the returned history store when non-nil.
func openService(cfg config.Config) (*leaderboard.Service, *storage.Store, error) {
	store, err := leaderboard.Open(cfg.Storage.LeaderboardPath)
	if err != nil {
		return nil, nil, err
	}

	var history *storage.Store
	if cfg.Storage.HistoryDBPath != "" {
		history, err = storage.Open(cfg.Storage.HistoryDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open session history: %v\n", err)
			history = nil
		}
	}

	// Assign through an interface variable so a nil *storage.Store does
	// not become a non-nil HistoryRecorder.
	var recorder leaderboard.HistoryRecorder
	if history != nil {
		recorder = history
	}
	service := leaderboard.NewService(store, recorder, cfg.Game.GridWidth, cfg.Game.GridHeight)
	return service, history, nil
}
