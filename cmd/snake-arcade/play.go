package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"snake-arcade/internal/platform/tui"
)

var flagName string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in the current terminal",
	Long: `Start a snake session in the current terminal.

Controls:
  Arrows/WASD - Steer
  P/Esc       - Pause
  R           - Restart (while paused or after game over)
  Q/Ctrl+C    - Quit

After game over you can save your score to the shared leaderboard.

Examples:
  snake-arcade play
  snake-arcade play --name alice
  snake-arcade play --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name to prefill for score submission")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	service, history, err := openService(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open leaderboard: %v\n", err)
		// Continue without submission - game still works
		service = nil
	}

	runErr := tui.Run(engineConfig(cfg), service, flagName)

	if history != nil {
		history.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
