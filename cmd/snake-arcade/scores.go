package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"snake-arcade/internal/leaderboard"
	"snake-arcade/internal/platform/tui"
	"snake-arcade/internal/storage"
)

var (
	flagLimit       int
	flagPlayer      string
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the leaderboard, or stats for a single player.

Examples:
  snake-arcade scores
  snake-arcade scores --limit 25
  snake-arcade scores --player alice
  snake-arcade scores --interactive`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show (1-100)")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Show a single player's entry and stats")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the leaderboard in a TUI")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	service, history, err := openService(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard: %v\n", err)
		os.Exit(1)
	}
	if history != nil {
		defer history.Close()
	}

	if flagInteractive {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(service, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flagPlayer != "" {
		printPlayer(service, history, flagPlayer)
		return
	}

	entries, err := service.Top(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake-arcade play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-8s  %-4s  %s\n", "Rank", "Player", "Score", "Lvl", "Date")
	fmt.Printf("  %-4s  %-20s  %-8s  %-4s  %s\n", "----", "------", "-----", "---", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-20s  %-8d  %-4d  %s\n",
			i+1, e.Name, e.BestScore, e.DifficultyLevel, e.AchievedAt.Format("2006-01-02 15:04"))
	}
}

// printPlayer shows a single player's leaderboard entry plus session stats
// from the history database when available.
func printPlayer(service *leaderboard.Service, history *storage.Store, name string) {
	entry, found := service.Get(name)
	if !found {
		fmt.Printf("No scores recorded for %q.\n", name)
		return
	}

	fmt.Printf("Player: %s\n", entry.Name)
	fmt.Printf("  Best score: %d (level %d)\n", entry.BestScore, entry.DifficultyLevel)
	fmt.Printf("  Rank:       #%d\n", service.Rank(entry.Name))
	fmt.Printf("  Achieved:   %s\n", entry.AchievedAt.Format("2006-01-02 15:04"))

	if history == nil {
		return
	}
	stats, err := history.GetPlayerStats(name)
	if err != nil || stats.SessionCount == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  Sessions:    %d\n", stats.SessionCount)
	fmt.Printf("  Avg score:   %.1f\n", stats.AvgScore)
	fmt.Printf("  Total score: %d\n", stats.TotalScore)
	fmt.Printf("  Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
}
