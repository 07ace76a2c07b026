package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"snake-arcade/internal/api"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP leaderboard API",
	Long: `Start the HTTP API for score submission and leaderboard queries.

Endpoints:
  GET  /health
  POST /game/start
  POST /scores/submit
  GET  /leaderboard/top?limit=N
  GET  /leaderboard/player/{name}
  GET  /leaderboard/all
  GET  /sessions/recent
  GET  /sessions/player/{name}/stats
  GET  /metrics

Examples:
  snake-arcade serve
  snake-arcade serve --addr :9000
  snake-arcade serve --leaderboard ./leaderboard.json`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake-api",
	})

	service, history, err := openService(cfg)
	if err != nil {
		logger.Error("cannot open leaderboard", "error", err)
		os.Exit(1)
	}
	if history != nil {
		defer history.Close()
	}

	limiter := api.NewIPRateLimiter(cfg.Server.RateLimit)
	router := api.NewRouter(api.RouterConfig{
		Service:     service,
		History:     history,
		RateLimiter: limiter,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
	})

	server := api.NewServer(cfg.Server.Addr, router, limiter, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
