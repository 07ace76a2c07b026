// Package api provides the HTTP surface over the leaderboard core: score
// submission, leaderboard queries, session history and health. The transport
// layer is thin glue; all invariants live in the leaderboard package.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"snake-arcade/internal/config"
	"snake-arcade/internal/leaderboard"
	"snake-arcade/internal/storage"
)

// RouterConfig contains the dependencies needed to construct the router.
// NewRouter is pure - no goroutines, no listeners - so tests can wrap the
// result in httptest.NewServer directly.
type RouterConfig struct {
	// Service is the score submission service (required).
	Service *leaderboard.Service

	// History is the session history store. May be nil; the history
	// endpoints then report the feature as unavailable.
	History *storage.Store

	// RateLimiter is an optional pre-configured rate limiter. If nil, one
	// is created from RateLimit.
	RateLimiter *IPRateLimiter

	// RateLimit configures the limiter when RateLimiter is nil.
	RateLimit config.RateLimitConfig

	// CORSOrigins lists allowed origins. Empty means localhost defaults.
	CORSOrigins []string

	// Logger receives request logs. Nil disables request logging.
	Logger *log.Logger
}

// NewRouter constructs the HTTP router with all middleware and routes.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	// Rate limiting before CORS to reject early.
	limiter := cfg.RateLimiter
	if limiter == nil {
		rl := cfg.RateLimit
		if rl.RequestsPerSecond <= 0 {
			rl = config.Default().Server.RateLimit
		}
		limiter = NewIPRateLimiter(rl)
	}
	r.Use(limiter.Middleware)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Use(metricsMiddleware)
	if cfg.Logger != nil {
		r.Use(requestLogger(cfg.Logger))
	}

	h := &handlers{
		service: cfg.Service,
		history: cfg.History,
	}

	r.Get("/health", h.handleHealth)
	r.Post("/game/start", h.handleGameStart)
	r.Post("/scores/submit", h.handleScoreSubmit)

	r.Route("/leaderboard", func(r chi.Router) {
		r.Get("/top", h.handleLeaderboardTop)
		r.Get("/player/{name}", h.handleLeaderboardPlayer)
		r.Get("/all", h.handleLeaderboardAll)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/recent", h.handleSessionsRecent)
		r.Get("/player/{name}/stats", h.handlePlayerStats)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// requestLogger logs each request with method, path, status and latency.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}
