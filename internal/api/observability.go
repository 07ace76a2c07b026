package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics with bounded cardinality: route patterns, not raw URLs, and a fixed
// set of submission outcomes.
var (
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leaderboard_submissions_total",
		Help: "Score submissions by outcome",
	}, []string{"result"}) // Bounded: "new_best", "acknowledged", "rejected"

	leaderboardSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "leaderboard_entries",
		Help: "Current number of leaderboard entries",
	})

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "http_requests_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})
)

func recordSubmission(result string) {
	submissionsTotal.WithLabelValues(result).Inc()
}

func setLeaderboardSize(n int) {
	leaderboardSize.Set(float64(n))
}

func recordRateLimited() {
	rateLimitedTotal.Inc()
}

// metricsMiddleware records latency and counts per route pattern.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		requestLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
	})
}
