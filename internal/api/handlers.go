package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"snake-arcade/internal/leaderboard"
	"snake-arcade/internal/storage"
)

type handlers struct {
	service *leaderboard.Service
	history *storage.Store
}

// Wire shapes are frozen; existing clients depend on these field names.

type scoreSubmitRequest struct {
	PlayerName      string `json:"player_name"`
	Score           int    `json:"score"`
	DifficultyLevel int    `json:"difficulty_level"`
	TimeTaken       int    `json:"time_taken"`
}

type entryResponse struct {
	Name            string `json:"name"`
	BestScore       int    `json:"best_score"`
	Date            string `json:"date"`
	DifficultyLevel int    `json:"difficulty_level,omitempty"`
	TimeTaken       int    `json:"time_taken"`
	Rank            int    `json:"rank"`
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *handlers) handleGameStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerName string `json:"player_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.StartSession(req.PlayerName)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":  session.ID,
		"player_name": session.PlayerName,
		"grid_width":  session.Width,
		"grid_height": session.Height,
		"message":     "Game session started successfully",
	})
}

func (h *handlers) handleScoreSubmit(w http.ResponseWriter, r *http.Request) {
	var req scoreSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.SubmitScore(req.PlayerName, req.Score, req.DifficultyLevel, req.TimeTaken)
	if err != nil {
		recordSubmission("rejected")
		writeCoreError(w, err)
		return
	}

	if result.IsNewBest {
		recordSubmission("new_best")
	} else {
		recordSubmission("acknowledged")
	}
	setLeaderboardSize(len(h.service.All()))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":              true,
		"message":              "Score submitted successfully",
		"leaderboard_position": result.Rank,
		"new_personal_best":    result.IsNewBest,
	})
}

func (h *handlers) handleLeaderboardTop(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	entries, err := h.service.Top(limit)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	writeEntries(w, entries)
}

func (h *handlers) handleLeaderboardPlayer(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	entry, found := h.service.Get(name)
	if !found {
		writeJSON(w, http.StatusOK, map[string]any{"found": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"found":            true,
		"player_name":      entry.Name,
		"best_score":       entry.BestScore,
		"date":             entry.AchievedAt.Format(time.RFC3339Nano),
		"difficulty_level": entry.DifficultyLevel,
		"time_taken":       entry.TimeTaken,
		"rank":             h.service.Rank(entry.Name),
	})
}

func (h *handlers) handleLeaderboardAll(w http.ResponseWriter, r *http.Request) {
	writeEntries(w, h.service.All())
}

func (h *handlers) handleSessionsRecent(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "session history is disabled")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	sessions, err := h.history.RecentSessions(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cannot read session history")
		return
	}

	out := make([]map[string]any, len(sessions))
	for i, s := range sessions {
		out[i] = map[string]any{
			"player_name":      s.PlayerName,
			"score":            s.Score,
			"difficulty_level": s.DifficultyLevel,
			"duration_secs":    s.DurationSecs,
			"date":             s.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions":    out,
		"total_count": len(out),
	})
}

func (h *handlers) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "session history is disabled")
		return
	}

	stats, err := h.history.GetPlayerStats(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cannot read player stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"player_name":   stats.PlayerName,
		"session_count": stats.SessionCount,
		"high_score":    stats.HighScore,
		"avg_score":     stats.AvgScore,
		"total_score":   stats.TotalScore,
		"last_played":   stats.LastPlayed.UTC().Format(time.RFC3339),
	})
}

// --- Helpers ---

func writeEntries(w http.ResponseWriter, entries []leaderboard.Entry) {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = entryResponse{
			Name:            e.Name,
			BestScore:       e.BestScore,
			Date:            e.AchievedAt.Format(time.RFC3339Nano),
			DifficultyLevel: e.DifficultyLevel,
			TimeTaken:       e.TimeTaken,
			Rank:            i + 1,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries":     out,
		"total_count": len(out),
	})
}

// writeCoreError maps leaderboard failure classes onto HTTP status codes.
func writeCoreError(w http.ResponseWriter, err error) {
	var verr *leaderboard.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	var perr *leaderboard.PersistenceError
	if errors.As(err, &perr) {
		writeError(w, http.StatusInternalServerError, "could not persist submission")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Nothing useful to do with a failed response write
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{
		"error":       true,
		"status_code": status,
		"detail":      detail,
	})
}
