package leaderboard

import (
	"fmt"
	"strings"
	"time"
)

// HistoryRecorder receives a row for every submitted session. Implemented by
// the SQLite history store; the service treats recording as best-effort.
type HistoryRecorder interface {
	RecordSession(playerName string, score, difficultyLevel, durationSecs int) error
}

// Session identifies a started game session and carries the grid dimensions
// the presentation layer should construct the engine with.
type Session struct {
	ID         string
	PlayerName string
	Width      int
	Height     int
}

// Service is the thin orchestration between finished sessions and the store.
// It holds no state of its own beyond its collaborators.
type Service struct {
	store   *Store
	history HistoryRecorder // May be nil
	width   int
	height  int
}

// NewService creates a submission service over the given store. history may
// be nil to disable session recording.
func NewService(store *Store, history HistoryRecorder, gridWidth, gridHeight int) *Service {
	return &Service{
		store:   store,
		history: history,
		width:   gridWidth,
		height:  gridHeight,
	}
}

// StartSession validates the player name and hands out a session handle.
func (s *Service) StartSession(playerName string) (Session, error) {
	name, err := validateName(playerName)
	if err != nil {
		return Session{}, err
	}
	return Session{
		ID:         fmt.Sprintf("session_%d_%s", time.Now().UnixNano(), sessionSlug(name)),
		PlayerName: name,
		Width:      s.width,
		Height:     s.height,
	}, nil
}

// SubmitScore forwards a finished session's score to the store and records
// the session in the history store. timeTaken is display-only and has no
// bearing on acceptance.
func (s *Service) SubmitScore(playerName string, score, difficultyLevel, timeTaken int) (Result, error) {
	result, err := s.store.Submit(playerName, score, difficultyLevel, timeTaken)
	if err != nil {
		return Result{}, err
	}

	if s.history != nil {
		// Best-effort: a history failure never fails the submission.
		//nolint:errcheck
		s.history.RecordSession(strings.TrimSpace(playerName), score, difficultyLevel, timeTaken)
	}

	return result, nil
}

// Top, Get and All are read-only passthroughs for the transport layer.

func (s *Service) Top(limit int) ([]Entry, error) {
	return s.store.Top(limit)
}

func (s *Service) Get(playerName string) (Entry, bool) {
	return s.store.Get(playerName)
}

func (s *Service) Rank(playerName string) int {
	return s.store.Rank(playerName)
}

func (s *Service) All() []Entry {
	return s.store.All()
}

// sessionSlug keeps session IDs shell-friendly.
func sessionSlug(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, name)
}
