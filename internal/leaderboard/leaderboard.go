// Package leaderboard provides a concurrency-safe, durably-persisted ranked
// store of per-player best scores. The store is the sole owner of its backing
// file: every accepted mutation is flushed with a write-to-temp-then-rename
// discipline before the call returns, so a crash mid-write never corrupts the
// last committed copy.
package leaderboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	maxNameLen = 50
	maxLimit   = 100
)

// Entry is a single player's record. Player identity is case-insensitive;
// the stored name keeps the casing of the first submission.
type Entry struct {
	Name            string
	BestScore       int
	AchievedAt      time.Time
	DifficultyLevel int
	TimeTaken       int // Seconds, display only
}

// Result describes the outcome of a submission.
type Result struct {
	Accepted  bool
	Rank      int // 1-indexed position after the call resolved
	IsNewBest bool
}

// Store holds the full set of entries ordered by best score descending, ties
// broken by name ascending. Mutations and their durable persist happen inside
// one exclusive critical section; reads never observe a state mid-mutation.
type Store struct {
	mu      sync.RWMutex
	path    string
	entries []Entry // Always sorted
}

// Open loads the leaderboard from path, or starts empty if the file does not
// exist. The parent directory is created if needed.
func Open(path string) (*Store, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("leaderboard: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
		}
	}

	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot read %s: %w", path, err)
	}

	entries, err := decodeEntries(data)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot parse %s: %w", path, err)
	}
	sortEntries(entries)
	s.entries = entries
	return s, nil
}

// Submit records a score for a player. A new player is inserted; an existing
// player is updated only when the score beats their best. Lower or equal
// scores are acknowledged without mutation. The player's current rank is
// returned either way.
func (s *Store) Submit(playerName string, score, difficultyLevel, timeTaken int) (Result, error) {
	name, err := validateName(playerName)
	if err != nil {
		return Result{}, err
	}
	if score < 0 {
		return Result{}, &ValidationError{Field: "score", Reason: "must not be negative"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(name)
	if idx >= 0 && score <= s.entries[idx].BestScore {
		// Acknowledged, but not a new record: no mutation, no persist.
		return Result{Accepted: true, Rank: s.rankOf(s.entries[idx].Name)}, nil
	}

	entry := Entry{
		Name:            name,
		BestScore:       score,
		AchievedAt:      time.Now().UTC(),
		DifficultyLevel: difficultyLevel,
		TimeTaken:       timeTaken,
	}

	// Mutate a copy and swap only after the persist succeeds, so a disk
	// failure leaves the in-memory state untouched.
	updated := make([]Entry, len(s.entries), len(s.entries)+1)
	copy(updated, s.entries)
	if idx >= 0 {
		entry.Name = updated[idx].Name // Keep first-seen casing
		updated[idx] = entry
	} else {
		updated = append(updated, entry)
	}
	sortEntries(updated)

	if err := s.persist(updated); err != nil {
		return Result{}, err
	}
	s.entries = updated

	return Result{Accepted: true, Rank: s.rankOf(entry.Name), IsNewBest: true}, nil
}

// Top returns the first limit entries. limit must be in [1, 100].
func (s *Store) Top(limit int) ([]Entry, error) {
	if limit < 1 || limit > maxLimit {
		return nil, &ValidationError{Field: "limit", Reason: fmt.Sprintf("must be between 1 and %d", maxLimit)}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	out := make([]Entry, limit)
	copy(out, s.entries[:limit])
	return out, nil
}

// Get looks up a player by case-insensitive name.
func (s *Store) Get(playerName string) (Entry, bool) {
	name := strings.TrimSpace(playerName)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(name); idx >= 0 {
		return s.entries[idx], true
	}
	return Entry{}, false
}

// Rank returns a player's 1-indexed rank, or 0 if not present.
func (s *Store) Rank(playerName string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(strings.TrimSpace(playerName)); idx >= 0 {
		return idx + 1
	}
	return 0
}

// All returns every entry in rank order.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// indexOf finds an entry by case-insensitive name. Caller holds a lock.
func (s *Store) indexOf(name string) int {
	for i, e := range s.entries {
		if strings.EqualFold(e.Name, name) {
			return i
		}
	}
	return -1
}

// rankOf returns the 1-indexed rank of a stored name. Caller holds the lock
// and the entries are sorted.
func (s *Store) rankOf(name string) int {
	for i, e := range s.entries {
		if e.Name == name {
			return i + 1
		}
	}
	return 0
}

// sortEntries orders by best score descending, ties by name ascending.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].BestScore != entries[j].BestScore {
			return entries[i].BestScore > entries[j].BestScore
		}
		return entries[i].Name < entries[j].Name
	})
}

func validateName(playerName string) (string, error) {
	name := strings.TrimSpace(playerName)
	if n := utf8.RuneCountInString(name); n < 1 || n > maxNameLen {
		return "", &ValidationError{
			Field:  "player name",
			Reason: fmt.Sprintf("must be between 1 and %d characters", maxNameLen),
		}
	}
	return name, nil
}

// --- Durable representation ---

// diskFile is the legacy leaderboard.json layout; existing files load as-is.
type diskFile struct {
	Players []diskEntry `json:"players"`
}

type diskEntry struct {
	Name            string `json:"name"`
	BestScore       int    `json:"best_score"`
	Date            string `json:"date"`
	DifficultyLevel int    `json:"difficulty_level,omitempty"`
	TimeTaken       int    `json:"time_taken,omitempty"`
}

func decodeEntries(data []byte) ([]Entry, error) {
	var file diskFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(file.Players))
	for _, p := range file.Players {
		achieved, err := parseDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %q: bad date %q: %w", p.Name, p.Date, err)
		}
		entries = append(entries, Entry{
			Name:            p.Name,
			BestScore:       p.BestScore,
			AchievedAt:      achieved,
			DifficultyLevel: p.DifficultyLevel,
			TimeTaken:       p.TimeTaken,
		})
	}
	return entries, nil
}

// parseDate accepts RFC3339Nano plus the offset-less ISO-8601 form older
// leaderboard files carry. An offset-less timestamp is taken as UTC.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05.999999999", s)
}

// persist writes entries to a temporary file and atomically renames it over
// the backing file. Caller holds the write lock.
func (s *Store) persist(entries []Entry) error {
	file := diskFile{Players: make([]diskEntry, len(entries))}
	for i, e := range entries {
		file.Players[i] = diskEntry{
			Name:            e.Name,
			BestScore:       e.BestScore,
			Date:            e.AchievedAt.Format(time.RFC3339Nano),
			DifficultyLevel: e.DifficultyLevel,
			TimeTaken:       e.TimeTaken,
		}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return &PersistenceError{Path: s.path, Err: err}
	}
	return nil
}
