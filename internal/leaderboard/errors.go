package leaderboard

import "fmt"

// ValidationError reports a rejected input (bad player name, negative score,
// out-of-range limit). It is surfaced to the caller immediately and never
// causes a partial mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("leaderboard: invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError reports a failed durable write. The in-memory state is
// guaranteed to be exactly as it was before the attempted mutation.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("leaderboard: cannot persist %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
