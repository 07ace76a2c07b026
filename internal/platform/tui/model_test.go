package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"snake-arcade/internal/engine"
	"snake-arcade/internal/leaderboard"
)

func newTestService(t *testing.T) *leaderboard.Service {
	t.Helper()
	store, err := leaderboard.Open(filepath.Join(t.TempDir(), "leaderboard.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return leaderboard.NewService(store, nil, 20, 20)
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Seed = 42
	return NewModel(cfg, newTestService(t), "")
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

// tick delivers a tick on the model's live chain.
func tick(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, TickMsg{gen: m.tickGen})
}

func TestPauseStopsTicks(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyMsg("p"))
	if m.phase != phasePaused {
		t.Fatalf("phase = %v, want paused", m.phase)
	}

	before := m.eng.Snapshot().Tick
	m = tick(t, m)
	if got := m.eng.Snapshot().Tick; got != before {
		t.Errorf("tick advanced to %d while paused, want %d", got, before)
	}

	// Resume and verify the simulation runs again.
	m = update(t, m, keyMsg("p"))
	if m.phase != phasePlaying {
		t.Fatalf("phase = %v, want playing", m.phase)
	}
	m = tick(t, m)
	if got := m.eng.Snapshot().Tick; got != before+1 {
		t.Errorf("tick = %d after resume, want %d", got, before+1)
	}
}

func TestStaleTickChainDropped(t *testing.T) {
	m := newTestModel(t)
	staleGen := m.tickGen

	// Pause and resume before the in-flight tick arrives; resume starts a
	// new chain, so the old tick must neither advance the simulation nor
	// schedule a successor.
	m = update(t, m, keyMsg("p"))
	m = update(t, m, keyMsg("p"))
	if m.tickGen == staleGen {
		t.Fatal("resume did not start a new tick chain")
	}

	before := m.eng.Snapshot().Tick
	next, cmd := m.Update(TickMsg{gen: staleGen})
	m = next.(Model)
	if got := m.eng.Snapshot().Tick; got != before {
		t.Errorf("stale tick advanced simulation to %d, want %d", got, before)
	}
	if cmd != nil {
		t.Error("stale tick scheduled a successor")
	}

	// The live chain still runs.
	m = tick(t, m)
	if got := m.eng.Snapshot().Tick; got != before+1 {
		t.Errorf("tick = %d on live chain, want %d", got, before+1)
	}
}

func TestDirectionKeyReachesEngine(t *testing.T) {
	m := newTestModel(t)
	head := m.eng.Snapshot().Snake[0]

	m = update(t, m, keyMsg("up"))
	m = tick(t, m)

	got := m.eng.Snapshot().Snake[0]
	want := engine.Position{X: head.X, Y: head.Y - 1}
	if got != want {
		t.Errorf("head = %v after up+tick, want %v", got, want)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if !m.quitting {
		t.Error("quitting = false after q")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
	if m.View() != "" {
		t.Error("View() not empty while quitting")
	}
}

func TestNameEntrySubmits(t *testing.T) {
	m := newTestModel(t)
	m.phase = phaseNameEntry
	m.nameInput.Focus()

	for _, r := range "Zoe" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m = update(t, m, keyMsg("enter"))

	if m.phase != phaseSubmitted {
		t.Fatalf("phase = %v, want submitted", m.phase)
	}
	if m.submitErr != nil {
		t.Fatalf("submit error: %v", m.submitErr)
	}
	if !m.result.IsNewBest {
		t.Error("IsNewBest = false for first submission")
	}
	if _, found := m.service.Get("Zoe"); !found {
		t.Error("submitted entry not found in leaderboard")
	}
}

func TestNameEntryEscSkips(t *testing.T) {
	m := newTestModel(t)
	m.phase = phaseNameEntry

	m = update(t, m, keyMsg("esc"))

	if m.phase != phaseSubmitted {
		t.Fatalf("phase = %v, want submitted", m.phase)
	}
	if !m.skipped {
		t.Error("skipped = false after esc")
	}
	if got := len(m.service.All()); got != 0 {
		t.Errorf("leaderboard has %d entries after skip, want 0", got)
	}
}

func TestNameEntryBlankNameFails(t *testing.T) {
	m := newTestModel(t)
	m.phase = phaseNameEntry
	m.nameInput.SetValue("   ")

	m = update(t, m, keyMsg("enter"))

	if m.phase != phaseSubmitted {
		t.Fatalf("phase = %v, want submitted", m.phase)
	}
	if m.submitErr == nil {
		t.Error("expected validation error for blank name")
	}
}

func TestRestartResetsGame(t *testing.T) {
	m := newTestModel(t)
	m.phase = phaseSubmitted
	m.skipped = true

	m = update(t, m, keyMsg("r"))

	if m.phase != phasePlaying {
		t.Fatalf("phase = %v, want playing", m.phase)
	}
	snap := m.eng.Snapshot()
	if snap.Score != 0 || snap.Tick != 0 || snap.GameOver {
		t.Errorf("engine not reset: score=%d tick=%d over=%v", snap.Score, snap.Tick, snap.GameOver)
	}
	if m.skipped {
		t.Error("skipped flag not cleared on restart")
	}
}

func TestGameOverEntersNameEntry(t *testing.T) {
	// A 3x1 board fills up within a few ticks, so game over is quick
	// and deterministic.
	cfg := engine.Config{Width: 3, Height: 1, PointsPerFood: 10, Seed: 7, Difficulty: engine.DefaultDifficulty()}
	m := NewModel(cfg, newTestService(t), "")

	for i := 0; i < 10 && m.phase == phasePlaying; i++ {
		m = tick(t, m)
	}

	if !m.eng.GameOver() {
		t.Fatal("engine did not reach game over")
	}
	if m.phase != phaseNameEntry {
		t.Errorf("phase = %v after game over, want name entry", m.phase)
	}
}

func TestViewShowsScore(t *testing.T) {
	m := newTestModel(t)
	m.width = 0 // Skip lipgloss.Place centering

	view := m.View()
	if view == "" {
		t.Fatal("View() is empty")
	}
}
