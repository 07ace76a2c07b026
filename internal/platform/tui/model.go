package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"snake-arcade/internal/engine"
	"snake-arcade/internal/leaderboard"
)

// phase tracks where the session is in the play -> submit -> replay loop.
type phase int

const (
	phasePlaying phase = iota
	phasePaused
	phaseNameEntry
	phaseSubmitted
)

// Model is the Bubble Tea model for a single snake session.
type Model struct {
	eng       *engine.Engine
	cfg       engine.Config
	service   *leaderboard.Service
	keyMapper *KeyMapper

	phase     phase
	startedAt time.Time

	// Name entry after game over.
	nameInput  textinput.Model
	playerName string // Prefilled name (SSH username or --name flag)

	result    leaderboard.Result
	submitErr error
	skipped   bool

	// tickGen identifies the live tick chain; bumped whenever a new chain
	// starts so in-flight ticks from the old one are dropped.
	tickGen int

	width    int
	height   int
	quitting bool
}

// NewModel creates a model for the given engine configuration.
// service may be nil; the game then runs without score submission.
func NewModel(cfg engine.Config, service *leaderboard.Service, playerName string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 50
	ti.Width = 24
	ti.SetValue(playerName)

	return Model{
		eng:        engine.New(cfg),
		cfg:        cfg,
		service:    service,
		keyMapper:  NewKeyMapper(),
		startedAt:  time.Now(),
		nameInput:  ti,
		playerName: playerName,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.eng.Speed(), m.tickGen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While typing a name, only ctrl+c quits; everything else goes to the
	// text input so names containing p, q or r still work.
	if m.phase == phaseNameEntry {
		return m.handleNameEntryKey(msg)
	}

	switch m.keyMapper.MapControl(msg) {
	case ControlQuit:
		m.quitting = true
		return m, tea.Quit

	case ControlPause:
		switch m.phase {
		case phasePlaying:
			m.phase = phasePaused
			return m, nil
		case phasePaused:
			m.phase = phasePlaying
			m.tickGen++
			return m, tickCmd(m.eng.Speed(), m.tickGen)
		}
		return m, nil

	case ControlRestart:
		if m.phase == phasePaused || m.phase == phaseSubmitted {
			return m.restart()
		}
		return m, nil
	}

	if m.phase == phasePlaying {
		if dir, ok := m.keyMapper.MapDirection(msg); ok {
			m.eng.HandleInput(dir)
		}
	}

	return m, nil
}

// handleNameEntryKey processes input during the game-over name prompt.
func (m Model) handleNameEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		m.submit()
		m.phase = phaseSubmitted
		return m, nil

	case "esc":
		// Skip submission, keep the score local.
		m.skipped = true
		m.phase = phaseSubmitted
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleTick advances the simulation by one step.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.tickGen {
		// Tick from a superseded chain.
		return m, nil
	}
	if m.phase != phasePlaying {
		// Stale tick from before a pause or game over.
		return m, nil
	}

	m.eng.Tick()

	if m.eng.GameOver() {
		if m.service == nil {
			m.skipped = true
			m.phase = phaseSubmitted
			return m, nil
		}
		m.phase = phaseNameEntry
		m.nameInput.Focus()
		return m, textinput.Blink
	}

	return m, tickCmd(m.eng.Speed(), m.tickGen)
}

// submit sends the final score to the leaderboard.
func (m *Model) submit() {
	elapsed := int(time.Since(m.startedAt).Seconds())
	result, err := m.service.SubmitScore(
		m.nameInput.Value(),
		m.eng.Score(),
		m.eng.Level(),
		elapsed,
	)
	m.result = result
	m.submitErr = err
}

// restart starts a fresh game with a new seed.
func (m Model) restart() (tea.Model, tea.Cmd) {
	cfg := m.cfg
	cfg.Seed = time.Now().UnixNano()
	m.eng = engine.New(cfg)
	m.phase = phasePlaying
	m.startedAt = time.Now()
	m.result = leaderboard.Result{}
	m.submitErr = nil
	m.skipped = false
	m.tickGen++
	m.nameInput.Blur()
	m.nameInput.SetValue(m.playerName)
	return m, tickCmd(m.eng.Speed(), m.tickGen)
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return renderView(m)
}

// Run starts the Bubble Tea program for a local terminal session.
func Run(cfg engine.Config, service *leaderboard.Service, playerName string) error {
	p := tea.NewProgram(
		NewModel(cfg, service, playerName),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
