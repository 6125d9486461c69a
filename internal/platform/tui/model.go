package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tankeroidz/internal/config"
	"github.com/vovakirdan/tankeroidz/internal/core"
	"github.com/vovakirdan/tankeroidz/internal/storage"
)

var (
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// Model is the Bubble Tea model for playing Tankeroidz.
type Model struct {
	game     Game
	screen   *core.Screen
	store    ScoreRecorder
	log      *log.Logger
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	hold     *HoldTracker
	frame    core.InputFrame
	state    core.GameState
	summary  string // Game-over line shown in the footer
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game. store may be
// nil, in which case rounds are not recorded.
func NewModel(game Game, store ScoreRecorder, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		log:    logger,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		hold:   NewHoldTracker(),
		frame:  core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.game.TickRate())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		if err := m.saveScreenshot(); err != nil {
			m.log.Warn("screenshot failed", "error", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		if m.state.GameOver {
			m.frame.Press(action)
		}
		return m, nil
	}

	m.hold.Press(action, &m.frame)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.hold.Advance(&m.frame)

	prev := m.state
	result := m.game.Step(m.frame)
	m.state = result.State

	if prev.GameOver && !m.state.GameOver {
		m.summary = ""
	}
	// The round drops every latched intent when it pauses, resumes or
	// restarts, so held keys must be pressed again.
	if prev.Paused != m.state.Paused || prev.GameOver != m.state.GameOver {
		m.hold.Reset()
	}
	if result.Ended {
		m.summary = m.recordRound()
	}

	m.frame.Clear()
	return m, tickCmd(m.game.TickRate())
}

// recordRound saves the finished round and returns the game-over summary.
func (m Model) recordRound() string {
	res, ok := m.game.Result()
	if !ok {
		return ""
	}
	survived := time.Duration(res.Ticks) * time.Second / time.Duration(m.game.TickRate())
	line := fmt.Sprintf("Score %d after %s on %s", res.Score, survived.Round(time.Second), res.Difficulty)

	if m.store == nil {
		return line
	}

	best, err := m.store.HighScore(m.game.ID(), res.Difficulty)
	if err != nil {
		m.log.Warn("storage unavailable", "error", err)
		return line + " (not saved)"
	}
	id, err := m.store.SaveRound(storage.RoundRecord{
		GameID:     m.game.ID(),
		Difficulty: res.Difficulty,
		Score:      res.Score,
		Ticks:      res.Ticks,
		Seed:       res.Seed,
	})
	if err != nil {
		m.log.Warn("storage unavailable", "error", err)
		return line + " (not saved)"
	}
	m.log.Debug("round saved", "round_id", id, "score", res.Score)

	if res.Score > best {
		return line + ". New best!"
	}
	return fmt.Sprintf("%s. Best %d", line, best)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() error {
	m.screen.Clear()
	m.game.Render(m.screen)

	base := config.ConfigDir()
	if base == "" {
		return fmt.Errorf("tui: no home directory for screenshots")
	}
	dir := filepath.Join(filepath.Dir(base), "screenshots")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	return os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// footer is the help line, or the summary once the round is over.
func (m Model) footer() string {
	if m.state.GameOver && m.summary != "" {
		return summaryStyle.Render(m.summary)
	}
	return footerStyle.Render(m.help.View(m.keys))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := m.footer()
	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-lipgloss.Height(footer), 1))
	m.screen.Clear()
	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

// Run starts the Bubble Tea program and plays until the user quits.
func Run(game Game, store ScoreRecorder, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
