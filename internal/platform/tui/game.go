package tui

import (
	"github.com/vovakirdan/tankeroidz/internal/core"
	"github.com/vovakirdan/tankeroidz/internal/games/tankeroidz"
	"github.com/vovakirdan/tankeroidz/internal/storage"
)

// Game is what the play loop drives. Games contain pure logic; the platform
// handles input mapping, timing and rendering.
type Game interface {
	// ID returns the identifier scores are stored under.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh round with the runtime's seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current score and lifecycle flags.
	State() core.GameState

	// TickRate returns the simulation ticks per second.
	TickRate() int

	// Result returns the finished round's result, once there is one.
	Result() (tankeroidz.Result, bool)
}

// ScoreRecorder persists finished rounds. *storage.Store implements it.
type ScoreRecorder interface {
	SaveRound(rec storage.RoundRecord) (string, error)
	HighScore(gameID, difficulty string) (int, error)
}

// ScoreSource feeds the scoreboard. *storage.Store implements it.
type ScoreSource interface {
	TopScores(gameID, difficulty string, limit int) ([]storage.ScoreEntry, error)
	Summary(gameID, difficulty string) (storage.Summary, error)
}

var (
	_ Game          = (*tankeroidz.Game)(nil)
	_ ScoreRecorder = (*storage.Store)(nil)
	_ ScoreSource   = (*storage.Store)(nil)
)
