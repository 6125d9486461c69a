package tankeroidz

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tankeroidz/internal/config"
	"github.com/vovakirdan/tankeroidz/internal/core"
)

// GameID is the identifier scores are stored under.
const GameID = "tankeroidz"

// Game adapts rounds to the terminal platform's fixed-step game loop. It owns
// the current round and starts a fresh one on restart.
type Game struct {
	set  *settings
	log  *log.Logger
	seed int64

	round   *Round
	rounds  int
	runtime core.RuntimeConfig
}

// New compiles the configuration for the given difficulty. Configuration
// errors are reported here so a round never starts on bad balance values.
// Call Reset before the first Step.
func New(cfg config.Config, difficulty config.DifficultyPreset, opts ...Option) (*Game, error) {
	o := buildOptions(opts)
	set, err := compileSettings(cfg, difficulty, o.tickRate)
	if err != nil {
		return nil, fmt.Errorf("tankeroidz: %w", err)
	}
	return &Game{set: set, log: o.logger}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Tankeroidz" }

// TickRate returns the simulation ticks per second.
func (g *Game) TickRate() int { return g.set.tickRate }

// Difficulty returns the difficulty the game was compiled for.
func (g *Game) Difficulty() string { return g.set.difficulty }

// Reset starts a new round with the runtime's seed.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.seed = runtime.Seed
	g.startRound()
}

func (g *Game) startRound() {
	g.round = newRound(g.set, g.seed, g.log)
	g.rounds++
}

// Step applies one frame of input and advances the round by one tick.
// After the round has ended, Restart starts the next round with the next seed.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.round == nil {
		g.Reset(g.runtime)
	}
	if g.round.State() == StateEnded {
		if in.Has(core.ActionRestart) {
			g.seed++
			g.startRound()
		}
		return core.StepResult{State: g.State()}
	}

	g.round.HandleInput(in)
	ended := g.round.Tick()
	return core.StepResult{State: g.State(), Ended: ended}
}

// State returns the platform-facing state of the current round.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.round.Score(),
		GameOver: g.round.State() == StateEnded,
		Paused:   g.round.State() == StatePaused,
	}
}

// Result returns the finished round's result.
func (g *Game) Result() (Result, bool) {
	if g.round == nil {
		return Result{}, false
	}
	return g.round.Result()
}

// Round returns the current round.
func (g *Game) Round() *Round { return g.round }

// Rounds returns how many rounds have been started.
func (g *Game) Rounds() int { return g.rounds }
