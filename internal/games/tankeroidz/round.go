// Package tankeroidz implements the Tankeroidz simulation: a tank, drifting
// enemies, bullets and timed power-ups on a bounded field, advanced one fixed
// tick at a time. Given a seed and the same inputs a round always plays out
// the same way.
package tankeroidz

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tankeroidz/internal/config"
	"github.com/vovakirdan/tankeroidz/internal/core"
)

// State is the round's lifecycle state.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateEnded
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Result is what a finished round reports to the scoreboard.
type Result struct {
	Score      int
	Ticks      int
	Difficulty string
	Seed       int64
}

// settings is the validated, per-round view of the configuration. Times given
// in seconds are converted to ticks here.
type settings struct {
	field      core.Bounds
	tickRate   int
	difficulty string
	profile    config.DifficultyProfile

	tank    config.TankConfig
	bullet  config.BulletConfig
	enemy   config.EnemyConfig
	catalog *Catalog

	spawnInitial  float64 // ticks
	spawnInterval float64 // ticks

	killMultiplier float64
	survivalPoints int
	survivalTicks  int

	boostDrain float64 // Fraction of max power per boosting tick
}

func compileSettings(cfg config.Config, difficulty config.DifficultyPreset, tickRate int) (*settings, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	profile, err := cfg.Profile(difficulty)
	if err != nil {
		return nil, err
	}
	catalog, err := CompileCatalog(cfg.PowerUps)
	if err != nil {
		return nil, err
	}
	if tickRate <= 0 {
		tickRate = cfg.Field.TickRate
	}
	rate := float64(tickRate)

	survivalTicks := int(math.Round(cfg.Scoring.SurvivalInterval * rate))
	if survivalTicks < 1 {
		survivalTicks = 1
	}

	return &settings{
		field:          core.Bounds{W: cfg.Field.Width, H: cfg.Field.Height},
		tickRate:       tickRate,
		difficulty:     string(difficulty),
		profile:        profile,
		tank:           cfg.Tank,
		bullet:         cfg.Bullet,
		enemy:          cfg.Enemy,
		catalog:        catalog,
		spawnInitial:   cfg.Spawn.InitialDelay * rate,
		spawnInterval:  cfg.Spawn.Interval * rate,
		killMultiplier: cfg.Scoring.KillMultiplier,
		survivalPoints: cfg.Scoring.SurvivalPoints,
		survivalTicks:  survivalTicks,
		boostDrain:     cfg.Tank.BoostDrainPct / 100,
	}, nil
}

// Option configures a Round or Game.
type Option func(*options)

type options struct {
	logger   *log.Logger
	tickRate int
}

// WithLogger routes simulation events to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTickRate overrides the configured ticks per second.
func WithTickRate(n int) Option {
	return func(o *options) { o.tickRate = n }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// Round is one play-through, from spawn to the tank's death.
// It is not safe for concurrent use; the caller drives it from one goroutine.
type Round struct {
	set  *settings
	log  *log.Logger
	rng  *RNG
	seed int64

	reg   Registry
	state State

	tick           int // Running ticks so far; the current tick's number inside Tick
	score          float64
	spawnCountdown float64 // ticks
	violations     int
}

// NewRound validates cfg and starts a round at the given difficulty. Any
// malformed balance value fails here, before the first tick.
func NewRound(cfg config.Config, difficulty config.DifficultyPreset, seed int64, opts ...Option) (*Round, error) {
	o := buildOptions(opts)
	set, err := compileSettings(cfg, difficulty, o.tickRate)
	if err != nil {
		return nil, fmt.Errorf("tankeroidz: new round: %w", err)
	}
	return newRound(set, seed, o.logger), nil
}

func newRound(set *settings, seed int64, logger *log.Logger) *Round {
	r := &Round{
		set:            set,
		log:            logger,
		rng:            NewRNG(seed),
		seed:           seed,
		state:          StateRunning,
		spawnCountdown: set.spawnInitial,
	}
	r.reg.Tank = newTank(set.tank, set.profile, set.tickRate)
	r.log.Debug("round started", "seed", seed, "difficulty", set.difficulty, "tick_rate", set.tickRate)
	return r
}

// State returns the round's lifecycle state.
func (r *Round) State() State { return r.state }

// Score returns the score so far, truncated to whole points.
func (r *Round) Score() int { return int(r.score) }

// Ticks returns the number of running ticks simulated.
func (r *Round) Ticks() int { return r.tick }

// Seed returns the seed the round was started with.
func (r *Round) Seed() int64 { return r.seed }

// TickRate returns the ticks per second the round runs at.
func (r *Round) TickRate() int { return r.set.tickRate }

// Field returns the playing field bounds.
func (r *Round) Field() core.Bounds { return r.set.field }

// Tank returns the player's tank.
func (r *Round) Tank() *Tank { return r.reg.Tank }

// Registry exposes the live entities. Callers outside the simulation must
// treat it as read-only.
func (r *Round) Registry() *Registry { return &r.reg }

// Catalog returns the compiled power-up catalog.
func (r *Round) Catalog() *Catalog { return r.set.catalog }

// Violations returns how many invariant violations were skipped.
func (r *Round) Violations() int { return r.violations }

// Result returns the final result once the round has ended.
func (r *Round) Result() (Result, bool) {
	if r.state != StateEnded {
		return Result{}, false
	}
	return Result{
		Score:      r.Score(),
		Ticks:      r.tick,
		Difficulty: r.set.difficulty,
		Seed:       r.seed,
	}, true
}

// Pause suspends the simulation. Latched intents are cleared.
func (r *Round) Pause() {
	if r.state == StateRunning {
		r.setState(StatePaused)
	}
}

// Resume continues a paused round. Latched intents are cleared so a key
// released while paused does not stay stuck.
func (r *Round) Resume() {
	if r.state == StatePaused {
		r.setState(StateRunning)
	}
}

// TogglePause switches between running and paused.
func (r *Round) TogglePause() {
	switch r.state {
	case StateRunning:
		r.Pause()
	case StatePaused:
		r.Resume()
	}
}

func (r *Round) setState(s State) {
	if s == r.state {
		return
	}
	r.log.Debug("round state", "from", r.state, "to", s, "tick", r.tick)
	r.state = s
	if s == StateRunning || s == StatePaused {
		r.reg.Tank.ClearIntents()
	}
}

// HandleInput latches the frame's presses and releases into tank intents.
// Releases are applied before presses, so a key tapped within one frame stays
// held until its release arrives in a later frame. While paused only the
// pause key is honored.
func (r *Round) HandleInput(in core.InputFrame) {
	if in.Empty() {
		return
	}
	switch r.state {
	case StateEnded:
		return
	case StatePaused:
		if in.Has(core.ActionPause) {
			r.Resume()
		}
		return
	}

	if in.Has(core.ActionPause) {
		r.Pause()
		return
	}

	t := r.reg.Tank
	if in.HasRelease(core.ActionTurnLeft) || in.HasRelease(core.ActionTurnRight) {
		t.Dir = 0
	}
	if in.HasRelease(core.ActionForward) || in.HasRelease(core.ActionReverse) {
		t.Speed = 0
	}
	if in.HasRelease(core.ActionFire) {
		t.Firing = false
	}
	if in.HasRelease(core.ActionBoost) {
		t.Boosting = false
	}

	switch {
	case in.Has(core.ActionTurnRight):
		t.Dir = 1
	case in.Has(core.ActionTurnLeft):
		t.Dir = -1
	}
	switch {
	case in.Has(core.ActionForward):
		t.Speed = 1
	case in.Has(core.ActionReverse):
		t.Speed = -1
	}
	if in.Has(core.ActionFire) {
		t.Firing = true
	}
	if in.Has(core.ActionBoost) {
		t.Boosting = true
	}
}

// Tick advances the round by one simulation step. The systems run in a fixed
// order: age, fire, movement, collision, spawn, status, scoring. Nothing
// happens unless the round is running. It returns true on the tick the tank
// died.
func (r *Round) Tick() bool {
	if r.state != StateRunning {
		return false
	}
	r.tick++

	r.ageSystem()
	r.fireSystem()
	r.movementSystem()
	r.collisionSystem()
	r.spawnSystem()
	if r.statusSystem() {
		return true
	}
	r.scoringSystem()
	return false
}

func (r *Round) addScore(points float64) {
	r.score += points
}

func (r *Round) end() {
	r.state = StateEnded
	r.reg.Tank.ClearIntents()
	enemies, bullets, powerUps := r.reg.Counts()
	r.log.Info("round ended", "score", r.Score(), "ticks", r.tick, "difficulty", r.set.difficulty,
		"enemies", enemies, "bullets", bullets, "powerups", powerUps)
}
