package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tankeroidz/internal/config"
	"github.com/vovakirdan/tankeroidz/internal/core"
	"github.com/vovakirdan/tankeroidz/internal/games/tankeroidz"
	"github.com/vovakirdan/tankeroidz/internal/platform/tui"
	"github.com/vovakirdan/tankeroidz/internal/storage"
)

// newLogger builds the logger for a command. Interactive commands own the
// terminal, so without a log file their output is discarded.
func newLogger(s settings, interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", s.LogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case s.LogFile != "":
		if err := os.MkdirAll(filepath.Dir(s.LogFile), 0o750); err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tankeroidz",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadBalance resolves the balance file and checks the requested difficulty
// exists in it.
func loadBalance(s settings, logger *log.Logger) (config.Config, config.DifficultyPreset, error) {
	cfg, source, err := config.Load(s.Config)
	if err != nil {
		return config.Config{}, "", err
	}
	logger.Debug("balance loaded", "source", source)

	difficulty := config.ParsePreset(s.Difficulty)
	if _, err := cfg.Profile(difficulty); err != nil {
		return config.Config{}, "", err
	}
	return cfg, difficulty, nil
}

// resolveSeed returns seed, or a fresh random one when seed is 0.
func resolveSeed(seed int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	return tankeroidz.RandomSeed()
}

// terminalSize returns the size of stdout, falling back to 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// openStore opens the score database. A failure is reported and play
// continues without scores.
func openStore(path string, logger *log.Logger) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("storage unavailable", "path", path, "err", err)
		return nil
	}
	return store
}

// recorder converts a possibly nil store into the interface the player
// expects, so a missing store compares equal to nil.
func recorder(store *storage.Store) tui.ScoreRecorder {
	if store == nil {
		return nil
	}
	return store
}

// scoreSource is recorder for the scoreboard.
func scoreSource(store *storage.Store) tui.ScoreSource {
	if store == nil {
		return nil
	}
	return store
}

// playRound runs one interactive session at the given difficulty.
func playRound(cfg config.Config, difficulty config.DifficultyPreset, s settings, store *storage.Store, logger *log.Logger) error {
	game, err := tankeroidz.New(cfg, difficulty,
		tankeroidz.WithLogger(logger),
		tankeroidz.WithTickRate(s.FPS),
	)
	if err != nil {
		return err
	}

	seed, err := resolveSeed(s.Seed)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	width, height := terminalSize()
	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: game.TickRate(),
		Seed:     seed,
	}
	logger.Info("starting round", "difficulty", difficulty, "seed", seed, "tick_rate", runtime.TickRate)
	return tui.Run(game, recorder(store), runtime, logger)
}
