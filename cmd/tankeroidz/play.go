package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tankeroidz/internal/config"
	"github.com/vovakirdan/tankeroidz/internal/games/tankeroidz"
	"github.com/vovakirdan/tankeroidz/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start playing straight away, skipping the menu.

Controls:
  W/Up       - Drive forward
  S/Down     - Reverse
  A/Left     - Turn left
  D/Right    - Turn right
  Space/F    - Fire
  B/E        - Boost (drains power)
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Examples:
  tankeroidz play
  tankeroidz play --difficulty hard
  tankeroidz play --seed 42 --fps 60
  tankeroidz play --config ./my-balance.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	s := mustSettings()
	logger, closeLog, err := newLogger(s, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, difficulty, err := loadBalance(s, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading balance file: %v\n", err)
		os.Exit(1)
	}

	store := openStore(s.DBPath, logger)

	runErr := playRound(cfg, difficulty, s, store, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runMenu alternates between the difficulty menu, rounds and the
// scoreboard until the user quits.
func runMenu(_ *cobra.Command, _ []string) {
	s := mustSettings()
	logger, closeLog, err := newLogger(s, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, current, err := loadBalance(s, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading balance file: %v\n", err)
		os.Exit(1)
	}

	store := openStore(s.DBPath, logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	for {
		width, height := terminalSize()
		result, err := tui.RunMenu(cfg, current, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		if result.Quit {
			break
		}

		if result.WantsScoreboard {
			if err := tui.RunScoreboard(scoreSource(store), tankeroidz.GameID, cfg.DifficultyNames(),
				tickRate(cfg, s), width, height, logger); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue
		}

		current = result.Difficulty
		if err := playRound(cfg, current, s, store, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}
}

// tickRate is the rate rounds run at, used to turn ticks into seconds.
func tickRate(cfg config.Config, s settings) int {
	if s.FPS > 0 {
		return s.FPS
	}
	return cfg.Field.TickRate
}
