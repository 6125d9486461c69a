package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tankeroidz/internal/config"
	"github.com/vovakirdan/tankeroidz/internal/games/tankeroidz"
)

var (
	flagSimTicks    int
	flagSimScript   string
	flagSimSnapshot bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a round without a terminal",
	Long: `Run a round headless and print its final state hash. The same
seed, balance file and script always produce the same hash, so the output
can be compared between builds.

A script is a YAML list of key edges by tick, starting at 0:

  - tick: 0
    press: [Forward, Fire]
  - tick: 45
    press: [TurnLeft]
  - tick: 60
    release: [TurnLeft, Forward]

Examples:
  tankeroidz simulate --seed 42 --ticks 900
  tankeroidz simulate --seed 42 --script ./run.yaml --snapshot`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 900, "Maximum ticks to run")
	simulateCmd.Flags().StringVar(&flagSimScript, "script", "", "YAML input script")
	simulateCmd.Flags().BoolVar(&flagSimSnapshot, "snapshot", false, "Print the final snapshot as YAML")
}

func runSimulate(_ *cobra.Command, _ []string) {
	s := mustSettings()
	logger, closeLog, err := newLogger(s, false)
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

	sc := inputScript{}
	if flagSimScript != "" {
		data, err := os.ReadFile(flagSimScript)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
			os.Exit(1)
		}
		if sc, err = parseScript(data); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if sc.last >= flagSimTicks {
			logger.Warn("script runs past the last tick", "script_ticks", sc.last+1, "ticks", flagSimTicks)
		}
	}

	seed, err := resolveSeed(s.Seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: seed: %v\n", err)
		os.Exit(1)
	}

	round, err := simulate(cfg, difficulty, seed, s.FPS, flagSimTicks, sc, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := printSimulation(os.Stdout, round, difficulty, flagSimSnapshot); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// simulate plays a round for up to maxTicks steps, feeding it the script's
// edges. It stops early when the round ends.
func simulate(cfg config.Config, difficulty config.DifficultyPreset, seed int64, fps, maxTicks int,
	sc inputScript, logger *log.Logger) (*tankeroidz.Round, error) {
	round, err := tankeroidz.NewRound(cfg, difficulty, seed,
		tankeroidz.WithLogger(logger),
		tankeroidz.WithTickRate(fps),
	)
	if err != nil {
		return nil, err
	}

	for step := range maxTicks {
		round.HandleInput(sc.frame(step))
		if round.Tick() {
			break
		}
	}
	if n := round.Violations(); n > 0 {
		logger.Warn("invariant violations during simulation", "count", n)
	}
	return round, nil
}

func printSimulation(w io.Writer, round *tankeroidz.Round, difficulty config.DifficultyPreset, withSnapshot bool) error {
	snap := round.Snapshot()
	fmt.Fprintf(w, "difficulty  %s\n", difficulty)
	fmt.Fprintf(w, "seed        %d\n", round.Seed())
	fmt.Fprintf(w, "ticks       %d\n", round.Ticks())
	fmt.Fprintf(w, "state       %s\n", round.State())
	fmt.Fprintf(w, "score       %d\n", round.Score())
	fmt.Fprintf(w, "hash        %016x\n", snap.Hash())

	if !withSnapshot {
		return nil
	}
	fmt.Fprintln(w)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return enc.Close()
}
