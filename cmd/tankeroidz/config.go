package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tankeroidz/internal/config"
)

var flagConfigDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved balance file",
	Long: `Print the balance configuration the game would use, after merging
a custom or user file over the defaults. Redirect it to a file to start
your own balance:

  tankeroidz config --default > ~/.tankeroidz/configs/tankeroidz.yaml

Examples:
  tankeroidz config
  tankeroidz config --difficulty hard
  tankeroidz config --config ./my-balance.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefault {
		_, _ = os.Stdout.Write(config.DefaultYAML())
		return
	}

	s := mustSettings()
	cfg, source, err := config.Load(s.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading balance file: %v\n", err)
		os.Exit(1)
	}

	difficulty := config.ParsePreset(s.Difficulty)
	profile, err := cfg.Profile(difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeConfig(os.Stdout, cfg, source, difficulty, profile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func writeConfig(w io.Writer, cfg config.Config, source string, difficulty config.DifficultyPreset, p config.DifficultyProfile) error {
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# source: %s\n", source)
	fmt.Fprintf(w, "# difficulty %s: turn %.1f deg/tick, speed %.1f, enemies %.0f%%, boost %.0f%%, drops %d%%, wall walking %t\n",
		difficulty, p.TankTurnRate, p.TankSpeed, p.EnemySpeedPct, p.TankBoostPct, p.PowerUpChance, p.WallWalking)
	_, err = w.Write(data)
	return err
}
