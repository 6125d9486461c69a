// tankeroidz is an arcade tank shooter for the terminal.
//
// Usage:
//
//	tankeroidz                   - Start menu to pick a difficulty
//	tankeroidz play              - Play a round directly
//	tankeroidz scores            - Show high scores
//	tankeroidz simulate          - Run a scripted round without a terminal
//	tankeroidz config            - Print the resolved balance file
//
// Global flags (also read from TANKEROIDZ_* environment variables):
//
//	--fps <rate>          - Override the tick rate (default: from the balance file)
//	--seed <value>        - Set RNG seed for reproducible rounds
//	--db <path>           - Set database path (default: ~/.tankeroidz/scores.db)
//	--config <path>       - Use a custom balance file
//	--difficulty <name>   - Difficulty profile (default: normal)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings is the resolved view of the global flags and environment.
type settings struct {
	FPS        int    `mapstructure:"fps"`
	Seed       int64  `mapstructure:"seed"`
	DBPath     string `mapstructure:"db"`
	Config     string `mapstructure:"config"`
	Difficulty string `mapstructure:"difficulty"`
	LogLevel   string `mapstructure:"log-level"`
	LogFile    string `mapstructure:"log-file"`
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tankeroidz",
	Short: "Tankeroidz - drive a tank through an asteroid field of enemies",
	Long: `Tankeroidz is an arcade tank shooter played in the terminal.
Enemies drift in from the edges of the field and home in on your tank.
Shoot them for points, collect the power-ups they drop and survive as
long as you can.

Running tankeroidz without a command opens the difficulty menu.

Available commands:
  play      - Play a round directly
  scores    - View high scores
  simulate  - Run a scripted round and print its hash
  config    - Print the resolved balance file

Examples:
  tankeroidz
  tankeroidz play --difficulty hard
  tankeroidz scores --difficulty easy
  TANKEROIDZ_SEED=7 tankeroidz simulate --ticks 900`,
	Run: runMenu,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int("fps", 0, "Tick rate (0 = use the balance file)")
	flags.Int64("seed", 0, "RNG seed (0 = random)")
	flags.String("db", "~/.tankeroidz/scores.db", "Path to scores database")
	flags.String("config", "", "Path to custom balance YAML")
	flags.String("difficulty", "", "Difficulty profile: easy, normal, hard")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Write logs to this file")

	viper.SetEnvPrefix("TANKEROIDZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings merges flags, environment and defaults.
func loadSettings() (settings, error) {
	var s settings
	if err := viper.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("settings: %w", err)
	}
	return s, nil
}

// mustSettings is loadSettings for command handlers.
func mustSettings() settings {
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}
