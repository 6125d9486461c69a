package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tankeroidz/internal/games/tankeroidz"
	"github.com/vovakirdan/tankeroidz/internal/platform/tui"
	"github.com/vovakirdan/tankeroidz/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best recorded rounds. Without --difficulty every
difficulty is listed together.

Examples:
  tankeroidz scores
  tankeroidz scores --difficulty hard --limit 5
  tankeroidz scores --tui
  tankeroidz scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded round")
}

func runScores(_ *cobra.Command, _ []string) {
	s := mustSettings()
	logger, closeLog, err := newLogger(s, flagScoresTUI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := storage.Open(s.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		n, err := store.ClearScores(tankeroidz.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		logger.Info("scores cleared", "rounds", n)
		fmt.Printf("Deleted %d rounds.\n", n)
		return
	}

	if flagScoresTUI {
		cfg, _, err := loadBalance(s, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading balance file: %v\n", err)
			return
		}
		width, height := terminalSize()
		if err := tui.RunScoreboard(store, tankeroidz.GameID, cfg.DifficultyNames(),
			tickRate(cfg, s), width, height, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	difficulty := strings.ToLower(strings.TrimSpace(s.Difficulty))
	scores, err := store.TopScores(tankeroidz.GameID, difficulty, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	title := "High Scores - Tankeroidz"
	if difficulty != "" {
		title += " (" + difficulty + ")"
	}
	fmt.Println(title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tankeroidz play' to set the first high score!")
		return
	}

	rate := s.FPS
	if rate <= 0 {
		if cfg, _, err := loadBalance(s, logger); err == nil {
			rate = cfg.Field.TickRate
		} else {
			rate = 30
		}
	}

	fmt.Print(formatScores(scores, rate))

	summary, err := store.Summary(tankeroidz.GameID, difficulty)
	if err != nil {
		logger.Warn("summary unavailable", "err", err)
		return
	}
	fmt.Println()
	fmt.Println(formatSummary(summary))
}

// formatScores renders entries as a plain text table.
func formatScores(scores []storage.ScoreEntry, tickRate int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-4s  %-8s  %-9s  %-10s  %s\n", "Rank", "Score", "Survived", "Difficulty", "Date")
	fmt.Fprintf(&b, "  %-4s  %-8s  %-9s  %-10s  %s\n", "----", "-----", "--------", "----------", "----")
	for i, entry := range scores {
		fmt.Fprintf(&b, "  %-4d  %-8d  %-9s  %-10s  %s\n",
			i+1, entry.Score, survived(entry.Ticks, tickRate), entry.Difficulty,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}

// formatSummary describes the aggregate over all listed rounds.
func formatSummary(sum storage.Summary) string {
	if sum.Count == 0 {
		return "No rounds recorded yet."
	}
	return fmt.Sprintf("%d rounds  best %d  worst %d  average %.1f  last played %s",
		sum.Count, sum.Max, sum.Min, sum.Avg, sum.LastPlayed.Format("2006-01-02 15:04"))
}

// survived formats a tick count as time at tickRate.
func survived(ticks, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 30
	}
	d := time.Duration(ticks) * time.Second / time.Duration(tickRate)
	return d.Round(time.Second).String()
}
