package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/batflap/internal/games/batflap"
	"github.com/vovakirdan/batflap/internal/platform/tui"
)

var (
	flagScoresTUI   bool
	flagScoresClear bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the score history",
	Long: `Display the best runs and the stored best score.

Examples:
  batflap scores
  batflap scores --limit 20
  batflap scores --tui
  batflap scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in an interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the score history (the best score is kept)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	st, err := openStores(logger)
	if err != nil {
		fail("%v", err)
	}
	defer st.Close()

	if st.history == nil {
		st.Close()
		fail("scores database %s is not available", flagDBPath)
	}

	if flagScoresClear {
		if err := st.history.ClearScores(batflap.GameID); err != nil {
			st.Close()
			fail("%v", err)
		}
		fmt.Println("Score history cleared.")
		return
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(st.history, width, height); err != nil {
			st.Close()
			fail("%v", err)
		}
		return
	}

	scores, err := st.history.TopScores(batflap.GameID, flagScoresLimit)
	if err != nil {
		st.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Println("High Scores - Bat Flap")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'batflap play' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	fmt.Println()
	if best, ok := st.best.BestScore(); ok {
		fmt.Printf("Best: %d (%s store)\n", best, flagStore)
	}
	if stats, err := st.history.GetGameStats(batflap.GameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Games: %d, average %.1f\n", stats.GamesCount, stats.AvgScore)
	}
}
