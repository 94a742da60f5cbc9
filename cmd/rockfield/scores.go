package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rockfield/internal/registry"
	"github.com/vovakirdan/rockfield/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best runs",
	Long: `Display the best runs for a mode (default: rockfield).

Examples:
  rockfield scores
  rockfield scores rockfield_timed --limit 25`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "rockfield"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'rockfield list' to see modes", gameID)
	}
	g, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best runs - %s\n\n", g.Title())
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Printf("\nPlay 'rockfield play %s' to set the first score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-8s  %-6s  %-10s  %s\n",
		"Rank", "Score", "Kills", "Shots", "Distance", "Time", "Difficulty", "Date")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %-8.0f  %-6s  %-10s  %s\n",
			i+1, r.Score, r.Kills, r.Shots, r.Distance,
			fmt.Sprintf("%ds", int(r.Duration.Seconds())),
			r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if st, err := store.Stats(gameID); err == nil {
		fmt.Printf("\nRuns: %d  Best: %d  Average: %.0f  Total kills: %d\n",
			st.GamesCount, st.HighScore, st.AvgScore, st.TotalKills)
	}
	return nil
}
