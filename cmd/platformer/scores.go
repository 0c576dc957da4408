package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagResetScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores, for every run or only runs that
ended on the given level, followed by the cleared levels.

Examples:
  platformer scores
  platformer scores 1-2
  platformer scores --reset`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagResetScores, "reset", false, "Delete all scores and level clears")
}

func runScores(_ *cobra.Command, args []string) {
	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagResetScores {
		if err := store.ClearScores(platformer.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Println("Scores and level clears deleted.")
		return
	}

	scores, err := store.TopScores(platformer.GameID, levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	if levelID == "" {
		fmt.Println("High Scores - all levels")
	} else {
		fmt.Printf("High Scores - %s\n", levelID)
	}
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'platformer play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-8s  %s\n", i+1, entry.Score, entry.LevelID, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(platformer.GameID); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}

	clears, err := store.ClearedLevels(platformer.GameID)
	if err != nil || len(clears) == 0 {
		return
	}
	ids := make([]string, 0, len(clears))
	for id := range clears {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println()
	fmt.Println("Cleared levels:")
	for _, id := range ids {
		c := clears[id]
		fmt.Printf("  %-8s  best %5.1fs  cleared %d time(s)\n", id, float64(c.BestTicks)/float64(max(flagFPS, 1)), c.Clears)
	}
}
