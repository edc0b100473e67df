package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdrop/internal/registry"
	"github.com/vovakirdan/blockdrop/internal/storage"
)

var flagRecent int

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores, run statistics and the most recent
runs for the specified game (default: blocks).

Examples:
  blockdrop scores
  blockdrop scores launcher
  blockdrop scores blocks --recent 10`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent runs to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "blocks"
	if len(args) == 1 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'blockdrop list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := printScores(store, gameID, game.Title()); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockdrop play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	gs, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d   Games: %d   Average: %.0f\n", gs.HighScore, gs.GamesCount, gs.AvgScore)

	rs, err := store.GetRunStats(gameID)
	if err != nil {
		return err
	}
	if rs.Runs == 0 {
		return nil
	}
	fmt.Printf("Runs: %d   Best tile: %d   Launches: %d   Merges: %d   Avg time: %s\n",
		rs.Runs, rs.BestTile, rs.TotalLaunches, rs.TotalMerges, rs.AvgDuration.Round(time.Second))

	if flagRecent <= 0 {
		return nil
	}
	runs, err := store.RecentRuns(gameID, flagRecent)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Recent runs:")
	for _, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %s  %-10s  score %-6d  tile %-5d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), player, r.Score, r.MaxTile, r.Duration.Round(time.Second))
	}
	return nil
}
