package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdrop/internal/platform/tui"
	"github.com/vovakirdan/blockdrop/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: blocks).

Controls:
  A / D        - Move the aim column
  Space        - Launch the next tile at the aimed column
  Mouse click  - Launch the next tile at the clicked point
  Left / Right - Shift the whole board
  P            - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save a text screenshot
  Q / Ctrl+C   - Quit

Difficulty options:
  easy   - Start slow, speed and 4-chance rise with score
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty
  fixed  - No progression

Examples:
  blockdrop play
  blockdrop play blocks --difficulty easy
  blockdrop play blocks --seed 42
  blockdrop play launcher
  blockdrop play blocks --config ./my-blocks.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
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

	svc, cleanup := openServices()
	runErr := tui.Run(game, svc, runtimeConfig())
	cleanup()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
