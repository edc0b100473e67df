// blockdrop is a terminal game of launched, stacking and merging number tiles.
//
// Usage:
//
//	blockdrop list              - List available games
//	blockdrop play <game>       - Play a game
//	blockdrop menu              - Start menu to pick games interactively
//	blockdrop serve             - Start SSH server for remote play
//	blockdrop scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.blockdrop/scores.db)
//	--config <path>       - Custom blocks.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--debug               - Log debug output to --log-file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/games/blocks"
	"github.com/vovakirdan/blockdrop/internal/logging"
	"github.com/vovakirdan/blockdrop/internal/platform/tui"
	"github.com/vovakirdan/blockdrop/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/blockdrop/internal/games/launcher"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockdrop",
	Short: "Block Drop - launch, stack and merge tiles in your terminal",
	Long: `Block Drop is a terminal game: number tiles fly along parabolic arcs
onto a grid where they stack, merge 2048-style and can be shifted sideways.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and run statistics

Examples:
  blockdrop play blocks
  blockdrop play blocks --difficulty hard
  blockdrop menu
  blockdrop serve --ssh :2222 --metrics :9090
  blockdrop scores blocks`,
	SilenceUsage:      true,
	PersistentPreRunE: loadGameConfig,
}

func init() {
	home := "~/" + config.AppDir

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", home+"/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom blocks config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", home+"/blockdrop.log", "Log file used with --debug during local play")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadGameConfig resolves the blocks configuration and difficulty preset
// before any game is created.
func loadGameConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		return err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyBlocksPreset(&cfg, preset)

	blocks.SetConfig(cfg)
	return nil
}

// runtimeConfig builds the game runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// localLogger returns the logger for interactive play. The TUI owns the
// terminal, so output goes to the log file and only with --debug.
func localLogger() (*log.Logger, io.Closer) {
	if !flagDebug {
		return logging.Discard(), io.NopCloser(nil)
	}

	logger, closer, err := logging.New(logging.Options{
		Prefix: "blockdrop",
		Level:  "debug",
		File:   flagLogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	return logger, closer
}

// openServices opens the score store and logger for local play. The
// returned cleanup function must be called when play ends.
func openServices() (tui.Services, func()) {
	logger, logCloser := localLogger()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	cleanup := func() {
		if store != nil {
			if err := store.Close(); err != nil {
				logger.Warn("could not close scores database", "error", err)
			}
		}
		_ = logCloser.Close()
	}

	return tui.Services{Store: store, Logger: logger}, cleanup
}
