package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start the platformer in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a run ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Esc          - Back
  Q            - Quit

Examples:
  platformer menu
  platformer menu --fps 30
  platformer menu --levels ./levels --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in levels)")
	menuCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload level files from --levels when they change")
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger("platformer")
	applyGameFlags(logger)

	if flagSound {
		sound := audio.NewManager(audio.DefaultConfig())
		if err := sound.Initialize(); err != nil {
			logger.Warn("could not initialise audio, playing silently", "error", err)
		} else {
			platformer.SetSounder(sound)
			defer sound.Cleanup()
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if !menuResult.Play {
			break
		}

		game, err := registry.Create(platformer.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if sel, ok := game.(registry.Selector); ok {
			sel.SelectLevel(menuResult.LevelID)
		}
		logger.Debug("starting run", "level", menuResult.LevelID)

		// Update seed for each game
		cfg.Seed = time.Now().UnixNano()

		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	if store != nil {
		//nolint:errcheck // Exiting anyway
		store.Close()
	}
}
