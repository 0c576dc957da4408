package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLevel      string
	flagWatch      bool
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the platformer",
	Long: `Start on the world map, or directly on a level with --level.

Controls:
  Left/Right, A/D  - Walk
  Space/Up/Z       - Jump (hold for a higher jump)
  Up/Down          - Walk on the world map
  Enter/Space      - Enter a level from the world map
  Esc/B            - Leave a level back to the world map
  P                - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start powered up, slow walkers, long jump grace
  normal - Start at 30% difficulty, progresses with score
  hard   - Start at 70% difficulty, progresses with score
  fixed  - No progression, stays at config's initial level

Examples:
  platformer play
  platformer play --level 1-3
  platformer play --difficulty hard
  platformer play --config ./my-physics.yaml
  platformer play --levels ./levels --watch
  platformer play --sound`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in levels)")
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Start on this level instead of the world map")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload level files from --levels when they change")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger := newLogger("platformer")
	applyGameFlags(logger)
	platformer.SetStartLevel(flagLevel)

	if flagWatch && flagLevelsDir == "" {
		logger.Warn("--watch needs --levels, ignoring")
	}

	if flagSound {
		sound := audio.NewManager(audio.DefaultConfig())
		if err := sound.Initialize(); err != nil {
			logger.Warn("could not initialise audio, playing silently", "error", err)
		} else {
			platformer.SetSounder(sound)
			defer sound.Cleanup()
		}
	}

	cfg := runtimeConfig()

	game, err := registry.Create(platformer.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	if store != nil {
		//nolint:errcheck // Exiting anyway
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
