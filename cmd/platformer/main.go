// platformer is a tile platformer that runs in the terminal.
//
// Usage:
//
//	platformer list              - List levels
//	platformer play              - Play from the world map (or --level <id>)
//	platformer menu              - Start menu to pick levels interactively
//	platformer serve             - Start SSH server for remote play
//	platformer scores [level]    - Show high scores
//	platformer validate [dir]    - Check level files
//	platformer config            - Print the effective configuration
//	platformer export <dir>      - Copy the built-in levels to a directory
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.platformer/scores.db)
//	--log-level <level> - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "TUI Platformer - Run and jump through tile levels in your terminal",
	Long: `TUI Platformer is a side-scrolling platformer drawn with terminal
characters. Walk the world map, enter levels, stomp walkers, punch
question blocks and reach the flag.

Available commands:
  list      - Show all levels
  play      - Play from the world map or a specific level
  menu      - Interactive level picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores
  validate  - Check a directory of level files
  config    - Print the effective configuration
  export    - Copy the built-in levels for editing

Examples:
  platformer list
  platformer play
  platformer play --level 1-2 --difficulty easy
  platformer play --levels ./levels --watch
  platformer serve --ssh :2222
  platformer scores 1-1`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(exportCmd)
}

// newLogger builds a stderr logger at the --log-level threshold.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// runtimeConfig sizes the game to the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// applyGameFlags hands the play/menu flags to the game before creation.
func applyGameFlags(logger *log.Logger) {
	platformer.SetLogger(logger)
	platformer.SetConfigPath(flagConfig)
	platformer.SetDifficultyPreset(flagDifficulty)
	platformer.SetLevelsDir(flagLevelsDir)
	platformer.SetWatch(flagWatch)
}
