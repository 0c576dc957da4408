package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check level files",
	Long: `Load every level file under a directory (or the built-in levels)
and build a world from each, reporting unknown tile symbols, missing
player spawners, duplicate IDs and parse errors.

Examples:
  platformer validate
  platformer validate ./levels
  platformer validate ./levels --config ./my-physics.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
}

func runValidate(_ *cobra.Command, args []string) error {
	logger := newLogger("validate")

	loader := levels.Builtin()
	where := "built-in levels"
	if len(args) == 1 {
		loader = levels.NewLoader(args[0])
		where = args[0]
	}

	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		return err
	}

	checked, problems, err := loader.Validate(cfg.Params())
	if err != nil {
		return err
	}

	for _, p := range problems {
		hint := ""
		switch {
		case errors.Is(p.Err, engine.ErrUnknownTile):
			hint = " (unknown tile symbol)"
		case errors.Is(p.Err, engine.ErrNoPlayer):
			hint = " (add an @ player spawner)"
		}
		logger.Debug("invalid level", "file", p.Path, "error", p.Err)
		fmt.Printf("FAIL  %s: %v%s\n", p.Path, p.Err, hint)
	}

	fmt.Printf("%d level file(s) checked in %s, %d problem(s)\n", checked, where, len(problems))
	if len(problems) > 0 {
		os.Exit(1)
	}
	return nil
}
