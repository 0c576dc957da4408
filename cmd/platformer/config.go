package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use as YAML, after the search
order and the difficulty preset are applied. Redirect it to a file to
start a custom config:

  platformer config > ~/.platformer/configs/platformer.yaml

Examples:
  platformer config
  platformer config --difficulty easy
  platformer config --config ./my-physics.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Copy the built-in levels to a directory",
	Long: `Write the built-in level files to a directory so they can be edited
and played with --levels (and --watch).

Examples:
  platformer export ./levels
  platformer play --levels ./levels --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		return err
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyPlatformerPreset(&cfg, preset)
	}

	data, err := config.MarshalPlatformer(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runExport(_ *cobra.Command, args []string) error {
	written, err := levels.ExportBuiltin(args[0])
	for _, path := range written {
		fmt.Println(path)
	}
	return err
}
