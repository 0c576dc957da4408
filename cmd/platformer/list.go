package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long: `Shows every level and world map, from the built-in set or from
the directory given with --levels.`,
	Run: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in levels)")
}

func runList(_ *cobra.Command, _ []string) {
	platformer.SetLevelsDir(flagLevelsDir)
	all, err := platformer.Loader().LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, l := range all {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Kind", "File")
	fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, "--", maxNameLen, "----", "----", "----")

	for _, l := range all {
		kind := "level"
		if l.Has(engine.SpecialWorld) {
			kind = "map"
		}
		fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, l.ID, maxNameLen, l.Name, kind, l.FilePath)
	}

	fmt.Println()
	fmt.Printf("Run 'platformer play' to start on %s, or 'platformer play --level <id>'.\n", levels.WorldMapID)
}
