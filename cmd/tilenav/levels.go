package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long:  `Shows the built-in levels and any levels found in --levels.`,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	all, err := availableLevels()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, lvl := range all {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %-5s  %-6s  %s\n", maxIDLen, "ID", "Size", "Spawns", "Name")
	fmt.Printf("  %-*s  %-5s  %-6s  %s\n", maxIDLen, "--", "----", "------", "----")

	for _, lvl := range all {
		spawns := len(lvl.Spawns.Seekers) + len(lvl.Spawns.Wanderers)
		if lvl.Spawns.Player != nil {
			spawns++
		}
		size := fmt.Sprintf("%dx%d", lvl.Cols(), lvl.Rows())
		fmt.Printf("  %-*s  %-5s  %-6d  %s\n", maxIDLen, lvl.ID, size, spawns, lvl.Name)
	}

	fmt.Println()
	fmt.Println("Run 'tilenav play chase <id>' to run a level.")
	return nil
}
