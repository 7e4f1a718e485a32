package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilenav/internal/grid"
	"github.com/vovakirdan/tilenav/internal/levels"
	"github.com/vovakirdan/tilenav/internal/pathing"
)

var flagMaxWalks int

var pathCmd = &cobra.Command{
	Use:   "path <level> <from> <to>",
	Short: "Print the shortest-path network between two tiles",
	Long: `Find every shortest route between two tiles of a level and print the
branch/segment network followed by each route spelled out.

Tiles are given as "col,row" (1-based) or as a tile index.

Examples:
  tilenav path 01-cross 2,2 8,6
  tilenav path 02-ring 12 40 --walks 4`,
	Args: cobra.ExactArgs(3),
	RunE: runPath,
}

func init() {
	pathCmd.Flags().IntVar(&flagMaxWalks, "walks", 16, "Maximum number of routes to print (0 = all)")
}

func runPath(_ *cobra.Command, args []string) error {
	lvl, err := levels.Resolve(flagLevelDir, args[0])
	if err != nil {
		return err
	}
	world, err := lvl.Build()
	if err != nil {
		return err
	}
	g := world.Grid

	from, err := parseTile(g, args[1])
	if err != nil {
		return err
	}
	to, err := parseTile(g, args[2])
	if err != nil {
		return err
	}

	root, ok := pathing.FindPath(world.Movement, from, to)
	if !ok {
		fmt.Printf("No path from %s to %s.\n", g.FormatTile(from), g.FormatTile(to))
		return nil
	}

	dist, _ := pathing.Distance(world.Movement, from, to)
	fmt.Printf("%s -> %s: %d steps\n\n", g.FormatTile(from), g.FormatTile(to), dist)
	fmt.Print(root.String())

	walks := root.Walks()
	fmt.Printf("\n%d shortest route(s)\n", len(walks))
	for i, walk := range walks {
		if flagMaxWalks > 0 && i == flagMaxWalks {
			fmt.Printf("  ... %d more\n", len(walks)-i)
			break
		}
		parts := make([]string, len(walk))
		for j, st := range walk {
			col, row, _ := g.GetCell(st.Tile)
			parts[j] = fmt.Sprintf("%s(%d,%d)", st.Dir, col, row)
		}
		fmt.Printf("  %2d: %s\n", i+1, strings.Join(parts, " "))
	}
	return nil
}

// parseTile reads "col,row" or a plain tile index.
func parseTile(g *grid.Grid, s string) (grid.Tile, error) {
	if c, r, found := strings.Cut(s, ","); found {
		col, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return 0, fmt.Errorf("bad column in %q: %w", s, err)
		}
		row, err := strconv.Atoi(strings.TrimSpace(r))
		if err != nil {
			return 0, fmt.Errorf("bad row in %q: %w", s, err)
		}
		t, ok := g.GetTileIndex(col, row)
		if !ok {
			return 0, fmt.Errorf("cell %q is outside the level", s)
		}
		return t, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad tile %q: want col,row or an index", s)
	}
	t := grid.Tile(n)
	if !g.Valid(t) {
		return 0, fmt.Errorf("tile %d is outside the level", n)
	}
	return t, nil
}
