package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tilenav/internal/grid"
	"github.com/vovakirdan/tilenav/internal/levels"
	"github.com/vovakirdan/tilenav/internal/levels/formats"
	"github.com/vovakirdan/tilenav/internal/pathing"
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate level files",
	Long: `Build every level and verify it: layout and spawns, border culling,
junctions, and that every route FindPath returns from the first spawn is
connected and as short as a plain breadth-first search says.

Without a directory the built-in levels (and --levels) are checked.

Examples:
  tilenav check
  tilenav check ./levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

// levelReport is the outcome of checking one level.
type levelReport struct {
	Name      string
	Tiles     int
	Culled    int
	Junctions int
	Targets   int
	Routes    int
	Err       error
}

func runCheck(cmd *cobra.Command, args []string) error {
	var loads []func() (levels.Level, error)
	if len(args) == 1 {
		paths, err := levelFiles(args[0])
		if err != nil {
			return err
		}
		for _, p := range paths {
			loads = append(loads, func() (levels.Level, error) { return levels.LoadFile(p) })
		}
	} else {
		all, err := availableLevels()
		if err != nil {
			return err
		}
		for _, lvl := range all {
			loads = append(loads, func() (levels.Level, error) { return lvl, nil })
		}
	}

	reports := make([]levelReport, len(loads))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	for i, load := range loads {
		g.Go(func() error {
			lvl, err := load()
			if err != nil {
				reports[i] = levelReport{Name: fmt.Sprintf("#%d", i+1), Err: err}
				return nil
			}
			reports[i] = checkLevel(ctx, lvl)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
			fmt.Printf("FAIL  %s\n", r.Name)
			for _, line := range strings.Split(r.Err.Error(), "\n") {
				fmt.Printf("      %s\n", line)
			}
			continue
		}
		fmt.Printf("ok    %-16s tiles %-4d culled %-3d junctions %-3d targets %-4d routes %d\n",
			r.Name, r.Tiles, r.Culled, r.Junctions, r.Targets, r.Routes)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d levels failed", failed, len(reports))
	}
	return nil
}

func levelFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(formats.FormatExtensions(), strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// checkLevel builds a level and compares the routes FindPath returns from
// the first spawn to every reachable tile against a plain search.
func checkLevel(ctx context.Context, lvl levels.Level) levelReport {
	r := levelReport{Name: lvl.ID}
	world, err := lvl.Build()
	if err != nil {
		r.Err = err
		return r
	}

	g, flags, mv := world.Grid, world.Flags, world.Movement
	r.Culled = len(flags.Culled())

	var floor []grid.Tile
	for _, t := range g.Tiles() {
		if !flags.IsOnPath(t) {
			continue
		}
		floor = append(floor, t)
		if ok, _ := flags.IsJunction(t); ok {
			r.Junctions++
		}
	}
	r.Tiles = len(floor)
	if len(floor) == 0 {
		r.Err = errors.New("no connected floor")
		return r
	}

	from := floor[0]
	if c := firstSpawn(lvl); c != nil {
		if t, ok := world.TileOf(*c); ok {
			from = t
		}
	}

	var errs []error
	for _, to := range floor {
		if ctx.Err() != nil {
			r.Err = ctx.Err()
			return r
		}
		if to == from {
			continue
		}
		want, reachable := pathing.Distance(mv, from, to)
		root, found := pathing.FindPath(mv, from, to)
		if reachable != found {
			errs = append(errs, fmt.Errorf("%s: search found=%v, distance reachable=%v", g.FormatTile(to), found, reachable))
			continue
		}
		if !found {
			continue
		}
		r.Targets++
		for _, walk := range root.Walks() {
			r.Routes++
			if err := verifyWalk(g, mv.CanGo, from, to, walk, want); err != nil {
				errs = append(errs, err)
				break
			}
		}
	}
	r.Err = errors.Join(errs...)
	return r
}

func verifyWalk(g *grid.Grid, canGo func(grid.Tile, grid.Dir) bool, from, to grid.Tile, walk []pathing.Step, want int) error {
	if len(walk) != want {
		return fmt.Errorf("%s: route of %d steps, shortest is %d", g.FormatTile(to), len(walk), want)
	}
	at := from
	for i, st := range walk {
		next, ok := g.Neighbor(at, st.Dir)
		if !ok || next != st.Tile || !canGo(at, st.Dir) {
			return fmt.Errorf("%s: step %d (%s) does not connect from %s", g.FormatTile(to), i+1, st, g.FormatTile(at))
		}
		at = next
	}
	if at != to {
		return fmt.Errorf("%s: route ends at %s", g.FormatTile(to), g.FormatTile(at))
	}
	return nil
}

func firstSpawn(lvl levels.Level) *formats.Cell {
	switch {
	case lvl.Spawns.Player != nil:
		return lvl.Spawns.Player
	case len(lvl.Spawns.Seekers) > 0:
		return &lvl.Spawns.Seekers[0]
	case len(lvl.Spawns.Wanderers) > 0:
		return &lvl.Spawns.Wanderers[0]
	}
	return nil
}
