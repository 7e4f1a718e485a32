package levels

import (
	"testing"

	"github.com/vovakirdan/tilenav/internal/grid"
	"github.com/vovakirdan/tilenav/internal/levels/formats"
	"github.com/vovakirdan/tilenav/internal/pathing"
	"github.com/vovakirdan/tilenav/internal/tileflags"
)

func builtin(t *testing.T, id string) Level {
	t.Helper()
	lvl, err := NewBuiltinLoader().LoadByID(id)
	if err != nil {
		t.Fatalf("LoadByID(%s): %v", id, err)
	}
	return lvl
}

func TestBuildConnectsFloors(t *testing.T) {
	lvl := Level{Level: formats.Level{
		ID:     "plus",
		Tile:   formats.TileSize{W: 8, H: 8},
		Layout: []string{"#.#", "...", "#.#"},
	}}
	w, err := lvl.Build()
	if err != nil {
		t.Fatal(err)
	}

	if cols, rows := w.Grid.GetCounts(); cols != 3 || rows != 3 {
		t.Errorf("grid = %dx%d, want 3x3", cols, rows)
	}
	if got := w.Flags.GetResolvedFlags(5); got != tileflags.All {
		t.Errorf("centre flags = %v, want all", got)
	}
	if ok, n := w.Flags.IsJunction(5); !ok || n != 4 {
		t.Errorf("centre junction = %v,%d", ok, n)
	}
	if w.Flags.IsOnPath(1) {
		t.Error("walls must not be on path")
	}
	if got := w.Flags.GetResolvedFlags(2); got != tileflags.Mask(grid.DirDown) {
		t.Errorf("top arm = %v, want down only", got)
	}
}

func TestBuildOverrideCullsOneSidedLink(t *testing.T) {
	lvl := builtin(t, "03-gates")
	w, err := lvl.Build()
	if err != nil {
		t.Fatal(err)
	}

	t13, _ := w.Grid.GetTileIndex(13, 2)
	t14, _ := w.Grid.GetTileIndex(14, 2)
	if w.Flags.IsFlagSet(t13, grid.DirRight) || w.Flags.IsFlagSet(t14, grid.DirLeft) {
		t.Error("the overridden link should resolve away on both sides")
	}
	if !w.Flags.IsFlagSet(t13, grid.DirLeft) {
		t.Error("the untouched side of the override should survive")
	}
	if w.Flags.IsFlagSet(t13, grid.DirDown) {
		t.Error("an override pointing into a wall must be culled")
	}
}

func TestGatesOpenOnTick(t *testing.T) {
	lvl := builtin(t, "03-gates")
	w, err := lvl.Build()
	if err != nil {
		t.Fatal(err)
	}

	player, _ := w.TileOf(*lvl.Spawns.Player)
	seeker, _ := w.TileOf(lvl.Spawns.Seekers[0])
	gateTile, _ := w.Grid.GetTileIndex(8, 4)

	if w.Flags.GetFlags(gateTile) != 0 || w.Flags.IsOnPath(gateTile) {
		t.Fatal("gate tile should start wiped")
	}
	if _, ok := pathing.FindPath(w.Movement, seeker, player); ok {
		t.Fatal("halves should be disconnected while the gate is closed")
	}

	if opened := w.OpenGates(149); len(opened) != 0 {
		t.Errorf("gate opened early at 149")
	}
	if opened := w.OpenGates(150); len(opened) != 1 || !opened[0].Open {
		t.Fatalf("gate should open at 150, got %d", len(opened))
	}
	if opened := w.OpenGates(151); len(opened) != 0 {
		t.Error("an open gate must not reopen")
	}

	if w.Flags.GetResolvedFlags(gateTile) != tileflags.Horizontal {
		t.Errorf("gate tile resolved = %v, want horizontal", w.Flags.GetResolvedFlags(gateTile))
	}
	root, ok := pathing.FindPath(w.Movement, seeker, player)
	if !ok {
		t.Fatal("path should exist once the gate is open")
	}
	dist, _ := pathing.Distance(w.Movement, seeker, player)
	for _, walk := range root.Walks() {
		if len(walk) != dist {
			t.Errorf("walk length %d, want %d", len(walk), dist)
		}
	}
}

func TestOverlappingGatesRestoreSharedTiles(t *testing.T) {
	tests := []struct {
		name         string
		openA, openB int
	}{
		{"first gate opens first", 5, 10},
		{"second gate opens first", 10, 5},
		{"both open together", 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl := Level{Level: formats.Level{
				ID:     "overlap",
				Tile:   formats.TileSize{W: 16, H: 16},
				Layout: []string{"....."},
				Gates: []formats.Gate{
					{Col1: 2, Row1: 1, Col2: 3, Row2: 1, OpenAt: tc.openA},
					{Col1: 3, Row1: 1, Col2: 4, Row2: 1, OpenAt: tc.openB},
				},
			}}
			w, err := lvl.Build()
			if err != nil {
				t.Fatal(err)
			}
			shared, _ := w.Grid.GetTileIndex(3, 1)
			first, last := min(tc.openA, tc.openB), max(tc.openA, tc.openB)

			w.OpenGates(first)
			if first != last && w.Flags.GetFlags(shared) != 0 {
				t.Errorf("shared tile restored while a covering gate is closed: %v", w.Flags.GetFlags(shared))
			}

			w.OpenGates(last)
			for _, tile := range w.Grid.Tiles() {
				want := tileflags.Horizontal
				switch tile {
				case 1:
					want = tileflags.Mask(grid.DirRight)
				case 5:
					want = tileflags.Mask(grid.DirLeft)
				}
				if got := w.Flags.GetResolvedFlags(tile); got != want {
					t.Errorf("tile %d resolved = %v, want %v", tile, got, want)
				}
			}
			if d, ok := pathing.Distance(w.Movement, 1, 5); !ok || d != 4 {
				t.Errorf("Distance(1, 5) = %d, %v; want 4, true", d, ok)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		lvl  formats.Level
		ok   bool
	}{
		{"valid", formats.Level{ID: "a", Layout: []string{"..", ".."}}, true},
		{"missing id", formats.Level{Layout: []string{".."}}, false},
		{"empty layout", formats.Level{ID: "a"}, false},
		{"ragged", formats.Level{ID: "a", Layout: []string{"...", ".."}}, false},
		{"spawn in wall", formats.Level{ID: "a", Layout: []string{".#"}, Spawns: formats.Spawns{Seekers: []formats.Cell{{Col: 2, Row: 1}}}}, false},
		{"spawn outside", formats.Level{ID: "a", Layout: []string{".."}, Spawns: formats.Spawns{Player: &formats.Cell{Col: 5, Row: 5}}}, false},
		{"bad mask", formats.Level{ID: "a", Layout: []string{".."}, Flags: []formats.FlagOverride{{Col: 1, Row: 1, Mask: 99}}}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl := Level{Level: tc.lvl}
			if err := lvl.Validate(); (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tc.ok)
			}
		})
	}
}
