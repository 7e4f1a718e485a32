package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tilenav/internal/grid"
	"github.com/vovakirdan/tilenav/internal/levels/formats"
	"github.com/vovakirdan/tilenav/internal/movement"
	"github.com/vovakirdan/tilenav/internal/tileflags"
)

// Validate checks the level is usable: a rectangular layout and spawns on
// floor tiles.
func (l *Level) Validate() error {
	var errs []error
	if l.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if len(l.Layout) == 0 {
		errs = append(errs, errors.New("empty layout"))
	}
	cols := l.Cols()
	for i, row := range l.Layout {
		if n := len([]rune(row)); n != cols {
			errs = append(errs, fmt.Errorf("layout row %d has %d columns, want %d", i+1, n, cols))
		}
	}
	for _, o := range l.Flags {
		if o.Mask > uint8(tileflags.All) {
			errs = append(errs, fmt.Errorf("flag override (%d,%d): mask %d out of range", o.Col, o.Row, o.Mask))
		}
	}

	checkSpawn := func(kind string, c formats.Cell) {
		if !l.Floor(c.Col, c.Row) {
			errs = append(errs, fmt.Errorf("%s spawn (%d,%d) is not on floor", kind, c.Col, c.Row))
		}
	}
	if l.Spawns.Player != nil {
		checkSpawn("player", *l.Spawns.Player)
	}
	for _, c := range l.Spawns.Seekers {
		checkSpawn("seeker", c)
	}
	for _, c := range l.Spawns.Wanderers {
		checkSpawn("wanderer", c)
	}

	if len(errs) > 0 {
		return fmt.Errorf("level %q: %w", l.ID, errors.Join(errs...))
	}
	return nil
}

// Gate is a closed region of a built level and the working flags it gets
// back when it opens.
type Gate struct {
	formats.Gate
	Open  bool
	saved map[grid.Tile]tileflags.Mask
}

// World is a level turned into grid geometry and resolved connectivity.
type World struct {
	Grid     *grid.Grid
	Flags    *tileflags.Flags
	Movement *movement.Level
	Gates    []*Gate
}

// Build lays out working flags from the layout (each floor tile connects to
// its floor neighbours), applies flag overrides, closes the gates and
// resolves.
func (l *Level) Build() (*World, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	g := grid.New(l.Cols(), l.Rows(), l.Tile.W, l.Tile.H)
	f := tileflags.New(g)

	for _, t := range g.Tiles() {
		col, row, _ := g.GetCell(t)
		if !l.Floor(col, row) {
			continue
		}
		var m tileflags.Mask
		for _, d := range grid.Dirs {
			dc, dr := d.Delta()
			if l.Floor(col+dc, row+dr) {
				m |= tileflags.Mask(d)
			}
		}
		f.SetFlags(t, m)
	}

	for _, o := range l.Flags {
		if t, ok := g.GetTileIndex(o.Col, o.Row); ok {
			f.SetFlags(t, tileflags.Mask(o.Mask))
		}
	}

	// Save every gate before wiping any, so overlapping gates keep the
	// authored flags of shared tiles.
	w := &World{Grid: g, Flags: f}
	for _, spec := range l.Gates {
		gate := &Gate{Gate: spec, saved: make(map[grid.Tile]tileflags.Mask)}
		for _, t := range regionTiles(g, spec) {
			gate.saved[t] = f.GetFlags(t)
		}
		w.Gates = append(w.Gates, gate)
	}
	for _, gate := range w.Gates {
		f.WipeFlags(gate.Col1, gate.Row1, gate.Col2, gate.Row2)
	}

	f.ResolveFlags()
	w.Movement = movement.NewLevel(f)
	return w, nil
}

// OpenGates opens every closed gate due at tick and re-resolves the flags.
// A tile shared with a gate that is still closed stays wiped until that gate
// opens too. It returns the gates it opened.
func (w *World) OpenGates(tick int) []*Gate {
	var opened []*Gate
	for _, gate := range w.Gates {
		if gate.Open || tick < gate.OpenAt {
			continue
		}
		gate.Open = true
		opened = append(opened, gate)
	}
	if len(opened) == 0 {
		return nil
	}

	for _, gate := range opened {
		for t, m := range gate.saved {
			if !w.closedAt(t) {
				w.Flags.SetFlags(t, m)
			}
		}
	}
	w.Flags.ResolveFlags()
	return opened
}

func (w *World) closedAt(t grid.Tile) bool {
	for _, gate := range w.Gates {
		if _, ok := gate.saved[t]; ok && !gate.Open {
			return true
		}
	}
	return false
}

// TileOf converts a spawn cell into a tile index.
func (w *World) TileOf(c formats.Cell) (grid.Tile, bool) {
	return w.Grid.GetTileIndex(c.Col, c.Row)
}

func regionTiles(g *grid.Grid, gate formats.Gate) []grid.Tile {
	c1, c2 := min(gate.Col1, gate.Col2), max(gate.Col1, gate.Col2)
	r1, r2 := min(gate.Row1, gate.Row2), max(gate.Row1, gate.Row2)
	var tiles []grid.Tile
	for row := r1; row <= r2; row++ {
		for col := c1; col <= c2; col++ {
			if t, ok := g.GetTileIndex(col, row); ok {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}
