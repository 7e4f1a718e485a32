// Package tileflags stores per-tile directional connectivity. Authored
// ("working") masks may describe one-sided connections; ResolveFlags derives
// the consistent ("resolved") masks that movement and pathing consult.
package tileflags

import (
	"math/bits"

	"github.com/vovakirdan/tilenav/internal/core"
	"github.com/vovakirdan/tilenav/internal/grid"
)

// Mask is a set of direction bits.
type Mask uint8

const (
	Horizontal = Mask(grid.DirLeft) | Mask(grid.DirRight)
	Vertical   = Mask(grid.DirUp) | Mask(grid.DirDown)
	All        = Horizontal | Vertical
)

// Has reports whether the direction bit is set.
func (m Mask) Has(d grid.Dir) bool {
	return m&Mask(d) != 0
}

// Count returns the number of direction bits set.
func (m Mask) Count() int {
	return bits.OnesCount8(uint8(m & All))
}

// String lists the set directions in table order, e.g. "left|down".
func (m Mask) String() string {
	if m&All == 0 {
		return "none"
	}
	s := ""
	for _, d := range grid.Dirs {
		if m.Has(d) {
			if s != "" {
				s += "|"
			}
			s += d.String()
		}
	}
	return s
}

// Flags holds working and resolved masks for every tile of a grid.
type Flags struct {
	grid     *grid.Grid
	working  []Mask
	resolved []Mask
}

// New creates empty flag layers sized to the grid.
func New(g *grid.Grid) *Flags {
	return &Flags{
		grid:     g,
		working:  make([]Mask, g.Len()),
		resolved: make([]Mask, g.Len()),
	}
}

// Grid returns the grid the flags were built for.
func (f *Flags) Grid() *grid.Grid {
	return f.grid
}

// SetFlags stores the working mask of a tile and returns the previous value.
// Out-of-bounds tiles are ignored and report 0.
func (f *Flags) SetFlags(t grid.Tile, m Mask) Mask {
	if !f.grid.Valid(t) {
		return 0
	}
	prev := f.working[t-1]
	f.working[t-1] = m & All
	return prev
}

// GetFlags returns the working mask, or 0 for out-of-bounds tiles.
func (f *Flags) GetFlags(t grid.Tile) Mask {
	if !f.grid.Valid(t) {
		return 0
	}
	return f.working[t-1]
}

// GetResolvedFlags returns the resolved mask, or 0 for out-of-bounds tiles.
func (f *Flags) GetResolvedFlags(t grid.Tile) Mask {
	if !f.grid.Valid(t) {
		return 0
	}
	return f.resolved[t-1]
}

// ResolveFlags recomputes the resolved layer for the whole grid. A working bit
// survives only if the tile is not on the border in that direction and the
// neighbour's working mask holds the reciprocal bit. Only the side that is not
// reciprocated loses its bit.
func (f *Flags) ResolveFlags() {
	for i, w := range f.working {
		t := grid.Tile(i + 1)
		var r Mask
		for _, d := range grid.Dirs {
			if !w.Has(d) {
				continue
			}
			n, ok := f.grid.Neighbor(t, d)
			if !ok {
				continue
			}
			if f.working[n-1].Has(d.Opposite()) {
				r |= Mask(d)
			}
		}
		f.resolved[i] = r
	}
}

// IsFlagSet reports whether the resolved mask of a tile holds direction d.
func (f *Flags) IsFlagSet(t grid.Tile, d grid.Dir) bool {
	return f.GetResolvedFlags(t).Has(d)
}

// IsOnPath reports whether the tile has any resolved connection.
func (f *Flags) IsOnPath(t grid.Tile) bool {
	return f.GetResolvedFlags(t) != 0
}

// IsStraight reports whether the tile is a plain horizontal or vertical corridor.
func (f *Flags) IsStraight(t grid.Tile) bool {
	r := f.GetResolvedFlags(t)
	return r == Horizontal || r == Vertical
}

// IsJunction reports whether more than two directions leave the tile, along
// with the number of open directions.
func (f *Flags) IsJunction(t grid.Tile) (bool, int) {
	n := f.GetResolvedFlags(t).Count()
	return n > 2, n
}

// WipeFlags clears both layers inside the rectangle spanned by the two cells.
// Corners are sorted and clamped to the grid; resolution is not re-run.
func (f *Flags) WipeFlags(col1, row1, col2, row2 int) {
	cols, rows := f.grid.GetCounts()
	if cols == 0 || rows == 0 {
		return
	}
	if col1 > col2 {
		col1, col2 = col2, col1
	}
	if row1 > row2 {
		row1, row2 = row2, row1
	}
	col1 = core.Clamp(col1, 1, cols)
	col2 = core.Clamp(col2, 1, cols)
	row1 = core.Clamp(row1, 1, rows)
	row2 = core.Clamp(row2, 1, rows)

	for row := row1; row <= row2; row++ {
		for col := col1; col <= col2; col++ {
			t, _ := f.grid.GetTileIndex(col, row)
			f.working[t-1] = 0
			f.resolved[t-1] = 0
		}
	}
}

// Culled returns the tiles whose resolved mask lost bits relative to the
// working mask, in tile order.
func (f *Flags) Culled() []grid.Tile {
	var tiles []grid.Tile
	for i := range f.working {
		if f.working[i] != f.resolved[i] {
			tiles = append(tiles, grid.Tile(i+1))
		}
	}
	return tiles
}
