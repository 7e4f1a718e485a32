package movement

import (
	"iter"
	"math"

	"github.com/vovakirdan/tilenav/internal/grid"
	"github.com/vovakirdan/tilenav/internal/tileflags"
)

// Level bundles a grid with its connectivity flags. It is the context every
// movement and pathing operation runs against.
type Level struct {
	grid  *grid.Grid
	flags *tileflags.Flags
}

// NewLevel wraps resolved flags and the grid they were built for.
func NewLevel(flags *tileflags.Flags) *Level {
	return &Level{grid: flags.Grid(), flags: flags}
}

// Grid returns the level geometry.
func (l *Level) Grid() *grid.Grid {
	return l.grid
}

// Flags returns the level connectivity.
func (l *Level) Flags() *tileflags.Flags {
	return l.flags
}

// CanGo reports whether the resolved flags of the tile allow leaving in
// direction d. It does not look at the neighbour; resolved flags are already
// symmetric.
func (l *Level) CanGo(t grid.Tile, d grid.Dir) bool {
	return l.flags.IsFlagSet(t, d)
}

// CanGoRelative is CanGo with d given relative to facing.
func (l *Level) CanGoRelative(t grid.Tile, headed Heading, facing grid.Dir) bool {
	return l.CanGo(t, NextDirection(facing, headed))
}

// WayToGo returns the first heading among the candidates that is open from the
// tile, or Backward when none is.
func (l *Level) WayToGo(t grid.Tile, facing grid.Dir, h1, h2, h3 Heading) Heading {
	for _, h := range [3]Heading{h1, h2, h3} {
		if l.CanGoRelative(t, h, facing) {
			return h
		}
	}
	return Backward
}

// FirstOpen returns the first absolute direction among the candidates that is
// open from the tile.
func (l *Level) FirstOpen(t grid.Tile, dirs ...grid.Dir) (grid.Dir, bool) {
	for _, d := range dirs {
		if l.CanGo(t, d) {
			return d, true
		}
	}
	return grid.DirNone, false
}

// Ways yields the open resolved directions of a tile in table order.
func (l *Level) Ways(t grid.Tile) iter.Seq[grid.Dir] {
	mask := l.flags.GetResolvedFlags(t)
	return func(yield func(grid.Dir) bool) {
		for _, d := range grid.Dirs {
			if mask.Has(d) && !yield(d) {
				return
			}
		}
	}
}

// MoveFrom steps the point (x, y) by up to dist in direction d.
//
// When d is open from the containing tile, the lateral offset from the tile
// centre line is closed first and only the remaining budget moves forward; if
// the offset exceeds dist, only part of it is closed. When d is blocked, the
// point approaches the tile centre along d's axis and stops there. Points
// outside the grid are returned unchanged.
func (l *Level) MoveFrom(x, y, dist float64, d grid.Dir) (float64, float64) {
	if dist <= 0 || !d.Valid() {
		return x, y
	}
	tile, ok := l.grid.GetTileIndexXY(x, y)
	if !ok {
		return x, y
	}
	cx, cy, _ := l.grid.GetTilePos(tile)

	// Work in (along, lateral) coordinates so both axes share one code path.
	along, lateral, centerAlong, centerLateral := x, y, cx, cy
	if !d.Horizontal() {
		along, lateral, centerAlong, centerLateral = y, x, cy, cx
	}
	sign := d.Sign()

	if l.CanGo(tile, d) {
		offset := centerLateral - lateral
		if math.Abs(offset) > dist {
			lateral += math.Copysign(dist, offset)
		} else {
			lateral = centerLateral
			along += sign * (dist - math.Abs(offset))
		}
	} else if ahead := sign * (centerAlong - along); ahead > 0 {
		along += sign * math.Min(dist, ahead)
	}

	if !d.Horizontal() {
		return lateral, along
	}
	return along, lateral
}
