// Package movement implements direction algebra and continuous-position
// stepping over a tile grid whose connectivity comes from resolved tile flags.
package movement

import "github.com/vovakirdan/tilenav/internal/grid"

// Heading is a direction relative to the current facing.
type Heading int

const (
	Forward Heading = iota
	ToLeft
	ToRight
	Backward
)

// String returns the heading name.
func (h Heading) String() string {
	switch h {
	case Forward:
		return "forward"
	case ToLeft:
		return "to_left"
	case ToRight:
		return "to_right"
	case Backward:
		return "backward"
	default:
		return "unknown"
	}
}

// NextDirection converts a heading relative to facing into an absolute
// direction. Screen coordinates: facing up, to the left is left.
func NextDirection(facing grid.Dir, headed Heading) grid.Dir {
	switch headed {
	case Forward:
		return facing
	case Backward:
		return facing.Opposite()
	case ToLeft:
		switch facing {
		case grid.DirUp:
			return grid.DirLeft
		case grid.DirLeft:
			return grid.DirDown
		case grid.DirDown:
			return grid.DirRight
		case grid.DirRight:
			return grid.DirUp
		}
	case ToRight:
		switch facing {
		case grid.DirUp:
			return grid.DirRight
		case grid.DirRight:
			return grid.DirDown
		case grid.DirDown:
			return grid.DirLeft
		case grid.DirLeft:
			return grid.DirUp
		}
	}
	return grid.DirNone
}

// NextDirectionWithTileDelta also returns the signed tile index offset to the
// neighbour in the resulting direction for a grid with cols columns.
func NextDirectionWithTileDelta(facing grid.Dir, headed Heading, cols int) (grid.Dir, int) {
	d := NextDirection(facing, headed)
	dc, dr := d.Delta()
	return d, dr*cols + dc
}

// NextDirectionWithUnitDeltas also returns the unit column and row deltas.
func NextDirectionWithUnitDeltas(facing grid.Dir, headed Heading) (grid.Dir, int, int) {
	d := NextDirection(facing, headed)
	dc, dr := d.Delta()
	return d, dc, dr
}

// HeadingOf returns the heading that turns facing into d.
func HeadingOf(facing, d grid.Dir) Heading {
	for _, h := range []Heading{Forward, ToLeft, ToRight, Backward} {
		if NextDirection(facing, h) == d {
			return h
		}
	}
	return Forward
}
