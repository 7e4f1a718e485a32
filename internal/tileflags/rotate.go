package tileflags

import (
	"fmt"

	"github.com/vovakirdan/tilenav/internal/grid"
)

// Rotation selects how Rotate turns a mask.
type Rotation int

const (
	RotateCW   Rotation = 90  // quarter turn clockwise
	RotateCCW  Rotation = -90 // quarter turn counter-clockwise
	Rotate180  Rotation = 180
	RotateNone Rotation = 0
)

// ParseRotation accepts "90", "-90", "180", "cw", "ccw" and "0".
func ParseRotation(s string) (Rotation, error) {
	switch s {
	case "90", "cw":
		return RotateCW, nil
	case "-90", "270", "ccw":
		return RotateCCW, nil
	case "180":
		return Rotate180, nil
	case "0", "none":
		return RotateNone, nil
	}
	return RotateNone, fmt.Errorf("unknown rotation %q", s)
}

// RotateDir turns a single direction. Clockwise on screen: up -> right -> down -> left.
func RotateDir(d grid.Dir, how Rotation) grid.Dir {
	switch how {
	case RotateCW:
		switch d {
		case grid.DirUp:
			return grid.DirRight
		case grid.DirRight:
			return grid.DirDown
		case grid.DirDown:
			return grid.DirLeft
		case grid.DirLeft:
			return grid.DirUp
		}
	case RotateCCW:
		return RotateDir(RotateDir(RotateDir(d, RotateCW), RotateCW), RotateCW)
	case Rotate180:
		return d.Opposite()
	}
	return d
}

// Rotate turns every direction bit of a mask.
func Rotate(m Mask, how Rotation) Mask {
	var out Mask
	for _, d := range grid.Dirs {
		if m.Has(d) {
			out |= Mask(RotateDir(d, how))
		}
	}
	return out
}
