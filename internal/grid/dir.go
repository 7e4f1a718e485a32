package grid

// Dir is one of the four cardinal directions. The values double as the
// direction bits used by tile connectivity masks.
type Dir uint8

const (
	DirLeft  Dir = 1
	DirRight Dir = 2
	DirUp    Dir = 4
	DirDown  Dir = 8
)

// DirNone is the zero value and means "no direction".
const DirNone Dir = 0

// Dirs lists the directions in table order: left, right, up, down.
var Dirs = [4]Dir{DirLeft, DirRight, DirUp, DirDown}

// String returns the lower-case name of the direction.
func (d Dir) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// ParseDir converts a direction name back into a Dir.
func ParseDir(s string) (Dir, bool) {
	switch s {
	case "left", "l":
		return DirLeft, true
	case "right", "r":
		return DirRight, true
	case "up", "u":
		return DirUp, true
	case "down", "d":
		return DirDown, true
	}
	return DirNone, false
}

// Valid reports whether d is exactly one of the four directions.
func (d Dir) Valid() bool {
	return d == DirLeft || d == DirRight || d == DirUp || d == DirDown
}

// Delta returns the unit column and row offsets for one step in this direction.
// Up decreases the row, down increases it (screen coordinates).
func (d Dir) Delta() (dcol, drow int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the reciprocal direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return d
	}
}

// Horizontal reports whether d moves along the x axis.
func (d Dir) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Sign returns +1 for right/down and -1 for left/up.
func (d Dir) Sign() float64 {
	if d == DirRight || d == DirDown {
		return 1
	}
	if d == DirLeft || d == DirUp {
		return -1
	}
	return 0
}
