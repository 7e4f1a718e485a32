package ai

import (
	"math"

	"github.com/vovakirdan/tilenav/internal/grid"
)

// Side names an edge of an axis-aligned rectangle.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Dir returns the direction pointing at the side from inside the rectangle.
func (s Side) Dir() grid.Dir {
	switch s {
	case SideLeft:
		return grid.DirLeft
	case SideRight:
		return grid.DirRight
	case SideTop:
		return grid.DirUp
	case SideBottom:
		return grid.DirDown
	default:
		return grid.DirNone
	}
}

// BorderHit is where a ray meets a rectangle edge.
type BorderHit struct {
	Side Side
	T    float64
	X, Y float64
}

// FindNearestBorder casts the ray (px, py) + t*(dx, dy) against the edges of r
// and returns the hit with the smallest positive t. The exclude side is
// skipped, which lets a caller bouncing off one edge look for the next one.
func FindNearestBorder(r grid.Rect, px, py, dx, dy float64, exclude Side) (BorderHit, bool) {
	if dx == 0 && dy == 0 {
		return BorderHit{}, false
	}

	type candidate struct {
		side Side
		t    float64
	}
	var candidates []candidate
	if dx != 0 {
		candidates = append(candidates,
			candidate{SideLeft, (r.Left - px) / NotZero(dx)},
			candidate{SideRight, (r.Right - px) / NotZero(dx)},
		)
	}
	if dy != 0 {
		candidates = append(candidates,
			candidate{SideTop, (r.Top - py) / NotZero(dy)},
			candidate{SideBottom, (r.Bottom - py) / NotZero(dy)},
		)
	}

	best := BorderHit{T: math.Inf(1)}
	for _, c := range candidates {
		if c.side == exclude || c.t <= 0 || c.t >= best.T {
			continue
		}
		best = BorderHit{Side: c.side, T: c.t}
	}
	if best.Side == SideNone {
		return BorderHit{}, false
	}
	best.X = px + best.T*dx
	best.Y = py + best.T*dy
	return best, true
}

// IsClose reports whether a and b differ by at most tol.
func IsClose(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// notZeroEps is the smallest magnitude NotZero lets through.
const notZeroEps = 1e-9

// NotZero returns v, or a tiny value with v's sign when v is too close to
// zero to divide by.
func NotZero(v float64) float64 {
	if math.Abs(v) < notZeroEps {
		return math.Copysign(notZeroEps, v)
	}
	return v
}
