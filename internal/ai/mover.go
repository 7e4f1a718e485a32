// Package ai drives agents over a tile level: per-frame movement integration
// with optional path following, plus the small sampling and geometry helpers
// used by wandering agents.
package ai

import (
	"math"

	"github.com/vovakirdan/tilenav/internal/grid"
	"github.com/vovakirdan/tilenav/internal/movement"
)

// DefaultStuckLimit is the number of consecutive non-moving calls after which
// a followed path is cancelled.
const DefaultStuckLimit = 2

// moveEpsilon is the distance below which a position change counts as none.
const moveEpsilon = 1e-6

// Agent is the kinematic state of a moving entity. Path state lives with the
// caller; the agent only carries the counters TryToMove needs between frames.
type Agent struct {
	X, Y   float64
	Facing grid.Dir

	stuck      int
	updateTile grid.Tile
}

// NewAgent places an agent at (x, y) facing dir.
func NewAgent(x, y float64, facing grid.Dir) *Agent {
	return &Agent{X: x, Y: y, Facing: facing}
}

// Stuck returns the number of consecutive frames the agent failed to move
// while following a path.
func (a *Agent) Stuck() int {
	return a.stuck
}

// PathFuncs connects TryToMove to whatever path state the caller keeps for
// an agent.
type PathFuncs interface {
	IsFollowingPath(a *Agent) bool
	GoalPos(a *Agent) (x, y float64, tile grid.Tile)
	CancelPath(a *Agent)
}

// UpdateFunc is called when a following agent enters a non-straight tile. It
// returns the direction to continue in.
type UpdateFunc func(dir grid.Dir, tile grid.Tile, a *Agent) grid.Dir

// MoveResult is the outcome of one TryToMove call.
type MoveResult struct {
	Moved   bool
	Arrived bool
	X, Y    float64
	Dir     grid.Dir
}

// Mover integrates agent motion over a level.
type Mover struct {
	Level      *movement.Level
	StuckLimit int
}

// NewMover returns a mover with the default stuck limit.
func NewMover(l *movement.Level) *Mover {
	return &Mover{Level: l, StuckLimit: DefaultStuckLimit}
}

// TryToMove advances the agent by up to dist in dir, in sub-steps no longer
// than near and never longer than half the smaller tile side.
//
// When funcs reports the agent is following a path, each sub-step checks
// whether the goal was crossed: the goal's offset along the direction of
// travel changes sign while the perpendicular offset stays within near. On
// arrival the agent snaps to the goal and the path is cancelled. Entering a
// non-straight tile other than the one of the last update invokes update,
// whose returned direction is used for the rest of the budget. A following
// agent that fails to move for StuckLimit consecutive calls has its path
// cancelled.
func (m *Mover) TryToMove(a *Agent, dist float64, dir grid.Dir, near float64, funcs PathFuncs, update UpdateFunc) MoveResult {
	g := m.Level.Grid()
	following := funcs != nil && funcs.IsFollowingPath(a)

	var gx, gy float64
	if following {
		gx, gy, _ = funcs.GoalPos(a)
	}

	step := m.subStep(dist, near)
	x, y := a.X, a.Y
	arrived := false

	for remaining := dist; remaining > moveEpsilon && dir.Valid(); {
		s := math.Min(step, remaining)
		remaining -= s

		from, _ := g.GetTileIndexXY(x, y)
		nx, ny := m.Level.MoveFrom(x, y, s, dir)

		if following && passedGoal(x, y, nx, ny, gx, gy, dir, near) {
			x, y = gx, gy
			arrived = true
			break
		}
		if IsClose(nx, x, moveEpsilon) && IsClose(ny, y, moveEpsilon) {
			break
		}
		x, y = nx, ny

		if !following || update == nil {
			continue
		}
		tile, ok := g.GetTileIndexXY(x, y)
		if !ok || tile == from || tile == a.updateTile || m.Level.Flags().IsStraight(tile) {
			continue
		}
		a.updateTile = tile
		if nd := update(dir, tile, a); nd.Valid() {
			dir = nd
		}
	}

	moved := !IsClose(x, a.X, moveEpsilon) || !IsClose(y, a.Y, moveEpsilon)
	a.X, a.Y = x, y
	if dir.Valid() {
		a.Facing = dir
	}

	switch {
	case arrived:
		funcs.CancelPath(a)
		m.WipePath(a)
	case following && !moved:
		a.stuck++
		if a.stuck >= m.stuckLimit() {
			funcs.CancelPath(a)
			m.WipePath(a)
		}
	default:
		a.stuck = 0
	}

	return MoveResult{Moved: moved, Arrived: arrived, X: x, Y: y, Dir: dir}
}

// WipePath clears the per-agent path bookkeeping. Call it when a path is
// cancelled or the agent is removed.
func (m *Mover) WipePath(a *Agent) {
	a.stuck = 0
	a.updateTile = 0
}

func (m *Mover) stuckLimit() int {
	if m.StuckLimit <= 0 {
		return DefaultStuckLimit
	}
	return m.StuckLimit
}

func (m *Mover) subStep(dist, near float64) float64 {
	step := dist
	if near > 0 && near < step {
		step = near
	}
	w, h := m.Level.Grid().GetSizes()
	if half := math.Min(w, h) / 2; step > half {
		step = half
	}
	return step
}

// passedGoal reports whether moving from (x, y) to (nx, ny) crossed the goal.
func passedGoal(x, y, nx, ny, gx, gy float64, dir grid.Dir, near float64) bool {
	if IsClose(nx, gx, moveEpsilon) && IsClose(ny, gy, moveEpsilon) {
		return true
	}

	before, after, perp := gx-x, gx-nx, gy-ny
	if !dir.Horizontal() {
		before, after, perp = gy-y, gy-ny, gx-nx
	}
	if math.Abs(perp) > near {
		return false
	}
	return before != 0 && (after == 0 || math.Signbit(before) != math.Signbit(after))
}
