package sim

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tilenav/internal/ai"
	"github.com/vovakirdan/tilenav/internal/grid"
	"github.com/vovakirdan/tilenav/internal/movement"
	"github.com/vovakirdan/tilenav/internal/pathing"
)

type kind int

const (
	kindPlayer kind = iota
	kindSeeker
	kindWanderer
)

func (k kind) String() string {
	switch k {
	case kindPlayer:
		return "player"
	case kindSeeker:
		return "seeker"
	default:
		return "wanderer"
	}
}

// npc is an agent plus the path it follows. It implements ai.PathFuncs.
type npc struct {
	kind  kind
	agent *ai.Agent
	rng   *rand.Rand

	root         *pathing.Branch
	cursor       pathing.Cursor
	goal         grid.Tile
	goalX, goalY float64
	following    bool

	target    grid.Tile // player tile a seeker planned toward
	plannedAt int
	replan    bool
	pause     int
	lastSide  ai.Side
}

func (n *npc) IsFollowingPath(*ai.Agent) bool {
	return n.following
}

func (n *npc) GoalPos(*ai.Agent) (float64, float64, grid.Tile) {
	return n.goalX, n.goalY, n.goal
}

func (n *npc) CancelPath(*ai.Agent) {
	n.following = false
	n.root = nil
	n.cursor = pathing.Cursor{}
}

// follow is the ai.UpdateFunc of a path-following agent. At the tile where
// the current straight run ends it advances the cursor, picking the next
// branch segment that keeps the agent's direction when costs tie.
func (n *npc) follow(dir grid.Dir, tile grid.Tile, _ *ai.Agent) grid.Dir {
	end, ok := n.cursor.RunEnd()
	if !ok || end.Tile != tile {
		return dir
	}
	next, ok := pathing.Advance(n.cursor, dir)
	n.cursor = next
	if !ok {
		return dir
	}
	if d, ok := pathing.CurrentDir(next); ok {
		return d
	}
	return dir
}

func (s *Scene) tileOf(a *ai.Agent) grid.Tile {
	t, _ := s.world.Grid.GetTileIndexXY(a.X, a.Y)
	return t
}

// plan finds every shortest route from the agent's tile to goal and starts
// following the one that best matches its facing.
func (s *Scene) plan(n *npc, goal grid.Tile) bool {
	a := n.agent
	n.plannedAt = s.stats.Ticks
	n.replan = false

	start := s.tileOf(a)
	root, ok := pathing.FindPath(s.world.Movement, start, goal)
	if !ok {
		n.CancelPath(a)
		s.logger.Debug("no path",
			"agent", n.kind,
			"from", s.world.Grid.FormatTile(start),
			"to", s.world.Grid.FormatTile(goal))
		return false
	}
	cur, ok := pathing.ChooseBranchFacing(root, a.Facing)
	if !ok {
		n.CancelPath(a)
		return false
	}

	n.root = root
	n.cursor = cur
	n.goal = goal
	n.goalX, n.goalY, _ = s.world.Grid.GetTilePos(goal)
	n.following = true
	s.mover.WipePath(a)
	s.stats.Repaths++

	s.logger.Debug("path planned",
		"agent", n.kind,
		"from", s.world.Grid.FormatTile(start),
		"to", s.world.Grid.FormatTile(goal),
		"segments", len(root.Segments))
	return true
}

// moveAlong moves a following agent one frame and books arrivals and stuck
// cancels.
func (s *Scene) moveAlong(n *npc, dist float64) ai.MoveResult {
	dir, ok := pathing.CurrentDir(n.cursor)
	if !ok {
		dir = n.agent.Facing
	}
	wasFollowing := n.following

	res := s.mover.TryToMove(n.agent, dist, dir, s.cfg.Movement.Near, n, n.follow)
	if wasFollowing && !n.following && !res.Arrived {
		s.stats.StuckCancels++
		n.replan = true
		s.logger.Debug("path cancelled, agent stuck",
			"agent", n.kind,
			"tile", s.world.Grid.FormatTile(s.tileOf(n.agent)))
	}
	return res
}

// stepPlayer steers the player from input, or lets it wander on autopilot.
func (s *Scene) stepPlayer(n *npc, dist float64) {
	if s.opts.Autopilot {
		s.stepWanderer(n, dist, 0)
		return
	}
	if dist <= 0 {
		return
	}
	dir := s.steer(n.agent)
	s.mover.TryToMove(n.agent, dist, dir, s.cfg.Movement.Near, nil, nil)
}

// steer takes the wanted direction as soon as the tile allows it, otherwise
// keeps going and rounds plain corners on its own.
func (s *Scene) steer(a *ai.Agent) grid.Dir {
	lvl := s.world.Movement
	tile := s.tileOf(a)

	if s.want.Valid() && lvl.CanGo(tile, s.want) {
		return s.want
	}
	if lvl.CanGo(tile, a.Facing) {
		return a.Facing
	}
	if junction, _ := s.world.Flags.IsJunction(tile); junction {
		return a.Facing
	}
	h := lvl.WayToGo(tile, a.Facing, movement.Forward, movement.ToLeft, movement.ToRight)
	if h == movement.Backward {
		return a.Facing
	}
	return movement.NextDirection(a.Facing, h)
}

func (s *Scene) stepSeeker(n *npc, dist float64) {
	target := s.tileOf(s.player.agent)
	if s.tileOf(n.agent) == target {
		s.approach(n.agent, s.player.agent, dist)
		return
	}

	due := s.stats.Ticks-n.plannedAt >= s.cfg.Seekers.RepathTicks
	if n.replan || (due && (!n.following || target != n.target)) {
		n.target = target
		s.plan(n, target)
	}
	if !n.following {
		return
	}
	if res := s.moveAlong(n, dist); res.Arrived {
		n.replan = true
	}
}

// approach moves straight toward another agent sharing the same tile.
func (s *Scene) approach(a, to *ai.Agent, dist float64) {
	dx, dy := to.X-a.X, to.Y-a.Y
	dir, gap := grid.DirRight, dx
	if math.Abs(dy) > math.Abs(dx) {
		dir, gap = grid.DirDown, dy
	}
	if gap < 0 {
		dir = dir.Opposite()
	}
	s.mover.TryToMove(a, math.Min(dist, math.Abs(gap)), dir, s.cfg.Movement.Near, nil, nil)
}

func (s *Scene) stepWanderer(n *npc, dist float64, pause int) {
	if n.pause > 0 {
		n.pause--
		return
	}

	switch {
	case n.replan && n.following:
		s.plan(n, n.goal)
	case !n.following:
		goal, ok := s.pickGoal(n)
		if !ok || !s.plan(n, goal) {
			n.pause = max(pause, 1)
			return
		}
	}
	if !n.following {
		return
	}

	if res := s.moveAlong(n, dist); res.Arrived {
		s.stats.Goals++
		n.pause = pause
	}
}

// pickGoal samples a reachable tile near the agent, biased toward the level
// border its facing points at.
func (s *Scene) pickGoal(n *npc) (grid.Tile, bool) {
	g := s.world.Grid
	a := n.agent
	tile := s.tileOf(a)

	var biasCol, biasRow float64
	dc, dr := a.Facing.Delta()
	if hit, ok := ai.FindNearestBorder(g.Bounds(), a.X, a.Y, float64(dc), float64(dr), n.lastSide); ok {
		bc, br := hit.Side.Dir().Delta()
		biasCol = float64(bc) * s.cfg.Wander.Bias
		biasRow = float64(br) * s.cfg.Wander.Bias
		n.lastSide = hit.Side
	}

	for range 8 {
		t, ok := ai.GetTileNeighborBiased(g, tile, s.cfg.Wander.Cols, s.cfg.Wander.Rows, biasCol, biasRow, n.rng)
		if ok && t != tile && s.world.Flags.IsOnPath(t) {
			return t, true
		}
	}
	return 0, false
}
