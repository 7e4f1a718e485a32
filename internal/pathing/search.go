package pathing

import (
	"github.com/vovakirdan/tilenav/internal/grid"
	"github.com/vovakirdan/tilenav/internal/movement"
)

// probe is one in-flight candidate during the search. Once the search is over
// each probe that mattered becomes a Segment.
type probe struct {
	at      grid.Tile
	heading grid.Dir
	steps   []Step
	preds   []*probe // arrivals at the branch tile that spawned this probe
}

type spawnKey struct {
	tile grid.Tile
	dir  grid.Dir
}

// FindPath runs a simultaneous breadth-first search from start and returns a
// network holding every shortest route to goal. It reports false when start
// equals goal, either tile is invalid, or the goal cannot be reached.
//
// Every live probe advances one tile per iteration. A probe entering a tile
// with one continuation keeps going; with several, the tile becomes a branch
// point and one probe is spawned per continuation. Only probes arriving in the
// iteration that first branched a tile may join it; later arrivals are longer
// and die. The search stops after the first iteration in which any probe
// reaches the goal.
func FindPath(l *movement.Level, start, goal grid.Tile) (*Branch, bool) {
	g := l.Grid()
	if start == goal || !g.Valid(start) || !g.Valid(goal) {
		return nil, false
	}

	var all []*probe
	var probes []*probe
	for d := range l.Ways(start) {
		p := &probe{at: start, heading: d}
		all = append(all, p)
		probes = append(probes, p)
	}

	branchedAt := make(map[grid.Tile]int)

	for iter := 1; len(probes) > 0; iter++ {
		var next, found []*probe
		spawned := make(map[spawnKey]bool)
		arrivals := make(map[grid.Tile][]*probe)
		spawns := make(map[grid.Tile][]*probe)

		for _, p := range probes {
			nt, ok := g.Neighbor(p.at, p.heading)
			if !ok {
				continue
			}
			p.at = nt
			p.steps = append(p.steps, Step{Tile: nt, Dir: p.heading})

			if nt == goal {
				found = append(found, p)
				continue
			}
			if nt == start {
				continue
			}
			if it, seen := branchedAt[nt]; seen && it != iter {
				continue
			}

			var open []grid.Dir
			for _, h := range [3]movement.Heading{movement.Forward, movement.ToLeft, movement.ToRight} {
				if d := movement.NextDirection(p.heading, h); l.CanGo(nt, d) {
					open = append(open, d)
				}
			}

			switch len(open) {
			case 0:
				// dead end
			case 1:
				p.heading = open[0]
				next = append(next, p)
			default:
				branchedAt[nt] = iter
				arrivals[nt] = append(arrivals[nt], p)
				for _, d := range open {
					key := spawnKey{tile: nt, dir: d}
					if spawned[key] {
						continue
					}
					spawned[key] = true
					s := &probe{at: nt, heading: d}
					all = append(all, s)
					spawns[nt] = append(spawns[nt], s)
					next = append(next, s)
				}
			}
		}

		for tile, list := range spawns {
			for _, s := range list {
				s.preds = arrivals[tile]
			}
		}

		if len(found) > 0 {
			return patchUp(all, found), true
		}
		probes = next
	}

	return nil, false
}

// patchUp turns the backward predecessor links of the successful probes into
// the forward network rooted at the start tile. Ordering follows probe
// creation, so root segments appear in direction table order and successors in
// spawn order.
func patchUp(all, found []*probe) *Branch {
	live := make(map[*probe]bool)
	var mark func(p *probe)
	mark = func(p *probe) {
		if live[p] {
			return
		}
		live[p] = true
		for _, pred := range p.preds {
			mark(pred)
		}
	}
	for _, p := range found {
		mark(p)
	}

	succ := make(map[*probe][]*probe)
	root := &Branch{}
	rootDirs := make(map[grid.Dir]bool)
	var roots []*probe
	for _, p := range all {
		if !live[p] {
			continue
		}
		if len(p.preds) == 0 {
			if first := p.steps[0].Dir; !rootDirs[first] {
				rootDirs[first] = true
				roots = append(roots, p)
			}
			continue
		}
		for _, pred := range p.preds {
			if live[pred] {
				succ[pred] = append(succ[pred], p)
			}
		}
	}

	// Successors are always created after their predecessors, so building in
	// reverse creation order sees every successor node first.
	nodes := make(map[*probe]*Segment)
	for i := len(all) - 1; i >= 0; i-- {
		p := all[i]
		if !live[p] {
			continue
		}
		seg := &Segment{Steps: p.steps}
		if s := succ[p]; len(s) > 0 {
			seg.Next = &Branch{Segments: make([]*Segment, 0, len(s))}
			for _, child := range s {
				seg.Next.Segments = append(seg.Next.Segments, nodes[child])
			}
		}
		nodes[p] = seg
	}

	for _, p := range roots {
		root.Segments = append(root.Segments, nodes[p])
	}
	return root
}

// Distance returns the number of steps on a shortest route between two tiles
// using a plain breadth-first search over resolved flags.
func Distance(l *movement.Level, start, goal grid.Tile) (int, bool) {
	g := l.Grid()
	if !g.Valid(start) || !g.Valid(goal) {
		return 0, false
	}
	if start == goal {
		return 0, true
	}

	dist := map[grid.Tile]int{start: 0}
	queue := []grid.Tile{start}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for d := range l.Ways(t) {
			n, ok := g.Neighbor(t, d)
			if !ok {
				continue
			}
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[t] + 1
			if n == goal {
				return dist[n], true
			}
			queue = append(queue, n)
		}
	}
	return 0, false
}
