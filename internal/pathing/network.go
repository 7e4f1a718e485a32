// Package pathing finds every shortest route between two tiles and exposes
// the result as an immutable network of branch and segment nodes, traversed
// through per-entity cursors.
package pathing

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tilenav/internal/grid"
)

// Step is a tile entered along a path and the direction used to enter it.
type Step struct {
	Tile grid.Tile
	Dir  grid.Dir
}

// String formats the step as "tile:dir".
func (s Step) String() string {
	return fmt.Sprintf("%d:%s", s.Tile, s.Dir)
}

// Segment is a run of travel with no choice in it. Next is set when the path
// forks after the last step.
type Segment struct {
	Steps []Step
	Next  *Branch
}

// Len returns the number of steps in the segment.
func (s *Segment) Len() int {
	return len(s.Steps)
}

// Branch is a choice point between alternative segments. Segments may be
// shared by several branches; nothing is mutated after FindPath returns.
type Branch struct {
	Segments []*Segment
}

// Walks returns the concatenated steps of every root-to-leaf route.
func (b *Branch) Walks() [][]Step {
	var walks [][]Step
	var visit func(br *Branch, prefix []Step)
	visit = func(br *Branch, prefix []Step) {
		for _, seg := range br.Segments {
			walk := make([]Step, 0, len(prefix)+len(seg.Steps))
			walk = append(walk, prefix...)
			walk = append(walk, seg.Steps...)
			if seg.Next == nil {
				walks = append(walks, walk)
				continue
			}
			visit(seg.Next, walk)
		}
	}
	if b != nil {
		visit(b, nil)
	}
	return walks
}

// String renders the network as an indented tree.
func (b *Branch) String() string {
	var sb strings.Builder
	var visit func(br *Branch, depth int)
	visit = func(br *Branch, depth int) {
		for _, seg := range br.Segments {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString("- ")
			for i, st := range seg.Steps {
				if i > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(st.String())
			}
			sb.WriteString("\n")
			if seg.Next != nil {
				visit(seg.Next, depth+1)
			}
		}
	}
	if b != nil {
		visit(b, 0)
	}
	return sb.String()
}
