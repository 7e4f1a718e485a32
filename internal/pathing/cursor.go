package pathing

import "github.com/vovakirdan/tilenav/internal/grid"

// Cursor is an entity's position inside a path network. It is a small value
// owned by one traversal, so several entities can walk the same network.
type Cursor struct {
	seg   *Segment
	index int
}

// Valid reports whether the cursor points into a segment.
func (c Cursor) Valid() bool {
	return c.seg != nil
}

// Segment returns the segment the cursor is in.
func (c Cursor) Segment() *Segment {
	return c.seg
}

// Index returns the offset of the cursor inside its segment.
func (c Cursor) Index() int {
	return c.index
}

// Done reports whether the cursor has run past the last step of its segment.
func (c Cursor) Done() bool {
	return c.seg == nil || c.index >= len(c.seg.Steps)
}

// Step returns the step under the cursor.
func (c Cursor) Step() (Step, bool) {
	if c.Done() {
		return Step{}, false
	}
	return c.seg.Steps[c.index], true
}

// RunEnd returns the last step of the straight run that starts at the cursor,
// i.e. the tile where the current direction changes or the segment ends.
func (c Cursor) RunEnd() (Step, bool) {
	if c.Done() {
		return Step{}, false
	}
	i := c.index
	d := c.seg.Steps[i].Dir
	for i+1 < len(c.seg.Steps) && c.seg.Steps[i+1].Dir == d {
		i++
	}
	return c.seg.Steps[i], true
}

// CurrentDir returns the direction under the cursor.
func CurrentDir(c Cursor) (grid.Dir, bool) {
	st, ok := c.Step()
	if !ok {
		return grid.DirNone, false
	}
	return st.Dir, true
}

// ChooseBranchFacing picks the cheapest segment of a branch, where cost is
// the segment's step count. A segment whose first direction equals facing wins
// a tie for the minimum, but never beats a strictly cheaper one.
func ChooseBranchFacing(b *Branch, facing grid.Dir) (Cursor, bool) {
	if b == nil || len(b.Segments) == 0 {
		return Cursor{}, false
	}

	best := 0
	for i, seg := range b.Segments {
		if seg.Len() < b.Segments[best].Len() {
			best = i
		}
	}

	match, matches := -1, 0
	for i, seg := range b.Segments {
		if seg.Len() > 0 && seg.Steps[0].Dir == facing {
			match = i
			matches++
		}
	}
	if matches == 1 && b.Segments[match].Len() == b.Segments[best].Len() {
		best = match
	}

	return Cursor{seg: b.Segments[best]}, true
}

// Advance moves past the current run of identical directions. When the
// segment is exhausted it continues into the next branch, choosing with
// ChooseBranchFacing. At the end of the path it returns the exhausted cursor
// and false.
func Advance(c Cursor, facing grid.Dir) (Cursor, bool) {
	if c.Done() {
		return c, false
	}

	d := c.seg.Steps[c.index].Dir
	i := c.index + 1
	for i < len(c.seg.Steps) && c.seg.Steps[i].Dir == d {
		i++
	}
	if i < len(c.seg.Steps) {
		return Cursor{seg: c.seg, index: i}, true
	}

	if c.seg.Next != nil {
		if next, ok := ChooseBranchFacing(c.seg.Next, facing); ok {
			return next, true
		}
	}
	return Cursor{seg: c.seg, index: len(c.seg.Steps)}, false
}

// Goal returns the last tile reachable from the cursor, following the
// cheapest choice at every later branch.
func (c Cursor) Goal() (grid.Tile, bool) {
	seg := c.seg
	if seg == nil {
		return 0, false
	}
	for seg.Next != nil {
		next, ok := ChooseBranchFacing(seg.Next, grid.DirNone)
		if !ok {
			break
		}
		seg = next.seg
	}
	if len(seg.Steps) == 0 {
		return 0, false
	}
	return seg.Steps[len(seg.Steps)-1].Tile, true
}
