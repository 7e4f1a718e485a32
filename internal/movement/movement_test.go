package movement

import (
	"math"
	"testing"

	"github.com/vovakirdan/tilenav/internal/grid"
	"github.com/vovakirdan/tilenav/internal/tileflags"
)

const tileSize = 16

// crossLevel builds a 3x3 level whose middle row and column are connected.
func crossLevel() *Level {
	g := grid.New(3, 3, tileSize, tileSize)
	f := tileflags.New(g)
	f.SetFlags(2, tileflags.Mask(grid.DirDown))
	f.SetFlags(4, tileflags.Mask(grid.DirRight))
	f.SetFlags(5, tileflags.All)
	f.SetFlags(6, tileflags.Mask(grid.DirLeft))
	f.SetFlags(8, tileflags.Mask(grid.DirUp))
	f.ResolveFlags()
	return NewLevel(f)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNextDirection(t *testing.T) {
	testCases := []struct {
		facing grid.Dir
		headed Heading
		want   grid.Dir
	}{
		{grid.DirUp, ToLeft, grid.DirLeft},
		{grid.DirUp, ToRight, grid.DirRight},
		{grid.DirRight, ToLeft, grid.DirUp},
		{grid.DirRight, ToRight, grid.DirDown},
		{grid.DirDown, ToLeft, grid.DirRight},
		{grid.DirLeft, ToRight, grid.DirUp},
		{grid.DirLeft, Backward, grid.DirRight},
		{grid.DirDown, Forward, grid.DirDown},
	}

	for _, tc := range testCases {
		if got := NextDirection(tc.facing, tc.headed); got != tc.want {
			t.Errorf("NextDirection(%v, %v) = %v, want %v", tc.facing, tc.headed, got, tc.want)
		}
		if h := HeadingOf(tc.facing, tc.want); h != tc.headed {
			t.Errorf("HeadingOf(%v, %v) = %v, want %v", tc.facing, tc.want, h, tc.headed)
		}
	}

	d, delta := NextDirectionWithTileDelta(grid.DirRight, ToRight, 7)
	if d != grid.DirDown || delta != 7 {
		t.Errorf("tile delta variant = %v,%d; want down,7", d, delta)
	}
	d, dc, dr := NextDirectionWithUnitDeltas(grid.DirUp, ToLeft)
	if d != grid.DirLeft || dc != -1 || dr != 0 {
		t.Errorf("unit delta variant = %v,%d,%d; want left,-1,0", d, dc, dr)
	}
}

func TestCanGoAndWays(t *testing.T) {
	l := crossLevel()

	if !l.CanGo(5, grid.DirUp) || l.CanGo(4, grid.DirLeft) {
		t.Error("unexpected CanGo results on the cross")
	}
	if !l.CanGoRelative(4, Forward, grid.DirRight) {
		t.Error("facing right from tile 4, forward should be open")
	}
	if l.CanGoRelative(4, ToLeft, grid.DirRight) {
		t.Error("facing right from tile 4, to_left (up) should be closed")
	}

	var ways []grid.Dir
	for d := range l.Ways(5) {
		ways = append(ways, d)
	}
	want := []grid.Dir{grid.DirLeft, grid.DirRight, grid.DirUp, grid.DirDown}
	if len(ways) != len(want) {
		t.Fatalf("Ways(5) = %v, want %v", ways, want)
	}
	for i := range want {
		if ways[i] != want[i] {
			t.Errorf("Ways(5)[%d] = %v, want %v", i, ways[i], want[i])
		}
	}

	for d := range l.Ways(1) {
		t.Errorf("wall tile yielded way %v", d)
	}
}

func TestWayToGo(t *testing.T) {
	l := crossLevel()

	// Dead end at tile 6 facing right: nothing ahead or sideways.
	if h := l.WayToGo(6, grid.DirRight, Forward, ToLeft, ToRight); h != Backward {
		t.Errorf("WayToGo at dead end = %v, want backward", h)
	}
	// Cross centre facing up: forward wins.
	if h := l.WayToGo(5, grid.DirUp, Forward, ToLeft, ToRight); h != Forward {
		t.Errorf("WayToGo at cross = %v, want forward", h)
	}
	// Priority order is respected.
	if h := l.WayToGo(5, grid.DirUp, ToRight, ToLeft, Forward); h != ToRight {
		t.Errorf("WayToGo with to_right first = %v, want to_right", h)
	}

	if d, ok := l.FirstOpen(2, grid.DirUp, grid.DirLeft, grid.DirDown); !ok || d != grid.DirDown {
		t.Errorf("FirstOpen(2) = %v,%v; want down,true", d, ok)
	}
	if _, ok := l.FirstOpen(1, grid.DirRight, grid.DirDown); ok {
		t.Error("FirstOpen on a wall should fail")
	}
}

func TestMoveFromBlockedReachesFixedPoint(t *testing.T) {
	l := crossLevel()

	// Start in tile 6 (dead end), left of centre, heading right into the border.
	x, y := 38.0, 24.0
	for i := 0; i < 10; i++ {
		x, y = l.MoveFrom(x, y, 1.5, grid.DirRight)
	}
	if !approx(x, 40) || !approx(y, 24) {
		t.Fatalf("position after blocked moves = (%v,%v), want (40,24)", x, y)
	}

	nx, ny := l.MoveFrom(x, y, 1.5, grid.DirRight)
	if nx != x || ny != y {
		t.Errorf("blocked move at centre changed position to (%v,%v)", nx, ny)
	}

	// Past the centre, a blocked direction never pushes further out.
	nx, ny = l.MoveFrom(42, 24, 5, grid.DirRight)
	if nx != 42 || ny != 24 {
		t.Errorf("blocked move past centre = (%v,%v), want unchanged", nx, ny)
	}
}

func TestMoveFromCorneringRelaxation(t *testing.T) {
	l := crossLevel()

	// Cross centre is (24,24); start 5 units below the horizontal centre line.
	x, y := l.MoveFrom(24, 29, 2, grid.DirRight)
	if !approx(x, 24) || !approx(y, 27) {
		t.Errorf("short move = (%v,%v), want lateral-only (24,27)", x, y)
	}

	x, y = l.MoveFrom(24, 29, 10, grid.DirRight)
	if !approx(x, 29) || !approx(y, 24) {
		t.Errorf("long move = (%v,%v), want (29,24)", x, y)
	}

	// Vertical motion swaps the axes.
	x, y = l.MoveFrom(21, 24, 4, grid.DirUp)
	if !approx(x, 24) || !approx(y, 23) {
		t.Errorf("vertical move = (%v,%v), want (24,23)", x, y)
	}
}

func TestMoveFromOutsideGrid(t *testing.T) {
	l := crossLevel()
	x, y := l.MoveFrom(-5, 10, 3, grid.DirRight)
	if x != -5 || y != 10 {
		t.Errorf("outside point moved to (%v,%v)", x, y)
	}
	x, y = l.MoveFrom(24, 24, 3, grid.DirNone)
	if x != 24 || y != 24 {
		t.Errorf("DirNone moved point to (%v,%v)", x, y)
	}
}
