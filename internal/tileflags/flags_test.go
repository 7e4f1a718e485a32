package tileflags

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tilenav/internal/grid"
)

func TestSetFlagsReturnsPrevious(t *testing.T) {
	f := New(grid.New(3, 3, 1, 1))

	if prev := f.SetFlags(5, All); prev != 0 {
		t.Errorf("first SetFlags returned %v, want 0", prev)
	}
	if prev := f.SetFlags(5, Horizontal); prev != All {
		t.Errorf("second SetFlags returned %v, want %v", prev, All)
	}
	if got := f.GetFlags(5); got != Horizontal {
		t.Errorf("GetFlags(5) = %v, want %v", got, Horizontal)
	}

	// Out of bounds is a no-op.
	if prev := f.SetFlags(0, All); prev != 0 {
		t.Errorf("SetFlags(0) returned %v, want 0", prev)
	}
	if prev := f.SetFlags(10, All); prev != 0 {
		t.Errorf("SetFlags(10) returned %v, want 0", prev)
	}
	if got := f.GetFlags(10); got != 0 {
		t.Errorf("GetFlags(10) = %v, want 0", got)
	}
	if got := f.GetResolvedFlags(-3); got != 0 {
		t.Errorf("GetResolvedFlags(-3) = %v, want 0", got)
	}
}

func TestResolveBorderCulling(t *testing.T) {
	g := grid.New(3, 3, 1, 1)
	f := New(g)
	for _, tile := range g.Tiles() {
		f.SetFlags(tile, All)
	}
	f.ResolveFlags()

	for _, tile := range g.Tiles() {
		r := f.GetResolvedFlags(tile)
		for _, d := range grid.Dirs {
			if g.OnBorder(tile, d) && r.Has(d) {
				t.Errorf("tile %d resolved %v pointing off-grid", tile, d)
			}
			if !g.OnBorder(tile, d) && !r.Has(d) {
				t.Errorf("tile %d lost interior direction %v", tile, d)
			}
		}
	}

	// tile 2 is a T (left,right,down); tile 5 is a cross
	if f.IsStraight(2) || f.IsStraight(5) {
		t.Error("neither tile 2 nor 5 should be straight")
	}
	if ok, n := f.IsJunction(5); !ok || n != 4 {
		t.Errorf("IsJunction(5) = %v,%d; want true,4", ok, n)
	}
	if ok, n := f.IsJunction(1); ok || n != 2 {
		t.Errorf("IsJunction(1) = %v,%d; want false,2", ok, n)
	}
}

func TestResolveAsymmetricCullsOnlyOneSide(t *testing.T) {
	g := grid.New(2, 1, 1, 1)
	f := New(g)
	f.SetFlags(1, Mask(grid.DirRight))
	f.SetFlags(2, 0)
	f.ResolveFlags()

	if f.IsFlagSet(1, grid.DirRight) {
		t.Error("tile 1 right should be culled: tile 2 does not reciprocate")
	}
	if f.GetFlags(1) != Mask(grid.DirRight) {
		t.Error("working flags must be untouched by resolution")
	}
	if culled := f.Culled(); len(culled) != 1 || culled[0] != 1 {
		t.Errorf("Culled() = %v, want [1]", culled)
	}

	// Tile 2 reciprocates left while tile 1 no longer points right: tile 2 is
	// the one culled now.
	f.SetFlags(1, 0)
	f.SetFlags(2, Mask(grid.DirLeft))
	f.ResolveFlags()
	if f.IsFlagSet(2, grid.DirLeft) || f.IsOnPath(1) {
		t.Error("one-way left from tile 2 should resolve to nothing")
	}
}

func TestResolveSymmetryRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := grid.New(9, 7, 1, 1)
	f := New(g)

	for round := 0; round < 20; round++ {
		for _, tile := range g.Tiles() {
			f.SetFlags(tile, Mask(rng.Intn(16)))
		}
		f.ResolveFlags()

		for _, tile := range g.Tiles() {
			r := f.GetResolvedFlags(tile)
			if r&^f.GetFlags(tile) != 0 {
				t.Fatalf("tile %d: resolved %v not a subset of working %v", tile, r, f.GetFlags(tile))
			}
			for _, d := range grid.Dirs {
				n, ok := g.Neighbor(tile, d)
				if !ok {
					if r.Has(d) {
						t.Fatalf("tile %d: border direction %v survived", tile, d)
					}
					continue
				}
				if r.Has(d) != f.IsFlagSet(n, d.Opposite()) {
					t.Fatalf("tile %d %v / tile %d %v not symmetric", tile, d, n, d.Opposite())
				}
			}
		}
	}
}

func TestWipeFlagsClampsAndSorts(t *testing.T) {
	g := grid.New(4, 4, 1, 1)
	f := New(g)
	for _, tile := range g.Tiles() {
		f.SetFlags(tile, All)
	}
	f.ResolveFlags()

	// Reversed, partially out-of-range corners.
	f.WipeFlags(9, 2, 3, -1)

	for _, tile := range g.Tiles() {
		col, row, _ := g.GetCell(tile)
		wiped := col >= 3 && row <= 2
		if wiped && (f.GetFlags(tile) != 0 || f.GetResolvedFlags(tile) != 0) {
			t.Errorf("tile %d (%d,%d) should be wiped", tile, col, row)
		}
		if !wiped && f.GetFlags(tile) != All {
			t.Errorf("tile %d (%d,%d) should keep working flags", tile, col, row)
		}
	}

	// Neighbours of the wiped block still resolve toward it until re-resolved.
	if !f.IsFlagSet(2, grid.DirRight) {
		t.Error("WipeFlags must not re-run resolution")
	}
	f.ResolveFlags()
	if f.IsFlagSet(2, grid.DirRight) {
		t.Error("after resolution tile 2 should no longer connect right")
	}
}

func TestRotate(t *testing.T) {
	left, right := Mask(grid.DirLeft), Mask(grid.DirRight)
	up, down := Mask(grid.DirUp), Mask(grid.DirDown)

	testCases := []struct {
		in   Mask
		how  Rotation
		want Mask
	}{
		{up, RotateCW, right},
		{right, RotateCW, down},
		{up, RotateCCW, left},
		{left | up, Rotate180, right | down},
		{Horizontal, RotateCW, Vertical},
		{All, RotateCCW, All},
		{down | right, RotateNone, down | right},
	}

	for _, tc := range testCases {
		if got := Rotate(tc.in, tc.how); got != tc.want {
			t.Errorf("Rotate(%v, %d) = %v, want %v", tc.in, tc.how, got, tc.want)
		}
	}

	for _, d := range grid.Dirs {
		if RotateDir(RotateDir(d, RotateCW), RotateCCW) != d {
			t.Errorf("CW then CCW did not restore %v", d)
		}
	}
}
