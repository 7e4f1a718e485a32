package grid

import "testing"

func TestTileIndexRoundTrip(t *testing.T) {
	g := New(4, 3, 16, 16)

	testCases := []struct {
		col, row int
		tile     Tile
		ok       bool
	}{
		{1, 1, 1, true},
		{4, 1, 4, true},
		{1, 2, 5, true},
		{4, 3, 12, true},
		{0, 1, 0, false},
		{5, 1, 0, false},
		{1, 4, 0, false},
	}

	for _, tc := range testCases {
		tile, ok := g.GetTileIndex(tc.col, tc.row)
		if ok != tc.ok || tile != tc.tile {
			t.Errorf("GetTileIndex(%d,%d) = %d,%v; want %d,%v", tc.col, tc.row, tile, ok, tc.tile, tc.ok)
			continue
		}
		if !ok {
			continue
		}
		col, row, _ := g.GetCell(tile)
		if col != tc.col || row != tc.row {
			t.Errorf("GetCell(%d) = (%d,%d); want (%d,%d)", tile, col, row, tc.col, tc.row)
		}
	}
}

func TestTilePosAndXY(t *testing.T) {
	g := New(3, 2, 10, 20)

	x, y, ok := g.GetTilePos(5) // col 2, row 2
	if !ok || x != 15 || y != 30 {
		t.Fatalf("GetTilePos(5) = %v,%v,%v; want 15,30,true", x, y, ok)
	}

	tile, ok := g.GetTileIndexXY(x, y)
	if !ok || tile != 5 {
		t.Errorf("GetTileIndexXY(%v,%v) = %d,%v; want 5,true", x, y, tile, ok)
	}

	if _, ok := g.GetTileIndexXY(-1, 5); ok {
		t.Error("negative x should be outside the grid")
	}
	if _, ok := g.GetTileIndexXY(30, 5); ok {
		t.Error("x at the right edge should be outside the grid")
	}
}

func TestNeighbor(t *testing.T) {
	g := New(3, 3, 1, 1)

	center, _ := g.GetTileIndex(2, 2)
	want := map[Dir]Tile{DirLeft: 4, DirRight: 6, DirUp: 2, DirDown: 8}
	for d, w := range want {
		n, ok := g.Neighbor(center, d)
		if !ok || n != w {
			t.Errorf("Neighbor(5,%v) = %d,%v; want %d", d, n, ok, w)
		}
		if delta := g.TileDelta(d); int(center)+delta != int(w) {
			t.Errorf("TileDelta(%v) = %d; want %d", d, delta, int(w)-int(center))
		}
	}

	if !g.OnBorder(1, DirLeft) || !g.OnBorder(1, DirUp) {
		t.Error("tile 1 should be on the left and top border")
	}
	if g.OnBorder(1, DirRight) {
		t.Error("tile 1 is not on the right border")
	}
}

func TestDirAlgebra(t *testing.T) {
	for _, d := range Dirs {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: double opposite is %v", d, d.Opposite().Opposite())
		}
		dc, dr := d.Delta()
		oc, or := d.Opposite().Delta()
		if dc != -oc || dr != -or {
			t.Errorf("%v: delta (%d,%d) not mirrored by opposite (%d,%d)", d, dc, dr, oc, or)
		}
		parsed, ok := ParseDir(d.String())
		if !ok || parsed != d {
			t.Errorf("ParseDir(%q) = %v,%v", d.String(), parsed, ok)
		}
	}
}
