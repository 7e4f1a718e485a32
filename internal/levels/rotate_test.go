package levels

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tilenav/internal/levels/formats"
	"github.com/vovakirdan/tilenav/internal/tileflags"
)

func TestRotateCW(t *testing.T) {
	lvl := Level{Level: formats.Level{
		ID:     "r",
		Tile:   formats.TileSize{W: 8, H: 16},
		Layout: []string{"ab.", "#.c"},
		Flags:  []formats.FlagOverride{{Col: 1, Row: 1, Mask: uint8(tileflags.Mask(2))}},
		Gates:  []formats.Gate{{Col1: 1, Row1: 1, Col2: 2, Row2: 1, OpenAt: 5}},
		Spawns: formats.Spawns{Player: &formats.Cell{Col: 3, Row: 2}},
	}}

	out, err := Rotate(lvl, tileflags.RotateCW)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"#a", ".b", "c."}
	if !slices.Equal(out.Layout, want) {
		t.Errorf("layout = %q, want %q", out.Layout, want)
	}
	if out.Tile.W != 16 || out.Tile.H != 8 {
		t.Errorf("tile = %+v, want 16x8", out.Tile)
	}
	// right turns into down
	if o := out.Flags[0]; o.Col != 2 || o.Row != 1 || o.Mask != 8 {
		t.Errorf("override = %+v, want (2,1) mask 8", o)
	}
	if g := out.Gates[0]; g.Col1 != 2 || g.Row1 != 1 || g.Col2 != 2 || g.Row2 != 2 || g.OpenAt != 5 {
		t.Errorf("gate = %+v", g)
	}
	if p := out.Spawns.Player; p == nil || p.Col != 1 || p.Row != 3 {
		t.Errorf("player = %+v, want (1,3)", p)
	}
	if lvl.Layout[0] != "ab." {
		t.Error("Rotate must not modify its input")
	}
}

func TestRotateFullTurnIsIdentity(t *testing.T) {
	lvl := builtin(t, "03-gates")

	out := lvl
	for i := 0; i < 4; i++ {
		var err error
		if out, err = Rotate(out, tileflags.RotateCW); err != nil {
			t.Fatal(err)
		}
	}
	if !slices.Equal(out.Layout, lvl.Layout) {
		t.Error("four quarter turns should restore the layout")
	}
	if out.Flags[0] != lvl.Flags[0] || out.Gates[0] != lvl.Gates[0] {
		t.Error("four quarter turns should restore overrides and gates")
	}

	half, _ := Rotate(lvl, tileflags.Rotate180)
	back, _ := Rotate(half, tileflags.Rotate180)
	if !slices.Equal(back.Layout, lvl.Layout) {
		t.Error("two half turns should restore the layout")
	}
	ccw, _ := Rotate(lvl, tileflags.RotateCCW)
	cw, _ := Rotate(ccw, tileflags.RotateCW)
	if !slices.Equal(cw.Layout, lvl.Layout) {
		t.Error("ccw then cw should restore the layout")
	}
}

func TestRotatedLevelPlaysTheSame(t *testing.T) {
	lvl := builtin(t, "01-cross")
	rot, err := Rotate(lvl, tileflags.RotateCCW)
	if err != nil {
		t.Fatal(err)
	}

	a, err := lvl.Build()
	if err != nil {
		t.Fatal(err)
	}
	b, err := rot.Build()
	if err != nil {
		t.Fatalf("rotated level does not build: %v", err)
	}

	count := func(w *World) (floor, junctions int) {
		for _, tile := range w.Grid.Tiles() {
			if w.Flags.IsOnPath(tile) {
				floor++
			}
			if ok, _ := w.Flags.IsJunction(tile); ok {
				junctions++
			}
		}
		return floor, junctions
	}
	fa, ja := count(a)
	fb, jb := count(b)
	if fa != fb || ja != jb {
		t.Errorf("rotation changed topology: %d/%d floors, %d/%d junctions", fa, fb, ja, jb)
	}
}
