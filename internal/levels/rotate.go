package levels

import (
	"fmt"

	"github.com/vovakirdan/tilenav/internal/levels/formats"
	"github.com/vovakirdan/tilenav/internal/tileflags"
)

// Rotate returns a copy of the level turned by how. Layout, flag overrides,
// gates and spawns turn together, so the rotated level plays the same.
func Rotate(l Level, how tileflags.Rotation) (Level, error) {
	if err := l.Validate(); err != nil {
		return Level{}, err
	}
	switch how {
	case tileflags.RotateNone, tileflags.RotateCW, tileflags.RotateCCW, tileflags.Rotate180:
	default:
		return Level{}, fmt.Errorf("unsupported rotation %d", how)
	}

	cols, rows := l.Cols(), l.Rows()
	turn := func(c formats.Cell) formats.Cell {
		switch how {
		case tileflags.RotateCW:
			return formats.Cell{Col: rows - c.Row + 1, Row: c.Col}
		case tileflags.RotateCCW:
			return formats.Cell{Col: c.Row, Row: cols - c.Col + 1}
		case tileflags.Rotate180:
			return formats.Cell{Col: cols - c.Col + 1, Row: rows - c.Row + 1}
		}
		return c
	}

	out := l
	out.Layout = nil
	out.Flags = nil
	out.Gates = nil
	out.Spawns = formats.Spawns{}

	newCols, newRows := cols, rows
	if how == tileflags.RotateCW || how == tileflags.RotateCCW {
		newCols, newRows = rows, cols
		out.Tile.W, out.Tile.H = l.Tile.H, l.Tile.W
	}
	cells := make([][]rune, newRows)
	for i := range cells {
		cells[i] = make([]rune, newCols)
	}
	for row, line := range l.Layout {
		for col, r := range []rune(line) {
			c := turn(formats.Cell{Col: col + 1, Row: row + 1})
			cells[c.Row-1][c.Col-1] = r
		}
	}
	for _, line := range cells {
		out.Layout = append(out.Layout, string(line))
	}

	for _, o := range l.Flags {
		c := turn(formats.Cell{Col: o.Col, Row: o.Row})
		m := tileflags.Rotate(tileflags.Mask(o.Mask), how)
		out.Flags = append(out.Flags, formats.FlagOverride{Col: c.Col, Row: c.Row, Mask: uint8(m)})
	}
	for _, g := range l.Gates {
		a := turn(formats.Cell{Col: g.Col1, Row: g.Row1})
		b := turn(formats.Cell{Col: g.Col2, Row: g.Row2})
		out.Gates = append(out.Gates, formats.Gate{
			Col1: min(a.Col, b.Col), Row1: min(a.Row, b.Row),
			Col2: max(a.Col, b.Col), Row2: max(a.Row, b.Row),
			OpenAt: g.OpenAt,
		})
	}

	if p := l.Spawns.Player; p != nil {
		c := turn(*p)
		out.Spawns.Player = &c
	}
	for _, c := range l.Spawns.Seekers {
		out.Spawns.Seekers = append(out.Spawns.Seekers, turn(c))
	}
	for _, c := range l.Spawns.Wanderers {
		out.Spawns.Wanderers = append(out.Spawns.Wanderers, turn(c))
	}
	return out, nil
}
