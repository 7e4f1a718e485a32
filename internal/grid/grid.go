// Package grid provides the rectangular tile geometry shared by flag
// resolution, movement and pathing. Tiles are addressed either by 1-based
// column/row or by a 1-based row-major linear index.
package grid

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tilenav/internal/core"
)

// Tile is a 1-based row-major tile index: (row-1)*cols + col.
type Tile int

// Grid describes a level's tile layout. It is immutable once built.
type Grid struct {
	cols  int
	rows  int
	tileW float64
	tileH float64
}

// New creates a grid of cols x rows tiles, each tileW x tileH units.
// Non-positive sizes are clamped to 1.
func New(cols, rows int, tileW, tileH float64) *Grid {
	if tileW <= 0 {
		tileW = 1
	}
	if tileH <= 0 {
		tileH = 1
	}
	return &Grid{
		cols:  core.Max(cols, 0),
		rows:  core.Max(rows, 0),
		tileW: tileW,
		tileH: tileH,
	}
}

// GetCounts returns the column and row counts.
func (g *Grid) GetCounts() (cols, rows int) {
	return g.cols, g.rows
}

// GetSizes returns the tile width and height.
func (g *Grid) GetSizes() (w, h float64) {
	return g.tileW, g.tileH
}

// Len returns the number of tiles.
func (g *Grid) Len() int {
	return g.cols * g.rows
}

// Valid reports whether the tile index lies inside the grid.
func (g *Grid) Valid(t Tile) bool {
	return t >= 1 && int(t) <= g.cols*g.rows
}

// GetCell returns the column and row of a tile.
func (g *Grid) GetCell(t Tile) (col, row int, ok bool) {
	if !g.Valid(t) {
		return 0, 0, false
	}
	i := int(t) - 1
	return i%g.cols + 1, i/g.cols + 1, true
}

// GetTileIndex converts a column and row into a tile index.
func (g *Grid) GetTileIndex(col, row int) (Tile, bool) {
	if col < 1 || col > g.cols || row < 1 || row > g.rows {
		return 0, false
	}
	return Tile((row-1)*g.cols + col), true
}

// GetTileIndexXY returns the tile containing the point (x, y).
func (g *Grid) GetTileIndexXY(x, y float64) (Tile, bool) {
	if x < 0 || y < 0 {
		return 0, false
	}
	col := int(math.Floor(x/g.tileW)) + 1
	row := int(math.Floor(y/g.tileH)) + 1
	return g.GetTileIndex(col, row)
}

// GetTilePos returns the centre of a tile.
func (g *Grid) GetTilePos(t Tile) (x, y float64, ok bool) {
	col, row, ok := g.GetCell(t)
	if !ok {
		return 0, 0, false
	}
	return (float64(col) - 0.5) * g.tileW, (float64(row) - 0.5) * g.tileH, true
}

// Neighbor returns the tile one step away in direction d.
func (g *Grid) Neighbor(t Tile, d Dir) (Tile, bool) {
	col, row, ok := g.GetCell(t)
	if !ok {
		return 0, false
	}
	dc, dr := d.Delta()
	if dc == 0 && dr == 0 {
		return 0, false
	}
	return g.GetTileIndex(col+dc, row+dr)
}

// OnBorder reports whether a tile sits on the grid edge facing d.
func (g *Grid) OnBorder(t Tile, d Dir) bool {
	_, ok := g.Neighbor(t, d)
	return !ok
}

// TileDelta returns the signed index offset to the neighbour in direction d.
func (g *Grid) TileDelta(d Dir) int {
	dc, dr := d.Delta()
	return dr*g.cols + dc
}

// Bounds returns the level rectangle in world units.
func (g *Grid) Bounds() Rect {
	return Rect{
		Left:   0,
		Top:    0,
		Right:  float64(g.cols) * g.tileW,
		Bottom: float64(g.rows) * g.tileH,
	}
}

// TileRect returns the rectangle covered by a tile.
func (g *Grid) TileRect(t Tile) (Rect, bool) {
	col, row, ok := g.GetCell(t)
	if !ok {
		return Rect{}, false
	}
	left := float64(col-1) * g.tileW
	top := float64(row-1) * g.tileH
	return Rect{Left: left, Top: top, Right: left + g.tileW, Bottom: top + g.tileH}, true
}

// Tiles returns every tile index in row-major order.
func (g *Grid) Tiles() []Tile {
	tiles := make([]Tile, 0, g.Len())
	for i := 1; i <= g.Len(); i++ {
		tiles = append(tiles, Tile(i))
	}
	return tiles
}

// FormatTile renders a tile as "index(col,row)" for logs and CLI output.
func (g *Grid) FormatTile(t Tile) string {
	col, row, ok := g.GetCell(t)
	if !ok {
		return fmt.Sprintf("%d(invalid)", t)
	}
	return fmt.Sprintf("%d(%d,%d)", t, col, row)
}

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Contains reports whether (x, y) lies inside the rectangle, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}
