package ai

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tilenav/internal/core"
	"github.com/vovakirdan/tilenav/internal/grid"
)

// GetTileNeighbor picks a tile within dcols columns and drows rows of tile,
// clamped to the grid.
func GetTileNeighbor(g *grid.Grid, tile grid.Tile, dcols, drows int, rng *rand.Rand) (grid.Tile, bool) {
	col, row, ok := g.GetCell(tile)
	if !ok {
		return 0, false
	}
	col += spread(dcols, rng)
	row += spread(drows, rng)
	return clampTile(g, col, row)
}

// GetTileNeighborBiased is GetTileNeighbor with the window skewed per axis.
// A bias in [-1, 1] shifts the sampled offset toward that sign; offsets
// agreeing with the bias are rounded away from zero and the rest toward
// zero, so the opposite side stays reachable but less likely.
func GetTileNeighborBiased(g *grid.Grid, tile grid.Tile, dcols, drows int, biasCol, biasRow float64, rng *rand.Rand) (grid.Tile, bool) {
	col, row, ok := g.GetCell(tile)
	if !ok {
		return 0, false
	}
	col += biasedSpread(dcols, biasCol, rng)
	row += biasedSpread(drows, biasRow, rng)
	return clampTile(g, col, row)
}

func spread(n int, rng *rand.Rand) int {
	if n <= 0 {
		return 0
	}
	return rng.Intn(2*n+1) - n
}

func biasedSpread(n int, bias float64, rng *rand.Rand) int {
	if n <= 0 {
		return 0
	}
	bias = core.ClampF(bias, -1, 1)
	off := core.ClampF((rng.Float64()*2-1+bias)*float64(n), -float64(n), float64(n))

	switch {
	case bias == 0:
		off = math.Round(off)
	case math.Signbit(off) == math.Signbit(bias):
		off = math.Copysign(math.Ceil(math.Abs(off)), off)
	default:
		off = math.Trunc(off)
	}
	return int(off)
}

func clampTile(g *grid.Grid, col, row int) (grid.Tile, bool) {
	cols, rows := g.GetCounts()
	return g.GetTileIndex(core.Clamp(col, 1, cols), core.Clamp(row, 1, rows))
}

// Point is a position in world units.
type Point struct {
	X, Y float64
}

// SamplePositions returns n points scattered over the central half of a tile.
func SamplePositions(g *grid.Grid, tile grid.Tile, n int, rng *rand.Rand) []Point {
	cx, cy, ok := g.GetTilePos(tile)
	if !ok || n <= 0 {
		return nil
	}
	w, h := g.GetSizes()
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{
			X: cx + (rng.Float64()-0.5)*w/2,
			Y: cy + (rng.Float64()-0.5)*h/2,
		}
	}
	return points
}

// StartWithGenerator returns a generator seeded from the scene seed, the
// spawn tile and how many agents that tile has spawned so far, so a replay
// with the same seed gives every agent the same sequence.
func StartWithGenerator(seed int64, tile grid.Tile, spawnCount int) *rand.Rand {
	h := uint64(seed)
	h ^= uint64(tile) * 0x9e3779b97f4a7c15
	h ^= uint64(spawnCount+1) * 0xc2b2ae3d27d4eb4f
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return rand.New(rand.NewSource(int64(h)))
}
