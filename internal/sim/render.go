package sim

import (
	"fmt"

	"github.com/vovakirdan/tilenav/internal/core"
	"github.com/vovakirdan/tilenav/internal/grid"
	"github.com/vovakirdan/tilenav/internal/pathing"
)

const hudHeight = 2

// Render draws the HUD line, the level with one character per tile, the
// routes seekers are following and the agents on top.
func (s *Scene) Render(dst *core.Screen) {
	if s.world == nil {
		return
	}
	g := s.world.Grid
	cols, rows := g.GetCounts()

	if dst.Width() < cols || dst.Height() < rows+hudHeight+1 {
		dst.DrawTextColor(0, 0, "Terminal too small", core.ColorRed)
		return
	}

	s.renderHUD(dst)

	ox := (dst.Width() - cols) / 2
	oy := hudHeight

	for _, t := range g.Tiles() {
		col, row, _ := g.GetCell(t)
		x, y := ox+col-1, oy+row-1
		switch {
		case !s.level.Floor(col, row):
			dst.SetColor(x, y, '#', core.ColorBlue)
		case !s.world.Flags.IsOnPath(t):
			dst.SetColor(x, y, '+', core.ColorYellow)
		default:
			dst.SetColor(x, y, '.', core.ColorGray)
		}
	}

	for _, n := range s.seekers {
		if !n.following {
			continue
		}
		for _, st := range remainingRoute(n.cursor, n.agent.Facing) {
			col, row, _ := g.GetCell(st.Tile)
			dst.SetColor(ox+col-1, oy+row-1, '*', core.ColorMagenta)
		}
	}

	for _, n := range s.wanderers {
		s.drawAgent(dst, ox, oy, n, 'w', core.ColorBrightCyan)
	}
	for _, n := range s.seekers {
		s.drawAgent(dst, ox, oy, n, 'S', core.ColorBrightRed)
	}
	if s.player != nil {
		s.drawAgent(dst, ox, oy, s.player, '@', core.ColorBrightYellow)
	}

	msgY := oy + rows
	switch {
	case s.over:
		drawCentered(dst, msgY, "CAUGHT! Press R to restart", core.ColorRed)
	case s.paused:
		drawCentered(dst, msgY, "PAUSED", core.ColorYellow)
	}
}

func (s *Scene) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf("%s | %s | t %.1fs | score %d | goals %d | repaths %d | stuck %d",
		s.Title(), s.level.Name,
		float64(s.stats.Ticks)/float64(s.rt.TickRate),
		s.score, s.stats.Goals, s.stats.Repaths, s.stats.StuckCancels)
	dst.DrawTextColor(0, 0, hud, core.ColorWhite)
}

func (s *Scene) drawAgent(dst *core.Screen, ox, oy int, n *npc, r rune, c core.Color) {
	col, row, ok := s.world.Grid.GetCell(s.tileOf(n.agent))
	if !ok {
		return
	}
	dst.SetColor(ox+col-1, oy+row-1, r, c)
}

func drawCentered(dst *core.Screen, y int, text string, c core.Color) {
	x := max((dst.Width()-len(text))/2, 0)
	dst.DrawTextColor(x, y, text, c)
}

// remainingRoute lists the steps ahead of a cursor, choosing at every later
// branch the way ChooseBranchFacing would with the direction of travel.
func remainingRoute(c pathing.Cursor, facing grid.Dir) []pathing.Step {
	var route []pathing.Step
	for c.Valid() {
		seg := c.Segment()
		if !c.Done() {
			route = append(route, seg.Steps[c.Index():]...)
			facing = seg.Steps[seg.Len()-1].Dir
		}
		if seg.Next == nil {
			break
		}
		var ok bool
		if c, ok = pathing.ChooseBranchFacing(seg.Next, facing); !ok {
			break
		}
	}
	return route
}
