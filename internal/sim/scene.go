// Package sim runs agents over a level. In the chase scene seekers follow
// shortest-path networks toward the player; in the wander scene agents pick
// nearby goals biased toward the border ahead of them. Scenes are
// deterministic for a given level and seed.
package sim

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilenav/internal/ai"
	"github.com/vovakirdan/tilenav/internal/config"
	"github.com/vovakirdan/tilenav/internal/core"
	"github.com/vovakirdan/tilenav/internal/grid"
	"github.com/vovakirdan/tilenav/internal/levels"
	"github.com/vovakirdan/tilenav/internal/levels/formats"
	"github.com/vovakirdan/tilenav/internal/registry"
	"github.com/vovakirdan/tilenav/internal/storage"
)

// Mode selects what a scene simulates.
type Mode string

const (
	ModeChase  Mode = "chase"
	ModeWander Mode = "wander"
)

const (
	defaultChaseLevel  = "01-cross"
	defaultWanderLevel = "02-ring"
)

// Stats counts what happened during a run.
type Stats struct {
	Ticks        int
	Goals        int
	StuckCancels int
	Repaths      int
	Caught       bool
}

// Scene is a chase or wander simulation over one level.
type Scene struct {
	mode   Mode
	opts   Options
	cfg    config.SimConfig
	logger *log.Logger
	diff   *config.DifficultyManager

	rt    core.RuntimeConfig
	level levels.Level
	world *levels.World
	mover *ai.Mover

	player    *npc
	seekers   []*npc
	wanderers []*npc
	want      grid.Dir

	spawned map[grid.Tile]int
	stats   Stats
	score   int
	over    bool
	paused  bool
}

func init() {
	registry.Register(string(ModeChase), func() registry.Scene {
		return New(ModeChase)
	})
	registry.Register(string(ModeWander), func() registry.Scene {
		return New(ModeWander)
	})
}

// New creates a scene with the options last passed to Configure.
func New(mode Mode) *Scene {
	return NewWithOptions(mode, currentOptions())
}

// NewWithOptions creates a scene with explicit options.
func NewWithOptions(mode Mode, o Options) *Scene {
	cfg := o.Config
	if cfg.TickRate <= 0 {
		cfg = config.DefaultSimConfig()
	}
	return &Scene{
		mode:   mode,
		opts:   o,
		cfg:    cfg,
		logger: o.logger(),
		diff:   config.NewDifficultyManager(cfg.Difficulty),
	}
}

// ID returns the scene identifier.
func (s *Scene) ID() string {
	return string(s.mode)
}

// Title returns the display name.
func (s *Scene) Title() string {
	if s.mode == ModeWander {
		return "Wander"
	}
	return "Chase"
}

// Reset loads the level named by cfg.LevelID (or the scene default) and
// places the agents at their spawns.
func (s *Scene) Reset(cfg core.RuntimeConfig) error {
	ref := cfg.LevelID
	if ref == "" {
		ref = defaultChaseLevel
		if s.mode == ModeWander {
			ref = defaultWanderLevel
		}
	}
	lvl, err := levels.Resolve(s.opts.LevelDir, ref)
	if err != nil {
		return fmt.Errorf("sim: loading level %q: %w", ref, err)
	}
	return s.ResetLevel(cfg, lvl)
}

// ResetLevel restarts the scene on an already loaded level.
func (s *Scene) ResetLevel(cfg core.RuntimeConfig, lvl levels.Level) error {
	w, err := lvl.Build()
	if err != nil {
		return fmt.Errorf("sim: building level %s: %w", lvl.ID, err)
	}
	if s.mode == ModeChase && lvl.Spawns.Player == nil {
		return fmt.Errorf("sim: level %s has no player spawn", lvl.ID)
	}
	if s.mode == ModeWander && len(lvl.Spawns.Wanderers) == 0 {
		return fmt.Errorf("sim: level %s has no wanderer spawns", lvl.ID)
	}

	if cfg.TickRate <= 0 {
		cfg.TickRate = s.cfg.TickRate
	}
	s.rt = cfg
	s.rt.LevelID = lvl.ID
	s.level = lvl
	s.world = w
	s.mover = ai.NewMover(w.Movement)
	s.mover.StuckLimit = s.cfg.Movement.StuckFrames

	s.player = nil
	s.seekers = nil
	s.wanderers = nil
	s.want = grid.DirNone
	s.spawned = make(map[grid.Tile]int)
	s.stats = Stats{}
	s.score = 0
	s.over = false
	s.paused = false

	if s.mode == ModeChase {
		s.player = s.spawn(kindPlayer, *lvl.Spawns.Player)
		for _, c := range lvl.Spawns.Seekers {
			s.seekers = append(s.seekers, s.spawn(kindSeeker, c))
		}
	}
	for _, c := range lvl.Spawns.Wanderers {
		s.wanderers = append(s.wanderers, s.spawn(kindWanderer, c))
	}

	s.logger.Debug("scene reset",
		"scene", s.ID(),
		"level", lvl.ID,
		"seed", cfg.Seed,
		"seekers", len(s.seekers),
		"wanderers", len(s.wanderers))
	return nil
}

// spawn places an agent on a spawn cell. Each agent gets its own generator
// keyed by the spawn tile, so replays are independent of agent order.
func (s *Scene) spawn(k kind, c formats.Cell) *npc {
	g := s.world.Grid
	tile, _ := s.world.TileOf(c)
	rng := ai.StartWithGenerator(s.rt.Seed, tile, s.spawned[tile])
	s.spawned[tile]++

	x, y, _ := g.GetTilePos(tile)
	if pts := ai.SamplePositions(g, tile, 1, rng); len(pts) == 1 {
		x, y = pts[0].X, pts[0].Y
	}
	facing, ok := s.world.Movement.FirstOpen(tile, grid.Dirs[:]...)
	if !ok {
		facing = grid.DirRight
	}

	return &npc{
		kind:      k,
		agent:     ai.NewAgent(x, y, facing),
		rng:       rng,
		plannedAt: -s.cfg.Seekers.RepathTicks,
	}
}

// Step advances the simulation by one tick.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && s.world != nil {
		if err := s.ResetLevel(s.rt, s.level); err != nil {
			s.logger.Error("restart failed", "err", err)
		}
		return core.StepResult{State: s.State()}
	}
	if in.Has(core.ActionPause) && !s.over {
		s.paused = !s.paused
	}
	if s.world == nil || s.over || s.paused {
		return core.StepResult{State: s.State()}
	}

	s.readInput(in)
	s.stats.Ticks++

	if opened := s.world.OpenGates(s.stats.Ticks); len(opened) > 0 {
		for _, gate := range opened {
			s.logger.Debug("gate opened",
				"tick", s.stats.Ticks,
				"from", fmt.Sprintf("%d,%d", gate.Col1, gate.Row1),
				"to", fmt.Sprintf("%d,%d", gate.Col2, gate.Row2))
		}
		for _, n := range s.agents() {
			n.replan = true
		}
	}

	dt := 1 / float64(s.rt.TickRate)
	if s.player != nil {
		s.stepPlayer(s.player, s.cfg.Movement.PlayerSpeed*dt)
	}
	for _, n := range s.seekers {
		s.stepSeeker(n, s.speed(s.cfg.Movement.SeekerSpeed)*dt)
	}
	for _, n := range s.wanderers {
		s.stepWanderer(n, s.speed(s.cfg.Movement.WandererSpeed)*dt, s.cfg.Wander.PauseTicks)
	}

	s.checkCaught()
	s.updateScore()
	return core.StepResult{State: s.State()}
}

func (s *Scene) readInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		s.want = grid.DirUp
	case in.Has(core.ActionDown):
		s.want = grid.DirDown
	case in.Has(core.ActionLeft):
		s.want = grid.DirLeft
	case in.Has(core.ActionRight):
		s.want = grid.DirRight
	}
}

// speed applies the difficulty ramp to a base speed.
func (s *Scene) speed(base float64) float64 {
	return s.diff.Speed(base, s.score, s.stats.Ticks)
}

func (s *Scene) checkCaught() {
	if s.player == nil {
		return
	}
	p := s.player.agent
	for _, n := range s.seekers {
		if math.Hypot(n.agent.X-p.X, n.agent.Y-p.Y) > s.cfg.Seekers.CatchRadius {
			continue
		}
		s.over = true
		s.stats.Caught = true
		s.logger.Info("player caught",
			"level", s.level.ID,
			"tick", s.stats.Ticks,
			"repaths", s.stats.Repaths)
		return
	}
}

// updateScore scores a chase by whole seconds survived and a wander by
// goals reached.
func (s *Scene) updateScore() {
	if s.mode == ModeWander {
		s.score = s.stats.Goals
		return
	}
	s.score = s.stats.Ticks / s.rt.TickRate
}

// State returns the current scene state.
func (s *Scene) State() core.SceneState {
	return core.SceneState{
		Ticks:  s.stats.Ticks,
		Score:  s.score,
		Over:   s.over,
		Paused: s.paused,
	}
}

// Stats returns the run counters.
func (s *Scene) Stats() Stats {
	return s.stats
}

// Level returns the level the scene runs on.
func (s *Scene) Level() levels.Level {
	return s.level
}

// World returns the built level, or nil before Reset.
func (s *Scene) World() *levels.World {
	return s.world
}

// Seed returns the seed of the current run.
func (s *Scene) Seed() int64 {
	return s.rt.Seed
}

// Record converts the current run into a storage row.
func (s *Scene) Record() storage.Run {
	return storage.Run{
		SceneID:      s.ID(),
		LevelID:      s.level.ID,
		Seed:         s.rt.Seed,
		Ticks:        s.stats.Ticks,
		Score:        s.score,
		Goals:        s.stats.Goals,
		StuckCancels: s.stats.StuckCancels,
		Repaths:      s.stats.Repaths,
		Caught:       s.stats.Caught,
	}
}

func (s *Scene) agents() []*npc {
	var all []*npc
	if s.player != nil {
		all = append(all, s.player)
	}
	all = append(all, s.seekers...)
	return append(all, s.wanderers...)
}
