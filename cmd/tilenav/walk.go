package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilenav/internal/core"
	"github.com/vovakirdan/tilenav/internal/sim"
	"github.com/vovakirdan/tilenav/internal/storage"
)

var (
	flagWalkTicks int
	flagWalkScene string
	flagWalkSave  bool
)

var walkCmd = &cobra.Command{
	Use:   "walk <level>",
	Short: "Run a scene headless",
	Long: `Run a scene without a terminal UI for a number of ticks. In the chase
scene the player wanders on its own. The run is stored unless --save=false.

Examples:
  tilenav walk 02-ring
  tilenav walk 01-cross --scene chase --ticks 3000 --seed 7
  tilenav walk 03-gates --debug`,
	Args: cobra.ExactArgs(1),
	RunE: runWalk,
}

func init() {
	walkCmd.Flags().IntVar(&flagWalkTicks, "ticks", 900, "Number of ticks to simulate")
	walkCmd.Flags().StringVar(&flagWalkScene, "scene", string(sim.ModeWander), "Scene to run: chase or wander")
	walkCmd.Flags().BoolVar(&flagWalkSave, "save", true, "Store the run in the database")
}

func runWalk(_ *cobra.Command, args []string) error {
	mode := sim.Mode(flagWalkScene)
	if mode != sim.ModeChase && mode != sim.ModeWander {
		return fmt.Errorf("unknown scene %q", flagWalkScene)
	}

	cfg, err := loadSimConfig()
	if err != nil {
		return err
	}
	scene := sim.NewWithOptions(mode, sim.Options{
		Config:    cfg,
		LevelDir:  flagLevelDir,
		Autopilot: true,
		Logger:    logger.WithPrefix("sim"),
	})

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rt := core.DefaultConfig()
	rt.TickRate = cfg.TickRate
	rt.Seed = seed
	rt.LevelID = args[0]
	if err := scene.Reset(rt); err != nil {
		return err
	}

	logger.Info("walking", "scene", mode, "level", scene.Level().ID, "seed", seed, "ticks", flagWalkTicks)

	start := time.Now()
	frame := core.NewInputFrame()
	for range flagWalkTicks {
		if scene.Step(frame).State.Over {
			break
		}
	}

	st := scene.Stats()
	state := scene.State()
	logger.Info("done",
		"ticks", st.Ticks,
		"score", state.Score,
		"goals", st.Goals,
		"repaths", st.Repaths,
		"stuck", st.StuckCancels,
		"caught", st.Caught,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if !flagWalkSave {
		return nil
	}
	store, err := storage.Open(flagDBPath, storage.WithLogger(logger))
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveRun(scene.Record())
	if err != nil {
		return err
	}
	logger.Debug("run stored", "id", id)
	return nil
}
