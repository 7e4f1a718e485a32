package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilenav/internal/platform/tui"
	"github.com/vovakirdan/tilenav/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick scenes and levels interactively",
	Long: `Start in interactive menu mode. Every scene is offered on every level.
After a scene ends you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Stored runs
  Q            - Quit

Examples:
  tilenav menu
  tilenav menu --levels ./levels`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	ids, err := levelIDs()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		res, err := tui.RunMenu(ids, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		if res.Quit {
			return nil
		}

		if res.WantsRuns {
			goBack, runsErr := tui.RunRuns(store, ids, cfg.ScreenW, cfg.ScreenH)
			if runsErr != nil {
				logger.Error("runs", "error", runsErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		if res.Item == nil {
			return nil
		}

		scene, err := registry.Create(res.Item.SceneID)
		if err != nil {
			logger.Error("creating scene", "error", err)
			continue
		}

		runCfg := cfg
		runCfg.LevelID = res.Item.LevelID
		runCfg.Seed = time.Now().UnixNano()
		if err := tui.Run(scene, store, runCfg, nil); err != nil {
			logger.Error("running scene", "scene", res.Item.SceneID, "level", res.Item.LevelID, "error", err)
		}
	}
}
