package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilenav/internal/core"
	"github.com/vovakirdan/tilenav/internal/platform/tui"
	"github.com/vovakirdan/tilenav/internal/registry"
	"github.com/vovakirdan/tilenav/internal/sim"
	"github.com/vovakirdan/tilenav/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play [scene] [level]",
	Short: "Run a scene in the terminal",
	Long: `Run a scene on a level. The scene defaults to chase and the level to the
scene's default. A level may also be given as a path to a level file.

Controls:
  Arrows/WASD  - Steer the player
  P/Space      - Pause
  R            - Restart
  Esc/B        - Back (when paused or over)
  ?            - Toggle help
  Q/Ctrl+C     - Quit

With --watch the scene restarts whenever a level file in --levels (or the
given file's directory) is written.

Examples:
  tilenav play
  tilenav play wander 02-ring
  tilenav play chase ./my-level.yaml --watch
  tilenav play chase 03-gates --difficulty hard`,
	Args: cobra.MaximumNArgs(2),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Restart the scene when level files change")
}

func runPlay(_ *cobra.Command, args []string) error {
	sceneID := string(sim.ModeChase)
	if len(args) > 0 {
		sceneID = args[0]
	}
	if !registry.Exists(sceneID) {
		return fmt.Errorf("unknown scene %q (run 'tilenav play' with chase or wander)", sceneID)
	}

	cfg := terminalConfig()
	if len(args) > 1 {
		cfg.LevelID = args[1]
	}

	scene, err := registry.Create(sceneID)
	if err != nil {
		return err
	}

	var reloads <-chan string
	if flagWatch {
		dirs := watchDirs(cfg.LevelID)
		if len(dirs) == 0 {
			return fmt.Errorf("--watch needs --levels or a level file path")
		}
		w, watchErr := tui.NewLevelWatcher(dirs...)
		if watchErr != nil {
			return fmt.Errorf("watching %v: %w", dirs, watchErr)
		}
		defer w.Close()
		reloads = w.Events
		logger.Debug("watching levels", "dirs", dirs)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Run(scene, store, cfg, reloads)
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if simCfg, err := loadSimConfig(); err == nil {
		cfg.TickRate = simCfg.TickRate
	}
	cfg.Seed = flagSeed
	return cfg
}

func watchDirs(levelRef string) []string {
	var dirs []string
	if flagLevelDir != "" {
		dirs = append(dirs, flagLevelDir)
	}
	if _, err := os.Stat(levelRef); levelRef != "" && err == nil {
		if dir := filepath.Dir(levelRef); dir != flagLevelDir {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// openStore opens the runs database. Scenes still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath, storage.WithLogger(logger))
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		return nil
	}
	return store
}
