// tilenav drives agents over tile-grid levels: shortest-path networks,
// path following and wandering, in the terminal or headless.
//
// Usage:
//
//	tilenav levels                     - List available levels
//	tilenav path <level> <from> <to>   - Print the shortest-path network
//	tilenav walk <level>               - Run a scene headless and store the run
//	tilenav play [scene] [level]       - Run a scene in the terminal
//	tilenav menu                       - Pick scenes and levels interactively
//	tilenav serve                      - Start SSH server for remote sessions
//	tilenav runs [level]               - Show stored runs
//	tilenav check [dir]                - Validate level files
//	tilenav rotate <file> <how>        - Rotate a level file
//
// Global flags:
//
//	--config <path>  - Simulation config YAML
//	--levels <dir>   - Directory searched before the built-in levels
//	--db <path>      - Runs database (default: ~/.tilenav/runs.db)
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilenav/internal/config"
	"github.com/vovakirdan/tilenav/internal/levels"
	"github.com/vovakirdan/tilenav/internal/sim"
)

var (
	// Global flags
	flagConfig     string
	flagLevelDir   string
	flagDBPath     string
	flagDifficulty string
	flagSeed       int64
	flagDebug      bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilenav",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilenav",
	Short: "Tile-grid pathing and movement in your terminal",
	Long: `tilenav builds connectivity for tile-grid levels, finds every shortest
route between two tiles and moves agents along them.

Available commands:
  levels   - Show all available levels
  path     - Print the shortest-path network between two tiles
  walk     - Run a scene headless
  play     - Run a scene in the terminal
  menu     - Interactive scene and level picker
  serve    - Start SSH server for remote sessions
  runs     - View stored runs
  check    - Validate level files
  rotate   - Rotate a level file

Examples:
  tilenav levels
  tilenav path 01-cross 2,2 8,6
  tilenav walk 02-ring --ticks 900
  tilenav play chase 03-gates
  tilenav serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagDebug {
			logger.SetLevel(log.DebugLevel)
		}
		cfg, err := loadSimConfig()
		if err != nil {
			return err
		}
		sim.Configure(sim.Options{
			Config:   cfg,
			LevelDir: flagLevelDir,
			Logger:   logger.WithPrefix("sim"),
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelDir, "levels", "", "Directory searched before the built-in levels")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilenav/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug traces")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(walkCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rotateCmd)
}

func loadSimConfig() (config.SimConfig, error) {
	cfg, err := config.LoadSim(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return cfg, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		config.ApplySimPreset(&cfg, preset)
	}
	return cfg, nil
}

// availableLevels returns the built-in levels, replaced or extended by the
// levels found in --levels.
func availableLevels() ([]levels.Level, error) {
	all, err := levels.NewBuiltinLoader().LoadAll()
	if err != nil {
		return nil, err
	}
	if flagLevelDir == "" {
		return all, nil
	}

	custom, err := levels.NewLoader(flagLevelDir).LoadAll()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(all))
	for i, lvl := range all {
		byID[lvl.ID] = i
	}
	for _, lvl := range custom {
		if i, ok := byID[lvl.ID]; ok {
			all[i] = lvl
			continue
		}
		all = append(all, lvl)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})
	return all, nil
}

func levelIDs() ([]string, error) {
	all, err := availableLevels()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, lvl := range all {
		ids[i] = lvl.ID
	}
	return ids, nil
}
