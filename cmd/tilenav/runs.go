package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilenav/internal/platform/tui"
	"github.com/vovakirdan/tilenav/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsPlain bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [level]",
	Short: "Show stored runs",
	Long: `Browse stored runs per level. With a level and --plain the most recent
runs are printed instead.

Examples:
  tilenav runs
  tilenav runs 01-cross --plain
  tilenav runs 02-ring --plain --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to print with --plain")
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print runs instead of opening the browser")
}

func runRuns(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath, storage.WithLogger(logger))
	if err != nil {
		return err
	}
	defer store.Close()

	if flagRunsPlain && len(args) == 1 {
		return printRuns(store, args[0])
	}

	ids := args
	if len(ids) == 0 {
		if ids, err = levelIDs(); err != nil {
			return err
		}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	_, err = tui.RunRuns(store, ids, width, height)
	return err
}

func printRuns(store *storage.Store, levelID string) error {
	runs, err := store.RecentRuns(levelID, flagRunsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Runs - %s\n\n", levelID)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'tilenav walk %s' to record one.\n", levelID)
		return nil
	}

	fmt.Printf("  %-7s  %-6s  %-6s  %-5s  %-7s  %-5s  %s\n", "Scene", "Score", "Ticks", "Goals", "Repaths", "Stuck", "Date")
	fmt.Printf("  %-7s  %-6s  %-6s  %-5s  %-7s  %-5s  %s\n", "-----", "-----", "-----", "-----", "-------", "-----", "----")
	for _, r := range runs {
		fmt.Printf("  %-7s  %-6d  %-6d  %-5d  %-7d  %-5d  %s\n",
			r.SceneID, r.Score, r.Ticks, r.Goals, r.Repaths, r.StuckCancels,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetLevelStats(levelID)
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Avg ticks: %.0f  Caught: %d\n",
			stats.Runs, stats.BestScore, stats.AvgTicks, stats.Caught)
	}
	return nil
}
