package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilenav/internal/levels"
	"github.com/vovakirdan/tilenav/internal/tileflags"
)

var flagRotateOut string

var rotateCmd = &cobra.Command{
	Use:   "rotate <file> <how>",
	Short: "Rotate a level file",
	Long: `Rotate a level file: layout, flag overrides, gates and spawns.
The result overwrites the file unless --out is given.

How: cw (90), ccw (-90), 180

Examples:
  tilenav rotate ./levels/maze.yaml cw
  tilenav rotate ./levels/maze.yaml 180 --out ./levels/maze-180.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runRotate,
}

func init() {
	rotateCmd.Flags().StringVar(&flagRotateOut, "out", "", "Write the rotated level here instead")
}

func runRotate(_ *cobra.Command, args []string) error {
	lvl, err := levels.LoadFile(args[0])
	if err != nil {
		return err
	}
	how, err := tileflags.ParseRotation(args[1])
	if err != nil {
		return err
	}

	rotated, err := levels.Rotate(lvl, how)
	if err != nil {
		return err
	}

	out := flagRotateOut
	if out == "" {
		out = args[0]
	}
	if err := levels.WriteFile(out, rotated); err != nil {
		return err
	}
	fmt.Printf("%s: %dx%d -> %dx%d, written to %s\n",
		lvl.ID, lvl.Cols(), lvl.Rows(), rotated.Cols(), rotated.Rows(), out)
	return nil
}
