// Package formats parses and writes level files.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Wall is the layout rune for a blocked tile. Any other rune is floor.
const Wall = '#'

// Cell is a 1-based column/row position.
type Cell struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// TileSize is the world size of one tile.
type TileSize struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// FlagOverride replaces the working flags derived from the layout for one
// tile. The mask may describe a one-sided connection.
type FlagOverride struct {
	Col  int   `yaml:"col"`
	Row  int   `yaml:"row"`
	Mask uint8 `yaml:"mask"`
}

// Gate is a region that starts closed and opens at a simulation tick.
type Gate struct {
	Col1   int `yaml:"col1"`
	Row1   int `yaml:"row1"`
	Col2   int `yaml:"col2"`
	Row2   int `yaml:"row2"`
	OpenAt int `yaml:"open_at"`
}

// Spawns lists where agents start.
type Spawns struct {
	Player    *Cell  `yaml:"player,omitempty"`
	Seekers   []Cell `yaml:"seekers,omitempty"`
	Wanderers []Cell `yaml:"wanderers,omitempty"`
}

// Level is the file representation of a level.
type Level struct {
	ID     string         `yaml:"id"`
	Name   string         `yaml:"name"`
	Tile   TileSize       `yaml:"tile"`
	Layout []string       `yaml:"layout"`
	Flags  []FlagOverride `yaml:"flags,omitempty"`
	Gates  []Gate         `yaml:"gates,omitempty"`
	Spawns Spawns         `yaml:"spawns"`
}

// Cols returns the layout width.
func (l *Level) Cols() int {
	if len(l.Layout) == 0 {
		return 0
	}
	return len([]rune(l.Layout[0]))
}

// Rows returns the layout height.
func (l *Level) Rows() int {
	return len(l.Layout)
}

// Floor reports whether the layout has floor at (col, row).
func (l *Level) Floor(col, row int) bool {
	if row < 1 || row > len(l.Layout) {
		return false
	}
	line := []rune(l.Layout[row-1])
	if col < 1 || col > len(line) {
		return false
	}
	return line[col-1] != Wall
}

// ParseYAML parses a YAML level file. Missing tile sizes default to 16.
func ParseYAML(data []byte) (Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if lvl.Tile.W <= 0 {
		lvl.Tile.W = 16
	}
	if lvl.Tile.H <= 0 {
		lvl.Tile.H = 16
	}
	for i, row := range lvl.Layout {
		lvl.Layout[i] = strings.TrimRight(row, "\r")
	}

	return lvl, nil
}

// MarshalYAML renders a level back into its file form.
func MarshalYAML(lvl Level) ([]byte, error) {
	data, err := yaml.Marshal(&lvl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
