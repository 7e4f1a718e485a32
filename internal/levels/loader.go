// Package levels loads level files and builds the grid, flags and gates a
// scene runs on. Built-in levels are embedded; a directory of YAML files can
// be loaded the same way.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/tilenav/internal/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrNotFound is returned when no level has the requested ID.
var ErrNotFound = errors.New("level not found")

// Level is a parsed level and where it came from.
type Level struct {
	formats.Level
	FilePath string
}

// Loader reads levels from a file system.
type Loader struct {
	Root  string
	files fs.FS
}

// NewLoader creates a loader over a directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, files: os.DirFS(root)}
}

// NewBuiltinLoader creates a loader over the embedded levels.
func NewBuiltinLoader() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded directory: %v", err))
	}
	return &Loader{Root: "builtin", files: sub}
}

// LoadAll loads every level file under the root, sorted by ID. Files that do
// not parse are skipped; use LoadFile to see the error.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.files, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		data, err := fs.ReadFile(l.files, p)
		if err != nil {
			return nil
		}
		lvl, err := parse(data, p)
		if err != nil {
			return nil
		}
		lvl.FilePath = filepath.Join(l.Root, filepath.FromSlash(p))
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadByID loads the level with the given ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// LoadFile loads and validates a single level file from disk.
func LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	lvl, err := parse(data, p)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	lvl.FilePath = p
	return lvl, nil
}

// Resolve finds a level by ID, first in dir (when set) and then among the
// built-in levels. A path to an existing file is loaded directly.
func Resolve(dir, ref string) (Level, error) {
	if isSupportedExtension(strings.ToLower(filepath.Ext(ref))) {
		if _, err := os.Stat(ref); err == nil {
			return LoadFile(ref)
		}
	}
	if dir != "" {
		lvl, err := NewLoader(dir).LoadByID(ref)
		if err == nil {
			return lvl, nil
		}
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, fs.ErrNotExist) {
			return Level{}, err
		}
	}
	return NewBuiltinLoader().LoadByID(ref)
}

// WriteFile writes a level back to disk in YAML form.
func WriteFile(p string, lvl Level) error {
	data, err := formats.MarshalYAML(lvl.Level)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", p, err)
	}
	return nil
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}

func parse(data []byte, p string) (Level, error) {
	ext := strings.ToLower(filepath.Ext(p))
	if !isSupportedExtension(ext) {
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, err
	}
	lvl := Level{Level: parsed}
	if err := lvl.Validate(); err != nil {
		return Level{}, err
	}
	return lvl, nil
}
