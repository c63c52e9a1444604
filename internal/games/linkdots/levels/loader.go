// Package levels provides loading of hand-authored level packs.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots/core"
	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	GridSize int
	Points   []core.PointSpec
	Metadata map[string]string
	FilePath string
}

// Descriptor converts the level into a board descriptor for pack position index.
func (l Level) Descriptor(index int) core.LevelDescriptor {
	return core.LevelDescriptor{
		Level:    index,
		GridSize: l.GridSize,
		Points:   append([]core.PointSpec(nil), l.Points...),
	}
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a loader reading from a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// NewBuiltinLoader creates a loader for the pack compiled into the binary.
func NewBuiltinLoader() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// builtin is a literal embed directory; Sub cannot fail for it.
		panic(err)
	}
	return &Loader{Root: "builtin", fsys: sub}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.load(p)
		if err != nil {
			return nil
		}
		levels = append(levels, level)
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

// load reads a level relative to the loader's root.
func (l *Loader) load(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	level, err := parse(data, path.Ext(p))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	level.FilePath = filepath.Join(l.Root, filepath.FromSlash(p))
	return level, nil
}

// LoadFile loads a single level file from disk.
func LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	level, err := parse(data, filepath.Ext(p))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	level.FilePath = p
	return level, nil
}

// LoadByID loads a specific level by ID.
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

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// SaveFile writes a descriptor as a YAML level file.
func SaveFile(p string, desc core.LevelDescriptor, id, name string) error {
	data, err := formats.FormatYAML(desc, id, name)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(p); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", p, err)
	}
	return nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parse routes to the correct parser and converts the result.
func parse(data []byte, ext string) (Level, error) {
	var parsed formats.Level
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		parsed, err = formats.ParseYAML(data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return Level{}, err
	}
	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		GridSize: parsed.GridSize,
		Points:   parsed.Points,
		Metadata: parsed.Metadata,
	}, nil
}
