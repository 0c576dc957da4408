// Package levels loads platformer level definitions from disk or from the
// levels embedded in the binary.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels/formats"
)

//go:embed data/*.yaml
var builtinFS embed.FS

// ErrLevelNotFound is returned by LoadByID for unknown IDs.
var ErrLevelNotFound = errors.New("levels: level not found")

// WorldMapID is the built-in world map the game starts on.
const WorldMapID = "world-1"

// Level is a parsed level definition plus where it came from.
type Level struct {
	engine.LevelDef
	// FilePath is the file on disk, or "builtin:<name>" for embedded levels.
	FilePath string
}

// Loader handles loading levels from a directory. An empty Root selects
// the built-in levels.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Builtin returns a loader over the embedded levels.
func Builtin() *Loader {
	return &Loader{}
}

func (l *Loader) fsys() fs.FS {
	if l.Root == "" {
		sub, err := fs.Sub(builtinFS, "data")
		if err != nil {
			panic(err)
		}
		return sub
	}
	return os.DirFS(l.Root)
}

func (l *Loader) displayPath(name string) string {
	if l.Root == "" {
		return "builtin:" + name
	}
	return filepath.Join(l.Root, filepath.FromSlash(name))
}

// walk calls fn for every level file under the root.
func (l *Loader) walk(fn func(name string) error) error {
	fsys := l.fsys()
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsLevelFile(name) {
			return nil
		}
		return fn(name)
	})
	if err != nil {
		return fmt.Errorf("walking directory %s: %w", l.displayPath("."), err)
	}
	return nil
}

// LoadAll recursively scans and loads all level files, skipping files that
// fail to parse. Levels are sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	err := l.walk(func(name string) error {
		lvl, err := l.load(name)
		if err != nil {
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

func (l *Loader) load(name string) (Level, error) {
	data, err := fs.ReadFile(l.fsys(), name)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", l.displayPath(name), err)
	}
	return parse(data, name, l.displayPath(name))
}

// LoadFile loads a single level file from disk.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parse(data, p, p)
}

func parse(data []byte, name, display string) (Level, error) {
	var (
		def engine.LevelDef
		err error
	)
	switch strings.ToLower(path.Ext(filepath.ToSlash(name))) {
	case ".yaml", ".yml":
		def, err = formats.ParseYAML(data)
	default:
		err = fmt.Errorf("unsupported extension: %s", path.Ext(name))
	}
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", display, err)
	}
	return Level{LevelDef: def, FilePath: display}, nil
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
	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
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

// Problem is a level file that failed validation.
type Problem struct {
	Path string
	Err  error
}

// Validate parses every level file and builds a world from it. Unlike
// LoadAll it reports every failure, including duplicate IDs.
func (l *Loader) Validate(p engine.Params) (checked int, problems []Problem, err error) {
	seen := make(map[string]string)
	err = l.walk(func(name string) error {
		checked++
		lvl, err := l.load(name)
		if err != nil {
			problems = append(problems, Problem{Path: l.displayPath(name), Err: err})
			return nil
		}
		if prev, dup := seen[lvl.ID]; dup {
			problems = append(problems, Problem{Path: lvl.FilePath, Err: fmt.Errorf("duplicate id %q, also in %s", lvl.ID, prev)})
			return nil
		}
		seen[lvl.ID] = lvl.FilePath
		if _, err := engine.NewWorld(lvl.LevelDef, p); err != nil {
			problems = append(problems, Problem{Path: lvl.FilePath, Err: err})
		}
		return nil
	})
	return checked, problems, err
}

// ExportBuiltin copies the embedded level files into dir so they can be
// edited and played with a levels directory.
func ExportBuiltin(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	entries, err := fs.ReadDir(builtinFS, "data")
	if err != nil {
		return nil, err
	}
	var written []string
	for _, e := range entries {
		data, err := builtinFS.ReadFile("data/" + e.Name())
		if err != nil {
			return written, err
		}
		dst := filepath.Join(dir, e.Name())
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", dst, err)
		}
		written = append(written, dst)
	}
	return written, nil
}

// IsLevelFile reports whether a path has a supported level extension.
func IsLevelFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
