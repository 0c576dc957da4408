// Package formats provides level file format parsers.
package formats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
	"gopkg.in/yaml.v3"
)

// ErrMissingID is returned for level files without an id.
var ErrMissingID = errors.New("formats: level has no id")

// YAMLLevel represents the YAML structure for a level file.
//
//	id: "1-1"
//	name: Grassland
//	background: clouds
//	special: [floating]
//	tiles: |
//	  ..?..
//	  ==@==
//	layers:
//	  - |
//	    .....
//	options:
//	  - {x: 2, y: 0, opts: {contains: coin}}
type YAMLLevel struct {
	ID         string       `yaml:"id"`
	Name       string       `yaml:"name"`
	Background string       `yaml:"background,omitempty"`
	Special    []string     `yaml:"special,omitempty"`
	Tiles      string       `yaml:"tiles"`
	Layers     []string     `yaml:"layers,omitempty"`
	Options    []YAMLOption `yaml:"options,omitempty"`
}

// YAMLOption attaches options to one tile.
type YAMLOption struct {
	X     int               `yaml:"x"`
	Y     int               `yaml:"y"`
	Layer int               `yaml:"layer,omitempty"`
	Opts  map[string]string `yaml:"opts"`
}

// ParseYAML parses a YAML level file into an engine level definition.
// Tile symbols are not checked here; building the world does that.
func ParseYAML(data []byte) (engine.LevelDef, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return engine.LevelDef{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if strings.TrimSpace(yl.ID) == "" {
		return engine.LevelDef{}, ErrMissingID
	}

	def := engine.LevelDef{
		ID:         yl.ID,
		Name:       yl.Name,
		Rows:       splitRows(yl.Tiles),
		Special:    yl.Special,
		Background: yl.Background,
	}
	if def.Name == "" {
		def.Name = def.ID
	}
	for _, layer := range yl.Layers {
		def.Layers = append(def.Layers, splitRows(layer))
	}
	for _, o := range yl.Options {
		def.Options = append(def.Options, engine.TileOptions{
			X: o.X, Y: o.Y, Layer: o.Layer, Values: o.Opts,
		})
	}
	return def, nil
}

// splitRows splits a block of tile rows, dropping trailing blank lines.
func splitRows(block string) []string {
	rows := strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n")
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	return rows
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
