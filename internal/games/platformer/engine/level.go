package engine

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownTile is returned when a level uses a symbol with no tile kind.
	ErrUnknownTile = errors.New("engine: unknown tile symbol")
	// ErrEmptyLevel is returned for a level without rows.
	ErrEmptyLevel = errors.New("engine: level has no rows")
	// ErrNoPlayer is returned when a level has no player spawner.
	ErrNoPlayer = errors.New("engine: level has no player spawner")
)

// Special level tags.
const (
	// SpecialWorld marks a free-roam map: no gravity, no boundary death.
	SpecialWorld = "world"
	// SpecialFloating makes the camera bob.
	SpecialFloating = "floating"
)

// TileOptions attaches per-instance options to the tile at a cell.
type TileOptions struct {
	X, Y   int
	Layer  int
	Values map[string]string
}

// LevelDef describes a level in terms of tile symbols.
type LevelDef struct {
	ID   string
	Name string

	// Rows is layer 0, one string per tile row.
	Rows []string
	// Layers holds overlay layers 1..n in the same format as Rows.
	// Air symbols leave the overlay cell empty.
	Layers [][]string

	Options    []TileOptions
	Special    []string
	Background string
}

// Has reports whether the level carries a special tag.
func (d LevelDef) Has(tag string) bool {
	return slices.Contains(d.Special, tag)
}

// Size returns the level dimensions in tiles.
func (d LevelDef) Size() (width, height int) {
	for _, rows := range d.allLayers() {
		height = max(height, len(rows))
		for _, row := range rows {
			width = max(width, len([]rune(row)))
		}
	}
	return width, height
}

func (d LevelDef) allLayers() [][]string {
	return append([][]string{d.Rows}, d.Layers...)
}

// NewWorld builds the grid for def, creates the player and fires onCreate for
// every tile in row-major, then layer order. Unknown symbols fail the build.
func NewWorld(def LevelDef, p Params, opts ...Option) (*World, error) {
	if len(def.Rows) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyLevel, def.ID)
	}
	width, height := def.Size()

	w := &World{
		params: p,
		level:  def,
		grid:   NewGrid(width, height, p.TileSize),
	}
	for _, opt := range opts {
		opt(w)
	}

	options := make(map[cellKey]map[string]string, len(def.Options))
	for _, o := range def.Options {
		options[cellKey{o.X, o.Y, o.Layer}] = o.Values
	}

	players := 0
	for layer, rows := range def.allLayers() {
		for y, row := range rows {
			for x, r := range []rune(row) {
				kind, ok := KindForSymbol(r)
				if !ok {
					return nil, fmt.Errorf("%w %q at %d,%d layer %d in %q", ErrUnknownTile, r, x, y, layer, def.ID)
				}
				if kind == TileAir {
					continue
				}
				if kind == TilePlayerSpawner {
					players++
				}
				t := NewTileWithOpts(kind, options[cellKey{x, y, layer}])
				t.X, t.Y, t.Layer = x, y, layer
				t.Exists = true
				w.grid.put(t)
			}
		}
	}
	if players == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoPlayer, def.ID)
	}

	w.player = NewPlayer(p)
	if def.Has(SpecialWorld) {
		// map walkers fit one-tile corridors
		w.player.W, w.player.H = p.TileSize-1, p.TileSize-1
	}
	w.Spawn(w.player)

	for _, t := range w.grid.Tiles() {
		if t.Exists {
			w.fireCreate(t)
		}
	}
	w.flush()
	w.updateCamera()
	return w, nil
}
