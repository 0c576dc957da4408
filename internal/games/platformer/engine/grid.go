package engine

import (
	"math"
	"slices"
)

type cellKey struct {
	x, y, layer int
}

// Grid stores tiles by (x, y, layer). It is conceptually unbounded: the
// width and height only describe the authored level and are used for the
// boundary-death rule and camera limits.
type Grid struct {
	width, height int
	tileSize      int

	cells  map[cellKey]*Tile
	layers []int

	// order caches the row-major, layer-sorted tile list.
	order []*Tile
	dirty bool
}

// NewGrid creates an empty grid of the given size in tiles.
func NewGrid(width, height, tileSize int) *Grid {
	return &Grid{
		width:    width,
		height:   height,
		tileSize: max(tileSize, 1),
		cells:    make(map[cellKey]*Tile),
	}
}

// Width returns the level width in tiles.
func (g *Grid) Width() int { return g.width }

// Height returns the level height in tiles.
func (g *Grid) Height() int { return g.height }

// TileSize returns the tile edge length in pixels.
func (g *Grid) TileSize() int { return g.tileSize }

// PixelWidth returns the level width in pixels.
func (g *Grid) PixelWidth() int { return g.width * g.tileSize }

// PixelHeight returns the level height in pixels.
func (g *Grid) PixelHeight() int { return g.height * g.tileSize }

// TileAt returns the tile at a cell, or a fresh Air tile if the cell is empty
// or outside the level. It never fails.
func (g *Grid) TileAt(x, y, layer int) *Tile {
	if t, ok := g.cells[cellKey{x, y, layer}]; ok {
		return t
	}
	t := NewTile(TileAir)
	t.X, t.Y, t.Layer = x, y, layer
	return t
}

// TileAtPoint floors fractional tile coordinates before looking them up.
func (g *Grid) TileAtPoint(x, y float64, layer int) *Tile {
	return g.TileAt(int(math.Floor(x)), int(math.Floor(y)), layer)
}

// stored returns the authoritative tile at a cell, or nil.
func (g *Grid) stored(x, y, layer int) *Tile {
	return g.cells[cellKey{x, y, layer}]
}

// TilesAt returns every stored tile at a cell, lowest layer first.
func (g *Grid) TilesAt(x, y int) []*Tile {
	var out []*Tile
	for _, l := range g.layers {
		if t, ok := g.cells[cellKey{x, y, l}]; ok {
			out = append(out, t)
		}
	}
	return out
}

// AbsolutePosition converts tile coordinates to the pixel position of the
// tile's top-left corner.
func (g *Grid) AbsolutePosition(tx, ty int) (int, int) {
	return tx * g.tileSize, ty * g.tileSize
}

// Tiles returns a snapshot of all stored tiles in row-major, then layer order.
func (g *Grid) Tiles() []*Tile {
	if g.dirty || g.order == nil {
		g.order = g.order[:0]
		for _, t := range g.cells {
			g.order = append(g.order, t)
		}
		slices.SortFunc(g.order, func(a, b *Tile) int {
			if a.Y != b.Y {
				return a.Y - b.Y
			}
			if a.X != b.X {
				return a.X - b.X
			}
			return a.Layer - b.Layer
		})
		g.dirty = false
	}
	return slices.Clone(g.order)
}

// Len returns the number of stored tiles.
func (g *Grid) Len() int { return len(g.cells) }

// put stores t at its own coordinates and returns the tile it displaced.
func (g *Grid) put(t *Tile) *Tile {
	k := cellKey{t.X, t.Y, t.Layer}
	old := g.cells[k]
	g.cells[k] = t
	if _, found := slices.BinarySearch(g.layers, t.Layer); !found {
		i, _ := slices.BinarySearch(g.layers, t.Layer)
		g.layers = slices.Insert(g.layers, i, t.Layer)
	}
	g.dirty = true
	return old
}

// solidAt reports whether any layer at the cell blocks movement.
func (g *Grid) solidAt(x, y int) bool {
	for _, l := range g.layers {
		if t, ok := g.cells[cellKey{x, y, l}]; ok && t.Solid {
			return true
		}
	}
	return false
}
