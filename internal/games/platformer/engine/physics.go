package engine

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// collides reports whether e's box overlaps any solid tile.
func (w *World) collides(e *Entity) bool {
	ts := w.grid.tileSize
	x0, x1 := core.FloorDiv(e.Left(), ts), core.FloorDiv(e.Right(), ts)
	y0, y1 := core.FloorDiv(e.Top(), ts), core.FloorDiv(e.Bottom(), ts)
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			if w.grid.solidAt(tx, ty) {
				return true
			}
		}
	}
	return false
}

// footColumns returns the tile columns under the left and right foot.
// For a box exactly one tile wide these are floor(x/ts) and ceil(x/ts).
func (w *World) footColumns(e *Entity) (int, int) {
	ts := float64(w.grid.tileSize)
	left := int(math.Floor(e.X / ts))
	right := int(math.Ceil((e.X + float64(e.W) + 1 - ts) / ts))
	return left, max(left, right)
}

// groundRow returns the tile row under e's feet. The +0.1 bias selects the
// next row only when the bottom edge sits on the last pixel of a row.
func (w *World) groundRow(e *Entity) int {
	return int(math.Floor(float64(e.Bottom())/float64(w.grid.tileSize) + 0.1))
}

// supports reports whether t can carry an entity whose bottom edge is bottom.
// One-way platforms only carry entities that are fully above them.
func (w *World) supports(t *Tile, bottom int) bool {
	if t.Solid {
		return true
	}
	return t.SolidTop && t.Y*w.grid.tileSize > bottom
}

// grounded reports whether e rests on a solid or solid-top tile.
func (w *World) grounded(e *Entity) bool {
	row := w.groundRow(e)
	l, r := w.footColumns(e)
	for _, tx := range []int{l, r} {
		for _, t := range w.grid.TilesAt(tx, row) {
			if w.supports(t, e.Bottom()) {
				return true
			}
		}
	}
	return false
}

// sweepX moves e horizontally one pixel at a time and reports whether a
// solid tile stopped it.
func (w *World) sweepX(e *Entity) bool {
	step := int(math.Round(e.XV))
	dir := core.Sign(step)
	for i := 0; i < core.Abs(step); i++ {
		e.X += float64(dir)
		if w.collides(e) {
			e.X -= float64(dir)
			e.XV = 0
			return true
		}
	}
	return false
}

// sweepY moves e vertically one pixel at a time. Falling stops as soon as
// e is grounded, so one-way platforms hold; rising only stops on solid
// tiles and punches the tiles above.
func (w *World) sweepY(e *Entity) bool {
	step := int(math.Floor(e.YV))
	dir := core.Sign(step)
	for i := 0; i < core.Abs(step); i++ {
		if dir > 0 && w.grounded(e) {
			w.stopY(e)
			return true
		}
		e.Y += float64(dir)
		if w.collides(e) {
			e.Y -= float64(dir)
			if dir < 0 {
				w.airPunch(e)
			}
			w.stopY(e)
			return true
		}
	}
	return false
}

// stopY ends vertical motion and drops any fractional y. H is whole, so the
// box keeps touching the surface that stopped it.
func (w *World) stopY(e *Entity) {
	e.Y = math.Floor(e.Y)
	e.YV = 0
}

// airPunch fires onAirPunch on the tile above the centre of e's footprint.
// A box straddling two columns punches only one of them.
func (w *World) airPunch(e *Entity) {
	ts := float64(w.grid.tileSize)
	row := int(math.Floor(float64(e.Top())/ts - 0.1))
	col := int(math.Floor((e.X + float64(e.W)/2) / ts))
	for _, t := range w.grid.TilesAt(col, row) {
		if t.Exists {
			w.fireAirPunch(t, e)
		}
	}
}

// touchTiles fires onTouch for every non-solid tile under e's box.
func (w *World) touchTiles(e *Entity) {
	ts := w.grid.tileSize
	x0, x1 := core.FloorDiv(e.Left(), ts), core.FloorDiv(e.Right(), ts)
	y0, y1 := core.FloorDiv(e.Top(), ts), core.FloorDiv(e.Bottom(), ts)
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			for _, t := range w.grid.TilesAt(tx, ty) {
				if e.Dead {
					return
				}
				if t.Exists && !t.Solid {
					w.fireTouch(t, e)
				}
			}
		}
	}
}

// standTiles fires onStand for the supporting tiles under e's feet.
func (w *World) standTiles(e *Entity) {
	row := w.groundRow(e)
	l, r := w.footColumns(e)
	cols := []int{l}
	if r != l {
		cols = append(cols, r)
	}
	for _, tx := range cols {
		for _, t := range w.grid.TilesAt(tx, row) {
			if t.Exists && w.supports(t, e.Bottom()) {
				w.fireStand(t, e)
			}
		}
	}
}

// collideEntities notifies every live entity touched by another one.
func (w *World) collideEntities() {
	ents := w.entities
	for _, e := range ents {
		if e.Dead {
			continue
		}
		for _, o := range ents {
			if o == e || o.Dead {
				continue
			}
			if e.Overlaps(o) {
				w.touchEntity(o, e)
			}
			if e.Dead {
				break
			}
		}
	}
}

// outOfBounds reports whether e has fallen below the level.
func (w *World) outOfBounds(e *Entity) bool {
	return !w.IsWorldMap() && e.Y > float64(w.grid.PixelHeight())
}
