package engine

import (
	"cmp"
	"math"
	"slices"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Input is the held state of the logical controls for one tick.
type Input struct {
	Left, Right bool
	Up, Down    bool
	Jump        bool
	Confirm     bool
}

// Drawer receives draw calls from World.Draw. Coordinates are level pixels.
type Drawer interface {
	DrawTile(t *Tile, px, py float64)
	DrawEntity(e *Entity)
}

// World is the simulation context: grid, entities, input, camera and event
// handlers. It is not safe for concurrent use.
type World struct {
	params Params
	level  LevelDef
	grid   *Grid

	entities []*Entity
	pending  []*Entity
	player   *Entity
	seq      int

	input   Input
	tick    int
	started bool

	camX, camY   float64
	viewW, viewH int

	sounder Sounder
	bus     eventBus
}

// Option configures a World.
type Option func(*World)

// WithSounder routes sound triggers to s.
func WithSounder(s Sounder) Option {
	return func(w *World) { w.sounder = s }
}

// WithView sets the camera viewport size in pixels.
func WithView(width, height int) Option {
	return func(w *World) { w.SetView(width, height) }
}

// Params returns the tuning the world was built with.
func (w *World) Params() Params { return w.params }

// Grid returns the tile grid.
func (w *World) Grid() *Grid { return w.grid }

// Level returns the definition the world was built from.
func (w *World) Level() LevelDef { return w.level }

// IsWorldMap reports whether the level is a free-roam map.
func (w *World) IsWorldMap() bool { return w.level.Has(SpecialWorld) }

// Player returns the player entity. It stays valid after death with Dead set.
func (w *World) Player() *Entity { return w.player }

// Tick returns the number of completed steps.
func (w *World) Tick() int { return w.tick }

// Entities returns the live entities in insertion order.
func (w *World) Entities() []*Entity {
	out := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		if !e.Dead {
			out = append(out, e)
		}
	}
	return out
}

// TileAt is a shortcut for Grid().TileAt.
func (w *World) TileAt(x, y, layer int) *Tile {
	return w.grid.TileAt(x, y, layer)
}

// On registers a handler for an event kind.
func (w *World) On(kind EventKind, h Handler) {
	w.bus.on(kind, h)
}

func (w *World) emit(ev Event) {
	ev.Tick = w.tick
	if ev.Level == "" {
		ev.Level = w.level.ID
	}
	w.bus.emit(ev)
}

func (w *World) play(s Sound) {
	if w.sounder != nil {
		w.sounder.Play(s)
	}
}

// Spawn queues e. It joins the simulation at the end of the current tick.
func (w *World) Spawn(e *Entity) {
	w.seq++
	e.seq = w.seq
	w.pending = append(w.pending, e)
}

// Remove marks e dead; it is dropped at the end of the tick.
func (w *World) Remove(e *Entity) {
	e.Dead = true
}

// kill removes e and reports a player death.
func (w *World) kill(e *Entity) {
	if e.Dead {
		return
	}
	e.Dead = true
	if e.Kind == EntityPlayer {
		w.play(SoundDeath)
		w.emit(Event{Kind: EventPlayerDied, Entity: e})
	}
}

// flush drops dead entities and admits pending spawns.
func (w *World) flush() {
	n := 0
	for _, e := range w.entities {
		if !e.Dead {
			w.entities[n] = e
			n++
		}
	}
	clear(w.entities[n:])
	w.entities = w.entities[:n]
	for _, e := range w.pending {
		if !e.Dead {
			w.entities = append(w.entities, e)
		}
	}
	clear(w.pending)
	w.pending = w.pending[:0]
}

// ReplaceTile swaps the tile at (x, y, layer) for t. The old tile is marked
// gone and destroyed, t is inserted and created, then every other stored
// tile in the 3x3 block on that layer gets onNearbyReplace.
func (w *World) ReplaceTile(x, y int, t *Tile, layer int) *Tile {
	t.X, t.Y, t.Layer = x, y, layer
	t.Exists = true

	old := w.grid.TileAt(x, y, layer)
	old.Exists = false
	w.fireDestroy(old)

	w.grid.put(t)
	w.fireCreate(t)

	for ny := y - 1; ny <= y+1; ny++ {
		for nx := x - 1; nx <= x+1; nx++ {
			n := w.grid.stored(nx, ny, layer)
			if n == nil || n == t {
				continue
			}
			w.fireNearbyReplace(n)
		}
	}

	w.emit(Event{Kind: EventTileReplaced, Tile: t, Old: old})
	return t
}

// Step advances the simulation by one tick.
func (w *World) Step(in Input) {
	w.input = in
	if !w.started {
		w.started = true
		w.emit(Event{Kind: EventLevelStarted})
	}

	for _, e := range slices.Clone(w.entities) {
		if !e.Dead {
			w.stepEntity(e)
		}
	}

	w.updateCamera()

	for _, t := range w.grid.Tiles() {
		if t.Exists {
			w.fireUpdate(t)
		}
	}

	w.collideEntities()
	w.flush()
	w.tick++
}

func (w *World) stepEntity(e *Entity) {
	beh := entityBehaviors[e.Kind]
	if beh.think != nil {
		beh.think(w, e)
	}
	if e.Dead || beh.static {
		return
	}

	if beh.ghost {
		e.X += e.XV
		e.Y += e.YV
	} else {
		if w.sweepX(e) && beh.blocked != nil {
			beh.blocked(w, e)
		}
		w.sweepY(e)
	}

	if w.outOfBounds(e) {
		w.kill(e)
		return
	}
	if beh.ghost {
		return
	}
	w.touchTiles(e)
	if !e.Dead {
		w.standTiles(e)
	}
}

func (w *World) touchEntity(e, by *Entity) {
	if h := entityBehaviors[e.Kind].touched; h != nil {
		h(w, e, by)
	}
}

// occupied reports whether any live entity overlaps t's cell.
func (w *World) occupied(t *Tile) bool {
	ts := w.grid.tileSize
	x0, y0 := w.grid.AbsolutePosition(t.X, t.Y)
	for _, e := range w.entities {
		if e.Dead {
			continue
		}
		if e.Left() < x0+ts && x0 <= e.Right() && e.Top() < y0+ts && y0 <= e.Bottom() {
			return true
		}
	}
	return false
}

func (w *World) fireCreate(t *Tile) {
	if f := tileBehaviors[t.Kind].onCreate; f != nil {
		f(w, t)
	}
}

func (w *World) fireDestroy(t *Tile) {
	if f := tileBehaviors[t.Kind].onDestroy; f != nil {
		f(w, t)
	}
}

func (w *World) fireNearbyReplace(t *Tile) {
	if f := tileBehaviors[t.Kind].onNearbyReplace; f != nil {
		f(w, t)
	}
}

func (w *World) fireUpdate(t *Tile) {
	if f := tileBehaviors[t.Kind].onUpdate; f != nil {
		f(w, t)
	}
}

func (w *World) fireTouch(t *Tile, e *Entity) {
	if f := tileBehaviors[t.Kind].onTouch; f != nil {
		f(w, t, e)
	}
}

func (w *World) fireStand(t *Tile, e *Entity) {
	if f := tileBehaviors[t.Kind].onStand; f != nil {
		f(w, t, e)
	}
}

func (w *World) fireAirPunch(t *Tile, e *Entity) {
	if f := tileBehaviors[t.Kind].onAirPunch; f != nil {
		f(w, t, e)
	}
}

// SetView sets the viewport size in pixels.
func (w *World) SetView(width, height int) {
	w.viewW, w.viewH = max(width, 0), max(height, 0)
}

// Camera returns the top-left corner of the viewport in level pixels.
func (w *World) Camera() (float64, float64) {
	return w.camX, w.camY
}

// View returns the viewport rectangle in level pixels.
func (w *World) View() core.Rect {
	return core.NewRect(int(math.Floor(w.camX)), int(math.Floor(w.camY)), w.viewW, w.viewH)
}

// updateCamera eases the viewport toward the player, clamped to the level.
func (w *World) updateCamera() {
	p := w.player
	if p == nil {
		return
	}
	ts := float64(w.grid.tileSize)
	vw, vh := float64(w.viewW), float64(w.viewH)

	x := clampRange(p.X+float64(p.W)/2, ts+vw/2, float64(w.grid.width-1)*ts-vw/2)
	y := clampRange(p.Y+float64(p.H)/2, ts+vh/2, float64(w.grid.height-1)*ts-vh/2)

	if w.level.Has(SpecialFloating) && w.params.FloatPeriod > 0 {
		y += math.Sin(float64(w.tick)/w.params.FloatPeriod) * w.params.FloatAmplitude
	}

	lag := max(w.params.CameraLag, 1)
	if w.tick == 0 {
		lag = 1
	}
	w.camX += (x - vw/2 - w.camX) / lag
	w.camY += (y - vh/2 - w.camY) / lag
}

// clampRange clamps v to [lo, hi], centring it when the range is empty.
func clampRange(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return core.ClampF(v, lo, hi)
}

// Draw issues draw calls in order: entities with Z < 0, the tiles inside
// view (row-major, then layer), entities with Z >= 0, and the player last.
// Entities with equal Z keep insertion order.
func (w *World) Draw(d Drawer, view core.Rect) {
	ents := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		if !e.Dead && e != w.player {
			ents = append(ents, e)
		}
	}
	slices.SortStableFunc(ents, func(a, b *Entity) int { return cmp.Compare(a.Z, b.Z) })

	split, _ := slices.BinarySearchFunc(ents, 0, func(e *Entity, z int) int { return cmp.Compare(e.Z, z) })
	for _, e := range ents[:split] {
		d.DrawEntity(e)
	}

	ts := w.grid.tileSize
	x0, x1 := core.FloorDiv(view.X, ts), core.FloorDiv(view.Right()-1, ts)
	y0, y1 := core.FloorDiv(view.Y, ts), core.FloorDiv(view.Bottom()-1, ts)
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			for _, t := range w.grid.TilesAt(tx, ty) {
				px, py := w.grid.AbsolutePosition(tx, ty)
				d.DrawTile(t, float64(px)+t.DX, float64(py)+t.DY)
			}
		}
	}

	for _, e := range ents[split:] {
		d.DrawEntity(e)
	}
	if w.player != nil && !w.player.Dead {
		d.DrawEntity(w.player)
	}
}
