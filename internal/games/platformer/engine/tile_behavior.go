package engine

// tileBehavior is the capability set of a tile kind. Nil entries are no-ops.
type tileBehavior struct {
	onCreate        func(w *World, t *Tile)
	onDestroy       func(w *World, t *Tile)
	onNearbyReplace func(w *World, t *Tile)
	onUpdate        func(w *World, t *Tile)
	onTouch         func(w *World, t *Tile, by *Entity)
	onStand         func(w *World, t *Tile, by *Entity)
	onAirPunch      func(w *World, t *Tile, by *Entity)
}

var tileBehaviors [numTileKinds]tileBehavior

// Neighbour bits used by auto-tiling masks.
const (
	NeighborN = 1 << iota
	NeighborE
	NeighborS
	NeighborW
	NeighborNE
	NeighborSE
	NeighborSW
	NeighborNW
)

var neighborOffsets = [...]struct {
	dx, dy int
	bit    int
}{
	{0, -1, NeighborN},
	{1, 0, NeighborE},
	{0, 1, NeighborS},
	{-1, 0, NeighborW},
	{1, -1, NeighborNE},
	{1, 1, NeighborSE},
	{-1, 1, NeighborSW},
	{-1, -1, NeighborNW},
}

func init() {
	autotile := func(w *World, t *Tile) {
		t.Tex = w.neighborMask(t, 8, func(n *Tile) bool { return n.Kind == t.Kind })
	}
	pipeCaps := func(w *World, t *Tile) {
		t.Tex = w.neighborMask(t, 4, func(n *Tile) bool { return n.Kind == t.Kind })
	}
	pathLinks := func(w *World, t *Tile) {
		t.Tex = w.neighborMask(t, 4, func(n *Tile) bool {
			return n.Kind == TilePath || n.Kind == TileLevel || n.Kind == TileHouse
		})
	}
	spin := func(rate float64) func(w *World, t *Tile) {
		return func(w *World, t *Tile) {
			t.anim += rate
			if t.anim >= 4 {
				t.anim = 0
			}
			t.Tex = int(t.anim)
		}
	}

	tileBehaviors[TileGround] = tileBehavior{onCreate: autotile, onNearbyReplace: autotile}
	tileBehaviors[TileMapGround] = tileBehavior{onCreate: autotile, onNearbyReplace: autotile}
	tileBehaviors[TilePipe] = tileBehavior{onCreate: pipeCaps, onNearbyReplace: pipeCaps}
	tileBehaviors[TileMapPipe] = tileBehavior{onCreate: pipeCaps, onNearbyReplace: pipeCaps}
	tileBehaviors[TilePath] = tileBehavior{onCreate: pathLinks, onNearbyReplace: pathLinks}
	tileBehaviors[TileLevel] = tileBehavior{onCreate: pathLinks, onNearbyReplace: pathLinks}
	tileBehaviors[TileWater] = tileBehavior{onUpdate: spin(0.05)}

	tileBehaviors[TileQuestionBlock] = tileBehavior{
		onUpdate:   spin(0.1),
		onAirPunch: punchQuestionBlock,
	}
	tileBehaviors[TileCoin] = tileBehavior{
		onUpdate: spin(0.1),
		onTouch:  collectCoinTile,
	}
	tileBehaviors[TileDonut] = tileBehavior{
		onStand:  standOnDonut,
		onUpdate: updateDonut,
	}
	tileBehaviors[TileDeathZone] = tileBehavior{
		onTouch: func(w *World, t *Tile, by *Entity) { w.kill(by) },
	}

	tileBehaviors[TilePlayerSpawner] = tileBehavior{onCreate: spawnPlayer}
	tileBehaviors[TileGoombaSpawner] = tileBehavior{onCreate: spawnEntity(func(w *World, t *Tile) *Entity {
		return NewWalker(w.params)
	})}
	tileBehaviors[TileSignSpawner] = tileBehavior{onCreate: spawnEntity(func(w *World, t *Tile) *Entity {
		return NewSign(w.params, t.Opt("text", ""))
	})}
	tileBehaviors[TileFlagSpawner] = tileBehavior{onCreate: spawnEntity(func(w *World, t *Tile) *Entity {
		return NewFlag(w.params)
	})}

	tileBehaviors[TileCameraLeft] = tileBehavior{onUpdate: func(w *World, t *Tile) {
		w.camX = max(w.camX, float64((t.X+1)*w.grid.tileSize))
	}}
	tileBehaviors[TileCameraRight] = tileBehavior{onUpdate: func(w *World, t *Tile) {
		w.camX = min(w.camX, float64(t.X*w.grid.tileSize-w.viewW))
	}}
	tileBehaviors[TileCameraTop] = tileBehavior{onUpdate: func(w *World, t *Tile) {
		w.camY = max(w.camY, float64((t.Y+1)*w.grid.tileSize))
	}}
	tileBehaviors[TileCameraBottom] = tileBehavior{onUpdate: func(w *World, t *Tile) {
		w.camY = min(w.camY, float64(t.Y*w.grid.tileSize-w.viewH))
	}}
}

// neighborMask samples the first n neighbour offsets on t's layer.
func (w *World) neighborMask(t *Tile, n int, same func(*Tile) bool) int {
	mask := 0
	for _, o := range neighborOffsets[:n] {
		if same(w.grid.TileAt(t.X+o.dx, t.Y+o.dy, t.Layer)) {
			mask |= o.bit
		}
	}
	return mask
}

func punchQuestionBlock(w *World, t *Tile, by *Entity) {
	if by.Kind != EntityPlayer {
		return
	}
	w.play(SoundBump)
	w.ReplaceTile(t.X, t.Y, NewTile(TileUsedBlock), t.Layer)

	ts := w.grid.tileSize
	ax, ay := w.grid.AbsolutePosition(t.X, t.Y)
	switch t.Opt("contains", "powerup") {
	case "coin":
		c := NewCollectible(w.params)
		c.X = float64(ax + (ts-c.W)/2)
		c.Y = float64(ay - c.H - 1)
		c.YV = -w.params.CoinImpulse
		w.Spawn(c)
		w.play(SoundCoin)
		w.emit(Event{Kind: EventCoinCollected, Entity: by, Tile: t})
	default:
		p := NewPowerup(w.params)
		p.X = float64(ax)
		p.Y = float64(ay - p.H - 1)
		p.YV = -w.params.PowerupImpulse
		w.Spawn(p)
	}
}

func collectCoinTile(w *World, t *Tile, by *Entity) {
	if by.Kind != EntityPlayer {
		return
	}
	w.ReplaceTile(t.X, t.Y, NewTile(TileAir), t.Layer)
	w.play(SoundCoin)
	w.emit(Event{Kind: EventCoinCollected, Entity: by, Tile: t})
}

func standOnDonut(w *World, t *Tile, by *Entity) {
	d := &t.donut
	if d.phase != donutStable {
		d.idle = 0
		return
	}
	if d.lastStand == w.tick {
		return
	}
	if d.lastStand != w.tick-1 {
		d.stands = 0
	}
	d.lastStand = w.tick
	d.stands++
	if d.stands >= w.params.DonutThreshold {
		d.phase = donutFalling
		d.vy = 0
		d.idle = 0
		t.Solid = false
	}
}

func updateDonut(w *World, t *Tile) {
	d := &t.donut
	if d.phase != donutFalling {
		return
	}
	d.vy = min(d.vy+w.params.DonutFallAccel, w.params.DonutTerminal)
	t.DY += d.vy
	d.idle++
	if d.idle >= w.params.DonutReset && !w.occupied(t) {
		*d = donutState{lastStand: -2}
		t.DY = 0
		t.Solid = true
	}
}

func spawnPlayer(w *World, t *Tile) {
	if w.player != nil {
		w.player.placeOnTile(w.grid, t.X, t.Y)
	}
	w.ReplaceTile(t.X, t.Y, NewTile(TileAir), t.Layer)
}

func spawnEntity(build func(w *World, t *Tile) *Entity) func(w *World, t *Tile) {
	return func(w *World, t *Tile) {
		e := build(w, t)
		e.placeOnTile(w.grid, t.X, t.Y)
		w.Spawn(e)
		w.ReplaceTile(t.X, t.Y, NewTile(TileAir), t.Layer)
	}
}
