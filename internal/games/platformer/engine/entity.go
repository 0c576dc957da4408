package engine

import "math"

// EntityKind identifies an entity variant.
type EntityKind uint8

const (
	EntityPlayer EntityKind = iota
	EntityWalker
	EntityPowerup
	EntityCollectible
	EntitySign
	EntityFlag

	numEntityKinds
)

var entityNames = [numEntityKinds]string{
	EntityPlayer:      "Player",
	EntityWalker:      "Walker",
	EntityPowerup:     "Powerup",
	EntityCollectible: "Collectible",
	EntitySign:        "Sign",
	EntityFlag:        "Flag",
}

func (k EntityKind) String() string {
	if k >= numEntityKinds {
		return "Unknown"
	}
	return entityNames[k]
}

// Entity is a free-moving axis-aligned box. Position is the top-left corner.
// The box covers the pixels from Left() to Right() and Top() to Bottom()
// inclusive, so a W of 15 spans 16 pixels.
type Entity struct {
	Kind   EntityKind
	X, Y   float64
	XV, YV float64
	W, H   int
	Z      int

	// Facing is -1 or 1.
	Facing int
	// Dead entities are skipped and dropped at the end of the tick.
	Dead bool
	// Text carried by signs.
	Text string

	player playerState
	life   int
	// lastMeet is the tick of the last player contact, used to fire
	// once-per-contact reactions a single time per tick.
	lastMeet int
	met      bool
	seq      int
}

type playerState struct {
	Powered      bool
	invulnerable int
	airTicks     int
	jumped       bool
	jumpTick     int
	jumpHeld     bool
}

func newEntity(kind EntityKind, w, h int) *Entity {
	return &Entity{
		Kind:     kind,
		W:        w,
		H:        h,
		Facing:   1,
		lastMeet: -1,
		player:   playerState{jumpTick: -1},
	}
}

// NewPlayer creates a player entity sized by p.
func NewPlayer(p Params) *Entity {
	e := newEntity(EntityPlayer, p.PlayerW, p.PlayerH)
	e.player.Powered = p.StartPowered
	return e
}

// NewWalker creates a walking enemy heading left.
func NewWalker(p Params) *Entity {
	e := newEntity(EntityWalker, p.WalkerW, p.WalkerH)
	e.Facing = -1
	return e
}

// NewPowerup creates a powerup heading right.
func NewPowerup(p Params) *Entity {
	return newEntity(EntityPowerup, p.PowerupW, p.PowerupH)
}

// NewCollectible creates a coin that pops out of a block and vanishes.
func NewCollectible(p Params) *Entity {
	e := newEntity(EntityCollectible, p.CoinW, p.CoinH)
	e.life = p.CoinLife
	return e
}

// NewSign creates a sign showing text. Signs are drawn behind tiles.
func NewSign(p Params, text string) *Entity {
	e := newEntity(EntitySign, p.TileSize-1, p.TileSize-1)
	e.Text = text
	e.Z = -1
	return e
}

// NewFlag creates a level goal three tiles tall.
func NewFlag(p Params) *Entity {
	return newEntity(EntityFlag, p.TileSize-1, 3*p.TileSize-1)
}

// Top returns the floored top edge.
func (e *Entity) Top() int { return int(math.Floor(e.Y)) }

// Bottom returns the floored bottom edge.
func (e *Entity) Bottom() int { return int(math.Floor(e.Y + float64(e.H))) }

// Left returns the floored left edge.
func (e *Entity) Left() int { return int(math.Floor(e.X)) }

// Right returns the floored right edge.
func (e *Entity) Right() int { return int(math.Floor(e.X + float64(e.W))) }

// Overlaps reports whether two boxes share at least one pixel.
func (e *Entity) Overlaps(o *Entity) bool {
	return e.Left() <= o.Right() && o.Left() <= e.Right() &&
		e.Top() <= o.Bottom() && o.Top() <= e.Bottom()
}

// Powered reports whether a player carries a powerup.
func (e *Entity) Powered() bool { return e.player.Powered }

// SetPowered gives or takes a player's powerup, e.g. to carry it between levels.
func (e *Entity) SetPowered(powered bool) { e.player.Powered = powered }

// Invulnerable reports whether a player is blinking after a hit.
func (e *Entity) Invulnerable() bool { return e.player.invulnerable > 0 }

// placeOnTile puts e so that its bottom edge rests on the last pixel row of
// tile (tx, ty), i.e. standing on whatever is below that tile.
func (e *Entity) placeOnTile(g *Grid, tx, ty int) {
	x, y := g.AbsolutePosition(tx, ty)
	e.X = float64(x)
	e.Y = float64(y - e.H + g.TileSize() - 1)
}
