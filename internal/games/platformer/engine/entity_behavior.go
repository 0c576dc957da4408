package engine

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// entityBehavior is the capability set of an entity kind.
type entityBehavior struct {
	// think sets velocity from input or AI before integration.
	think func(w *World, e *Entity)
	// blocked runs when the horizontal sweep hits a wall.
	blocked func(w *World, e *Entity)
	// touched runs when another entity overlaps e.
	touched func(w *World, e, by *Entity)
	// ghost entities ignore tiles entirely.
	ghost bool
	// static entities never move.
	static bool
}

var entityBehaviors [numEntityKinds]entityBehavior

func init() {
	turn := func(w *World, e *Entity) { e.Facing = -e.Facing }

	entityBehaviors[EntityPlayer] = entityBehavior{
		think:   thinkPlayer,
		touched: func(w *World, p, by *Entity) { w.meet(by, p) },
	}
	entityBehaviors[EntityWalker] = entityBehavior{
		think:   patrol(func(p Params) float64 { return p.WalkerSpeed }),
		blocked: turn,
		touched: meetIfPlayer,
	}
	entityBehaviors[EntityPowerup] = entityBehavior{
		think:   patrol(func(p Params) float64 { return p.PowerupSpeed }),
		blocked: turn,
		touched: meetIfPlayer,
	}
	entityBehaviors[EntityCollectible] = entityBehavior{
		think: func(w *World, e *Entity) {
			e.YV += w.params.Gravity
			e.life--
			if e.life <= 0 {
				w.Remove(e)
			}
		},
		ghost: true,
	}
	entityBehaviors[EntitySign] = entityBehavior{static: true, touched: meetIfPlayer}
	entityBehaviors[EntityFlag] = entityBehavior{static: true, touched: meetIfPlayer}
}

func meetIfPlayer(w *World, e, by *Entity) {
	if by.Kind == EntityPlayer {
		w.meet(e, by)
	}
}

// fall applies gravity, capped at the terminal velocity.
func (w *World) fall(e *Entity) {
	e.YV = min(e.YV+w.params.Gravity, w.params.MaxFall)
}

func patrol(speed func(Params) float64) func(w *World, e *Entity) {
	return func(w *World, e *Entity) {
		e.XV = float64(e.Facing) * speed(w.params)
		w.fall(e)
	}
}

func thinkPlayer(w *World, e *Entity) {
	st := &e.player
	if st.invulnerable > 0 {
		st.invulnerable--
	}
	if w.IsWorldMap() {
		thinkMapPlayer(w, e)
		return
	}

	p := w.params
	in := w.input
	switch {
	case in.Right && !in.Left:
		e.XV += p.Accel
		e.Facing = 1
	case in.Left && !in.Right:
		e.XV -= p.Accel
		e.Facing = -1
	default:
		if math.Abs(e.XV) <= p.Decel {
			e.XV = 0
		} else {
			e.XV -= core.SignF(e.XV) * p.Decel
		}
	}
	if math.Abs(e.XV) < p.StopEpsilon {
		e.XV = 0
	}
	e.XV = core.ClampF(e.XV, -p.MaxSpeed, p.MaxSpeed)

	if w.grounded(e) {
		st.airTicks = 0
		st.jumped = false
	} else {
		st.airTicks++
	}

	if in.Jump {
		switch {
		case st.jumpTick >= 0 && w.tick-st.jumpTick <= p.JumpGrace:
			e.YV = -p.JumpImpulse
		case !st.jumped && st.airTicks <= p.JumpGrace:
			e.YV = -p.JumpImpulse
			st.jumped = true
			st.jumpTick = w.tick
			w.play(SoundJump)
		}
	} else {
		st.jumpTick = -1
	}

	w.fall(e)
}

// thinkMapPlayer moves the player in four directions without gravity and
// enters the level under it on confirm.
func thinkMapPlayer(w *World, e *Entity) {
	in := w.input
	speed := w.params.MapSpeed
	e.XV, e.YV = 0, 0
	switch {
	case in.Left && !in.Right:
		e.XV = -speed
	case in.Right && !in.Left:
		e.XV = speed
	}
	switch {
	case in.Up && !in.Down:
		e.YV = -speed
	case in.Down && !in.Up:
		e.YV = speed
	}
	// Ease the idle axis onto the grid so turns into corridors line up.
	ts := float64(w.grid.tileSize)
	switch {
	case e.XV != 0 && e.YV == 0:
		e.YV = alignStep(e.Y, ts, speed)
	case e.YV != 0 && e.XV == 0:
		e.XV = alignStep(e.X, ts, speed)
	}
	if in.Confirm {
		if t := w.TileUnder(e); t.Kind == TileLevel {
			w.emit(Event{Kind: EventEnterLevel, Entity: e, Tile: t, Level: t.Opt("level", "")})
		}
	}
}

// alignStep returns a velocity of at most speed toward the nearest multiple of ts.
func alignStep(v, ts, speed float64) float64 {
	r := math.Mod(v, ts)
	if r < 0 {
		r += ts
	}
	switch {
	case r == 0:
		return 0
	case r < ts/2:
		return -min(speed, r)
	default:
		return min(speed, ts-r)
	}
}

// TileUnder returns the tile at the centre of e's box.
func (w *World) TileUnder(e *Entity) *Tile {
	ts := float64(w.grid.tileSize)
	cx := (e.X + float64(e.W)/2) / ts
	cy := (e.Y + float64(e.H)/2) / ts
	return w.grid.TileAtPoint(cx, cy, 0)
}

// meet resolves contact between a non-player entity and the player. It may
// be reached from either side of the pair within one tick.
func (w *World) meet(e, player *Entity) {
	if e.Dead || player.Dead {
		return
	}
	switch e.Kind {
	case EntityWalker:
		if player.YV > 0 && player.Bottom() <= e.Top()+e.H/2 {
			w.Remove(e)
			player.YV = -w.params.StompBounce
			w.play(SoundStomp)
			w.emit(Event{Kind: EventEnemyStomped, Entity: e})
			return
		}
		w.hurt(player)
	case EntityPowerup:
		w.Remove(e)
		player.player.Powered = true
		w.play(SoundPowerup)
		w.emit(Event{Kind: EventPowerupCollected, Entity: player})
	case EntitySign:
		if e.lastMeet != w.tick && e.lastMeet != w.tick-1 {
			w.emit(Event{Kind: EventSignRead, Entity: e, Text: e.Text})
		}
		e.lastMeet = w.tick
	case EntityFlag:
		if e.met {
			return
		}
		e.met = true
		w.play(SoundClear)
		w.emit(Event{Kind: EventLevelComplete, Entity: player})
	}
}

// hurt takes the powerup away from the player or kills it.
func (w *World) hurt(player *Entity) {
	st := &player.player
	if st.invulnerable > 0 {
		return
	}
	if st.Powered {
		st.Powered = false
		st.invulnerable = w.params.Invulnerable
		w.emit(Event{Kind: EventPlayerHurt, Entity: player})
		return
	}
	w.kill(player)
}
