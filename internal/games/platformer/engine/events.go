package engine

// EventKind enumerates the notifications a World publishes.
type EventKind uint8

const (
	EventLevelStarted EventKind = iota
	EventCoinCollected
	EventPowerupCollected
	EventEnemyStomped
	EventPlayerHurt
	EventPlayerDied
	EventLevelComplete
	EventSignRead
	EventEnterLevel
	EventTileReplaced

	numEventKinds
)

var eventNames = [numEventKinds]string{
	EventLevelStarted:     "level-started",
	EventCoinCollected:    "coin-collected",
	EventPowerupCollected: "powerup-collected",
	EventEnemyStomped:     "enemy-stomped",
	EventPlayerHurt:       "player-hurt",
	EventPlayerDied:       "player-died",
	EventLevelComplete:    "level-complete",
	EventSignRead:         "sign-read",
	EventEnterLevel:       "enter-level",
	EventTileReplaced:     "tile-replaced",
}

func (k EventKind) String() string {
	if k >= numEventKinds {
		return "unknown"
	}
	return eventNames[k]
}

// Event is delivered synchronously to handlers registered with World.On.
type Event struct {
	Kind EventKind
	Tick int

	Entity *Entity // entity involved, if any
	Tile   *Tile   // tile involved, if any
	Old    *Tile   // replaced tile for EventTileReplaced

	Text  string // sign text
	Level string // target level for EventEnterLevel, current level otherwise
}

// Handler receives events. It runs inside the tick and may inspect, but
// should not structurally modify, the world.
type Handler func(Event)

type eventBus struct {
	handlers [numEventKinds][]Handler
}

func (b *eventBus) on(kind EventKind, h Handler) {
	if kind >= numEventKinds || h == nil {
		return
	}
	b.handlers[kind] = append(b.handlers[kind], h)
}

func (b *eventBus) emit(ev Event) {
	for _, h := range b.handlers[ev.Kind] {
		h(ev)
	}
}
