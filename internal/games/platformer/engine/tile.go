package engine

// TileKind identifies a tile variant. The set is closed; behaviour for each
// kind lives in the tileBehaviors table.
type TileKind uint8

const (
	TileAir TileKind = iota
	TileGround
	TileQuestionBlock
	TileUsedBlock
	TileDonut
	TilePlatform
	TileCoin
	TilePipe
	TileSignSpawner
	TileGoombaSpawner
	TilePlayerSpawner
	TileFlagSpawner
	TileDeathZone
	TileCameraLeft
	TileCameraRight
	TileCameraTop
	TileCameraBottom
	TileMapGround
	TilePath
	TileLevel
	TileHouse
	TileMapPipe
	TileFence
	TileWater
	TileFlower

	numTileKinds
)

type tileInfo struct {
	name     string
	symbol   rune
	solid    bool
	solidTop bool
}

var tileInfos = [numTileKinds]tileInfo{
	TileAir:           {name: "Air", symbol: '-'},
	TileGround:        {name: "Ground", symbol: '=', solid: true},
	TileQuestionBlock: {name: "? Block", symbol: '?', solid: true},
	TileUsedBlock:     {name: "? Block (Used)", symbol: 'x', solid: true},
	TileDonut:         {name: "Donut Block", symbol: 'D', solid: true},
	TilePlatform:      {name: "Platform", symbol: '_', solidTop: true},
	TileCoin:          {name: "Coin", symbol: '0'},
	TilePipe:          {name: "Pipe", symbol: 'P', solid: true},
	TileSignSpawner:   {name: "Sign", symbol: 'S'},
	TileGoombaSpawner: {name: "Goomba", symbol: 'G'},
	TilePlayerSpawner: {name: "Player", symbol: '@'},
	TileFlagSpawner:   {name: "Flag", symbol: 'F'},
	TileDeathZone:     {name: "Death Zone", symbol: '#'},
	TileCameraLeft:    {name: "Camera Boundary (Left)", symbol: '>', solid: true},
	TileCameraRight:   {name: "Camera Boundary (Right)", symbol: '<', solid: true},
	TileCameraTop:     {name: "Camera Boundary (Top)", symbol: 'v', solid: true},
	TileCameraBottom:  {name: "Camera Boundary (Bottom)", symbol: '^', solid: true},
	TileMapGround:     {name: "Map Ground", symbol: 'g', solid: true},
	TilePath:          {name: "Path", symbol: ':'},
	TileLevel:         {name: "Level", symbol: 'L'},
	TileHouse:         {name: "House", symbol: 'H'},
	TileMapPipe:       {name: "Map Pipe", symbol: 'O', solid: true},
	TileFence:         {name: "Fence", symbol: '|', solid: true},
	TileWater:         {name: "Water", symbol: '~', solid: true},
	TileFlower:        {name: "Flower", symbol: '*', solid: true},
}

// symbolKinds maps level symbols to kinds. Air has aliases.
var symbolKinds = func() map[rune]TileKind {
	m := map[rune]TileKind{'.': TileAir, ' ': TileAir}
	for k, info := range tileInfos {
		m[info.symbol] = TileKind(k)
	}
	return m
}()

// KindForSymbol resolves a level symbol.
func KindForSymbol(r rune) (TileKind, bool) {
	k, ok := symbolKinds[r]
	return k, ok
}

// String returns the human-readable kind name.
func (k TileKind) String() string {
	if k >= numTileKinds {
		return "Unknown"
	}
	return tileInfos[k].name
}

// Symbol returns the canonical level symbol of the kind.
func (k TileKind) Symbol() rune {
	if k >= numTileKinds {
		return '?'
	}
	return tileInfos[k].symbol
}

// Tile is one grid cell's behaviour and visual state.
type Tile struct {
	Kind  TileKind
	X, Y  int
	Layer int

	// Exists is false for fallback tiles and for tiles that have been replaced.
	Exists bool

	Solid    bool
	SolidTop bool

	// DX, DY offset the drawn position without moving the tile logically.
	DX, DY float64

	// Tex selects a visual variant: an auto-tile mask or an animation frame.
	Tex int

	Opts map[string]string

	anim  float64
	donut donutState
}

type donutPhase uint8

const (
	donutStable donutPhase = iota
	donutFalling
)

type donutState struct {
	phase     donutPhase
	stands    int
	lastStand int
	idle      int
	vy        float64
}

// NewTile creates a detached tile of the given kind.
func NewTile(kind TileKind) *Tile {
	info := tileInfos[kind]
	return &Tile{
		Kind:     kind,
		Solid:    info.solid,
		SolidTop: info.solidTop,
		donut:    donutState{lastStand: -2},
	}
}

// NewTileWithOpts creates a detached tile carrying per-instance options.
func NewTileWithOpts(kind TileKind, opts map[string]string) *Tile {
	t := NewTile(kind)
	if len(opts) > 0 {
		t.Opts = make(map[string]string, len(opts))
		for k, v := range opts {
			t.Opts[k] = v
		}
	}
	return t
}

// Name returns the kind name.
func (t *Tile) Name() string {
	return t.Kind.String()
}

// Opt returns an option value or def when unset.
func (t *Tile) Opt(key, def string) string {
	if v, ok := t.Opts[key]; ok && v != "" {
		return v
	}
	return def
}

// Falling reports whether a donut block has dropped.
func (t *Tile) Falling() bool {
	return t.Kind == TileDonut && t.donut.phase == donutFalling
}
