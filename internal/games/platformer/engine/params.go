package engine

// Params holds every tunable number of the simulation. Distances are in
// pixels, speeds in pixels per tick and durations in ticks.
type Params struct {
	TileSize int

	Gravity float64
	MaxFall float64

	// Player
	PlayerW, PlayerH int
	Accel            float64 // per tick while a direction is held
	Decel            float64 // per tick once released
	StopEpsilon      float64 // |xv| below this snaps to zero
	MaxSpeed         float64
	JumpImpulse      float64
	JumpGrace        int // ticks after leaving ground a jump is still accepted / sustained
	MapSpeed         float64
	StompBounce      float64
	Invulnerable     int
	StartPowered     bool

	// Walker
	WalkerW, WalkerH int
	WalkerSpeed      float64

	// Powerup
	PowerupW, PowerupH int
	PowerupSpeed       float64
	PowerupImpulse     float64

	// Collectible popped from a block
	CoinW, CoinH int
	CoinImpulse  float64
	CoinLife     int

	// Donut block
	DonutThreshold int
	DonutFallAccel float64
	DonutTerminal  float64
	DonutReset     int

	// Camera
	CameraLag      float64
	FloatPeriod    float64
	FloatAmplitude float64
}

// DefaultParams returns the stock tuning for a 16px tile.
func DefaultParams() Params {
	return Params{
		TileSize: 16,

		Gravity: 0.25,
		MaxFall: 4,

		PlayerW:      15,
		PlayerH:      23,
		Accel:        0.25,
		Decel:        0.5,
		StopEpsilon:  0.1,
		MaxSpeed:     3,
		JumpImpulse:  4,
		JumpGrace:    8,
		MapSpeed:     1,
		StompBounce:  3,
		Invulnerable: 90,

		WalkerW:     15,
		WalkerH:     15,
		WalkerSpeed: 1,

		PowerupW:       15,
		PowerupH:       15,
		PowerupSpeed:   1,
		PowerupImpulse: 1.5,

		CoinW:       7,
		CoinH:       15,
		CoinImpulse: 4,
		CoinLife:    20,

		DonutThreshold: 30,
		DonutFallAccel: 0.1,
		DonutTerminal:  3,
		DonutReset:     120,

		CameraLag:      8,
		FloatPeriod:    40,
		FloatAmplitude: 8,
	}
}
