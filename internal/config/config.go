// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

import "github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"

// PlatformerConfig contains all configuration for the platformer game.
type PlatformerConfig struct {
	Physics    PlatformerPhysics `yaml:"physics"`
	Player     PlatformerPlayer  `yaml:"player"`
	Walker     PlatformerWalker  `yaml:"walker"`
	Powerup    PlatformerPowerup `yaml:"powerup"`
	Tiles      PlatformerTiles   `yaml:"tiles"`
	Camera     PlatformerCamera  `yaml:"camera"`
	Input      PlatformerInput   `yaml:"input"`
	Scoring    PlatformerScoring `yaml:"scoring"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// PlatformerPhysics defines world-wide physics parameters.
type PlatformerPhysics struct {
	TileSize     int     `yaml:"tile_size"` // pixels per tile edge
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// PlatformerPlayer defines the player's size and controls.
type PlatformerPlayer struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Accel        float64 `yaml:"accel"`
	Decel        float64 `yaml:"decel"`
	StopEpsilon  float64 `yaml:"stop_epsilon"`
	MaxSpeed     float64 `yaml:"max_speed"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	JumpGrace    int     `yaml:"jump_grace"` // ticks
	MapSpeed     float64 `yaml:"map_speed"`
	StompBounce  float64 `yaml:"stomp_bounce"`
	Invulnerable int     `yaml:"invulnerable_ticks"`
	StartPowered bool    `yaml:"start_powered"`
}

// PlatformerWalker defines walking enemy parameters.
type PlatformerWalker struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// PlatformerPowerup defines powerup parameters.
type PlatformerPowerup struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Speed   float64 `yaml:"speed"`
	Impulse float64 `yaml:"impulse"`
}

// PlatformerTiles defines parameters of tiles with behaviour.
type PlatformerTiles struct {
	CoinWidth      int     `yaml:"coin_width"`
	CoinHeight     int     `yaml:"coin_height"`
	CoinImpulse    float64 `yaml:"coin_impulse"`
	CoinLife       int     `yaml:"coin_life"`
	DonutThreshold int     `yaml:"donut_threshold"` // ticks stood on before falling
	DonutFallAccel float64 `yaml:"donut_fall_accel"`
	DonutTerminal  float64 `yaml:"donut_terminal"`
	DonutReset     int     `yaml:"donut_reset"` // ticks before a fallen donut returns
}

// PlatformerCamera defines camera behaviour.
type PlatformerCamera struct {
	Lag            float64 `yaml:"lag"`
	FloatPeriod    float64 `yaml:"float_period"`
	FloatAmplitude float64 `yaml:"float_amplitude"`
}

// PlatformerInput defines key hold emulation.
type PlatformerInput struct {
	HoldTicks int `yaml:"hold_ticks"` // ticks an action stays held after a key press
}

// PlatformerScoring defines points awarded per event.
type PlatformerScoring struct {
	Coin    int `yaml:"coin"`
	Stomp   int `yaml:"stomp"`
	Powerup int `yaml:"powerup"`
	Clear   int `yaml:"clear"`
}

// Params converts the configuration into engine parameters.
func (c PlatformerConfig) Params() engine.Params {
	return engine.Params{
		TileSize: c.Physics.TileSize,
		Gravity:  c.Physics.Gravity,
		MaxFall:  c.Physics.MaxFallSpeed,

		PlayerW:      c.Player.Width,
		PlayerH:      c.Player.Height,
		Accel:        c.Player.Accel,
		Decel:        c.Player.Decel,
		StopEpsilon:  c.Player.StopEpsilon,
		MaxSpeed:     c.Player.MaxSpeed,
		JumpImpulse:  c.Player.JumpImpulse,
		JumpGrace:    c.Player.JumpGrace,
		MapSpeed:     c.Player.MapSpeed,
		StompBounce:  c.Player.StompBounce,
		Invulnerable: c.Player.Invulnerable,
		StartPowered: c.Player.StartPowered,

		WalkerW:     c.Walker.Width,
		WalkerH:     c.Walker.Height,
		WalkerSpeed: c.Walker.Speed,

		PowerupW:       c.Powerup.Width,
		PowerupH:       c.Powerup.Height,
		PowerupSpeed:   c.Powerup.Speed,
		PowerupImpulse: c.Powerup.Impulse,

		CoinW:       c.Tiles.CoinWidth,
		CoinH:       c.Tiles.CoinHeight,
		CoinImpulse: c.Tiles.CoinImpulse,
		CoinLife:    c.Tiles.CoinLife,

		DonutThreshold: c.Tiles.DonutThreshold,
		DonutFallAccel: c.Tiles.DonutFallAccel,
		DonutTerminal:  c.Tiles.DonutTerminal,
		DonutReset:     c.Tiles.DonutReset,

		CameraLag:      c.Camera.Lag,
		FloatPeriod:    c.Camera.FloatPeriod,
		FloatAmplitude: c.Camera.FloatAmplitude,
	}
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to walker speed at max difficulty
	GraceReduction  int     `yaml:"grace_reduction"`  // Jump grace ticks removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a preset name to a DifficultyPreset. Unknown names
// return the empty preset, meaning "use the config file as is".
func ParsePreset(name string) DifficultyPreset {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
