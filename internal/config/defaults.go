package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			TileSize:     16,
			Gravity:      0.25,
			MaxFallSpeed: 4.0,
		},
		Player: PlatformerPlayer{
			Width:        15,
			Height:       23,
			Accel:        0.25,
			Decel:        0.5,
			StopEpsilon:  0.1,
			MaxSpeed:     3.0,
			JumpImpulse:  4.0,
			JumpGrace:    8,
			MapSpeed:     1.0,
			StompBounce:  3.0,
			Invulnerable: 90,
		},
		Walker: PlatformerWalker{
			Width:  15,
			Height: 15,
			Speed:  1.0,
		},
		Powerup: PlatformerPowerup{
			Width:   15,
			Height:  15,
			Speed:   1.0,
			Impulse: 1.5,
		},
		Tiles: PlatformerTiles{
			CoinWidth:      7,
			CoinHeight:     15,
			CoinImpulse:    4.0,
			CoinLife:       20,
			DonutThreshold: 30,
			DonutFallAccel: 0.1,
			DonutTerminal:  3.0,
			DonutReset:     120,
		},
		Camera: PlatformerCamera{
			Lag:            8,
			FloatPeriod:    40,
			FloatAmplitude: 8,
		},
		Input: PlatformerInput{
			HoldTicks: 8,
		},
		Scoring: PlatformerScoring{
			Coin:    100,
			Stomp:   200,
			Powerup: 1000,
			Clear:   5000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 30000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				GraceReduction:  3,
			},
		},
	}
}
