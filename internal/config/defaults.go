package config

import (
	_ "embed"
)

//go:embed defaults/batflap.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/batflap.yaml.
func Default() GameConfig {
	return GameConfig{
		Playfield: PlayfieldConfig{
			Width:  400,
			Height: 600,
		},
		Physics: PhysicsConfig{
			Gravity:     0.5,
			JumpImpulse: -8,
			MaxVelocity: 10,
		},
		Actor: ActorConfig{
			X:           60,
			Radius:      16,
			HitboxInset: 6,
		},
		Obstacles: ObstacleConfig{
			Width:         52,
			GapSize:       160,
			Speed:         3,
			SpawnInterval: 100,
			MinHeight:     50,
		},
		Effects: EffectsConfig{
			BurstCount: 20,
			BurstSpeed: 10,
			Decay:      0.02,
		},
		Idle: IdleConfig{
			BobAmplitude: 20,
			BobPeriodMs:  300,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
