// Package config provides YAML-based game configuration loading for Bat Flap.
package config

import (
	"errors"
	"fmt"
	"math"
)

// GameConfig holds every tunable constant of the simulation.
type GameConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Actor     ActorConfig     `yaml:"actor"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	Effects   EffectsConfig   `yaml:"effects"`
	Idle      IdleConfig      `yaml:"idle"`
}

// PlayfieldConfig defines the simulated area. It is independent of the
// terminal size; the renderer scales it to fit.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines the actor's vertical motion.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`      // Added to velocity every tick
	JumpImpulse float64 `yaml:"jump_impulse"` // Velocity set by a flap (negative = up)
	MaxVelocity float64 `yaml:"max_velocity"` // Terminal falling speed
}

// ActorConfig defines the bat's fixed horizontal position and size.
type ActorConfig struct {
	X           float64 `yaml:"x"`
	Radius      float64 `yaml:"radius"`
	HitboxInset float64 `yaml:"hitbox_inset"` // Shrinks the collision square inside the sprite
}

// ObstacleConfig defines obstacle pairs.
type ObstacleConfig struct {
	Width         float64 `yaml:"width"`
	GapSize       float64 `yaml:"gap_size"`
	Speed         float64 `yaml:"speed"`
	SpawnInterval int     `yaml:"spawn_interval"` // Frames between spawns
	MinHeight     int     `yaml:"min_height"`     // Minimum height of either segment
}

// EffectsConfig defines the death burst.
type EffectsConfig struct {
	BurstCount int     `yaml:"burst_count"`
	BurstSpeed float64 `yaml:"burst_speed"` // Full range of each velocity component
	Decay      float64 `yaml:"decay"`       // Life lost per tick
}

// IdleConfig defines the title screen bobbing animation.
type IdleConfig struct {
	BobAmplitude float64 `yaml:"bob_amplitude"`
	BobPeriodMs  float64 `yaml:"bob_period_ms"` // Divisor applied to elapsed milliseconds
}

// MaxGapTop returns the highest allowed gap-top height. Fractional
// geometry rounds down so the lower segment keeps at least MinHeight.
func (c GameConfig) MaxGapTop() int {
	return int(math.Floor(c.Playfield.Height-c.Obstacles.GapSize)) - c.Obstacles.MinHeight
}

// Validate reports every field that would make the simulation meaningless.
func (c GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Playfield.Width > 0, "playfield.width must be positive, got %v", c.Playfield.Width)
	check(c.Playfield.Height > 0, "playfield.height must be positive, got %v", c.Playfield.Height)

	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.JumpImpulse < 0, "physics.jump_impulse must be negative, got %v", c.Physics.JumpImpulse)
	check(c.Physics.MaxVelocity > 0, "physics.max_velocity must be positive, got %v", c.Physics.MaxVelocity)

	check(c.Actor.Radius > 0, "actor.radius must be positive, got %v", c.Actor.Radius)
	check(c.Actor.HitboxInset >= 0 && c.Actor.HitboxInset < c.Actor.Radius,
		"actor.hitbox_inset must be in [0, radius), got %v", c.Actor.HitboxInset)
	check(c.Actor.X > 0 && c.Actor.X < c.Playfield.Width,
		"actor.x must lie inside the playfield, got %v", c.Actor.X)

	check(c.Obstacles.Width > 0, "obstacles.width must be positive, got %v", c.Obstacles.Width)
	check(c.Obstacles.GapSize > 0, "obstacles.gap_size must be positive, got %v", c.Obstacles.GapSize)
	check(c.Obstacles.Speed > 0, "obstacles.speed must be positive, got %v", c.Obstacles.Speed)
	check(c.Obstacles.SpawnInterval > 0, "obstacles.spawn_interval must be positive, got %d", c.Obstacles.SpawnInterval)
	check(c.Obstacles.MinHeight >= 0, "obstacles.min_height must not be negative, got %d", c.Obstacles.MinHeight)
	check(c.MaxGapTop() >= c.Obstacles.MinHeight,
		"obstacles do not fit: height %v leaves no room for gap %v with min_height %d",
		c.Playfield.Height, c.Obstacles.GapSize, c.Obstacles.MinHeight)

	check(c.Effects.BurstCount >= 0, "effects.burst_count must not be negative, got %d", c.Effects.BurstCount)
	check(c.Effects.BurstSpeed >= 0, "effects.burst_speed must not be negative, got %v", c.Effects.BurstSpeed)
	check(c.Effects.Decay > 0, "effects.decay must be positive, got %v", c.Effects.Decay)

	check(c.Idle.BobPeriodMs > 0, "idle.bob_period_ms must be positive, got %v", c.Idle.BobPeriodMs)

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
