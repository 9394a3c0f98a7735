package batflap

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/batflap/internal/config"
	"github.com/vovakirdan/batflap/internal/core"
)

// burstColors alternate by particle index.
var burstColors = [2]core.Color{core.ColorViolet, core.ColorRed}

// Effects runs the cosmetic particle sub-simulation. Nothing here feeds
// back into gameplay.
type Effects struct {
	cfg       config.GameConfig
	rng       *rand.Rand
	particles []Particle
}

// NewEffects creates an empty particle system drawing velocities from rng.
func NewEffects(cfg config.GameConfig, rng *rand.Rand) *Effects {
	return &Effects{
		cfg:       cfg,
		rng:       rng,
		particles: make([]Particle, 0, cfg.Effects.BurstCount),
	}
}

// Burst spawns the configured number of particles at (x, y), each with a
// velocity uniform in [-speed/2, speed/2) on both axes.
func (e *Effects) Burst(x, y float64) {
	speed := e.cfg.Effects.BurstSpeed
	for i := 0; i < e.cfg.Effects.BurstCount; i++ {
		e.particles = append(e.particles, Particle{
			X:     x,
			Y:     y,
			VX:    (e.rng.Float64() - 0.5) * speed,
			VY:    (e.rng.Float64() - 0.5) * speed,
			Life:  1.0,
			Color: burstColors[i%2],
		})
	}
}

// Tick moves every particle, pulls it down, decays it, and drops the dead ones.
func (e *Effects) Tick() {
	for i := len(e.particles) - 1; i >= 0; i-- {
		p := &e.particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.VY += e.cfg.Physics.Gravity
		p.Life -= e.cfg.Effects.Decay
		if p.Life <= 0 {
			e.particles = slices.Delete(e.particles, i, i+1)
		}
	}
}

// Reset removes all particles.
func (e *Effects) Reset() {
	e.particles = e.particles[:0]
}

// Particles returns the live particles. Callers must not modify them.
func (e *Effects) Particles() []Particle {
	return e.particles
}
