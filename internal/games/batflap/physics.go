package batflap

import (
	"math"
	"time"

	"github.com/vovakirdan/batflap/internal/config"
	"github.com/vovakirdan/batflap/internal/core"
)

const (
	maxTilt      = math.Pi / 4
	tiltPerSpeed = 0.1
)

// Physics integrates the bat's vertical motion.
type Physics struct {
	cfg config.GameConfig
}

// NewPhysics creates the integrator for the given configuration.
func NewPhysics(cfg config.GameConfig) Physics {
	return Physics{cfg: cfg}
}

// Integrate advances the actor by one tick. An inactive actor only bobs
// around the vertical center as a function of elapsed time; its velocity is
// left untouched.
func (p Physics) Integrate(a *Actor, active bool, elapsed time.Duration) {
	a.Frame++

	if !active {
		ms := float64(elapsed) / float64(time.Millisecond)
		a.Y = p.cfg.Playfield.Height/2 + math.Sin(ms/p.cfg.Idle.BobPeriodMs)*p.cfg.Idle.BobAmplitude
		return
	}

	a.Velocity += p.cfg.Physics.Gravity
	if a.Velocity > p.cfg.Physics.MaxVelocity {
		a.Velocity = p.cfg.Physics.MaxVelocity
	}
	a.Y += a.Velocity
	a.Rotation = core.ClampF(a.Velocity*tiltPerSpeed, -maxTilt, maxTilt)
}

// ApplyImpulse makes the bat flap. The impulse replaces the current velocity.
func (p Physics) ApplyImpulse(a *Actor) {
	a.Velocity = p.cfg.Physics.JumpImpulse
}

// NewActor returns an actor resting at the vertical center.
func (p Physics) NewActor() Actor {
	return Actor{Y: p.cfg.Playfield.Height / 2}
}
