// Package batflap implements the Bat Flap simulation: a bat flaps through
// gaps in scrolling obstacle pairs, scoring one point per pair passed.
//
// The package is pure game logic. A Session owns all mutable state and is
// advanced one fixed step at a time by the platform's tick loop; rendering
// reads an immutable Snapshot.
package batflap

import "github.com/vovakirdan/batflap/internal/core"

// GameID identifies Bat Flap in the score history.
const GameID = "batflap"

// Status is the session's position in the game state machine.
type Status uint8

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusPaused
	StatusGameOver
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusPlaying:
		return "PLAYING"
	case StatusPaused:
		return "PAUSED"
	case StatusGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Actor is the bat. Its horizontal position is fixed by configuration.
type Actor struct {
	Y        float64 // Vertical center, grows downward
	Velocity float64 // Vertical velocity per tick (negative = up)
	Rotation float64 // Tilt in radians, derived from velocity
	Frame    int     // Animation frame counter
}

// Obstacle is a pair of segments with a gap between them.
type Obstacle struct {
	X      float64 // Left edge
	GapTop float64 // Height of the upper segment
	Passed bool    // Whether the bat has scored on this obstacle
}

// Particle is one fragment of the death burst.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // 1 when spawned, removed at <= 0
	Color  core.Color
}

// SessionState is what the HUD shows.
type SessionState struct {
	Status Status
	Score  int
	Best   int
}

// Snapshot is a deep copy of the simulation taken after a tick.
// The renderer may keep or read it freely; it shares nothing with the session.
type Snapshot struct {
	Actor     Actor
	Obstacles []Obstacle
	Particles []Particle
	Frame     int // Frames since the session started playing
	Ticks     uint64
	State     SessionState
}

// Exploded reports whether the bat should be hidden behind its death burst.
func (s Snapshot) Exploded() bool {
	return s.State.Status == StatusGameOver && len(s.Particles) > 0
}
