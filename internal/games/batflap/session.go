package batflap

import (
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/batflap/internal/config"
	"github.com/vovakirdan/batflap/internal/core"
)

// ScoreKeeper persists the best score between runs.
type ScoreKeeper interface {
	// BestScore returns the stored best score, or false if none is stored.
	BestScore() (int, bool)
	// SetBestScore stores a new best score.
	SetBestScore(score int) error
}

// Session is the game state machine. It owns the actor, obstacles,
// particles, frame counter and score; nothing else mutates them.
//
// A Session is not safe for concurrent use. OnInput and Tick must be
// called from the goroutine that drives the tick loop.
type Session struct {
	cfg       config.GameConfig
	physics   Physics
	collider  Collider
	obstacles *ObstacleManager
	effects   *Effects
	keeper    ScoreKeeper

	actor Actor
	state SessionState
	frame int    // Frames since the current run started
	ticks uint64 // Ticks since the session was created
	input core.EventQueue
}

// NewSession creates an idle session. seed drives obstacle heights and
// particle velocities; keeper may be nil to disable persistence.
func NewSession(cfg config.GameConfig, seed int64, keeper ScoreKeeper) *Session {
	rng := rand.New(rand.NewSource(seed))
	physics := NewPhysics(cfg)

	s := &Session{
		cfg:       cfg,
		physics:   physics,
		collider:  NewCollider(cfg),
		obstacles: NewObstacleManager(cfg, rng),
		effects:   NewEffects(cfg, rng),
		keeper:    keeper,
		actor:     physics.NewActor(),
		state:     SessionState{Status: StatusIdle},
	}

	if keeper != nil {
		if best, ok := keeper.BestScore(); ok && best > 0 {
			s.state.Best = best
		}
	}
	return s
}

// OnInput queues an event. It takes effect at the start of the next tick.
func (s *Session) OnInput(ev core.Event) {
	s.input.Push(ev)
}

// Tick advances the session by one step. elapsed is the time since the
// tick loop started and only drives the idle animation.
func (s *Session) Tick(elapsed time.Duration) {
	s.ticks++
	s.input.Drain(s.handle)

	switch s.state.Status {
	case StatusPaused:
		return
	case StatusIdle:
		s.physics.Integrate(&s.actor, false, elapsed)
	case StatusPlaying:
		s.step()
	}

	s.effects.Tick()
}

// handle applies one event to the state machine. Events that make no
// sense in the current status are ignored.
func (s *Session) handle(ev core.Event) {
	switch ev {
	case core.EventStart:
		if s.state.Status == StatusIdle {
			s.begin()
		}
	case core.EventJump:
		switch s.state.Status {
		case StatusIdle:
			s.begin()
		case StatusPlaying:
			s.physics.ApplyImpulse(&s.actor)
		}
	case core.EventPause:
		if s.state.Status == StatusPlaying {
			s.state.Status = StatusPaused
		}
	case core.EventResume:
		if s.state.Status == StatusPaused {
			s.state.Status = StatusPlaying
		}
	case core.EventRestart:
		if s.state.Status == StatusGameOver {
			s.begin()
		}
	}
}

// begin starts a fresh run: everything but the best score is reset and
// the bat gets its first flap.
func (s *Session) begin() {
	s.actor = s.physics.NewActor()
	s.obstacles.Reset()
	s.effects.Reset()
	s.state.Score = 0
	s.frame = 0
	s.state.Status = StatusPlaying
	s.physics.ApplyImpulse(&s.actor)
}

// step runs one playing tick: physics, bounds, then the obstacle pass.
func (s *Session) step() {
	s.physics.Integrate(&s.actor, true, 0)
	s.frame++

	terminal := s.collider.OutOfBounds(s.actor.Y)

	ev := s.obstacles.Step(s.frame, s.actor.Y)
	s.state.Score += ev.ScoreDelta

	if terminal || ev.Terminal {
		s.gameOver()
	}
}

// gameOver ends the run, records the best score and blows the bat up.
func (s *Session) gameOver() {
	s.state.Status = StatusGameOver

	if s.state.Score >= s.state.Best {
		s.state.Best = s.state.Score
		if s.keeper != nil {
			//nolint:errcheck // Best-effort save, losing a high score is not fatal
			s.keeper.SetBestScore(s.state.Best)
		}
	}

	s.effects.Burst(s.cfg.Actor.X, s.actor.Y)
}

// State returns the current status and scores.
func (s *Session) State() SessionState {
	return s.state
}

// Ticks returns the number of ticks since the session was created.
func (s *Session) Ticks() uint64 {
	return s.ticks
}

// Config returns the configuration the session runs with.
func (s *Session) Config() config.GameConfig {
	return s.cfg
}

// Snapshot copies everything the renderer needs.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Actor:     s.actor,
		Obstacles: slices.Clone(s.obstacles.Obstacles()),
		Particles: slices.Clone(s.effects.Particles()),
		Frame:     s.frame,
		Ticks:     s.ticks,
		State:     s.state,
	}
}
