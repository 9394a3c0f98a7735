package batflap

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/batflap/internal/config"
)

// ObstacleManager handles spawning, movement, and removal of obstacles.
type ObstacleManager struct {
	cfg       config.GameConfig
	collider  Collider
	rng       *rand.Rand
	obstacles []Obstacle // Oldest (leftmost) first
}

// NewObstacleManager creates an obstacle manager drawing gap heights from rng.
func NewObstacleManager(cfg config.GameConfig, rng *rand.Rand) *ObstacleManager {
	return &ObstacleManager{
		cfg:       cfg,
		collider:  NewCollider(cfg),
		rng:       rng,
		obstacles: make([]Obstacle, 0, 8),
	}
}

// Reset clears all obstacles. The random source keeps its position.
func (m *ObstacleManager) Reset() {
	m.obstacles = m.obstacles[:0]
}

// MaybeSpawn appends one obstacle at the right edge when frame falls on
// the spawn interval. Frame 0 never spawns.
func (m *ObstacleManager) MaybeSpawn(frame int) bool {
	if frame <= 0 || frame%m.cfg.Obstacles.SpawnInterval != 0 {
		return false
	}
	m.spawn()
	return true
}

// spawn creates a new obstacle with a uniformly random integer gap-top height.
func (m *ObstacleManager) spawn() {
	minTop := m.cfg.Obstacles.MinHeight
	maxTop := m.cfg.MaxGapTop()

	m.obstacles = append(m.obstacles, Obstacle{
		X:      m.cfg.Playfield.Width,
		GapTop: float64(minTop + m.rng.Intn(maxTop-minTop+1)),
	})
}

// Step runs one tick of the obstacle pass for a bat centered at actorY:
// spawn check, then for every obstacle (newest first) advance, retire if
// off-screen, score, and collision-check.
func (m *ObstacleManager) Step(frame int, actorY float64) Evaluation {
	m.MaybeSpawn(frame)

	var ev Evaluation
	box := m.collider.Hitbox(actorY)
	for i := len(m.obstacles) - 1; i >= 0; i-- {
		o := &m.obstacles[i]
		o.X -= m.cfg.Obstacles.Speed

		if o.X+m.cfg.Obstacles.Width < 0 {
			m.obstacles = slices.Delete(m.obstacles, i, i+1)
			continue
		}

		m.collider.evaluateObstacle(box, o, &ev)
	}
	return ev
}

// Obstacles returns the live collection. Callers must not modify it.
func (m *ObstacleManager) Obstacles() []Obstacle {
	return m.obstacles
}
