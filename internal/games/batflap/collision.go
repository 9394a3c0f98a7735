package batflap

import (
	"math"

	"github.com/vovakirdan/batflap/internal/config"
	"github.com/vovakirdan/batflap/internal/core"
)

// Evaluation is the outcome of checking the bat against the world for one tick.
type Evaluation struct {
	ScoreDelta int  // Obstacles passed this tick
	Terminal   bool // Whether the session must end
}

// Collider checks bounds, obstacle overlap and pass-through scoring.
type Collider struct {
	cfg config.GameConfig
}

// NewCollider creates a collider for the given configuration.
func NewCollider(cfg config.GameConfig) Collider {
	return Collider{cfg: cfg}
}

// OutOfBounds reports whether a bat centered at y touches the top or bottom edge.
func (c Collider) OutOfBounds(y float64) bool {
	r := c.cfg.Actor.Radius
	return y+r >= c.cfg.Playfield.Height || y-r <= 0
}

// Hitbox returns the bat's collision square: its visual bounding square
// shrunk by the configured inset.
func (c Collider) Hitbox(y float64) core.Box {
	return core.BoxAround(c.cfg.Actor.X, y, c.cfg.Actor.Radius).Inset(c.cfg.Actor.HitboxInset)
}

// Hits reports whether box overlaps either segment of the obstacle.
// A box edge exactly on the gap boundary is still inside the gap.
func (c Collider) Hits(box core.Box, o Obstacle) bool {
	right := o.X + c.cfg.Obstacles.Width
	upper := core.Box{Left: o.X, Top: math.Inf(-1), Right: right, Bottom: o.GapTop}
	lower := core.Box{Left: o.X, Top: o.GapTop + c.cfg.Obstacles.GapSize, Right: right, Bottom: math.Inf(1)}
	return box.Intersects(upper) || box.Intersects(lower)
}

// Evaluate checks bounds and every obstacle without moving anything.
// Obstacles crossed for the first time are marked passed.
func (c Collider) Evaluate(y float64, obstacles []Obstacle) Evaluation {
	ev := Evaluation{Terminal: c.OutOfBounds(y)}
	box := c.Hitbox(y)
	for i := range obstacles {
		c.evaluateObstacle(box, &obstacles[i], &ev)
	}
	return ev
}

// evaluateObstacle scores and then collision-checks a single obstacle.
func (c Collider) evaluateObstacle(box core.Box, o *Obstacle, ev *Evaluation) {
	if !o.Passed && o.X+c.cfg.Obstacles.Width < c.cfg.Actor.X-c.cfg.Actor.Radius {
		o.Passed = true
		ev.ScoreDelta++
	}
	if c.Hits(box, *o) {
		ev.Terminal = true
	}
}
