// Package core provides fundamental types and utilities shared by the
// simulation and the terminal platform. It has no Bubble Tea dependency
// so game logic stays pure and testable.
package core

// Rect is an integer rectangle in screen cells, used for drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Box is an axis-aligned bounding box in playfield units.
// Y grows downward, so Top < Bottom.
type Box struct {
	Left, Top, Right, Bottom float64
}

// BoxAround returns the square of the given half-extent centered on (cx, cy).
func BoxAround(cx, cy, half float64) Box {
	return Box{
		Left:   cx - half,
		Top:    cy - half,
		Right:  cx + half,
		Bottom: cy + half,
	}
}

// Inset shrinks the box by m on every side.
func (b Box) Inset(m float64) Box {
	return Box{
		Left:   b.Left + m,
		Top:    b.Top + m,
		Right:  b.Right - m,
		Bottom: b.Bottom - m,
	}
}

// OverlapsX reports whether the box overlaps the open horizontal span (left, right).
// Touching edges do not overlap.
func (b Box) OverlapsX(left, right float64) bool {
	return b.Right > left && b.Left < right
}

// Intersects returns true if the two boxes overlap. Touching edges do not count.
func (b Box) Intersects(o Box) bool {
	return b.OverlapsX(o.Left, o.Right) && b.Bottom > o.Top && b.Top < o.Bottom
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
