// Package core provides fundamental types and utilities shared by the
// simulation and the platform layer. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

// Vec2 is a position or velocity in world units.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Viewport is the visible world area in world units.
// The platform supplies it every frame; the simulation uses it for
// spawn bounds and the ground-miss boundary.
type Viewport struct {
	W, H float64
}

// Rect represents an axis-aligned rectangle in screen cells.
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

// MaxF returns the larger of two float64 values.
func MaxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
