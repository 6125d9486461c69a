// Package core provides fundamental types and utilities for the tankeroidz game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a point or displacement in field coordinates (pixels).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Heading returns the unit vector for a rotation in degrees.
// 0 degrees points up (negative Y) and positive angles turn counter-clockwise
// on screen, so the vector is (-sin, -cos).
func Heading(degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	return Vec2{X: -math.Sin(rad), Y: -math.Cos(rad)}
}

// AimDegrees returns the rotation that makes Heading point from `from` toward `to`.
func AimDegrees(from, to Vec2) float64 {
	d := from.Sub(to)
	return math.Atan2(d.X, d.Y) * 180 / math.Pi
}

// CirclesCollide reports whether two circles touch or overlap.
// Touching counts as colliding.
func CirclesCollide(a Vec2, ra float64, b Vec2, rb float64) bool {
	return math.Hypot(b.X-a.X, b.Y-a.Y) <= ra+rb
}

// Bounds is the playable field, spanning [0, W] x [0, H].
type Bounds struct {
	W, H float64
}

// ContainsInclusive returns true if p lies in [0, W] x [0, H].
func (b Bounds) ContainsInclusive(p Vec2) bool {
	return p.X >= 0 && p.X <= b.W && p.Y >= 0 && p.Y <= b.H
}

// ContainsExclusive returns true if p lies strictly inside (0, W) x (0, H).
func (b Bounds) ContainsExclusive(p Vec2) bool {
	return p.X > 0 && p.X < b.W && p.Y > 0 && p.Y < b.H
}

// Wrap maps a coordinate that left [0, size] to the opposite edge.
// Values inside the range are returned unchanged.
func Wrap(val, size float64) float64 {
	if val < 0 {
		return size
	}
	if val > size {
		return 0
	}
	return val
}

// Rect represents an axis-aligned cell rectangle used by screen drawing.
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

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
