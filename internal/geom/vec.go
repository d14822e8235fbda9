// Package geom provides the 2D vector and box math used by the town
// simulation. World coordinates are float64 with +X east and +Y south.
package geom

import "math"

// Vec2 is a 2D world-space point or direction.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
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

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LenSq returns the squared length of v. Prefer this over Len for
// threshold comparisons — no square root.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// DistSq returns the squared distance between v and o.
func (v Vec2) DistSq(o Vec2) float64 {
	return v.Sub(o).LenSq()
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to zero rather than NaN.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Lerp returns the linear interpolation between a and b at t in [0, 1].
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}
