package geom

import (
	"math"
	"math/rand"
)

// Vec2 is a point or displacement in world space.
type Vec2 struct {
	X float64 `json:"x" yaml:"x" msgpack:"x"`
	Y float64 `json:"y" yaml:"y" msgpack:"y"`
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// LenSq is the squared length of v.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len is the length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Dist calculates the Euclidean distance between two points.
func Dist(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// DistSq is Dist without the square root.
func DistSq(a, b Vec2) float64 {
	return a.Sub(b).LenSq()
}

// Clamp saturates v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampAxis clamps v into [lo, hi], or returns fallback when the range is
// degenerate (lo >= hi).
func ClampAxis(v, lo, hi, fallback float64) float64 {
	if lo >= hi {
		return fallback
	}
	return Clamp(v, lo, hi)
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

// Rect is an axis-aligned rectangle with its origin at the minimum corner.
type Rect struct {
	X float64 `json:"x" yaml:"x" msgpack:"x"`
	Y float64 `json:"y" yaml:"y" msgpack:"y"`
	W float64 `json:"w" yaml:"w" msgpack:"w"`
	H float64 `json:"h" yaml:"h" msgpack:"h"`
}

// RectAround builds a square of side 2*half centered on c.
func RectAround(c Vec2, half float64) Rect {
	return Rect{X: c.X - half, Y: c.Y - half, W: 2 * half, H: 2 * half}
}

// RectFromCorners builds a rect spanning two opposite corners in any order.
func RectFromCorners(a, b Vec2) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Normalized returns the same area with non-negative width and height.
func (r Rect) Normalized() Rect {
	return RectFromCorners(V(r.X, r.Y), V(r.X+r.W, r.Y+r.H))
}

// XMin is the lowest x in the rect.
func (r Rect) XMin() float64 { return r.X }

// XMax is the highest x in the rect.
func (r Rect) XMax() float64 { return r.X + r.W }

// YMin is the lowest y in the rect.
func (r Rect) YMin() float64 { return r.Y }

// YMax is the highest y in the rect.
func (r Rect) YMax() float64 { return r.Y + r.H }

// Center returns the midpoint of the rect.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports strict overlap. Rects that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.XMin() && p.X <= r.XMax() && p.Y >= r.YMin() && p.Y <= r.YMax()
}

// RandomPoint samples a point uniformly inside r.
func (r Rect) RandomPoint(rng *rand.Rand) Vec2 {
	return Vec2{
		X: r.X + rng.Float64()*r.W,
		Y: r.Y + rng.Float64()*r.H,
	}
}

// ClampInto confines p to r shrunk by half on every side. An axis whose valid
// range is degenerate snaps to the center of r on that axis.
func ClampInto(r Rect, p Vec2, half float64) Vec2 {
	c := r.Center()
	return Vec2{
		X: ClampAxis(p.X, r.XMin()+half, r.XMax()-half, c.X),
		Y: ClampAxis(p.Y, r.YMin()+half, r.YMax()-half, c.Y),
	}
}
