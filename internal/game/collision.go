package game

import (
	"math"

	"github.com/ugaemi/survivalad-server/internal/geom"
)

// ResolveMove corrects desired so that an actor with the given half extent,
// standing at current, does not end up overlapping any obstacle. When the full
// move is blocked each axis is tried on its own against the whole set, which
// lets the actor slide along walls.
func ResolveMove(current, desired geom.Vec2, obstacles []geom.Rect, halfExtent float64) geom.Vec2 {
	if desired.IsZero() || len(obstacles) == 0 {
		return desired
	}
	if !overlapsAny(geom.RectAround(current.Add(desired), halfExtent), obstacles) {
		return desired
	}

	var corrected geom.Vec2
	if !overlapsAny(geom.RectAround(current.Add(geom.V(desired.X, 0)), halfExtent), obstacles) {
		corrected.X = desired.X
	}
	if !overlapsAny(geom.RectAround(current.Add(geom.V(0, desired.Y)), halfExtent), obstacles) {
		corrected.Y = desired.Y
	}

	// Both axes free on their own but blocked together: a corner. Returning
	// the full desired move here would walk into the corner, so keep the
	// dominant axis only.
	if corrected == desired {
		if math.Abs(desired.X) >= math.Abs(desired.Y) {
			corrected.Y = 0
		} else {
			corrected.X = 0
		}
	}
	return corrected
}

func overlapsAny(box geom.Rect, obstacles []geom.Rect) bool {
	for _, o := range obstacles {
		if o.Intersects(box) {
			return true
		}
	}
	return false
}

// Resolver holds the static obstacle set of a level.
type Resolver struct {
	obstacles  []geom.Rect
	halfExtent float64
}

// NewResolver copies obstacles, dropping any without area. actorSize is the side
// of the square collision box.
func NewResolver(obstacles []geom.Rect, actorSize float64) *Resolver {
	kept := make([]geom.Rect, 0, len(obstacles))
	for _, o := range obstacles {
		o = o.Normalized()
		if o.Empty() {
			continue
		}
		kept = append(kept, o)
	}
	return &Resolver{
		obstacles:  kept,
		halfExtent: actorSize / 2,
	}
}

// ResolveMove applies ResolveMove against the resolver's obstacles.
func (r *Resolver) ResolveMove(current, desired geom.Vec2) geom.Vec2 {
	return ResolveMove(current, desired, r.obstacles, r.halfExtent)
}

// Blocked reports whether an actor box at pos overlaps an obstacle.
func (r *Resolver) Blocked(pos geom.Vec2) bool {
	return overlapsAny(geom.RectAround(pos, r.halfExtent), r.obstacles)
}

// Obstacles returns a copy of the obstacle set.
func (r *Resolver) Obstacles() []geom.Rect {
	out := make([]geom.Rect, len(r.obstacles))
	copy(out, r.obstacles)
	return out
}

// HalfExtent is half the side of the actor box used for overlap tests.
func (r *Resolver) HalfExtent() float64 {
	return r.halfExtent
}
