package core

import "math"

const (
	// Epsilon is the minimum ray parameter used when shading, to avoid
	// re-intersecting the surface a ray originates on.
	Epsilon = 1e-6
)

// Infinity is the maximum ray parameter for unbounded intersection queries.
var Infinity = math.Inf(1)

// Ray represents a parametric line with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray. The direction is normalized at construction;
// callers must not pass a zero-length direction.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
