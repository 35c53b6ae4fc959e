package geometry

import (
	"math"

	"github.com/olio-render/olio/pkg/core"
)

// Sphere represents a sphere surface with a bound material
type Sphere struct {
	center   core.Vec3
	radius   float64
	material core.Material
}

// NewSphere creates a new sphere. The radius must be positive.
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		center:   center,
		radius:   radius,
		material: material,
	}
}

// Center returns the sphere center
func (s *Sphere) Center() core.Vec3 {
	return s.center
}

// Radius returns the sphere radius
func (s *Sphere) Radius() float64 {
	return s.radius
}

// Material returns the sphere's material
func (s *Sphere) Material() core.Material {
	return s.material
}

// Hit tests if a ray intersects with the sphere.
//
// Only the smaller of the two quadratic roots is ever considered: a ray
// whose origin is inside the sphere has its near root behind the valid
// range and is reported as a miss, even though the far root would be in
// range. Existing scenes rely on this policy.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitRecord) bool {
	// Quadratic |O + tD - C|^2 = r^2 with oc = O - C
	oc := ray.Origin.Subtract(s.center)
	dDotOC := ray.Direction.Dot(oc)
	dDotD := ray.Direction.Dot(ray.Direction)

	discriminant := dDotOC*dDotOC - dDotD*(oc.Dot(oc)-s.radius*s.radius)
	if discriminant < 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)
	root := math.Min((-dDotOC-sqrtD)/dDotD, (-dDotOC+sqrtD)/dDotD)
	if root < tMin || root > tMax {
		return false
	}

	hitPoint := ray.At(root)
	hit.T = root
	hit.Point = hitPoint
	hit.SetFaceNormal(ray, hitPoint.Subtract(s.center).Normalize())
	hit.Surface = s
	return true
}
