package geometry

import (
	"gonum.org/v1/gonum/mat"

	"github.com/olio-render/olio/pkg/core"
)

// Triangle represents a single triangle defined by three vertices, with
// the face normal precomputed from the vertex winding
type Triangle struct {
	point0, point1, point2 core.Vec3
	normal                 core.Vec3 // Unit face normal, vertices counterclockwise around it
	material               core.Material
}

// NewTriangle creates a new triangle from three vertices ordered
// counterclockwise with respect to the face normal
func NewTriangle(point0, point1, point2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		point0:   point0,
		point1:   point1,
		point2:   point2,
		material: material,
	}
	t.computeNormal()
	return t
}

// computeNormal calculates and caches the triangle's unit face normal
func (t *Triangle) computeNormal() {
	edge1 := t.point1.Subtract(t.point0)
	edge2 := t.point2.Subtract(t.point0)
	t.normal = edge1.Cross(edge2).Normalize()
}

// SetPoints replaces the triangle's vertices and recomputes the normal
func (t *Triangle) SetPoints(point0, point1, point2 core.Vec3) {
	t.point0 = point0
	t.point1 = point1
	t.point2 = point2
	t.computeNormal()
}

// Points returns the triangle's three vertices
func (t *Triangle) Points() (point0, point1, point2 core.Vec3) {
	return t.point0, t.point1, t.point2
}

// Normal returns the triangle's unit face normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Material returns the triangle's material
func (t *Triangle) Material() core.Material {
	return t.material
}

// RayTriangleHit computes the ray parameter and barycentric coordinates of
// the intersection between a ray and the plane spanned by the triangle
// (p0, p1, p2). It solves the 3x3 linear system
//
//	[p1-p0  p2-p0  -D] [beta gamma t]^T = O - p0
//
// with a QR factorization. The hit point inside the triangle is
// p0 + beta*(p1-p0) + gamma*(p2-p0), with barycentric coordinates
// (1-beta-gamma, beta, gamma). Returns false if the system is singular or
// t falls outside [tMin, tMax]. The caller is responsible for checking
// that the point lies inside the triangle.
func RayTriangleHit(p0, p1, p2 core.Vec3, ray core.Ray, tMin, tMax float64) (rayT, beta, gamma float64, ok bool) {
	u := p1.Subtract(p0)
	v := p2.Subtract(p0)
	d := ray.Direction

	a := mat.NewDense(3, 3, []float64{
		u.X, v.X, -d.X,
		u.Y, v.Y, -d.Y,
		u.Z, v.Z, -d.Z,
	})
	b := mat.NewVecDense(3, []float64{
		ray.Origin.X - p0.X,
		ray.Origin.Y - p0.Y,
		ray.Origin.Z - p0.Z,
	})

	var qr mat.QR
	qr.Factorize(a)

	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, b); err != nil {
		return 0, 0, 0, false
	}

	beta, gamma, rayT = x.AtVec(0), x.AtVec(1), x.AtVec(2)
	if rayT < tMin || rayT > tMax {
		return 0, 0, 0, false
	}
	return rayT, beta, gamma, true
}

// Hit tests if a ray intersects with the triangle
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitRecord) bool {
	// A ray perpendicular to the face normal lies in (or parallel to) the
	// triangle's plane and never produces a usable intersection.
	if t.normal.Dot(ray.Direction) == 0 {
		return false
	}

	rayT, _, _, ok := RayTriangleHit(t.point0, t.point1, t.point2, ray, tMin, tMax)
	if !ok {
		return false
	}

	// Half-plane tests: the hit point is inside the triangle iff it lies on
	// the normal side of all three edges.
	x := ray.At(rayT)
	if t.point1.Subtract(t.point0).Cross(x.Subtract(t.point0)).Dot(t.normal) < 0 {
		return false
	}
	if t.point2.Subtract(t.point1).Cross(x.Subtract(t.point1)).Dot(t.normal) < 0 {
		return false
	}
	if t.point0.Subtract(t.point2).Cross(x.Subtract(t.point2)).Dot(t.normal) < 0 {
		return false
	}

	hit.T = rayT
	hit.Point = x
	hit.SetFaceNormal(ray, t.normal)
	hit.Surface = t
	return true
}
