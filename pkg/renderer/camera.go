package renderer

import (
	"math"

	"github.com/olio-render/olio/pkg/core"
)

// Camera converts normalized image-plane coordinates into world-space rays
// using a LookAt configuration and a right-handed orthonormal basis.
type Camera struct {
	eye    core.Vec3
	target core.Vec3
	up     core.Vec3
	fovy   float64 // Vertical field of view in degrees
	aspect float64

	// Camera-to-world basis: u right, v up, w opposing the view direction
	u, v, w core.Vec3

	// Viewport, derived from the basis, fovy, and aspect
	horizontal      core.Vec3
	vertical        core.Vec3
	lowerLeftCorner core.Vec3
}

// NewCamera creates a camera at eye looking at target. fovy is the vertical
// field of view in degrees; aspect must be finite and positive. The up
// vector must not be parallel to the view direction; callers substitute an
// alternate up vector before construction.
func NewCamera(eye, target, up core.Vec3, fovy, aspect float64) *Camera {
	c := &Camera{fovy: fovy, aspect: aspect}
	c.LookAt(eye, target, up)
	return c
}

// LookAt rebuilds the orthonormal basis from the given eye, target, and up
// vectors and recomputes the viewport
func (c *Camera) LookAt(eye, target, up core.Vec3) {
	c.eye = eye
	c.target = target
	c.up = up

	c.w = eye.Subtract(target).Normalize()
	c.u = up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u) // Unit length already: u and w are orthonormal

	c.updateViewport()
}

// SetFovy sets the vertical field of view in degrees and recomputes the
// viewport
func (c *Camera) SetFovy(fovy float64) {
	c.fovy = fovy
	c.updateViewport()
}

// SetAspect sets the viewport aspect ratio and recomputes the viewport
func (c *Camera) SetAspect(aspect float64) {
	c.aspect = aspect
	c.updateViewport()
}

// Eye returns the eye position
func (c *Camera) Eye() core.Vec3 {
	return c.eye
}

// Fovy returns the vertical field of view in degrees
func (c *Camera) Fovy() float64 {
	return c.fovy
}

// Aspect returns the viewport aspect ratio
func (c *Camera) Aspect() float64 {
	return c.aspect
}

// Basis returns the camera-to-world basis vectors (u, v, w)
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// updateViewport recomputes the viewport extents and lower-left corner
// from the current basis, fovy, and aspect
func (c *Camera) updateViewport() {
	extent := 2 * math.Tan(c.fovy*math.Pi/360)
	c.vertical = c.v.Multiply(extent)
	c.horizontal = c.u.Multiply(c.aspect * extent)
	c.lowerLeftCorner = c.eye.
		Subtract(c.w).
		Subtract(c.horizontal.Add(c.vertical).Multiply(0.5))
}

// GetRay generates the ray through normalized image coordinates
// (s, t) in [0,1]^2, with (0,0) at the lower-left corner of the viewport
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.eye)
	return core.NewRay(c.eye, direction)
}
