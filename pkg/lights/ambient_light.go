package lights

import (
	"github.com/olio-render/olio/pkg/core"
)

// ambientReflector is the capability an ambient light needs from a
// material: a per-channel ambient coefficient.
type ambientReflector interface {
	Ambient() core.Vec3
}

// AmbientLight contributes a constant term independent of geometry and
// view direction
type AmbientLight struct {
	color core.Vec3
}

// NewAmbientLight creates a new ambient light
func NewAmbientLight(color core.Vec3) *AmbientLight {
	return &AmbientLight{color: color}
}

// Color returns the ambient light color
func (l *AmbientLight) Color() core.Vec3 {
	return l.color
}

// Illuminate returns the light color modulated by the material's ambient
// coefficient. Materials without an ambient coefficient contribute black.
func (l *AmbientLight) Illuminate(hit *core.HitRecord, _ core.Vec3) core.Vec3 {
	if hit.Surface == nil {
		return core.Vec3{}
	}
	mat, ok := hit.Surface.Material().(ambientReflector)
	if !ok {
		return core.Vec3{}
	}
	return l.color.MultiplyVec(mat.Ambient())
}
