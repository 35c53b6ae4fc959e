package lights

import (
	"math"

	"github.com/olio-render/olio/pkg/core"
)

// PointLight is an isotropic point emitter with inverse-square falloff
type PointLight struct {
	position  core.Vec3
	intensity core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{position: position, intensity: intensity}
}

// Position returns the light position
func (l *PointLight) Position() core.Vec3 {
	return l.position
}

// Intensity returns the per-channel light intensity
func (l *PointLight) Intensity() core.Vec3 {
	return l.intensity
}

// Illuminate returns the radiance this light contributes at the hit point
// in the direction of viewVec: the cosine-weighted irradiance arriving
// from the light, attenuated by squared distance, times the material's
// reflectance response. A hit without a material contributes black.
func (l *PointLight) Illuminate(hit *core.HitRecord, viewVec core.Vec3) core.Vec3 {
	if hit.Surface == nil {
		return core.Vec3{}
	}
	mat := hit.Surface.Material()
	if mat == nil {
		return core.Vec3{}
	}

	toLight := l.position.Subtract(hit.Point)
	distanceSquared := toLight.LengthSquared()
	lightVec := toLight.Normalize()

	irradiance := l.intensity.Multiply(math.Max(0, hit.Normal.Dot(lightVec)) / distanceSquared)
	response := mat.Evaluate(hit, lightVec, viewVec)
	return irradiance.MultiplyVec(response)
}
