package material

import (
	"math"

	"github.com/olio-render/olio/pkg/core"
)

// Phong is a Blinn-Phong material: a diffuse response plus a specular lobe
// around the half vector between the view and light directions.
type Phong struct {
	ambient   core.Vec3
	diffuse   core.Vec3
	specular  core.Vec3
	shininess float64
	mirror    core.Vec3 // Parsed and carried, never evaluated by local shading
}

// NewPhong creates a new Phong material
func NewPhong(ambient, diffuse, specular core.Vec3, shininess float64, mirror core.Vec3) *Phong {
	return &Phong{
		ambient:   ambient,
		diffuse:   diffuse,
		specular:  specular,
		shininess: shininess,
		mirror:    mirror,
	}
}

// Ambient returns the per-channel ambient coefficient
func (p *Phong) Ambient() core.Vec3 {
	return p.ambient
}

// Diffuse returns the per-channel diffuse coefficient
func (p *Phong) Diffuse() core.Vec3 {
	return p.diffuse
}

// Specular returns the per-channel specular coefficient
func (p *Phong) Specular() core.Vec3 {
	return p.specular
}

// Shininess returns the specular exponent
func (p *Phong) Shininess() float64 {
	return p.shininess
}

// Mirror returns the mirror coefficient
func (p *Phong) Mirror() core.Vec3 {
	return p.mirror
}

// Evaluate returns the per-channel reflectance response at the hit point:
// diffuse + specular * max(0, N.H)^shininess, where H is the unit half
// vector between viewVec and lightVec. Both vectors point away from the
// surface.
func (p *Phong) Evaluate(hit *core.HitRecord, lightVec, viewVec core.Vec3) core.Vec3 {
	half := viewVec.Add(lightVec).Normalize()
	spec := math.Pow(math.Max(0, hit.Normal.Dot(half)), p.shininess)
	return p.diffuse.Add(p.specular.Multiply(spec))
}
