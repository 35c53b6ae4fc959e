package lights

import (
	"testing"

	"github.com/olio-render/olio/pkg/core"
	"github.com/olio-render/olio/pkg/material"
)

// stubSurface carries a material for shading tests without any geometry
type stubSurface struct {
	material core.Material
}

func (s *stubSurface) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitRecord) bool {
	return false
}

func (s *stubSurface) Material() core.Material {
	return s.material
}

func hitWithMaterial(mat core.Material, point, normal core.Vec3) *core.HitRecord {
	return &core.HitRecord{
		T:         1,
		Point:     point,
		Normal:    normal,
		FrontFace: true,
		Surface:   &stubSurface{material: mat},
	}
}

func TestAmbientLight_Illuminate(t *testing.T) {
	phong := material.NewPhong(
		core.NewVec3(1, 0.5, 0),
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, 0),
		1,
		core.NewVec3(0, 0, 0),
	)
	light := NewAmbientLight(core.NewVec3(0.2, 0.2, 0.2))
	hit := hitWithMaterial(phong, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	got := light.Illuminate(hit, core.NewVec3(0, 0, 1))
	expected := core.NewVec3(0.2, 0.1, 0)
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestAmbientLight_Illuminate_NoMaterial(t *testing.T) {
	light := NewAmbientLight(core.NewVec3(0.2, 0.2, 0.2))
	hit := hitWithMaterial(nil, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	if got := light.Illuminate(hit, core.NewVec3(0, 0, 1)); got != (core.Vec3{}) {
		t.Errorf("Expected black for missing material, got %v", got)
	}

	hit.Surface = nil
	if got := light.Illuminate(hit, core.NewVec3(0, 0, 1)); got != (core.Vec3{}) {
		t.Errorf("Expected black for missing surface, got %v", got)
	}
}

func TestPointLight_Illuminate(t *testing.T) {
	phong := material.NewPhong(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 1, 1),
		core.NewVec3(0, 0, 0),
		1,
		core.NewVec3(0, 0, 0),
	)
	light := NewPointLight(core.NewVec3(0, 0, 5), core.NewVec3(1, 1, 1))
	hit := hitWithMaterial(phong, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	// Irradiance is max(0, N.L)/d^2 = 1/25; the response reduces to the
	// diffuse coefficient
	got := light.Illuminate(hit, core.NewVec3(0, 0, 1))
	expected := core.NewVec3(0.04, 0.04, 0.04)
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestPointLight_Illuminate_BelowHorizon(t *testing.T) {
	phong := material.NewPhong(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 1, 1),
		core.NewVec3(0, 0, 0),
		1,
		core.NewVec3(0, 0, 0),
	)
	// Light is behind the surface: N.L < 0 clamps irradiance to zero
	light := NewPointLight(core.NewVec3(0, 0, -5), core.NewVec3(1, 1, 1))
	hit := hitWithMaterial(phong, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	if got := light.Illuminate(hit, core.NewVec3(0, 0, 1)); got != (core.Vec3{}) {
		t.Errorf("Expected black for light below horizon, got %v", got)
	}
}

func TestPointLight_Illuminate_NoMaterial(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 0, 5), core.NewVec3(1, 1, 1))
	hit := hitWithMaterial(nil, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	if got := light.Illuminate(hit, core.NewVec3(0, 0, 1)); got != (core.Vec3{}) {
		t.Errorf("Expected black for missing material, got %v", got)
	}
}
