package geometry

import (
	"math"
	"testing"

	"github.com/olio-render/olio/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit := &core.HitRecord{}
	if sphere.Hit(ray, 0, core.Infinity, hit) {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_ThroughCenter(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))

	hit := &core.HitRecord{}
	if !sphere.Hit(ray, 0, core.Infinity, hit) {
		t.Fatal("Expected hit, but got miss")
	}

	// Near surface point is at distance origin-to-center minus radius
	if math.Abs(hit.T-2.0) > 1e-9 {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}
	if dist := hit.Point.Subtract(sphere.Center()).Length(); math.Abs(dist-1.0) > 1e-9 {
		t.Errorf("Expected hit point at distance radius from center, got %f", dist)
	}
	if length := hit.Normal.Length(); math.Abs(length-1.0) > 1e-9 {
		t.Errorf("Expected unit normal, got length %f", length)
	}
	if hit.Normal.Dot(ray.Direction.Negate()) < 0 {
		t.Error("Expected front-facing normal")
	}
	if hit.Surface != core.Surface(sphere) {
		t.Error("Expected hit record to reference the sphere")
	}
}

// A ray starting inside the sphere misses: the smaller quadratic root is
// negative and the larger root is never considered.
func TestSphere_Hit_OriginInsideMisses(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit := &core.HitRecord{}
	if sphere.Hit(ray, core.Epsilon, core.Infinity, hit) {
		t.Errorf("Expected miss for ray starting inside sphere, got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))

	hit := &core.HitRecord{}

	// Smaller root at t=2 is below tMin; the larger root at t=4 is in
	// range but must not be selected
	if sphere.Hit(ray, 3, 1000, hit) {
		t.Errorf("Expected miss when smaller root is below tMin, got hit at t=%f", hit.T)
	}

	if sphere.Hit(ray, 0, 1.5, hit) {
		t.Errorf("Expected miss due to tMax bound, got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_MissLeavesRecordUntouched(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit := &core.HitRecord{T: 42, Point: core.NewVec3(1, 2, 3)}
	if sphere.Hit(ray, 0, core.Infinity, hit) {
		t.Fatal("Expected miss")
	}
	if hit.T != 42 || hit.Point != core.NewVec3(1, 2, 3) {
		t.Error("Miss must leave the hit record untouched")
	}
}
