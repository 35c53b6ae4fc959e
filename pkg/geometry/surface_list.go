package geometry

import (
	"github.com/olio-render/olio/pkg/core"
)

// SurfaceList is a composite surface holding an ordered sequence of child
// surfaces. It owns no geometry, only references.
type SurfaceList struct {
	surfaces []core.Surface
}

// NewSurfaceList creates a surface list over the given children
func NewSurfaceList(surfaces ...core.Surface) *SurfaceList {
	return &SurfaceList{surfaces: surfaces}
}

// Add appends a surface to the list
func (s *SurfaceList) Add(surface core.Surface) {
	s.surfaces = append(s.surfaces, surface)
}

// Len returns the number of child surfaces
func (s *SurfaceList) Len() int {
	return len(s.surfaces)
}

// Material returns nil; a surface list carries no material of its own
func (s *SurfaceList) Material() core.Material {
	return nil
}

// Hit tests the ray against every child over the full, untightened
// [tMin, tMax] range and keeps the hit with the smallest t. Children at
// equal t resolve to whichever appears first in list order.
func (s *SurfaceList) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitRecord) bool {
	hitAnything := false
	var candidate core.HitRecord

	for _, surface := range s.surfaces {
		if surface.Hit(ray, tMin, tMax, &candidate) {
			if !hitAnything || candidate.T < hit.T {
				*hit = candidate
			}
			hitAnything = true
		}
	}
	return hitAnything
}
