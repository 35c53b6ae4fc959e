package core

// Surface interface for geometry that can be hit by rays
type Surface interface {
	// Hit tests the ray against the surface over [tMin, tMax]. On an
	// intersection it fills in the hit record and returns true; on a miss
	// it returns false and leaves the record untouched.
	Hit(ray Ray, tMin, tMax float64, hit *HitRecord) bool

	// Material returns the material bound to the surface, or nil if the
	// surface carries none (composite surfaces return nil).
	Material() Material
}

// Material computes the local reflectance response at a hit point for a
// given light direction and view direction. A nil Material is the "no
// material" variant; shading code checks for it rather than failing.
type Material interface {
	Evaluate(hit *HitRecord, lightVec, viewVec Vec3) Vec3
}

// Light contributes radiance at a hit point in the direction of viewVec
type Light interface {
	Illuminate(hit *HitRecord, viewVec Vec3) Vec3
}

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}
