package core

// HitRecord contains information about a ray-surface intersection.
// A record is filled in place by a successful Hit call and overwritten
// on each new test.
type HitRecord struct {
	T         float64 // Parameter t along the ray
	Point     Vec3    // Point of intersection
	Normal    Vec3    // Unit surface normal, oriented to face the ray
	FrontFace bool    // Whether the ray hit the front face
	Surface   Surface // Surface that was hit; used to look up its material
}

// SetFaceNormal stores a front-facing normal: the outward normal is flipped
// only when it points strictly with the ray, so downstream shading always
// sees a normal that does not point along the ray direction. A grazing ray
// perpendicular to the normal counts as hitting the front face.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) <= 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}
