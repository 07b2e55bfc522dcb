package core

import "math/rand"

// HitRecord describes a successful ray-object intersection. It is transient:
// built during one intersection test and never stored past it.
type HitRecord struct {
	T         float64 // Ray parameter at the hit point
	Point     Vec3    // Hit point in world space
	Normal    Vec3    // Surface normal, always opposing the incoming ray
	FrontFace bool    // Whether the ray hit the geometrically outward side
	U, V      float64 // Equirectangular surface coordinates
	Material  Material
}

// SetFaceNormal records whether the hit was on the front face and flips the
// normal so it always opposes the incoming ray
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Hittable is anything a ray can intersect
type Hittable interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// ScatterResult describes a material's response to an incoming ray
type ScatterResult struct {
	Scattered   Ray  // Continuing ray, valid only when Emitted is false
	Attenuation Vec3 // Color multiplier, or final radiance for emitters
	Emitted     bool // Terminal emitter: Attenuation is radiance, no bounce
}

// Material computes how a surface responds to an incoming ray. The second
// return value is false when the ray is absorbed.
type Material interface {
	Scatter(rayIn Ray, hit HitRecord, rng *rand.Rand) (ScatterResult, bool)
}
