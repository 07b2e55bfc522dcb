package material

import (
	"math/rand"

	"github.com/dps/go-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base reflectance color
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, rng *rand.Rand) (core.ScatterResult, bool) {
	scattered := core.NewRay(hit.Point, diffuseDirection(hit.Normal, rng))
	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: l.Albedo,
	}, true
}

// diffuseDirection returns normal + random-in-unit-sphere, falling back to
// the normal when the sum degenerates to near zero
func diffuseDirection(normal core.Vec3, rng *rand.Rand) core.Vec3 {
	direction := normal.Add(core.RandomInUnitSphere(rng))
	if direction.NearZero() {
		direction = normal
	}
	return direction
}
