package material

import (
	"math/rand"

	"github.com/dps/go-raytracer/pkg/core"
)

// Light is a constant-radiance terminal emitter with no directional
// dependence. Attached to a sphere it acts as an isotropic area light.
type Light struct{}

// NewLight creates a new light material
func NewLight() *Light {
	return &Light{}
}

// Scatter implements the Material interface. Lights never bounce: the white
// attenuation is final radiance.
func (l *Light) Scatter(rayIn core.Ray, hit core.HitRecord, rng *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{
		Attenuation: core.NewVec3(1, 1, 1),
		Emitted:     true,
	}, true
}
