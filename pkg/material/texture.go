package material

import (
	"math"
	"math/rand"

	"github.com/dps/go-raytracer/pkg/core"
)

// Texture is a diffuse material whose albedo comes from a nearest-pixel
// lookup into a pre-decoded equirectangular image. The pixel buffer is
// packed RGB8, decoded once before the render begins.
type Texture struct {
	Albedo  core.Vec3 // Base color, kept for scene config compatibility
	Pixels  []byte    // Packed RGB8, row-major, top row first
	Width   int
	Height  int
	HOffset float64 // Horizontal rotation of the texture in [0, 1]
	Path    string  // Source image path, preserved for serialization
}

// NewTexture creates a textured diffuse material from a decoded image
func NewTexture(albedo core.Vec3, pixels []byte, width, height int, hOffset float64, path string) *Texture {
	return &Texture{
		Albedo:  albedo,
		Pixels:  pixels,
		Width:   width,
		Height:  height,
		HOffset: hOffset,
		Path:    path,
	}
}

// Scatter implements the Material interface with lambertian geometry and a
// texture-sampled attenuation
func (t *Texture) Scatter(rayIn core.Ray, hit core.HitRecord, rng *rand.Rand) (core.ScatterResult, bool) {
	scattered := core.NewRay(hit.Point, diffuseDirection(hit.Normal, rng))
	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: t.AlbedoAt(hit.U, hit.V),
	}, true
}

// AlbedoAt samples the texture at surface coordinates (u, v) with the
// horizontal offset applied modulo 1
func (t *Texture) AlbedoAt(u, v float64) core.Vec3 {
	rot := u + t.HOffset
	if rot > 1 {
		rot -= 1
	}
	x := int(math.Floor(rot * float64(t.Width)))
	y := int(math.Floor((1 - v) * float64(t.Height-1)))
	x = max(0, min(t.Width-1, x))
	y = max(0, min(t.Height-1, y))

	base := 3 * (y*t.Width + x)
	return core.NewVec3(
		float64(t.Pixels[base])/255.0,
		float64(t.Pixels[base+1])/255.0,
		float64(t.Pixels[base+2])/255.0,
	)
}
