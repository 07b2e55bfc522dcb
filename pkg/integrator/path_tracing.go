package integrator

import (
	"math"
	"math/rand"

	"github.com/dps/go-raytracer/pkg/core"
	"github.com/dps/go-raytracer/pkg/geometry"
	"github.com/dps/go-raytracer/pkg/material"
	"github.com/dps/go-raytracer/pkg/scene"
)

// Dimming factor applied to environment texture lookups
const skyDimming = 0.7

// Per-light probability that a bounce near the end of the path shoots an
// extra ray toward the lights
const lightSampleProb = 0.1

// PathTracer is a recursive radiance estimator over a sphere-only scene with
// an optional direct-lighting shortcut toward emissive objects
type PathTracer struct {
	scene  *scene.Scene
	lights []geometry.Sphere
}

// NewPathTracer creates a path tracer for the given scene. The emissive
// object list is extracted once up front.
func NewPathTracer(s *scene.Scene) *PathTracer {
	return &PathTracer{scene: s, lights: s.Lights()}
}

// Trace evaluates the radiance arriving along a camera ray
func (pt *PathTracer) Trace(ray core.Ray, rng *rand.Rand) core.Vec3 {
	return pt.RayColor(ray, pt.scene.MaxDepth, pt.scene.MaxDepth, rng)
}

// RayColor recursively evaluates radiance along a ray. depth counts down
// from maxDepth; when it reaches zero the path contributes black.
func (pt *PathTracer) RayColor(ray core.Ray, maxDepth, depth int, rng *rand.Rand) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, ok := hitWorld(pt.scene.Objects, ray, 0.001, math.MaxFloat64)
	if !ok {
		return pt.skyColor(ray)
	}

	result, ok := hit.Material.Scatter(ray, *hit, rng)
	if !ok {
		// Absorbed; not worth bouncing toward lights either
		return core.Vec3{}
	}
	if result.Emitted {
		return result.Attenuation
	}

	light := pt.sampleLights(hit, result.Attenuation, maxDepth, depth, rng)
	target := pt.RayColor(result.Scattered, maxDepth, depth-1, rng)
	return light.Add(result.Attenuation.MultiplyVec(target)).Clamp01()
}

// sampleLights adds a stochastic direct contribution from each emissive
// object. The gate only fires on the final two bounces of a path. The rays
// are not occlusion-tested, so emissive objects can bleed through geometry.
func (pt *PathTracer) sampleLights(hit *core.HitRecord, attenuation core.Vec3, maxDepth, depth int, rng *rand.Rand) core.Vec3 {
	if len(pt.lights) == 0 || depth <= maxDepth-2 {
		return core.Vec3{}
	}

	prob := lightSampleProb
	if _, ok := hit.Material.(*material.Dielectric); ok {
		prob = lightSampleProb / 2
	}
	if rng.Float64() >= float64(len(pt.lights))*prob {
		return core.Vec3{}
	}

	var sum core.Vec3
	for i := range pt.lights {
		lightRay := core.NewRay(hit.Point, pt.lights[i].Center.Subtract(hit.Point))
		sum = sum.Add(attenuation.MultiplyVec(pt.RayColor(lightRay, 2, 1, rng)))
	}
	return sum.Divide(float64(len(pt.lights)))
}

// skyColor samples the background for a ray that missed every object
func (pt *PathTracer) skyColor(ray core.Ray) core.Vec3 {
	sky := pt.scene.Sky
	if sky == nil {
		return core.Vec3{}
	}

	unit := ray.Direction.Normalize()
	t := 0.5 * (unit.Y + 1)

	if sky.Texture == nil {
		// Vertical white-to-blue gradient
		return core.NewVec3(
			(1-t)*1.0+t*0.5,
			(1-t)*1.0+t*0.7,
			(1-t)*1.0+t*1.0,
		)
	}

	u := 0.5 * (unit.X + 1)
	x := int(u * float64(sky.Texture.Width-1))
	y := int((1 - t) * float64(sky.Texture.Height-1))
	base := (y*sky.Texture.Width + x) * 3
	return core.NewVec3(
		skyDimming*float64(sky.Texture.Pixels[base])/255.0,
		skyDimming*float64(sky.Texture.Pixels[base+1])/255.0,
		skyDimming*float64(sky.Texture.Pixels[base+2])/255.0,
	)
}

// hitWorld scans all objects for the closest hit, shrinking tMax as hits are
// accepted so farther objects are rejected early
func hitWorld(objects []geometry.Sphere, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	closestSoFar := tMax
	for i := range objects {
		if hit, ok := objects[i].Hit(ray, tMin, closestSoFar); ok {
			closestSoFar = hit.T
			closest = hit
		}
	}
	return closest, closest != nil
}
