package geometry

import (
	"math"

	"github.com/dps/go-raytracer/pkg/core"
)

// Sphere represents a sphere shape. A negative radius is legal and models a
// hollow shell with an inverted normal, e.g. the inside of a glass bubble.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) Sphere {
	return Sphere{Center: center, Radius: radius, Material: material}
}

// Hit tests if a ray intersects with the sphere within (tMin, tMax)
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic coefficients with the half-b simplification
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	// Nearer root first so closest-hit selection across objects stays correct
	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	hit := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Dividing by the signed radius flips the normal for hollow shells
	outwardNormal := hit.Point.Subtract(s.Center).Divide(s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)
	hit.U, hit.V = sphereUV(hit.Point.Subtract(s.Center))

	return hit, true
}

// sphereUV maps a direction from the sphere center to equirectangular
// texture coordinates in [0, 1]
func sphereUV(dir core.Vec3) (u, v float64) {
	n := dir.Normalize()
	u = math.Atan2(n.X, n.Z)/(2*math.Pi) + 0.5
	v = n.Y*0.5 + 0.5
	return u, v
}
