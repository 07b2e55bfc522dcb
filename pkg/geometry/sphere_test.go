package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/dps/go-raytracer/pkg/core"
	"github.com/dps/go-raytracer/pkg/material"
)

func testSphere(center core.Vec3, radius float64) Sphere {
	return NewSphere(center, radius, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
}

func TestSphere_Hit_NearerRoot(t *testing.T) {
	sphere := testSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	hit, ok := sphere.Hit(ray, 0, math.MaxFloat64)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.T != 4.0 {
		t.Errorf("Expected t=4.0 exactly, got t=%v", hit.T)
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := testSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if hit, ok := sphere.Hit(ray, 0.001, 1000); ok {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := testSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit from inside",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, ok := sphere.Hit(ray, 0.001, 1000)
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_NormalOpposesRay(t *testing.T) {
	sphere := testSphere(core.NewVec3(0, 0, -1), 0.5)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		origin := core.RandomVec3(rng, -3, 3)
		direction := core.NewVec3(0, 0, -1).Subtract(origin).Add(core.RandomInUnitSphere(rng).Multiply(0.4))
		ray := core.NewRay(origin, direction)

		if hit, ok := sphere.Hit(ray, 0.001, math.MaxFloat64); ok {
			if ray.Direction.Dot(hit.Normal) > 0 {
				t.Fatalf("Normal %v does not oppose ray direction %v", hit.Normal, ray.Direction)
			}
		}
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := testSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	if hit, ok := sphere.Hit(ray, 0.001, 0.5); ok {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}
	if hit, ok := sphere.Hit(ray, 3.5, 1000); ok {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// With the nearer root excluded by tMin, the farther root is returned
	hit, ok := sphere.Hit(ray, 1.5, 1000)
	if !ok {
		t.Fatal("Expected hit on farther root, but got miss")
	}
	if math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected farther root t=3.0, got t=%f", hit.T)
	}
}

func TestSphere_Hit_NegativeRadius(t *testing.T) {
	// A negative radius models a hollow shell: the normal points inward
	sphere := testSphere(core.NewVec3(0, 0, 0), -1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, ok := sphere.Hit(ray, 0.001, 1000)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.FrontFace {
		t.Error("Expected back face for inverted shell")
	}
	// The returned normal still opposes the incoming ray
	if ray.Direction.Dot(hit.Normal) > 0 {
		t.Errorf("Normal %v does not oppose ray direction %v", hit.Normal, ray.Direction)
	}
}

func TestSphere_Hit_UV(t *testing.T) {
	sphere := testSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name      string
		rayOrigin core.Vec3
		rayDir    core.Vec3
		expectedU float64
		expectedV float64
	}{
		{"+x axis", core.NewVec3(2, 0, 0), core.NewVec3(-1, 0, 0), 0.75, 0.5},
		{"+z axis", core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1), 0.5, 0.5},
		{"north pole", core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0), 0.5, 1.0},
		{"south pole", core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), 0.5, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := sphere.Hit(core.NewRay(tt.rayOrigin, tt.rayDir), 0.001, 1000)
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.U-tt.expectedU) > 1e-9 || math.Abs(hit.V-tt.expectedV) > 1e-9 {
				t.Errorf("Expected (u,v)=(%f,%f), got (%f,%f)", tt.expectedU, tt.expectedV, hit.U, hit.V)
			}
		})
	}
}
