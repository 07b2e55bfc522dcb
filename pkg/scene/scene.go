package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/dps/go-raytracer/pkg/core"
	"github.com/dps/go-raytracer/pkg/geometry"
	"github.com/dps/go-raytracer/pkg/loaders"
	"github.com/dps/go-raytracer/pkg/material"
)

// Scene contains everything needed for one render. It is constructed once
// and read-only for the duration of the render.
type Scene struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Sky             *Sky
	Camera          *geometry.Camera
	Objects         []geometry.Sphere
}

// Sky describes the background. A nil Sky renders black; a Sky without a
// texture renders the white-to-blue vertical gradient; otherwise rays that
// miss all objects sample the equirectangular texture.
type Sky struct {
	Texture *SkyTexture
}

// SkyTexture is a pre-decoded equirectangular environment image
type SkyTexture struct {
	Pixels []byte // Packed RGB8, row-major, top row first
	Width  int
	Height int
	Path   string // Source image path, preserved for serialization
}

// NewDefaultSky returns the gradient sky
func NewDefaultSky() *Sky {
	return &Sky{}
}

// NewTexturedSky loads an equirectangular environment image
func NewTexturedSky(path string) (*Sky, error) {
	img, err := loaders.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load sky texture: %w", err)
	}
	return &Sky{Texture: &SkyTexture{
		Pixels: img.Pixels,
		Width:  img.Width,
		Height: img.Height,
		Path:   path,
	}}, nil
}

// Lights returns the emissive objects in the scene, used by the integrator's
// direct-lighting shortcut
func (s *Scene) Lights() []geometry.Sphere {
	var lights []geometry.Sphere
	for _, obj := range s.Objects {
		if _, ok := obj.Material.(*material.Light); ok {
			lights = append(lights, obj)
		}
	}
	return lights
}

// Validate checks the scene for configuration errors a render cannot
// recover from. Zero samples per pixel is clamped rather than rejected.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", s.Width, s.Height)
	}
	if s.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", s.MaxDepth)
	}
	if s.Camera == nil {
		return fmt.Errorf("scene has no camera")
	}
	if s.SamplesPerPixel < 1 {
		s.SamplesPerPixel = 1
	}
	return nil
}

// NewDemoScene builds the earth-and-moon turntable scene. rot in [0, 1)
// orbits the camera and rotates the textures by one full turn.
func NewDemoScene(rot float64) (*Scene, error) {
	earthImg, err := loaders.LoadImage("data/earth.jpg")
	if err != nil {
		return nil, err
	}
	moonImg, err := loaders.LoadImage("data/moon.jpg")
	if err != nil {
		return nil, err
	}

	white := core.NewVec3(1, 1, 1)
	earth := material.NewTexture(white, earthImg.Pixels, earthImg.Width, earthImg.Height, rot, "data/earth.jpg")
	moon := material.NewTexture(white, moonImg.Pixels, moonImg.Width, moonImg.Height, rot, "data/moon.jpg")

	objects := []geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, earth),
		geometry.NewSphere(core.NewVec3(-1, 0.2, -1), 0.1, moon),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0)),
		geometry.NewSphere(core.NewVec3(0, 16, 20), 15, material.NewLight()),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.1)),
		geometry.NewSphere(core.NewVec3(-1.2, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-1.2, 0, -1), -0.45, material.NewDielectric(1.5)),
	}

	camera := geometry.NewCamera(
		core.NewVec3(
			-2.0-0.5*math.Cos(rot*2*math.Pi),
			1.0+0.5*math.Sin(rot*2*math.Pi),
			1.0,
		),
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		50,
		800.0/600.0,
	)

	return &Scene{
		Width:           800,
		Height:          600,
		SamplesPerPixel: 4,
		MaxDepth:        50,
		Sky:             NewDefaultSky(),
		Camera:          camera,
		Objects:         objects,
	}, nil
}

// NewCoverScene builds the classic random-sphere field: a diffuse ground,
// a grid of small random spheres and three large feature spheres
func NewCoverScene(rng *rand.Rand) *Scene {
	objects := []geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(
				float64(a)+0.9*rng.Float64(),
				0.2,
				float64(b)+0.9*rng.Float64(),
			)
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() < 0.9 {
				continue
			}

			var mat core.Material
			switch chooseMat := rng.Float64(); {
			case chooseMat < 0.8:
				albedo := core.NewVec3(
					rng.Float64()*rng.Float64(),
					rng.Float64()*rng.Float64(),
					rng.Float64()*rng.Float64(),
				)
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					0.5*(1+rng.Float64()),
					0.5*(1+rng.Float64()),
					0.5*(1+rng.Float64()),
				)
				mat = material.NewMetal(albedo, 0.5*rng.Float64())
			default:
				mat = material.NewDielectric(1.5)
			}
			objects = append(objects, geometry.NewSphere(center, 0.2, mat))
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)

	camera := geometry.NewCamera(
		core.NewVec3(13, 2, 3),
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 1, 0),
		20,
		800.0/600.0,
	)

	return &Scene{
		Width:           800,
		Height:          600,
		SamplesPerPixel: 64,
		MaxDepth:        50,
		Sky:             NewDefaultSky(),
		Camera:          camera,
		Objects:         objects,
	}
}
