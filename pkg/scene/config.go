package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dps/go-raytracer/pkg/core"
	"github.com/dps/go-raytracer/pkg/geometry"
	"github.com/dps/go-raytracer/pkg/loaders"
	"github.com/dps/go-raytracer/pkg/material"
)

// The JSON scene format uses an externally tagged material union, e.g.
// {"Lambertian":{"albedo":[0.8,0.3,0.3]}}, and stores texture pixel buffers
// as file paths that are decoded at load time.

type sceneConfig struct {
	Width           int              `json:"width"`
	Height          int              `json:"height"`
	SamplesPerPixel int              `json:"samples_per_pixel"`
	MaxDepth        int              `json:"max_depth"`
	Sky             *skyConfig       `json:"sky"`
	Camera          *geometry.Camera `json:"camera"`
	Objects         []sphereConfig   `json:"objects"`
}

// skyConfig serializes the sky texture as its source path; an empty string
// means the gradient sky
type skyConfig struct {
	Texture string `json:"texture"`
}

type sphereConfig struct {
	Center   core.Vec3      `json:"center"`
	Radius   float64        `json:"radius"`
	Material materialConfig `json:"material"`
}

type materialConfig struct {
	Lambertian *lambertianConfig `json:"Lambertian,omitempty"`
	Metal      *metalConfig      `json:"Metal,omitempty"`
	Glass      *glassConfig      `json:"Glass,omitempty"`
	Texture    *textureConfig    `json:"Texture,omitempty"`
	Light      *lightConfig      `json:"Light,omitempty"`
}

type lambertianConfig struct {
	Albedo [3]float64 `json:"albedo"`
}

type metalConfig struct {
	Albedo [3]float64 `json:"albedo"`
	Fuzz   float64    `json:"fuzz"`
}

type glassConfig struct {
	IndexOfRefraction float64 `json:"index_of_refraction"`
}

type textureConfig struct {
	Albedo  [3]float64 `json:"albedo"`
	Pixels  string     `json:"pixels"`
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	HOffset float64    `json:"h_offset"`
}

type lightConfig struct{}

// LoadFile reads and decodes a JSON scene file, including any referenced
// texture images
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return FromJSON(data)
}

// FromJSON decodes a JSON scene config
func FromJSON(data []byte) (*Scene, error) {
	s := &Scene{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return s, nil
}

// UnmarshalJSON implements json.Unmarshaler for Scene
func (s *Scene) UnmarshalJSON(data []byte) error {
	var cfg sceneConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}

	s.Width = cfg.Width
	s.Height = cfg.Height
	s.SamplesPerPixel = cfg.SamplesPerPixel
	s.MaxDepth = cfg.MaxDepth
	s.Camera = cfg.Camera

	if cfg.Sky != nil {
		if cfg.Sky.Texture == "" {
			s.Sky = NewDefaultSky()
		} else {
			sky, err := NewTexturedSky(cfg.Sky.Texture)
			if err != nil {
				return err
			}
			s.Sky = sky
		}
	}

	s.Objects = make([]geometry.Sphere, 0, len(cfg.Objects))
	for i, obj := range cfg.Objects {
		mat, err := obj.Material.build()
		if err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
		s.Objects = append(s.Objects, geometry.NewSphere(obj.Center, obj.Radius, mat))
	}
	return nil
}

// MarshalJSON implements json.Marshaler for Scene
func (s *Scene) MarshalJSON() ([]byte, error) {
	cfg := sceneConfig{
		Width:           s.Width,
		Height:          s.Height,
		SamplesPerPixel: s.SamplesPerPixel,
		MaxDepth:        s.MaxDepth,
		Camera:          s.Camera,
	}

	if s.Sky != nil {
		cfg.Sky = &skyConfig{}
		if s.Sky.Texture != nil {
			cfg.Sky.Texture = s.Sky.Texture.Path
		}
	}

	cfg.Objects = make([]sphereConfig, 0, len(s.Objects))
	for i, obj := range s.Objects {
		mc, err := describeMaterial(obj.Material)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		cfg.Objects = append(cfg.Objects, sphereConfig{
			Center:   obj.Center,
			Radius:   obj.Radius,
			Material: mc,
		})
	}
	return json.Marshal(cfg)
}

// build converts a decoded material config into a material, loading texture
// images from disk
func (mc materialConfig) build() (core.Material, error) {
	switch {
	case mc.Lambertian != nil:
		return material.NewLambertian(vec(mc.Lambertian.Albedo)), nil
	case mc.Metal != nil:
		return material.NewMetal(vec(mc.Metal.Albedo), mc.Metal.Fuzz), nil
	case mc.Glass != nil:
		return material.NewDielectric(mc.Glass.IndexOfRefraction), nil
	case mc.Texture != nil:
		img, err := loaders.LoadImage(mc.Texture.Pixels)
		if err != nil {
			return nil, fmt.Errorf("failed to load texture: %w", err)
		}
		return material.NewTexture(
			vec(mc.Texture.Albedo), img.Pixels, img.Width, img.Height,
			mc.Texture.HOffset, mc.Texture.Pixels,
		), nil
	case mc.Light != nil:
		return material.NewLight(), nil
	}
	return nil, fmt.Errorf("unknown material variant")
}

// describeMaterial converts a material back into its tagged config form
func describeMaterial(m core.Material) (materialConfig, error) {
	switch mat := m.(type) {
	case *material.Lambertian:
		return materialConfig{Lambertian: &lambertianConfig{Albedo: arr(mat.Albedo)}}, nil
	case *material.Metal:
		return materialConfig{Metal: &metalConfig{Albedo: arr(mat.Albedo), Fuzz: mat.Fuzz}}, nil
	case *material.Dielectric:
		return materialConfig{Glass: &glassConfig{IndexOfRefraction: mat.RefractiveIndex}}, nil
	case *material.Texture:
		return materialConfig{Texture: &textureConfig{
			Albedo:  arr(mat.Albedo),
			Pixels:  mat.Path,
			Width:   mat.Width,
			Height:  mat.Height,
			HOffset: mat.HOffset,
		}}, nil
	case *material.Light:
		return materialConfig{Light: &lightConfig{}}, nil
	}
	return materialConfig{}, fmt.Errorf("unknown material type %T", m)
}

func vec(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}

func arr(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
