package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dps/go-raytracer/pkg/core"
	"github.com/dps/go-raytracer/pkg/geometry"
	"github.com/dps/go-raytracer/pkg/material"
	"github.com/dps/go-raytracer/pkg/renderer"
	"github.com/dps/go-raytracer/pkg/scene"
)

func smallTestScene() *scene.Scene {
	return &scene.Scene{
		Width:           100,
		Height:          100,
		SamplesPerPixel: 1,
		MaxDepth:        1,
		Sky:             scene.NewDefaultSky(),
		Camera: geometry.NewCamera(
			core.NewVec3(0, 0, 0),
			core.NewVec3(0, 0, -1),
			core.NewVec3(0, 1, 0),
			90,
			1.0,
		),
		Objects: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3))),
		},
	}
}

func TestRenderToFile(t *testing.T) {
	s := smallTestScene()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	pixels := renderer.NewRenderer(s).Render()
	if len(pixels) != 100*100*3 {
		t.Fatalf("Expected %d bytes, got %d", 100*100*3, len(pixels))
	}

	path := filepath.Join(t.TempDir(), "render.png")
	if err := renderer.WritePNG(path, pixels, s.Width, s.Height); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open rendered file: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode rendered file: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Errorf("Expected 100x100 image, got %v", img.Bounds())
	}
}

func TestBuildScene_CoverScene(t *testing.T) {
	s, err := buildScene("cover", 0)
	if err != nil {
		t.Fatalf("buildScene failed: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Cover scene invalid: %v", err)
	}
	// Ground plus feature spheres plus most of the 22x22 grid
	if len(s.Objects) < 400 {
		t.Errorf("Cover scene suspiciously small: %d objects", len(s.Objects))
	}
}

func TestBuildScene_FileScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	sceneJSON := `{
		"width": 20, "height": 20, "samples_per_pixel": 1, "max_depth": 2,
		"sky": {"texture": ""},
		"camera": {
			"look_from": {"x": 0, "y": 0, "z": 0},
			"look_at": {"x": 0, "y": 0, "z": -1},
			"vup": {"x": 0, "y": 1, "z": 0},
			"vfov": 90, "aspect": 1
		},
		"objects": [{
			"center": {"x": 0, "y": 0, "z": -1},
			"radius": 0.5,
			"material": {"Glass": {"index_of_refraction": 1.5}}
		}]
	}`
	if err := os.WriteFile(path, []byte(sceneJSON), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	s, err := buildScene(path, 0)
	if err != nil {
		t.Fatalf("buildScene failed: %v", err)
	}
	if s.Width != 20 || len(s.Objects) != 1 {
		t.Errorf("Scene not loaded correctly: %dx%d, %d objects", s.Width, s.Height, len(s.Objects))
	}
}

func TestApplyOverrides(t *testing.T) {
	s := smallTestScene()
	applyOverrides(s, 200, 0, 8)
	if s.Width != 200 {
		t.Errorf("Expected width override 200, got %d", s.Width)
	}
	if s.Height != 100 {
		t.Errorf("Expected height unchanged, got %d", s.Height)
	}
	if s.SamplesPerPixel != 8 {
		t.Errorf("Expected samples override 8, got %d", s.SamplesPerPixel)
	}
}
