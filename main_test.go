package main

import (
	"flag"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/urfave/cli"
)

func TestCreateScene(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "one-light.json")
	content := `{"surfaces": [{"type": "sphere", "center": [0, 0, -3], "radius": 0.5, "color": [12, 12, 12], "material": 1, "emission": 100}]}`
	if err := os.WriteFile(sceneFile, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	tests := []struct {
		name          string
		sceneType     string
		expectError   bool
		expectedCount int
	}{
		// Built-in scenes
		{"default scene", "default", false, 10},
		{"corridor scene", "corridor", false, 2},

		// Scene files
		{"json scene file", sceneFile, false, 1},
		{"missing scene file", filepath.Join(dir, "missing.json"), true, 0},

		// Invalid scenes
		{"unknown scene", "nonexistent", true, 0},
		{"empty scene name", "", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if len(scene.Surfaces) != tt.expectedCount {
				t.Errorf("Expected %d surfaces, got %d", tt.expectedCount, len(scene.Surfaces))
			}
			if err := scene.Validate(); err != nil {
				t.Errorf("Scene should validate: %v", err)
			}
		})
	}
}

func newTestContext(t *testing.T, args []string) *cli.Context {
	t.Helper()
	app := cli.NewApp()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.Int("width", 0, "")
	set.Int("height", 0, "")
	set.Int("samples", 0, "")
	set.Int64("seed", 0, "")
	set.Int("workers", 0, "")
	set.Float64("fov", 0, "")
	if err := set.Parse(args); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}
	return cli.NewContext(app, set, nil)
}

func TestApplyFlags(t *testing.T) {
	scene, err := createScene("default")
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	defaults := scene.SamplingConfig

	applyFlags(newTestContext(t, []string{"--width", "64", "--samples", "3", "--fov", "30"}), scene)

	expected := defaults
	expected.Width = 64
	expected.SamplesPerPixel = 3
	expected.HorizontalFOV = math.Pi / 6
	if math.Abs(scene.SamplingConfig.HorizontalFOV-expected.HorizontalFOV) > 1e-12 {
		t.Errorf("Expected fov %f, got %f", expected.HorizontalFOV, scene.SamplingConfig.HorizontalFOV)
	}
	scene.SamplingConfig.HorizontalFOV = expected.HorizontalFOV
	if scene.SamplingConfig != expected {
		t.Errorf("Expected %+v, got %+v", expected, scene.SamplingConfig)
	}
}

func TestSavePNG(t *testing.T) {
	fb := renderer.NewFramebuffer(3, 2)
	fb.Set(1, 1, core.NewVec3(400, 128, -3))

	filename := filepath.Join(t.TempDir(), "nested", "render.png")
	if err := savePNG(filename, fb); err != nil {
		t.Fatalf("savePNG failed: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Output not written: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("Expected 3x2 image, got %v", img.Bounds())
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 255 || g>>8 != 128 || b>>8 != 0 {
		t.Errorf("Expected clamped (255,128,0), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}
