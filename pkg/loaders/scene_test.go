package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/google/go-cmp/cmp"
)

const boxScene = `{
  "camera": {"origin": [0, 0.5, 0]},
  "sampling": {"width": 64, "height": 48, "samplesPerPixel": 4, "seed": 7},
  "surfaces": [
    {"type": "sphere", "center": [0, 1.9, -3], "radius": 0.5, "color": [12, 12, 12], "material": 1, "emission": 10000},
    {"type": "sphere", "center": [2, -2, -3.7], "radius": 0.5, "color": [10, 10, 1], "material": 3, "refractiveIndex": 1.3},
    {"type": "plane", "normal": [0, 2, 0], "distance": 2.5, "color": [6, 6, 6], "material": 1}
  ]
}`

func TestParseScene(t *testing.T) {
	s, err := ParseScene(strings.NewReader(boxScene))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	if len(s.Surfaces) != 3 {
		t.Fatalf("Expected 3 surfaces, got %d", len(s.Surfaces))
	}
	counts := s.GetPrimitiveCount()
	if counts[geometry.KindSphere] != 2 || counts[geometry.KindPlane] != 1 {
		t.Errorf("Unexpected primitive counts: %v", counts)
	}

	light := s.Surfaces[0].Material
	if !light.IsEmissive() || light.Kind != material.Diffuse {
		t.Errorf("Expected emissive diffuse light, got %+v", light)
	}
	glass := s.Surfaces[1].Material
	if glass.Kind != material.Refractive || glass.RefractiveIndex != 1.3 {
		t.Errorf("Expected glass with index 1.3, got %+v", glass)
	}

	// Plane normals are normalized on load
	if n := s.Surfaces[2].Shape.Normal(core.Vec3{}); n != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected normalized plane normal, got %v", n)
	}

	if s.Camera.Origin != core.NewVec3(0, 0.5, 0) {
		t.Errorf("Expected camera origin override, got %v", s.Camera.Origin)
	}

	expected := core.DefaultSamplingConfig()
	expected.Width = 64
	expected.Height = 48
	expected.SamplesPerPixel = 4
	expected.Seed = 7
	if diff := cmp.Diff(expected, s.SamplingConfig); diff != "" {
		t.Errorf("Sampling config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScene_Defaults(t *testing.T) {
	s, err := ParseScene(strings.NewReader(`{"surfaces": []}`))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}
	if diff := cmp.Diff(core.DefaultSamplingConfig(), s.SamplingConfig); diff != "" {
		t.Errorf("Expected default sampling config (-want +got):\n%s", diff)
	}
	if s.Camera.Origin != (core.Vec3{}) {
		t.Errorf("Expected camera at origin, got %v", s.Camera.Origin)
	}
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error // nil means any error
	}{
		{"malformed json", `{"surfaces": [`, nil},
		{"unknown field", `{"surfaces": [], "lights": []}`, nil},
		{"unknown primitive", `{"surfaces": [{"type": "cube", "color": [1,1,1], "material": 1}]}`, scene.ErrInvalidSurface},
		{"negative radius", `{"surfaces": [{"type": "sphere", "radius": -1, "color": [1,1,1], "material": 1}]}`, scene.ErrInvalidSurface},
		{"zero plane normal", `{"surfaces": [{"type": "plane", "normal": [0,0,0], "color": [1,1,1], "material": 1}]}`, scene.ErrInvalidSurface},
		{"unknown material", `{"surfaces": [{"type": "sphere", "radius": 1, "color": [1,1,1], "material": 9}]}`, material.ErrInvalidMaterial},
		{"glass without index", `{"surfaces": [{"type": "sphere", "radius": 1, "color": [1,1,1], "material": 3}]}`, material.ErrInvalidMaterial},
		{"bad sampling", `{"sampling": {"samplesPerPixel": 0}, "surfaces": []}`, core.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(tt.input))
			if err == nil {
				t.Fatalf("Expected error")
			}
			if tt.expected != nil && !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.json")
	if err := os.WriteFile(path, []byte(boxScene), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	s, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if len(s.Surfaces) != 3 {
		t.Errorf("Expected 3 surfaces, got %d", len(s.Surfaces))
	}
}

func TestLoadScene_Errors(t *testing.T) {
	dir := t.TempDir()
	badPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badPath, []byte(`{"surfaces": [{"type": "cone"}]}`), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	tests := []struct {
		name     string
		filename string
		contains string
	}{
		{"empty name", "", "cannot be empty"},
		{"wrong extension", filepath.Join(dir, "scene.pbrt"), "only .json"},
		{"null byte", "scene\x00.json", "null bytes"},
		{"missing file", filepath.Join(dir, "missing.json"), "failed to open"},
		{"invalid content", badPath, "bad.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScene(tt.filename)
			if err == nil {
				t.Fatalf("Expected error for %q", tt.filename)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error containing %q, got %v", tt.contains, err)
			}
		})
	}
}

func TestIsSceneFile(t *testing.T) {
	tests := map[string]bool{
		"default":          false,
		"corridor":         false,
		"scenes/box.json":  true,
		"BOX.JSON":         true,
		"scenes/box.json5": false,
	}
	for name, expected := range tests {
		if got := IsSceneFile(name); got != expected {
			t.Errorf("IsSceneFile(%q) = %v, expected %v", name, got, expected)
		}
	}
}
