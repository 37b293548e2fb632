package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestScene_Intersect_NearestNotFirst(t *testing.T) {
	s := New()
	far := material.NewDiffuse(core.NewVec3(1, 0, 0))
	near := material.NewDiffuse(core.NewVec3(0, 1, 0))

	// The farther sphere is listed first
	s.AddSphere(core.NewVec3(0, 0, -10), 1, far)
	s.AddSphere(core.NewVec3(0, 0, -4), 1, near)
	s.AddPlane(core.NewVec3(0, 0, 1), 20, far) // back wall at z = -20

	hit, ok := s.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Surface != &s.Surfaces[1] {
		t.Errorf("Expected nearer sphere (index 1), got %+v", hit.Surface)
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected t=3, got %f", hit.T)
	}
}

func TestScene_Intersect_NoHit(t *testing.T) {
	s := New()
	s.AddSphere(core.NewVec3(0, 0, -5), 1, material.NewDiffuse(core.NewVec3(1, 1, 1)))

	if hit, ok := s.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))); ok {
		t.Errorf("Expected no hit, got %+v", hit)
	}

	empty := New()
	if _, ok := empty.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))); ok {
		t.Error("Expected no hit in empty scene")
	}
}

func TestScene_Intersect_VeryCloseHit(t *testing.T) {
	s := New()
	// A sphere whose surface is just beyond Epsilon from the ray origin
	gap := 10 * geometry.Epsilon
	s.AddSphere(core.NewVec3(0, 0, -1-gap), 1, material.NewDiffuse(core.NewVec3(1, 1, 1)))

	hit, ok := s.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected the close hit to be captured")
	}
	if math.Abs(hit.T-gap) > 1e-9 {
		t.Errorf("Expected t=%g, got %g", gap, hit.T)
	}
}

func TestScene_Validate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Scene
		wantErr error
	}{
		{"default scene", NewDefaultScene, nil},
		{"corridor scene", NewCorridorScene, nil},
		{
			"negative radius",
			func() *Scene {
				s := New()
				s.AddSphere(core.NewVec3(0, 0, 0), -1, material.NewDiffuse(core.NewVec3(1, 1, 1)))
				return s
			},
			ErrInvalidSurface,
		},
		{
			"zero plane normal",
			func() *Scene {
				s := New()
				s.AddPlane(core.NewVec3(0, 0, 0), 1, material.NewDiffuse(core.NewVec3(1, 1, 1)))
				return s
			},
			ErrInvalidSurface,
		},
		{
			"bad material",
			func() *Scene {
				s := New()
				s.AddSphere(core.NewVec3(0, 0, 0), 1, material.NewRefractive(core.NewVec3(1, 1, 1), 0))
				return s
			},
			material.ErrInvalidMaterial,
		},
		{
			"bad config",
			func() *Scene {
				s := New()
				s.SamplingConfig.SamplesPerPixel = 0
				return s
			},
			core.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultScene_Contents(t *testing.T) {
	s := NewDefaultScene()

	counts := s.GetPrimitiveCount()
	if counts[geometry.KindSphere] != 4 || counts[geometry.KindPlane] != 6 {
		t.Errorf("Expected 4 spheres and 6 planes, got %v", counts)
	}

	emissive := 0
	for _, surface := range s.Surfaces {
		if surface.Material.IsEmissive() {
			emissive++
		}
	}
	if emissive != 1 {
		t.Errorf("Expected exactly one light, got %d", emissive)
	}

	if s.Camera.Origin != (core.Vec3{}) {
		t.Errorf("Expected camera at origin, got %v", s.Camera.Origin)
	}

	// Every ray from the camera must hit something: the box is closed
	directions := []core.Vec3{
		core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0),
		core.NewVec3(-1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(1, 1, 1).Normalize(),
	}
	for _, dir := range directions {
		if _, ok := s.Intersect(core.NewRay(s.Camera.Origin, dir)); !ok {
			t.Errorf("Expected ray %v to hit the box", dir)
		}
	}
}
