package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrInvalidSurface is returned when a surface cannot be added to a scene
var ErrInvalidSurface = errors.New("invalid surface")

// Surface pairs a shape with its material
type Surface struct {
	Shape    geometry.Shape
	Material material.Material
}

// Intersection is the nearest hit found by Scene.Intersect
type Intersection struct {
	T       float64  // Distance along the ray
	Surface *Surface // Surface that was hit
}

// CameraConfig places the camera. The camera looks down -Z.
type CameraConfig struct {
	Origin core.Vec3
}

// Scene contains all the elements needed for rendering. It is read-only once rendering starts.
type Scene struct {
	Surfaces       []Surface
	Camera         CameraConfig
	SamplingConfig core.SamplingConfig
}

// New creates an empty scene with the default sampling configuration
func New() *Scene {
	return &Scene{
		Surfaces:       make([]Surface, 0),
		SamplingConfig: core.DefaultSamplingConfig(),
	}
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.Surfaces = append(s.Surfaces, Surface{Shape: geometry.NewSphere(center, radius), Material: mat})
}

// AddPlane appends a plane n·p + distance = 0 to the scene
func (s *Scene) AddPlane(normal core.Vec3, distance float64, mat material.Material) {
	s.Surfaces = append(s.Surfaces, Surface{Shape: geometry.NewPlane(normal, distance), Material: mat})
}

// Intersect finds the nearest surface hit by the ray
func (s *Scene) Intersect(ray core.Ray) (Intersection, bool) {
	var closest Intersection
	found := false

	for i := range s.Surfaces {
		t := s.Surfaces[i].Shape.Intersect(ray)
		if t <= geometry.Epsilon {
			continue
		}
		if !found || t < closest.T {
			closest = Intersection{T: t, Surface: &s.Surfaces[i]}
			found = true
		}
	}

	return closest, found
}

// Validate checks every surface and the sampling configuration
func (s *Scene) Validate() error {
	if err := s.SamplingConfig.Validate(); err != nil {
		return err
	}
	for i, surface := range s.Surfaces {
		if err := validateSurface(surface); err != nil {
			return fmt.Errorf("surface %d: %w", i, err)
		}
	}
	return nil
}

func validateSurface(surface Surface) error {
	switch shape := surface.Shape.(type) {
	case *geometry.Sphere:
		if shape.Radius <= 0 {
			return fmt.Errorf("%w: sphere radius %.4f must be positive", ErrInvalidSurface, shape.Radius)
		}
	case *geometry.Plane:
		if shape.Normal(core.Vec3{}).IsZero() {
			return fmt.Errorf("%w: plane normal has zero length", ErrInvalidSurface)
		}
	case nil:
		return fmt.Errorf("%w: missing shape", ErrInvalidSurface)
	}
	return surface.Material.Validate()
}

// GetPrimitiveCount returns the number of surfaces of each kind
func (s *Scene) GetPrimitiveCount() map[geometry.ShapeKind]int {
	counts := make(map[geometry.ShapeKind]int)
	for _, surface := range s.Surfaces {
		counts[surface.Shape.Kind()]++
	}
	return counts
}
