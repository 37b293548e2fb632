package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Vector is a JSON-friendly [x, y, z] triple
type Vector [3]float64

// Vec3 converts the triple to a core.Vec3
func (v Vector) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Descriptor describes one primitive of a scene
type Descriptor struct {
	Type            string  `json:"type"`                      // "sphere" or "plane"
	Center          Vector  `json:"center,omitempty"`          // Sphere center
	Radius          float64 `json:"radius,omitempty"`          // Sphere radius
	Normal          Vector  `json:"normal,omitempty"`          // Plane normal, need not be normalized
	Distance        float64 `json:"distance,omitempty"`        // Plane signed distance to origin
	Color           Vector  `json:"color"`                     // Base color, 0-255 scale, not clamped
	Material        int     `json:"material"`                  // 1 diffuse, 2 specular, 3 refractive
	Emission        float64 `json:"emission,omitempty"`        // 0 for non-emissive surfaces
	RefractiveIndex float64 `json:"refractiveIndex,omitempty"` // Refractive materials only
}

// Surface builds and validates the surface described by d
func (d Descriptor) Surface() (Surface, error) {
	mat := material.Material{
		Kind:            material.Kind(d.Material),
		Color:           d.Color.Vec3(),
		Emission:        d.Emission,
		RefractiveIndex: d.RefractiveIndex,
	}

	var shape geometry.Shape
	switch d.Type {
	case geometry.KindSphere.String():
		shape = geometry.NewSphere(d.Center.Vec3(), d.Radius)
	case geometry.KindPlane.String():
		shape = geometry.NewPlane(d.Normal.Vec3(), d.Distance)
	default:
		return Surface{}, fmt.Errorf("%w: unknown primitive type %q", ErrInvalidSurface, d.Type)
	}

	surface := Surface{Shape: shape, Material: mat}
	if err := validateSurface(surface); err != nil {
		return Surface{}, err
	}
	return surface, nil
}

// FromDescriptors builds a scene from an ordered descriptor list, keeping the list order
func FromDescriptors(descriptors []Descriptor) (*Scene, error) {
	s := New()
	for i, d := range descriptors {
		surface, err := d.Surface()
		if err != nil {
			return nil, fmt.Errorf("descriptor %d (%s): %w", i, d.Type, err)
		}
		s.Surfaces = append(s.Surfaces, surface)
	}
	return s, nil
}
