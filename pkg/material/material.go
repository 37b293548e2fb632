package material

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidMaterial is returned by Validate for materials that cannot be rendered
var ErrInvalidMaterial = errors.New("invalid material")

// Kind selects how a surface scatters light. The numeric values are part of the scene descriptor format.
type Kind int

const (
	Diffuse    Kind = 1
	Specular   Kind = 2
	Refractive Kind = 3
)

func (k Kind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	case Refractive:
		return "refractive"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a material name ("diffuse", "specular"/"mirror", "refractive"/"glass") to a Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "diffuse", "lambertian":
		return Diffuse, nil
	case "specular", "mirror":
		return Specular, nil
	case "refractive", "glass", "dielectric":
		return Refractive, nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidMaterial, name)
	}
}

// Material holds the optical properties of a surface
type Material struct {
	Kind            Kind
	Color           core.Vec3 // Base color on the 0-255 scale, not clamped
	Emission        float64   // Emission intensity, 0 for surfaces that do not emit
	RefractiveIndex float64   // Only used by Refractive materials
}

// NewDiffuse creates a lambertian material
func NewDiffuse(color core.Vec3) Material {
	return Material{Kind: Diffuse, Color: color}
}

// NewSpecular creates a perfect mirror
func NewSpecular(color core.Vec3) Material {
	return Material{Kind: Specular, Color: color}
}

// NewRefractive creates a dielectric with the given index of refraction
func NewRefractive(color core.Vec3, refractiveIndex float64) Material {
	return Material{Kind: Refractive, Color: color, RefractiveIndex: refractiveIndex}
}

// WithEmission returns a copy of the material that emits light
func (m Material) WithEmission(emission float64) Material {
	m.Emission = emission
	return m
}

// Scatter picks an outgoing ray for the incoming ray at hit.
// It returns false if the material absorbs the ray.
func (m Material) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case Diffuse:
		return m.scatterDiffuse(rayIn, hit, sampler), true
	case Specular:
		return m.scatterSpecular(rayIn, hit), true
	case Refractive:
		return m.scatterRefractive(rayIn, hit, sampler), true
	default:
		return ScatterResult{}, false
	}
}

// Validate checks the material against the descriptor rules
func (m Material) Validate() error {
	switch m.Kind {
	case Diffuse, Specular:
	case Refractive:
		if m.RefractiveIndex <= 0 {
			return fmt.Errorf("%w: refractive index %.3f must be positive", ErrInvalidMaterial, m.RefractiveIndex)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidMaterial, int(m.Kind))
	}
	if m.Color.X < 0 || m.Color.Y < 0 || m.Color.Z < 0 {
		return fmt.Errorf("%w: negative color %v", ErrInvalidMaterial, m.Color)
	}
	if m.Emission < 0 {
		return fmt.Errorf("%w: negative emission %.3f", ErrInvalidMaterial, m.Emission)
	}
	return nil
}
