package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Plane represents an infinite plane: all points p with n·p + Distance = 0.
// The normal is unexported so it can only be set, normalized, through NewPlane.
type Plane struct {
	normal   core.Vec3
	Distance float64 // Signed distance to the origin along the normal
}

// NewPlane creates a new plane
func NewPlane(normal core.Vec3, distance float64) *Plane {
	return &Plane{
		normal:   normal.Normalize(),
		Distance: distance,
	}
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) float64 {
	denominator := p.normal.Dot(ray.Direction)

	// Ray parallel to the plane
	if denominator == 0 {
		return 0
	}

	t := -(p.normal.Dot(ray.Origin) + p.Distance) / denominator
	if t <= Epsilon {
		return 0
	}
	return t
}

// Normal returns the plane normal, which is the same everywhere on the plane
func (p *Plane) Normal(point core.Vec3) core.Vec3 {
	return p.normal
}

// Kind returns KindPlane
func (p *Plane) Kind() ShapeKind { return KindPlane }

func (p *Plane) sealed() {}
