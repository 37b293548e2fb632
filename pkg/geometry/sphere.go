package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) float64 {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.LengthSquared()
	if a == 0 {
		return 0
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	if root := (-halfB - sqrtD) / a; root > Epsilon {
		return root
	}
	// Origin inside the sphere (or on its surface): use the far side
	if root := (-halfB + sqrtD) / a; root > Epsilon {
		return root
	}
	return 0
}

// Normal returns the outward normal (from center to point)
func (s *Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Divide(s.Radius)
}

// Kind returns KindSphere
func (s *Sphere) Kind() ShapeKind { return KindSphere }

func (s *Sphere) sealed() {}
