package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// Epsilon is the minimum hit distance; closer hits are treated as self-intersections
const Epsilon = 1e-6

// ShapeKind tags the concrete variant of a Shape
type ShapeKind int

const (
	KindSphere ShapeKind = iota + 1
	KindPlane
)

func (k ShapeKind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	default:
		return "unknown"
	}
}

// Shape is a surface that can be hit by rays. The set of shapes is closed:
// only *Sphere and *Plane implement it.
type Shape interface {
	// Intersect returns the nearest hit distance greater than Epsilon, or 0 for a miss
	Intersect(ray core.Ray) float64
	// Normal returns the outward unit normal at a point on the surface
	Normal(point core.Vec3) core.Vec3
	Kind() ShapeKind

	sealed()
}
