package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray.
	// Returns (radiance, number of surface hits on the path).
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) (core.Vec3, int)
}
