package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray, starting at the hit point
	Attenuation core.Vec3 // Multiplier applied to radiance arriving along Scattered
}

// SurfaceInteraction contains information about a ray-object intersection
type SurfaceInteraction struct {
	Point  core.Vec3 // Point of intersection
	Normal core.Vec3 // Outward surface normal at the intersection
	T      float64   // Parameter t along the ray
}

// FaceNormal returns the normal flipped, if needed, to face against the incoming direction
func (h SurfaceInteraction) FaceNormal(direction core.Vec3) core.Vec3 {
	if direction.Dot(h.Normal) > 0 {
		return h.Normal.Negate()
	}
	return h.Normal
}
