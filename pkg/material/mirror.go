package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// scatterSpecular reflects the ray perfectly. Mirrors do not tint the reflection.
func (m Material) scatterSpecular(rayIn core.Ray, hit SurfaceInteraction) ScatterResult {
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflect(rayIn.Direction, hit.Normal).Normalize()),
		Attenuation: core.NewVec3(1, 1, 1),
	}
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
