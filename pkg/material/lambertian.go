package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseScale is the fixed BRDF normalization applied to diffuse bounces
const DiffuseScale = 0.1

// scatterDiffuse samples a cosine-weighted direction around the normal facing the incoming ray
func (m Material) scatterDiffuse(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) ScatterResult {
	// Back-face hits build the basis on the flipped normal rather than the outward one,
	// so the bounce stays on the ray's side of the surface
	normal := hit.FaceNormal(rayIn.Direction)

	local := core.SampleCosineHemisphere(sampler.Get2D())
	direction := core.ToWorld(local, normal)

	cosTheta := direction.Dot(normal)
	if cosTheta < 0 {
		cosTheta = 0
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Color.Multiply(cosTheta * DiffuseScale),
	}
}
