package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RefractiveBoost is an empirical brightness multiplier applied to every dielectric bounce.
// It is not physically derived.
const RefractiveBoost = 1.15

// scatterRefractive chooses between Fresnel reflection and transmission
func (m Material) scatterRefractive(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) ScatterResult {
	direction := rayIn.Direction.Normalize()
	normal := hit.Normal
	index := m.RefractiveIndex

	r0 := (1 - index) / (1 + index)
	r0 = r0 * r0

	// Exiting the medium: flip the normal and keep the ratio n, entering uses 1/n
	ratio := index
	if normal.Dot(direction) > 0 {
		normal = normal.Negate()
	} else {
		ratio = 1.0 / index
	}

	cosIncident := -normal.Dot(direction)
	cosTransmittedSq := 1.0 - ratio*ratio*(1.0-cosIncident*cosIncident)

	var scattered core.Vec3
	if cosTransmittedSq > 0 && sampler.Get1D() > Reflectance(cosIncident, r0) {
		scattered = refract(direction, normal, ratio, cosIncident, cosTransmittedSq)
	} else {
		// Total internal reflection or Fresnel reflection
		scattered = reflect(direction, normal)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scattered.Normalize()),
		Attenuation: core.NewVec3(RefractiveBoost, RefractiveBoost, RefractiveBoost),
	}
}

// refract bends a unit direction through a surface whose normal faces against it
func refract(direction, normal core.Vec3, ratio, cosIncident, cosTransmittedSq float64) core.Vec3 {
	return direction.Multiply(ratio).Add(normal.Multiply(ratio*cosIncident - math.Sqrt(cosTransmittedSq)))
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation,
// given the cosine of the incident angle and the reflectance at normal incidence
func Reflectance(cosine, r0 float64) float64 {
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
