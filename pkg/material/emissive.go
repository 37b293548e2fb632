package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// EmissionScale divides color*emission to give emitted radiance
const EmissionScale = 12.0

// Emitted returns the radiance the surface emits on its own
func (m Material) Emitted() core.Vec3 {
	if m.Emission == 0 {
		return core.Vec3{}
	}
	return m.Color.Multiply(m.Emission / EmissionScale)
}

// IsEmissive reports whether the material emits light
func (m Material) IsEmissive() bool {
	return m.Emission > 0
}
