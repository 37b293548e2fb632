package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleCosineHemisphere returns a cosine-weighted direction in the local frame where +Z is the normal.
// sample.X picks the radius (r = sqrt(u)) and sample.Y the azimuth.
func SampleCosineHemisphere(sample Vec2) Vec3 {
	r := math.Sqrt(sample.X)
	theta := 2.0 * math.Pi * sample.Y
	return Vec3{
		X: r * math.Cos(theta),
		Y: r * math.Sin(theta),
		Z: math.Sqrt(math.Max(0, 1.0-sample.X)),
	}
}

// ToWorld rotates a local-frame direction into the frame whose Z axis is normal
func ToWorld(local, normal Vec3) Vec3 {
	u, v := normal.OrthonormalBasis()
	return u.Multiply(local.X).Add(v.Multiply(local.Y)).Add(normal.Multiply(local.Z))
}
