package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// PathTracingIntegrator implements unidirectional path tracing with Russian roulette
type PathTracingIntegrator struct {
	config core.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config core.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single camera ray.
//
// The recursive estimator L(d) = w·Le + w·A·L(d+1) is evaluated front to back:
// throughput carries the product of every earlier w·A, so each vertex adds
// throughput·w·Le and the loop never recurses.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) (core.Vec3, int) {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	hits := 0
	for depth := 0; depth < pt.config.MaxDepth; depth++ {
		terminate, weight := pt.applyRussianRoulette(depth, sampler)
		if terminate {
			break
		}

		hit, isHit := s.Intersect(ray)
		if !isHit {
			// No environment light
			break
		}
		hits++

		point := ray.At(hit.T)
		interaction := material.SurfaceInteraction{
			Point:  point,
			Normal: hit.Surface.Shape.Normal(point),
			T:      hit.T,
		}
		mat := hit.Surface.Material

		// Emitted light is weighted by this vertex's roulette compensation
		radiance = radiance.Add(throughput.MultiplyVec(mat.Emitted()).Multiply(weight))

		scatter, didScatter := mat.Scatter(ray, interaction, sampler)
		if !didScatter {
			break
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation).Multiply(weight)
		ray = scatter.Scattered
	}

	return radiance, hits
}

// applyRussianRoulette decides whether the path ends at this depth.
// Returns (shouldTerminate, compensationFactor).
func (pt *PathTracingIntegrator) applyRussianRoulette(depth int, sampler core.Sampler) (bool, float64) {
	if depth < pt.config.RouletteDepth {
		return false, 1.0
	}

	if sampler.Get1D() >= pt.config.RouletteSurvival {
		return true, 0.0
	}

	// Survivors are scaled by the inverse survival probability to stay unbiased
	return false, 1.0 / pt.config.RouletteSurvival
}
