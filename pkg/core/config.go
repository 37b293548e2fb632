package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned when a sampling configuration cannot be rendered
var ErrInvalidConfig = errors.New("invalid sampling config")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width            int     // Image width in pixels
	Height           int     // Image height in pixels
	HorizontalFOV    float64 // Horizontal field of view in radians
	SamplesPerPixel  int     // Number of camera rays per pixel
	RouletteDepth    int     // Depth at which Russian roulette starts
	RouletteSurvival float64 // Probability that a path survives a roulette test
	MaxDepth         int     // Hard cap on path length
	Seed             int64   // Base seed for per-tile random streams
	TileSize         int     // Tile edge length in pixels
	NumWorkers       int     // Number of parallel workers (0 = use CPU count)
}

// DefaultSamplingConfig returns the reference configuration
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:            800,
		Height:           800,
		HorizontalFOV:    math.Pi / 4,
		SamplesPerPixel:  8,
		RouletteDepth:    5,
		RouletteSurvival: 0.9,
		MaxDepth:         128,
		Seed:             42,
		TileSize:         32,
		NumWorkers:       0,
	}
}

// Validate checks that the configuration describes a renderable image
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.HorizontalFOV <= 0 || c.HorizontalFOV >= math.Pi/2:
		return fmt.Errorf("%w: horizontal fov %.4f must be in (0, pi/2)", ErrInvalidConfig, c.HorizontalFOV)
	case float64(c.Height)/float64(c.Width)*c.HorizontalFOV >= math.Pi/2:
		return fmt.Errorf("%w: vertical fov for %dx%d exceeds pi/2", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.RouletteDepth < 0:
		return fmt.Errorf("%w: roulette depth %d", ErrInvalidConfig, c.RouletteDepth)
	case c.RouletteSurvival <= 0 || c.RouletteSurvival > 1:
		return fmt.Errorf("%w: roulette survival %.3f must be in (0, 1]", ErrInvalidConfig, c.RouletteSurvival)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d", ErrInvalidConfig, c.TileSize)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: worker count %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}
