package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ProgressiveConfig controls how the per-pixel samples are spread over passes
type ProgressiveConfig struct {
	InitialSamples int // Samples for the first, preview pass
	MaxPasses      int // Maximum number of passes
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		InitialSamples: 1,
		MaxPasses:      5,
	}
}

// ProgressiveRaytracer renders in several passes, each adding a share of SamplesPerPixel
// to every pixel. After the last pass the framebuffer holds the same estimator a
// single-pass render produces.
type ProgressiveRaytracer struct {
	raytracer *Raytracer // Base raytracer for actual rendering
	config    ProgressiveConfig
	logger    core.Logger
}

// PassResult contains the image after a pass
type PassResult struct {
	PassNumber      int
	TotalPasses     int
	SamplesPerPixel int          // Cumulative samples per pixel so far
	Framebuffer     *Framebuffer // Snapshot, already scaled to full brightness
	Stats           RenderStats  // Cumulative over all passes so far
	IsLast          bool
}

// NewProgressiveRaytracer creates a progressive raytracer for the scene
func NewProgressiveRaytracer(s *scene.Scene, config ProgressiveConfig, logger core.Logger) *ProgressiveRaytracer {
	raytracer := NewRaytracer(s, logger)
	return &ProgressiveRaytracer{
		raytracer: raytracer,
		config:    config,
		logger:    raytracer.logger,
	}
}

// SetTileCallback registers fn to run after each tile of each pass completes.
// It is called from worker goroutines and must be safe for concurrent use.
func (pr *ProgressiveRaytracer) SetTileCallback(fn func(TileCompletionResult)) {
	pr.raytracer.SetTileCallback(fn)
}

// initialSamples clamps the preview pass to [1, SamplesPerPixel]
func (pr *ProgressiveRaytracer) initialSamples() int {
	return max(1, min(pr.config.InitialSamples, pr.raytracer.config.SamplesPerPixel))
}

// TotalPasses returns the number of passes the render takes.
// Every pass adds at least one sample per pixel.
func (pr *ProgressiveRaytracer) TotalPasses() int {
	spp := pr.raytracer.config.SamplesPerPixel
	initial := pr.initialSamples()
	if pr.config.MaxPasses <= 1 || initial >= spp {
		return 1
	}
	return min(pr.config.MaxPasses, spp-initial+1)
}

// getSamplesForPass calculates the target total samples per pixel after a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	spp := pr.raytracer.config.SamplesPerPixel
	passes := pr.TotalPasses()

	if passNumber <= 0 {
		return 0
	}
	// The final pass always reaches SamplesPerPixel
	if passNumber >= passes {
		return spp
	}
	initial := pr.initialSamples()
	if passNumber == 1 {
		return initial
	}

	// Divide remaining samples evenly across remaining passes
	samplesPerPass := (spp - initial) / (passes - 1)
	return initial + (passNumber-1)*samplesPerPass
}

// passSeed gives every (pass, tile) pair its own random stream; pass 1 matches Render
func (pr *ProgressiveRaytracer) passSeed(passNumber int) int64 {
	cfg := pr.raytracer.config
	return cfg.Seed + int64((passNumber-1)*tileGridSize(cfg.Width, cfg.Height, cfg.TileSize))
}

// RenderProgressive renders every pass in a background goroutine.
// Each completed pass is sent on the first channel. Both channels are closed when rendering
// stops; the error channel yields the failure, if any, after the pass channel is drained.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(errChan)
		defer close(passChan)
		if err := pr.renderPasses(ctx, passChan); err != nil {
			pr.logger.Printf("Rendering stopped: %v\n", err)
			errChan <- err
		}
	}()

	return passChan, errChan
}

func (pr *ProgressiveRaytracer) renderPasses(ctx context.Context, passChan chan<- PassResult) error {
	rt := pr.raytracer
	if err := rt.scene.Validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	cfg := rt.config
	totalPasses := pr.TotalPasses()
	accum := NewFramebuffer(cfg.Width, cfg.Height)
	var stats RenderStats
	start := time.Now()

	pr.logger.Printf("Starting progressive rendering of %dx%d: %d passes up to %d samples/pixel on %d workers\n",
		cfg.Width, cfg.Height, totalPasses, cfg.SamplesPerPixel, rt.pool.GetNumWorkers())

	for pass := 1; pass <= totalPasses; pass++ {
		if err := ctx.Err(); err != nil {
			pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
			return err
		}

		passStart := time.Now()
		target := pr.getSamplesForPass(pass)
		info := passInfo{
			number:  pass,
			total:   totalPasses,
			samples: target - pr.getSamplesForPass(pass-1),
			scale:   float64(cfg.SamplesPerPixel) / float64(target),
		}
		tiles := NewTileGrid(cfg.Width, cfg.Height, cfg.TileSize, pr.passSeed(pass))

		passStats, err := rt.renderTiles(ctx, accum, tiles, info)
		if err != nil {
			return err
		}
		stats.merge(passStats)
		stats.TotalPixels = cfg.Width * cfg.Height
		stats.finalize(time.Since(start))

		pr.logger.Printf("Pass %d/%d completed in %v (%d samples/pixel)\n",
			pass, totalPasses, time.Since(passStart), target)

		result := PassResult{
			PassNumber:      pass,
			TotalPasses:     totalPasses,
			SamplesPerPixel: target,
			Framebuffer:     accum.Scaled(info.scale),
			Stats:           stats,
			IsLast:          pass == totalPasses,
		}
		select {
		case passChan <- result:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	pr.logger.Printf("Render completed in %v (%d samples, average depth %.2f, max depth %d)\n",
		stats.Duration, stats.TotalSamples, stats.AverageDepth, stats.MaxDepth)
	return nil
}
