package renderer

import (
	"context"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Raytracer renders a scene into a framebuffer
type Raytracer struct {
	scene      *scene.Scene
	config     core.SamplingConfig
	camera     *Camera
	integrator integrator.Integrator
	pool       *WorkerPool
	logger     core.Logger
	onTile     func(TileCompletionResult)
}

// TileCompletionResult describes a finished tile
type TileCompletionResult struct {
	Tile        *Tile
	Framebuffer *Framebuffer // Only the tile's bounds are final for this pass
	Scale       float64      // Display factor for Framebuffer values during a partial pass
	PassNumber  int          // 1-based
	TotalPasses int
	TileNumber  int // Completion order within the pass, 1-based
	TotalTiles  int
}

// Image converts the finished tile to an 8-bit image with its origin at (0, 0)
func (r TileCompletionResult) Image() *image.RGBA {
	return r.Framebuffer.subImage(r.Tile.Bounds, r.Scale)
}

// passInfo describes the share of the per-pixel samples one pass over the tiles adds
type passInfo struct {
	number  int     // 1-based
	total   int     // Number of passes in the render
	samples int     // Samples per pixel added by this pass
	scale   float64 // SamplesPerPixel / cumulative samples after this pass
}

// SetTileCallback registers fn to run after each tile completes.
// It is called from worker goroutines and must be safe for concurrent use.
func (rt *Raytracer) SetTileCallback(fn func(TileCompletionResult)) {
	rt.onTile = fn
}

// NewRaytracer creates a raytracer using the scene's camera and sampling configuration
func NewRaytracer(s *scene.Scene, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	config := s.SamplingConfig
	return &Raytracer{
		scene:      s,
		config:     config,
		camera:     NewCamera(s.Camera.Origin, config.Width, config.Height, config.HorizontalFOV),
		integrator: integrator.NewPathTracingIntegrator(config),
		pool:       NewWorkerPool(config.NumWorkers),
		logger:     logger,
	}
}

// RenderPixel traces SamplesPerPixel jittered camera rays through pixel (i, j).
// Each sample is scaled by 1/SamplesPerPixel before it is added to the pixel.
func (rt *Raytracer) RenderPixel(i, j int, sampler core.Sampler) (core.Vec3, PixelStats) {
	return rt.samplePixel(i, j, rt.config.SamplesPerPixel, sampler)
}

// samplePixel traces n camera rays through pixel (i, j), each weighted by 1/SamplesPerPixel
func (rt *Raytracer) samplePixel(i, j, n int, sampler core.Sampler) (core.Vec3, PixelStats) {
	var stats PixelStats
	pixel := core.Vec3{}
	scale := 1.0 / float64(rt.config.SamplesPerPixel)

	for s := 0; s < n; s++ {
		ray := rt.camera.GetRay(i, j, sampler)
		color, depth := rt.integrator.RayColor(ray, rt.scene, sampler)
		pixel = pixel.Add(color.Multiply(scale))
		stats.AddSample(depth)
	}

	return pixel, stats
}

// Render renders the whole image on a pool of tile workers.
// The result depends only on the scene and its seed, not on the worker count.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	if err := rt.scene.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render: %w", err)
	}

	start := time.Now()
	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize, rt.config.Seed)

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel: %d tiles on %d workers\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, len(tiles), rt.pool.GetNumWorkers())

	stats, err := rt.renderTiles(ctx, fb, tiles, passInfo{number: 1, total: 1, samples: rt.config.SamplesPerPixel, scale: 1})
	if err != nil {
		rt.logger.Printf("Rendering stopped: %v\n", err)
		return nil, RenderStats{}, err
	}
	stats.finalize(time.Since(start))

	rt.logger.Printf("Render completed in %v (%d samples, average depth %.2f, max depth %d)\n",
		stats.Duration, stats.TotalSamples, stats.AverageDepth, stats.MaxDepth)

	return fb, stats, nil
}

// renderTiles adds pass.samples samples per pixel to fb over every tile and returns the merged stats
func (rt *Raytracer) renderTiles(ctx context.Context, fb *Framebuffer, tiles []*Tile, pass passInfo) (RenderStats, error) {
	// One slot per tile, so workers never share a stats value
	tileStats := make([]RenderStats, len(tiles))
	var completed atomic.Int64
	total := int64(len(tiles))

	err := rt.pool.Run(ctx, tiles, func(ctx context.Context, tile *Tile) error {
		stats, err := rt.renderTile(ctx, tile, fb, pass.samples)
		if err != nil {
			return err
		}
		tileStats[tile.ID] = stats

		done := completed.Add(1)
		if pass.total == 1 && done*10/total != (done-1)*10/total {
			rt.logger.Printf("%d/%d tiles complete\n", done, total)
		}
		if rt.onTile != nil {
			rt.onTile(TileCompletionResult{
				Tile:        tile,
				Framebuffer: fb,
				Scale:       pass.scale,
				PassNumber:  pass.number,
				TotalPasses: pass.total,
				TileNumber:  int(done),
				TotalTiles:  len(tiles),
			})
		}
		return nil
	})
	if err != nil {
		return RenderStats{}, err
	}

	var stats RenderStats
	for _, ts := range tileStats {
		stats.merge(ts)
	}
	return stats, nil
}
