package renderer

import (
	"context"
	"image"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major over the tile grid
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Random *rand.Rand      // Tile-specific random generator for deterministic results
}

// NewTile creates a tile whose random stream is seeded with seed + id
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(seed + int64(id))),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}

// tileGridSize returns the number of tiles NewTileGrid creates for an image
func tileGridSize(width, height, tileSize int) int {
	return ((width + tileSize - 1) / tileSize) * ((height + tileSize - 1) / tileSize)
}

// renderTile traces samples rays per pixel inside the tile's bounds and adds them into fb.
// Tiles never overlap, so concurrent calls on distinct tiles are safe.
func (rt *Raytracer) renderTile(ctx context.Context, tile *Tile, fb *Framebuffer, samples int) (RenderStats, error) {
	var stats RenderStats
	sampler := core.NewRandomSampler(tile.Random)

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			color, pixelStats := rt.samplePixel(i, j, samples, sampler)
			fb.Set(i, j, fb.At(i, j).Add(color))
			stats.addPixel(pixelStats)
		}
	}

	return stats, nil
}
