package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of camera rays traced
	TotalDepth   int           // Surface hits summed over every path
	AverageDepth float64       // Average surface hits per camera ray
	MaxDepth     int           // Longest path seen
	Duration     time.Duration // Wall-clock render time
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	SampleCount int // Number of samples taken
	TotalDepth  int // Surface hits summed over the pixel's paths
	MaxDepth    int // Longest path for this pixel
}

// AddSample records one camera path of the given length
func (ps *PixelStats) AddSample(depth int) {
	ps.SampleCount++
	ps.TotalDepth += depth
	ps.MaxDepth = max(ps.MaxDepth, depth)
}

// addPixel folds a pixel's statistics into the totals
func (rs *RenderStats) addPixel(ps PixelStats) {
	rs.TotalPixels++
	rs.TotalSamples += ps.SampleCount
	rs.TotalDepth += ps.TotalDepth
	rs.MaxDepth = max(rs.MaxDepth, ps.MaxDepth)
}

// merge folds another set of totals into these
func (rs *RenderStats) merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.TotalDepth += other.TotalDepth
	rs.MaxDepth = max(rs.MaxDepth, other.MaxDepth)
}

// finalize calculates derived statistics once every pixel is counted
func (rs *RenderStats) finalize(duration time.Duration) {
	if rs.TotalSamples > 0 {
		rs.AverageDepth = float64(rs.TotalDepth) / float64(rs.TotalSamples)
	}
	rs.Duration = duration
}
