package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// JitterScale divides the random (2u-1) offset added to each image-plane coordinate
const JitterScale = 700.0

// Camera generates primary rays through an image plane at z = -1
type Camera struct {
	origin        core.Vec3
	width, height float64
	tanX, tanY    float64 // tan of the horizontal and vertical field of view
}

// NewCamera creates a pinhole camera at origin looking down -Z.
// The vertical field of view is derived from the aspect ratio as (height/width)·horizontalFOV.
func NewCamera(origin core.Vec3, width, height int, horizontalFOV float64) *Camera {
	verticalFOV := float64(height) / float64(width) * horizontalFOV
	return &Camera{
		origin: origin,
		width:  float64(width),
		height: float64(height),
		tanX:   math.Tan(horizontalFOV),
		tanY:   math.Tan(verticalFOV),
	}
}

// ImagePlane returns the un-jittered image-plane coordinates of pixel (i, j).
// Row 0 is the top of the image.
func (c *Camera) ImagePlane(i, j int) (x, y float64) {
	x = ((2*float64(i) - c.width) / c.width) * c.tanX
	y = -((2*float64(j) - c.height) / c.height) * c.tanY
	return x, y
}

// GetRay generates a jittered, normalized ray for pixel (i, j)
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	x, y := c.ImagePlane(i, j)
	x += (2*sampler.Get1D() - 1) / JitterScale
	y += (2*sampler.Get1D() - 1) / JitterScale

	return core.NewRay(c.origin, core.NewVec3(x, y, -1).Normalize())
}
