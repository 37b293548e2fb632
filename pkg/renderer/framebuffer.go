package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer holds unclamped linear pixel colors on the 0-255 scale, row-major (y·Width + x)
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// Set stores the color of pixel (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// ToRGBA converts the framebuffer to an 8-bit image. Channels saturate at 255 and 0.
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, toRGBA(fb.At(x, y)))
		}
	}
	return img
}

// clampChannel truncates v to a byte. NaN maps to 0.
func clampChannel(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// SubImage converts the pixels inside bounds to an 8-bit image with its origin at (0, 0)
func (fb *Framebuffer) SubImage(bounds image.Rectangle) *image.RGBA {
	return fb.subImage(bounds, 1)
}

func (fb *Framebuffer) subImage(bounds image.Rectangle, scale float64) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, fb.Width, fb.Height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, toRGBA(fb.At(x, y).Multiply(scale)))
		}
	}
	return img
}

// Scaled returns a copy of the framebuffer with every pixel multiplied by factor
func (fb *Framebuffer) Scaled(factor float64) *Framebuffer {
	out := NewFramebuffer(fb.Width, fb.Height)
	for i, c := range fb.Pixels {
		out.Pixels[i] = c.Multiply(factor)
	}
	return out
}

func toRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: clampChannel(c.X),
		G: clampChannel(c.Y),
		B: clampChannel(c.Z),
		A: 255,
	}
}
