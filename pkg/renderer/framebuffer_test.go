package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestClampChannel(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected uint8
	}{
		{"zero", 0, 0},
		{"negative", -5, 0},
		{"fraction truncates", 127.9, 127},
		{"exactly max", 255, 255},
		{"overbright saturates", 300, 255},
		{"very bright does not wrap", 10000, 255},
		{"infinity", math.Inf(1), 255},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampChannel(tt.value); got != tt.expected {
				t.Errorf("clampChannel(%f) = %d, expected %d", tt.value, got, tt.expected)
			}
		})
	}
}

func TestFramebuffer_RowMajor(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Set(2, 1, core.NewVec3(1, 2, 3))

	if fb.Pixels[1*3+2] != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected pixel (2,1) at index 5, got %v", fb.Pixels)
	}
	if fb.At(2, 1) != core.NewVec3(1, 2, 3) {
		t.Errorf("At(2,1) returned %v", fb.At(2, 1))
	}
}

func TestFramebuffer_ToRGBA(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Set(0, 0, core.NewVec3(10, 300, -1))
	fb.Set(1, 0, core.NewVec3(254.5, 0, 1000))

	img := fb.ToRGBA()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("Expected 2x1 image, got %v", img.Bounds())
	}

	tests := []struct {
		x        int
		expected color.RGBA
	}{
		{0, color.RGBA{10, 255, 0, 255}},
		{1, color.RGBA{254, 0, 255, 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, 0); got != tt.expected {
			t.Errorf("Pixel %d: expected %v, got %v", tt.x, tt.expected, got)
		}
	}
}

func TestFramebuffer_SubImage(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Set(2, 3, core.NewVec3(500, 20, 0))

	img := fb.SubImage(image.Rect(2, 2, 6, 4)) // clipped to the framebuffer
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("Expected 2x2 image at origin, got %v", img.Bounds())
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 20, 0, 255}) {
		t.Errorf("Expected pixel (2,3) at (0,1), got %v", got)
	}
}

func TestFramebuffer_Scaled(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Set(0, 0, core.NewVec3(10, 20, 30))

	scaled := fb.Scaled(4)
	if got := scaled.At(0, 0); got != core.NewVec3(40, 80, 120) {
		t.Errorf("Expected (40,80,120), got %v", got)
	}
	if got := fb.At(0, 0); got != core.NewVec3(10, 20, 30) {
		t.Errorf("Scaled modified the source framebuffer: %v", got)
	}
}

func TestTileCompletionResult_ImageAppliesScale(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Set(3, 3, core.NewVec3(25, 50, 100))
	result := TileCompletionResult{
		Tile:        NewTile(3, image.Rect(2, 2, 4, 4), 0),
		Framebuffer: fb,
		Scale:       2,
	}

	img := result.Image()
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("Expected 2x2 tile image, got %v", img.Bounds())
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{50, 100, 200, 255}) {
		t.Errorf("Expected scaled pixel, got %v", got)
	}
}
