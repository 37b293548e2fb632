package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// defaultDescriptors is the reference box: a mirror ball, a glass ball, a blue diffuse ball
// and a ceiling light inside six diffuse walls
var defaultDescriptors = []Descriptor{
	// Spheres
	{Type: "sphere", Center: Vector{-0.75, -1.45, -4.4}, Radius: 1.05, Color: Vector{4, 8, 4}, Material: int(material.Specular), RefractiveIndex: 1.3},
	{Type: "sphere", Center: Vector{2.0, -2.05, -3.7}, Radius: 0.5, Color: Vector{10, 10, 1}, Material: int(material.Refractive), RefractiveIndex: 1.3},
	{Type: "sphere", Center: Vector{-1.75, -1.95, -3.1}, Radius: 0.6, Color: Vector{4, 4, 12}, Material: int(material.Diffuse), RefractiveIndex: 1.3},
	{Type: "sphere", Center: Vector{0, 1.9, -3.0}, Radius: 0.5, Color: Vector{12, 12, 12}, Material: int(material.Diffuse), Emission: 10000, RefractiveIndex: 1.3},

	// Planes: floor, back, left (red), right (green), ceiling, wall behind the camera
	{Type: "plane", Normal: Vector{0, 1, 0}, Distance: 2.5, Color: Vector{6, 6, 6}, Material: int(material.Diffuse)},
	{Type: "plane", Normal: Vector{0, 0, 1}, Distance: 5.5, Color: Vector{6, 6, 6}, Material: int(material.Diffuse)},
	{Type: "plane", Normal: Vector{1, 0, 0}, Distance: 2.75, Color: Vector{10, 2, 2}, Material: int(material.Diffuse)},
	{Type: "plane", Normal: Vector{-1, 0, 0}, Distance: 2.75, Color: Vector{2, 10, 2}, Material: int(material.Diffuse)},
	{Type: "plane", Normal: Vector{0, -1, 0}, Distance: 3.0, Color: Vector{6, 6, 6}, Material: int(material.Diffuse)},
	{Type: "plane", Normal: Vector{0, 0, -1}, Distance: 0.5, Color: Vector{6, 6, 6}, Material: int(material.Diffuse)},
}

// NewDefaultScene creates the reference scene viewed from the origin
func NewDefaultScene() *Scene {
	s, err := FromDescriptors(defaultDescriptors)
	if err != nil {
		// The descriptor table is a compile-time constant
		panic(err)
	}
	s.Camera = CameraConfig{Origin: core.NewVec3(0, 0, 0)}
	return s
}

// NewCorridorScene creates two facing diffuse planes with no light and no exit.
// Every path bounces until Russian roulette or the depth cap ends it, so the image is black.
func NewCorridorScene() *Scene {
	s := New()
	gray := material.NewDiffuse(core.NewVec3(6, 6, 6))
	s.AddPlane(core.NewVec3(0, 1, 0), 1, gray)  // floor at y = -1
	s.AddPlane(core.NewVec3(0, -1, 0), 1, gray) // ceiling at y = 1
	s.Camera = CameraConfig{Origin: core.NewVec3(0, 0, 0)}
	return s
}
