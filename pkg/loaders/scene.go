package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// SceneFile is the on-disk JSON layout of a scene
type SceneFile struct {
	Camera   *CameraSection     `json:"camera,omitempty"`
	Sampling *SamplingSection   `json:"sampling,omitempty"`
	Surfaces []scene.Descriptor `json:"surfaces"`
}

// CameraSection overrides the camera placement
type CameraSection struct {
	Origin scene.Vector `json:"origin"`
}

// SamplingSection overrides individual fields of the default sampling configuration.
// Absent fields keep their default.
type SamplingSection struct {
	Width            *int     `json:"width,omitempty"`
	Height           *int     `json:"height,omitempty"`
	HorizontalFOV    *float64 `json:"horizontalFov,omitempty"` // Radians
	SamplesPerPixel  *int     `json:"samplesPerPixel,omitempty"`
	RouletteDepth    *int     `json:"rouletteDepth,omitempty"`
	RouletteSurvival *float64 `json:"rouletteSurvival,omitempty"`
	MaxDepth         *int     `json:"maxDepth,omitempty"`
	Seed             *int64   `json:"seed,omitempty"`
	TileSize         *int     `json:"tileSize,omitempty"`
	NumWorkers       *int     `json:"numWorkers,omitempty"`
}

// apply copies every field that was set onto config
func (s *SamplingSection) apply(config *core.SamplingConfig) {
	setIf(&config.Width, s.Width)
	setIf(&config.Height, s.Height)
	setIf(&config.HorizontalFOV, s.HorizontalFOV)
	setIf(&config.SamplesPerPixel, s.SamplesPerPixel)
	setIf(&config.RouletteDepth, s.RouletteDepth)
	setIf(&config.RouletteSurvival, s.RouletteSurvival)
	setIf(&config.MaxDepth, s.MaxDepth)
	setIf(&config.Seed, s.Seed)
	setIf(&config.TileSize, s.TileSize)
	setIf(&config.NumWorkers, s.NumWorkers)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// ParseScene decodes a JSON scene and builds a validated scene from it
func ParseScene(reader io.Reader) (*scene.Scene, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var file SceneFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	s, err := scene.FromDescriptors(file.Surfaces)
	if err != nil {
		return nil, err
	}
	if file.Camera != nil {
		s.Camera.Origin = file.Camera.Origin.Vec3()
	}
	if file.Sampling != nil {
		file.Sampling.apply(&s.SamplingConfig)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadScene loads and parses a JSON scene file
func LoadScene(filename string) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}

	s, err := ParseScene(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// validateFilePath rejects paths that cannot name a scene file
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	cleanPath := filepath.Clean(filename)
	if !strings.EqualFold(filepath.Ext(cleanPath), ".json") {
		return fmt.Errorf("invalid file type: only .json scene files are allowed")
	}

	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	return nil
}

// IsSceneFile reports whether name looks like a scene file rather than a built-in scene id
func IsSceneFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json")
}
