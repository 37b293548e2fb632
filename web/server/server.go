package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/fogleman/gg"
)

// Request limits shared by every endpoint
const (
	MaxImageSize  = 2000
	MaxSamples    = 10000
	MaxPasses     = 64
	DefaultWidth  = 400
	DefaultHeight = 400
	DefaultPasses = 5
)

// Server handles web requests for the path tracer
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/ws/render", s.handleRenderSocket)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Built-in scene id
	Width   int    `json:"width"`   // Image width
	Height  int    `json:"height"`  // Image height
	Samples int    `json:"samples"` // Samples per pixel
	Seed    int64  `json:"seed"`    // Base random seed
	Passes  int    `json:"passes"`  // Maximum progressive passes
}

// Stats represents render statistics
type Stats struct {
	TotalPixels  int     `json:"totalPixels"`
	TotalSamples int     `json:"totalSamples"`
	AverageDepth float64 `json:"averageDepth"`
	MaxDepth     int     `json:"maxDepth"`
	DurationMs   int64   `json:"durationMs"`
}

// RenderResult is the final message of a render stream
type RenderResult struct {
	ImageData      string         `json:"imageData"` // Base64 encoded PNG
	Stats          Stats          `json:"stats"`
	PrimitiveCount map[string]int `json:"primitiveCount"`
}

// TileUpdate represents a single finished tile
type TileUpdate struct {
	TileX       int    `json:"tileX"` // Pixel coordinates of the tile's top left corner
	TileY       int    `json:"tileY"`
	ImageData   string `json:"imageData"`  // Base64 encoded PNG of just this tile
	PassNumber  int    `json:"passNumber"` // 1-based
	TotalPasses int    `json:"totalPasses"`
	TileNumber  int    `json:"tileNumber"` // Completion order within the pass, 1-based
	TotalTiles  int    `json:"totalTiles"`
}

// PassUpdate carries the refined image after an intermediate pass
type PassUpdate struct {
	PassNumber      int    `json:"passNumber"`
	TotalPasses     int    `json:"totalPasses"`
	SamplesPerPixel int    `json:"samplesPerPixel"`
	ImageData       string `json:"imageData"` // Base64 encoded PNG
	Stats           Stats  `json:"stats"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListBuiltinScenes())
}

// parseRenderRequest parses request parameters from a URL query
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", DefaultWidth, 1, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", DefaultHeight, 1, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 8, 1, MaxSamples); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 42, 0, int(^uint32(0)>>1))
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)
	if req.Passes, err = parseIntParam(values, "passes", DefaultPasses, 1, MaxPasses); err != nil {
		return nil, err
	}

	return req, nil
}

// validate checks a request decoded from JSON, filling zero fields with defaults
func (req *RenderRequest) validate() error {
	if req.Scene == "" {
		req.Scene = "default"
	}
	if req.Width == 0 {
		req.Width = DefaultWidth
	}
	if req.Height == 0 {
		req.Height = DefaultHeight
	}
	if req.Samples == 0 {
		req.Samples = 8
	}
	if req.Passes == 0 {
		req.Passes = DefaultPasses
	}
	if req.Width < 1 || req.Width > MaxImageSize || req.Height < 1 || req.Height > MaxImageSize {
		return fmt.Errorf("image size must be between 1 and %d, got: %dx%d", MaxImageSize, req.Width, req.Height)
	}
	if req.Samples < 1 || req.Samples > MaxSamples {
		return fmt.Errorf("samples must be between 1 and %d, got: %d", MaxSamples, req.Samples)
	}
	if req.Passes < 1 || req.Passes > MaxPasses {
		return fmt.Errorf("passes must be between 1 and %d, got: %d", MaxPasses, req.Passes)
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested built-in scene with the request's image settings
func createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.NewBuiltinScene(req.Scene)
	if err != nil {
		return nil, err
	}
	sceneObj.SamplingConfig.Width = req.Width
	sceneObj.SamplingConfig.Height = req.Height
	sceneObj.SamplingConfig.SamplesPerPixel = req.Samples
	sceneObj.SamplingConfig.Seed = req.Seed

	if err := sceneObj.Validate(); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// newRenderResult packages a finished render for the client
func newRenderResult(sceneObj *scene.Scene, fb *renderer.Framebuffer, stats renderer.RenderStats) (*RenderResult, error) {
	imageData, err := imageToBase64PNG(fb.ToRGBA())
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	counts := make(map[string]int)
	for kind, n := range sceneObj.GetPrimitiveCount() {
		counts[kind.String()] = n
	}

	return &RenderResult{
		ImageData:      imageData,
		Stats:          newStats(stats),
		PrimitiveCount: counts,
	}, nil
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:  stats.TotalPixels,
		TotalSamples: stats.TotalSamples,
		AverageDepth: stats.AverageDepth,
		MaxDepth:     stats.MaxDepth,
		DurationMs:   stats.Duration.Milliseconds(),
	}
}

// newPassUpdate encodes the image after an intermediate pass
func newPassUpdate(pass renderer.PassResult) (*PassUpdate, error) {
	imageData, err := imageToBase64PNG(pass.Framebuffer.ToRGBA())
	if err != nil {
		return nil, fmt.Errorf("failed to encode pass %d: %w", pass.PassNumber, err)
	}
	return &PassUpdate{
		PassNumber:      pass.PassNumber,
		TotalPasses:     pass.TotalPasses,
		SamplesPerPixel: pass.SamplesPerPixel,
		ImageData:       imageData,
		Stats:           newStats(pass.Stats),
	}, nil
}

// newTileUpdate encodes a finished tile
func newTileUpdate(result renderer.TileCompletionResult) (*TileUpdate, error) {
	bounds := result.Tile.Bounds
	imageData, err := imageToBase64PNG(result.Image())
	if err != nil {
		return nil, fmt.Errorf("failed to encode tile %d: %w", result.Tile.ID, err)
	}
	return &TileUpdate{
		TileX:       bounds.Min.X,
		TileY:       bounds.Min.Y,
		ImageData:   imageData,
		PassNumber:  result.PassNumber,
		TotalPasses: result.TotalPasses,
		TileNumber:  result.TileNumber,
		TotalTiles:  result.TotalTiles,
	}, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img *image.RGBA) (string, error) {
	var buf bytes.Buffer
	if err := gg.NewContextForRGBA(img).EncodePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeJSONError writes an error response
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
