package server

import (
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"` // Outward normal
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// extractMaterialInfo describes a material for the client
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"color": toArray(mat.Color),
	}
	if mat.IsEmissive() {
		properties["emission"] = mat.Emission
		properties["emitted"] = toArray(mat.Emitted())
	}
	if mat.Kind == material.Refractive {
		properties["refractiveIndex"] = mat.RefractiveIndex
	}
	return mat.Kind.String(), properties
}

// extractGeometryInfo describes a shape for the client
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = toArray(geom.Center)
		properties["radius"] = geom.Radius
	case *geometry.Plane:
		properties["normal"] = toArray(geom.Normal(core.Vec3{}))
		properties["distance"] = geom.Distance
	}
	return shape.Kind().String(), properties
}

// inspectPixel casts the un-jittered ray through the pixel and describes the first surface hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResponse {
	config := sceneObj.SamplingConfig
	camera := renderer.NewCamera(sceneObj.Camera.Origin, config.Width, config.Height, config.HorizontalFOV)
	x, y := camera.ImagePlane(pixelX, pixelY)
	ray := core.NewRay(sceneObj.Camera.Origin, core.NewVec3(x, y, -1).Normalize())

	hit, isHit := sceneObj.Intersect(ray)
	if !isHit {
		return InspectResponse{Hit: false}
	}

	point := ray.At(hit.T)
	interaction := material.SurfaceInteraction{
		Point:  point,
		Normal: hit.Surface.Shape.Normal(point),
		T:      hit.T,
	}

	materialType, materialProps := extractMaterialInfo(hit.Surface.Material)
	geometryType, geometryProps := extractGeometryInfo(hit.Surface.Shape)

	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        toArray(point),
		Normal:       toArray(interaction.Normal),
		Distance:     hit.T,
		FrontFace:    interaction.FaceNormal(ray.Direction) == interaction.Normal,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := createScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, pixelX, pixelY))
}
