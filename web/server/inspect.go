package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/olio-render/olio/pkg/core"
	"github.com/olio-render/olio/pkg/geometry"
	"github.com/olio-render/olio/pkg/material"
	"github.com/olio-render/olio/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point,omitempty"`
	Normal       [3]float64             `json:"normal,omitempty"`
	Distance     float64                `json:"distance,omitempty"`
	FrontFace    bool                   `json:"frontFace,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// handleInspect casts a single ray through the requested pixel and reports
// what it hits. Used by the preview UI to identify objects under the cursor.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	sceneObj, err := s.loadScene()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scene: %v", err))
		return
	}

	req, err := s.parseRenderRequest(r, sceneObj)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	var pixelX, pixelY int
	if pixelX, err = parseIntParam(r.URL.Query(), "x", 0, 0, req.Width-1); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if pixelY, err = parseIntParam(r.URL.Query(), "y", 0, 0, req.Height-1); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	response := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// inspectPixel casts the same ray the renderer would for this pixel and
// returns information about the first object hit. pixelY counts from the
// top of the image.
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResponse {
	u := float64(pixelX) / float64(width)
	v := float64(height-1-pixelY) / float64(height)
	ray := sceneObj.Camera().GetRay(u, v)

	hit := &core.HitRecord{}
	if !sceneObj.Root().Hit(ray, core.Epsilon, core.Infinity, hit) {
		return InspectResponse{Hit: false}
	}

	response := InspectResponse{
		Hit:       true,
		Point:     [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:    [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:  hit.T,
		FrontFace: hit.FrontFace,
	}
	response.GeometryType = geometryTypeName(hit.Surface)
	response.MaterialType, response.Properties = extractMaterialInfo(hit.Surface.Material())
	return response
}

// geometryTypeName names the concrete surface type for display
func geometryTypeName(surface core.Surface) string {
	switch surface.(type) {
	case *geometry.Sphere:
		return "sphere"
	case *geometry.Triangle:
		return "triangle"
	case *geometry.SurfaceList:
		return "surfaceList"
	default:
		return "unknown"
	}
}

// extractMaterialInfo extracts material details with type assertions
func extractMaterialInfo(mat core.Material) (string, map[string]interface{}) {
	if mat == nil {
		return "none", nil
	}

	switch m := mat.(type) {
	case *material.Phong:
		ambient := m.Ambient()
		diffuse := m.Diffuse()
		specular := m.Specular()
		mirror := m.Mirror()
		return "phong", map[string]interface{}{
			"ambient":   [3]float64{ambient.X, ambient.Y, ambient.Z},
			"diffuse":   [3]float64{diffuse.X, diffuse.Y, diffuse.Z},
			"specular":  [3]float64{specular.X, specular.Y, specular.Z},
			"shininess": m.Shininess(),
			"mirror":    [3]float64{mirror.X, mirror.Y, mirror.Z},
			"color": fmt.Sprintf("#%02x%02x%02x",
				hexChannel(diffuse.X), hexChannel(diffuse.Y), hexChannel(diffuse.Z)),
		}
	default:
		return "unknown", nil
	}
}

// hexChannel clamps a color coefficient to [0, 1] before scaling so
// overbright or negative channels still format as two hex digits
func hexChannel(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int(v * 255)
}
