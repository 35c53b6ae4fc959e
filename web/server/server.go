package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/golang/glog"

	"github.com/olio-render/olio/pkg/loaders"
	"github.com/olio-render/olio/pkg/scene"
)

// Server handles web requests for the raytracer preview UI
type Server struct {
	port      int
	sceneFile string
}

// NewServer creates a web server. If sceneFile is empty, renders serve the
// built-in default scene; otherwise every render reparses the file so edits
// show up without a restart.
func NewServer(port int, sceneFile string) *Server {
	return &Server{port: port, sceneFile: sceneFile}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Width  int     `json:"width"`  // Image width, 0 to use the scene's size
	Height int     `json:"height"` // Image height, 0 to use the scene's size
	Gamma  float64 `json:"gamma"`  // Display gamma for PNG output
}

// Handler returns the server's routes. Split out from Start so tests can
// drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/ws", s.handleRenderWS)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	glog.Infof("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// loadScene builds the scene for one render request
func (s *Server) loadScene() (*scene.Scene, error) {
	if s.sceneFile == "" {
		return scene.NewDefaultScene(), nil
	}
	return loaders.LoadRaytra(s.sceneFile)
}

// parseRenderRequest parses and validates render parameters. Width and
// height default to the scene's own image size.
func (s *Server) parseRenderRequest(r *http.Request, sceneObj *scene.Scene) (*RenderRequest, error) {
	defaultWidth, defaultHeight := sceneObj.ImageSize()

	req := &RenderRequest{}
	var err error
	if req.Width, err = parseIntParam(r.URL.Query(), "width", defaultWidth, 1, 4096); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(r.URL.Query(), "height", defaultHeight, 1, 4096); err != nil {
		return nil, err
	}
	if req.Gamma, err = parseFloatParam(r.URL.Query(), "gamma", 2.2, 0.1, 10); err != nil {
		return nil, err
	}
	return req, nil
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

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// writeJSONError reports a client error as a JSON body
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
