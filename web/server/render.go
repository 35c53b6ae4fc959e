package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/websocket"

	"github.com/olio-render/olio/pkg/renderer"
)

// progressInterval throttles websocket progress messages
const progressInterval = 250 * time.Millisecond

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The preview UI may be served from a different origin during development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ProgressUpdate represents a single progress message sent over the websocket
type ProgressUpdate struct {
	Type        string `json:"type"` // "progress", "console", "complete", "error"
	DonePixels  int    `json:"donePixels,omitempty"`
	TotalPixels int    `json:"totalPixels,omitempty"`
	Message     string `json:"message,omitempty"`
	ImageData   string `json:"imageData,omitempty"` // Base64 encoded PNG, set on "complete"
	ElapsedMs   int64  `json:"elapsedMs,omitempty"`
}

// handleRender renders the scene once and responds with the PNG image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
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

	rt := renderer.NewRaytracer(sceneObj, req.Width, req.Height, glogLogger{})
	img, stats := rt.Render()
	glog.Infof("Rendered %d pixels in %v", stats.TotalPixels, stats.Elapsed)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img.ToRGBA(req.Gamma)); err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderWS renders the scene while streaming progress over a
// websocket. Console output and pixel counts go out as JSON messages; the
// final message carries the finished frame as base64 PNG.
func (s *Server) handleRenderWS(w http.ResponseWriter, r *http.Request) {
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

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		glog.Errorf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// One writer goroutine owns the connection; gorilla connections do not
	// support concurrent writes. After a failed write the writer keeps
	// draining until the channel is closed so the render goroutine's sends
	// never block on a disconnected client.
	updates := make(chan ProgressUpdate, 64)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		clientGone := false
		for update := range updates {
			if clientGone {
				continue
			}
			if err := conn.WriteJSON(update); err != nil {
				glog.Warningf("Websocket write failed: %v", err)
				clientGone = true
			}
		}
	}()

	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		for msg := range consoleChan {
			select {
			case updates <- ProgressUpdate{Type: "console", Message: msg.Message}:
			default:
				// Client is slow, drop console output rather than stall the render
			}
		}
	}()

	startTime := time.Now()
	rt := renderer.NewRaytracer(sceneObj, req.Width, req.Height, NewWebLogger(consoleChan))

	lastSent := time.Time{}
	rt.SetProgressFunc(func(done, total int) {
		if time.Since(lastSent) < progressInterval && done != total {
			return
		}
		lastSent = time.Now()
		select {
		case updates <- ProgressUpdate{
			Type:        "progress",
			DonePixels:  done,
			TotalPixels: total,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		}:
		default:
		}
	})

	img, stats := rt.Render()

	// The console forwarder must finish before updates is closed below;
	// it sends on updates
	close(consoleChan)
	<-consoleDone

	imageData, err := imageToBase64PNG(img, req.Gamma)
	if err != nil {
		updates <- ProgressUpdate{Type: "error", Message: fmt.Sprintf("Failed to encode image: %v", err)}
	} else {
		updates <- ProgressUpdate{
			Type:        "complete",
			DonePixels:  stats.TotalPixels,
			TotalPixels: stats.TotalPixels,
			ImageData:   imageData,
			ElapsedMs:   stats.Elapsed.Milliseconds(),
		}
	}

	close(updates)
	<-writerDone
}

// imageToBase64PNG converts a rendered image to base64-encoded PNG
func imageToBase64PNG(img *renderer.Image, gamma float64) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.ToRGBA(gamma)); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
