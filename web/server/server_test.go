package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(0, "").Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("Health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status 'ok', got %q", body["status"])
	}
}

func TestHandleRender_ReturnsPNG(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/render?width=16&height=9")
	if err != nil {
		t.Fatalf("Render request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}

	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("Response is not a valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 9 {
		t.Errorf("Expected 16x9 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestHandleRender_InvalidParams(t *testing.T) {
	ts := newTestServer(t)

	tests := []string{
		"/api/render?width=0",
		"/api/render?width=abc",
		"/api/render?gamma=100",
	}
	for _, path := range tests {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("Request %s failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", path, resp.StatusCode)
		}
	}
}

func TestHandleRenderWS_StreamsProgressAndFinalImage(t *testing.T) {
	ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/render/ws?width=16&height=9"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Websocket dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(10 * time.Second))

	var complete *ProgressUpdate
	for complete == nil {
		var update ProgressUpdate
		if err := conn.ReadJSON(&update); err != nil {
			t.Fatalf("Failed to read websocket message: %v", err)
		}
		switch update.Type {
		case "progress", "console":
			// Intermediate messages are optional and unordered
		case "complete":
			complete = &update
		case "error":
			t.Fatalf("Server reported error: %s", update.Message)
		default:
			t.Fatalf("Unexpected message type %q", update.Type)
		}
	}

	if complete.TotalPixels != 16*9 {
		t.Errorf("Expected %d total pixels, got %d", 16*9, complete.TotalPixels)
	}
	if complete.DonePixels != complete.TotalPixels {
		t.Errorf("Expected all pixels done, got %d/%d", complete.DonePixels, complete.TotalPixels)
	}

	raw, err := base64.StdEncoding.DecodeString(complete.ImageData)
	if err != nil {
		t.Fatalf("Final image is not valid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Final image is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 9 {
		t.Errorf("Expected 16x9 final image, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestHandleRenderWS_ClientDisconnectMidRender(t *testing.T) {
	ts := newTestServer(t)
	before := runtime.NumGoroutine()

	// Large enough that the render outlives the client connection
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/render/ws?width=256&height=256"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Websocket dial failed: %v", err)
	}

	// Drop the connection as soon as the first progress message arrives
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var update ProgressUpdate
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("Failed to read first message: %v", err)
	}
	conn.Close()

	// The handler must finish the render and exit rather than block on its
	// completion message once the writer can no longer reach the client
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before+1 {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("Goroutines did not wind down after client disconnect: %d before, %d now",
		before, runtime.NumGoroutine())
}

func TestHandleInspect(t *testing.T) {
	ts := newTestServer(t)

	// The default scene has a sphere at the center of the view
	resp, err := http.Get(ts.URL + "/api/inspect?width=64&height=36&x=32&y=18")
	if err != nil {
		t.Fatalf("Inspect request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var body InspectResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode inspect response: %v", err)
	}
	if !body.Hit {
		t.Fatal("Expected the center pixel to hit geometry")
	}
	if body.GeometryType != "sphere" {
		t.Errorf("Expected geometry type 'sphere', got %q", body.GeometryType)
	}
	if body.MaterialType != "phong" {
		t.Errorf("Expected material type 'phong', got %q", body.MaterialType)
	}
	if body.Distance <= 0 {
		t.Errorf("Expected positive hit distance, got %v", body.Distance)
	}
}

func TestParseIntParam(t *testing.T) {
	values := url.Values{}
	values.Set("width", "200")

	got, err := parseIntParam(values, "width", 100, 1, 4096)
	if err != nil || got != 200 {
		t.Errorf("Expected 200, got %d (err %v)", got, err)
	}

	got, err = parseIntParam(values, "height", 100, 1, 4096)
	if err != nil || got != 100 {
		t.Errorf("Expected default 100, got %d (err %v)", got, err)
	}

	values.Set("width", "9999999")
	if _, err = parseIntParam(values, "width", 100, 1, 4096); err == nil {
		t.Error("Expected an out-of-range error")
	}
}
