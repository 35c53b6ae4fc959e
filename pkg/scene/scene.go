package scene

import (
	"github.com/olio-render/olio/pkg/core"
	"github.com/olio-render/olio/pkg/geometry"
	"github.com/olio-render/olio/pkg/renderer"
)

// Scene contains everything needed for rendering: one camera, the surface
// root, the lights, and the output image size. The scene graph is built
// once (by a loader or in code) and treated as read-only while rendering.
type Scene struct {
	camera *renderer.Camera
	root   *geometry.SurfaceList
	lights []core.Light
	width  int
	height int
}

// New creates a scene over the given camera, surface root, and lights
func New(camera *renderer.Camera, root *geometry.SurfaceList, sceneLights []core.Light, width, height int) *Scene {
	if root == nil {
		root = geometry.NewSurfaceList()
	}
	return &Scene{
		camera: camera,
		root:   root,
		lights: sceneLights,
		width:  width,
		height: height,
	}
}

// Camera returns the scene camera
func (s *Scene) Camera() *renderer.Camera {
	return s.camera
}

// Root returns the composite surface holding all scene geometry
func (s *Scene) Root() core.Surface {
	return s.root
}

// Lights returns the scene lights
func (s *Scene) Lights() []core.Light {
	return s.lights
}

// ImageSize returns the output image dimensions in pixels
func (s *Scene) ImageSize() (width, height int) {
	return s.width, s.height
}

// AddSurface appends a surface to the scene root
func (s *Scene) AddSurface(surface core.Surface) {
	s.root.Add(surface)
}

// AddLight appends a light to the scene
func (s *Scene) AddLight(light core.Light) {
	s.lights = append(s.lights, light)
}
