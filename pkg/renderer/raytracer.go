package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/olio-render/olio/pkg/core"
)

// DiagnosticColor marks surfaces that carry no material. It is a legacy
// compatibility path, not part of the shading model.
var DiagnosticColor = core.NewVec3(1, 0, 0)

// Scene interface to avoid circular imports with the scene package
type Scene interface {
	Camera() *Camera
	Root() core.Surface
	Lights() []core.Light
}

// RayColor computes the color seen along one ray: the scene is tested over
// [Epsilon, Infinity) to avoid self-intersection at t close to zero, and
// every light's contribution at the nearest hit is accumulated. A miss is
// black; a hit on a surface without a material is the diagnostic color.
func RayColor(ray core.Ray, root core.Surface, sceneLights []core.Light) core.Vec3 {
	hit := &core.HitRecord{}
	if !root.Hit(ray, core.Epsilon, core.Infinity, hit) {
		return core.Vec3{}
	}

	if hit.Surface == nil || hit.Surface.Material() == nil {
		return DiagnosticColor
	}

	viewVec := ray.Direction.Negate()
	rayColor := core.Vec3{}
	for _, light := range sceneLights {
		rayColor = rayColor.Add(light.Illuminate(hit, viewVec))
	}
	return rayColor
}

// ProgressFunc is called after each rendered pixel with the number of
// completed pixels and the total
type ProgressFunc func(done, total int)

// RenderStats contains statistics about a completed render
type RenderStats struct {
	TotalPixels int
	Elapsed     time.Duration
}

// Raytracer drives the per-pixel render loop over a scene
type Raytracer struct {
	scene      Scene
	width      int
	height     int
	logger     core.Logger
	progress   progressTracker
	onProgress ProgressFunc
}

// NewRaytracer creates a raytracer for the given scene and image size
func NewRaytracer(scene Scene, width, height int, logger core.Logger) *Raytracer {
	return &Raytracer{
		scene:  scene,
		width:  width,
		height: height,
		logger: logger,
	}
}

// SetProgressFunc installs a callback invoked after every rendered pixel
func (rt *Raytracer) SetProgressFunc(fn ProgressFunc) {
	rt.onProgress = fn
}

// Render renders the scene into a float image, one ray per pixel, in
// raster order. Row 0 of the result is the top of the image.
func (rt *Raytracer) Render() (*Image, RenderStats) {
	img := NewImage(rt.width, rt.height)
	camera := rt.scene.Camera()
	root := rt.scene.Root()
	sceneLights := rt.scene.Lights()

	if rt.logger != nil {
		rt.logger.Printf("Rendering %dx%d image...", rt.width, rt.height)
	}

	startTime := time.Now()
	rt.progress.start(rt.width * rt.height)

	for j := rt.height - 1; j >= 0; j-- {
		for i := 0; i < rt.width; i++ {
			s := float64(i) / float64(rt.width)
			t := float64(j) / float64(rt.height)
			ray := camera.GetRay(s, t)

			img.Set(i, rt.height-1-j, RayColor(ray, root, sceneLights))

			done, total := rt.progress.incDone()
			if rt.onProgress != nil {
				rt.onProgress(done, total)
			}
		}
	}

	stats := RenderStats{
		TotalPixels: rt.width * rt.height,
		Elapsed:     time.Since(startTime),
	}
	if rt.logger != nil {
		rt.logger.Printf("Total render time: %v", stats.Elapsed)
	}
	return img, stats
}

// Image is a float RGB pixel buffer with row 0 at the top
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImage creates a black image of the given size
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the pixel at (x, y)
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// Set stores the pixel at (x, y)
func (img *Image) Set(x, y int, c core.Vec3) {
	img.Pixels[y*img.Width+x] = c
}

// ToRGBA converts the float buffer to an 8-bit RGBA image, applying gamma
// correction (gamma 1 disables it) and clamping to [0, 1]
func (img *Image) ToRGBA(gamma float64) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			// Clamp first so negative or overbright channels stay
			// well-defined under the gamma power
			c := img.At(x, y).Clamp(0, 1)
			if gamma != 1 {
				c = c.GammaCorrect(gamma)
			}
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(255*c.X + 0.5),
				G: uint8(255*c.Y + 0.5),
				B: uint8(255*c.Z + 0.5),
				A: 255,
			})
		}
	}
	return out
}

// WritePNG gamma-corrects the image and writes it as an 8-bit PNG file
func (img *Image) WritePNG(filename string, gamma float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %v", err)
	}
	defer file.Close()

	if err := png.Encode(file, img.ToRGBA(gamma)); err != nil {
		return fmt.Errorf("failed to encode PNG: %v", err)
	}
	return nil
}
