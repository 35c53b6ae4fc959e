package loaders

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/olio-render/olio/pkg/core"
	"github.com/olio-render/olio/pkg/geometry"
	"github.com/olio-render/olio/pkg/lights"
	"github.com/olio-render/olio/pkg/material"
	"github.com/olio-render/olio/pkg/renderer"
	"github.com/olio-render/olio/pkg/scene"
)

// aspectWarnThreshold flags suspiciously wide viewports
const aspectWarnThreshold = 20000

// raytraParser accumulates scene elements while reading a raytra file.
// The format is line oriented: one command character followed by numeric
// fields. Lines starting with '/' are comments.
type raytraParser struct {
	surfaces        []core.Surface
	lights          []core.Light
	camera          *renderer.Camera
	width, height   int
	currentMaterial *material.Phong
	cameraCount     int
	ambientCount    int
	line            int
}

// ParseRaytra parses a raytra scene description from a reader. The result
// holds exactly one camera, the surfaces in file order under a single
// surface list, and the lights.
func ParseRaytra(reader io.Reader) (*scene.Scene, error) {
	p := &raytraParser{}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		p.line++
		if err := p.processLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading scene: %v", err)
	}

	if p.cameraCount != 1 {
		return nil, fmt.Errorf("scene must contain exactly one camera, found %d", p.cameraCount)
	}

	root := geometry.NewSurfaceList(p.surfaces...)
	return scene.New(p.camera, root, p.lights, p.width, p.height), nil
}

// LoadRaytra loads and parses a raytra scene file
func LoadRaytra(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %v", err)
	}
	defer file.Close()

	return ParseRaytra(file)
}

func (p *raytraParser) processLine(raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" || line[0] == '/' {
		return nil
	}

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "s":
		return p.parseSphere(args)
	case "t":
		return p.parseTriangle(args)
	case "c":
		return p.parseCamera(args)
	case "l":
		return p.parseLight(args)
	case "m":
		return p.parseMaterial(args)
	default:
		// Unknown commands are skipped, matching the format's tolerance
		// for directives this renderer does not support
		return nil
	}
}

func (p *raytraParser) parseSphere(args []string) error {
	if p.currentMaterial == nil {
		return fmt.Errorf("line %d: surface declared before any material", p.line)
	}
	v, err := p.parseFloats(args, 4, "sphere")
	if err != nil {
		return err
	}
	p.surfaces = append(p.surfaces, geometry.NewSphere(
		core.NewVec3(v[0], v[1], v[2]), v[3], p.currentMaterial))
	return nil
}

func (p *raytraParser) parseTriangle(args []string) error {
	if p.currentMaterial == nil {
		return fmt.Errorf("line %d: surface declared before any material", p.line)
	}
	v, err := p.parseFloats(args, 9, "triangle")
	if err != nil {
		return err
	}
	p.surfaces = append(p.surfaces, geometry.NewTriangle(
		core.NewVec3(v[0], v[1], v[2]),
		core.NewVec3(v[3], v[4], v[5]),
		core.NewVec3(v[6], v[7], v[8]),
		p.currentMaterial))
	return nil
}

// parseCamera handles `c x y z vx vy vz d iw ih pw ph`: eye position, view
// direction, focal length, viewport size, and image size in pixels.
func (p *raytraParser) parseCamera(args []string) error {
	v, err := p.parseFloats(args, 11, "camera")
	if err != nil {
		return err
	}

	eye := core.NewVec3(v[0], v[1], v[2])
	viewVec := core.NewVec3(v[3], v[4], v[5]).Normalize()
	focalLength := v[6]
	viewportWidth, viewportHeight := v[7], v[8]
	pixelsWidth, pixelsHeight := v[9], v[10]

	target := eye.Add(viewVec)
	up := core.NewVec3(0, 1, 0)
	if math.Abs(viewVec.Dot(up)) > 1-1e-9 {
		up = core.NewVec3(0, 0, 1)
	}

	fovy := 2 * math.Atan2(viewportHeight*0.5, focalLength) * 180 / math.Pi

	viewportAspect := viewportWidth / viewportHeight
	if math.IsInf(viewportAspect, 0) || math.IsNaN(viewportAspect) || viewportAspect <= 0 {
		return fmt.Errorf("line %d: camera has bad viewport aspect ratio: %v", p.line, viewportAspect)
	}
	if viewportAspect > aspectWarnThreshold {
		glog.Warningf("Camera has very large viewport aspect ratio: %v", viewportAspect)
	}

	imageAspect := pixelsWidth / pixelsHeight
	if math.Abs(viewportAspect-imageAspect) > 1e-6 {
		glog.Warningf("Camera viewport aspect ratio %v differs from image aspect ratio %v; "+
			"image width will be adjusted to match the viewport", viewportAspect, imageAspect)
	}

	p.camera = renderer.NewCamera(eye, target, up, fovy, viewportAspect)
	p.height = int(pixelsHeight)
	p.width = int(viewportAspect*pixelsHeight + 0.5)
	p.cameraCount++
	return nil
}

func (p *raytraParser) parseLight(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("line %d: light requires a type", p.line)
	}

	switch args[0] {
	case "a":
		v, err := p.parseFloats(args[1:], 3, "ambient light")
		if err != nil {
			return err
		}
		p.ambientCount++
		if p.ambientCount > 1 {
			return fmt.Errorf("line %d: scene may contain at most one ambient light", p.line)
		}
		p.lights = append(p.lights, lights.NewAmbientLight(core.NewVec3(v[0], v[1], v[2])))
	case "p":
		v, err := p.parseFloats(args[1:], 6, "point light")
		if err != nil {
			return err
		}
		p.lights = append(p.lights, lights.NewPointLight(
			core.NewVec3(v[0], v[1], v[2]),
			core.NewVec3(v[3], v[4], v[5])))
	default:
		// Unsupported light types are skipped
	}
	return nil
}

// parseMaterial handles `m dr dg db sr sg sb shininess ir ig ib`. The
// ambient coefficient duplicates the diffuse one; the mirror coefficient
// is carried on the material but never evaluated by local shading.
func (p *raytraParser) parseMaterial(args []string) error {
	v, err := p.parseFloats(args, 10, "material")
	if err != nil {
		return err
	}
	diffuse := core.NewVec3(v[0], v[1], v[2])
	specular := core.NewVec3(v[3], v[4], v[5])
	mirror := core.NewVec3(v[7], v[8], v[9])
	p.currentMaterial = material.NewPhong(diffuse, diffuse, specular, v[6], mirror)
	return nil
}

func (p *raytraParser) parseFloats(args []string, n int, what string) ([]float64, error) {
	if len(args) < n {
		return nil, fmt.Errorf("line %d: %s requires %d values, got %d", p.line, what, n, len(args))
	}
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid %s value %q: %v", p.line, what, args[i], err)
		}
		values[i] = v
	}
	return values, nil
}
