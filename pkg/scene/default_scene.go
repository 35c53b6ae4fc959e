package scene

import (
	"github.com/olio-render/olio/pkg/core"
	"github.com/olio-render/olio/pkg/geometry"
	"github.com/olio-render/olio/pkg/lights"
	"github.com/olio-render/olio/pkg/material"
	"github.com/olio-render/olio/pkg/renderer"
)

// NewDefaultScene creates the built-in demo scene: three shaded spheres
// over a two-triangle ground plane, lit by one ambient and two point
// lights. Useful for rendering without a scene file.
func NewDefaultScene() *Scene {
	camera := renderer.NewCamera(
		core.NewVec3(0, 1.2, 5),
		core.NewVec3(0, 0.5, 0),
		core.NewVec3(0, 1, 0),
		40,
		16.0/9.0,
	)

	red := material.NewPhong(
		core.NewVec3(0.7, 0.1, 0.1),
		core.NewVec3(0.7, 0.1, 0.1),
		core.NewVec3(0.5, 0.5, 0.5),
		64,
		core.NewVec3(0, 0, 0),
	)
	green := material.NewPhong(
		core.NewVec3(0.1, 0.6, 0.2),
		core.NewVec3(0.1, 0.6, 0.2),
		core.NewVec3(0.3, 0.3, 0.3),
		16,
		core.NewVec3(0, 0, 0),
	)
	blue := material.NewPhong(
		core.NewVec3(0.15, 0.25, 0.7),
		core.NewVec3(0.15, 0.25, 0.7),
		core.NewVec3(0.6, 0.6, 0.6),
		128,
		core.NewVec3(0, 0, 0),
	)
	gray := material.NewPhong(
		core.NewVec3(0.4, 0.4, 0.4),
		core.NewVec3(0.4, 0.4, 0.4),
		core.NewVec3(0, 0, 0),
		1,
		core.NewVec3(0, 0, 0),
	)

	root := geometry.NewSurfaceList(
		geometry.NewSphere(core.NewVec3(0, 0.5, 0), 0.5, red),
		geometry.NewSphere(core.NewVec3(-1.2, 0.4, -0.5), 0.4, green),
		geometry.NewSphere(core.NewVec3(1.2, 0.4, -0.5), 0.4, blue),
		// Ground quad as two triangles, wound counterclockwise seen from above
		geometry.NewTriangle(
			core.NewVec3(-10, 0, -10),
			core.NewVec3(-10, 0, 10),
			core.NewVec3(10, 0, 10),
			gray,
		),
		geometry.NewTriangle(
			core.NewVec3(-10, 0, -10),
			core.NewVec3(10, 0, 10),
			core.NewVec3(10, 0, -10),
			gray,
		),
	)

	sceneLights := []core.Light{
		lights.NewAmbientLight(core.NewVec3(0.1, 0.1, 0.1)),
		lights.NewPointLight(core.NewVec3(-3, 4, 4), core.NewVec3(20, 20, 20)),
		lights.NewPointLight(core.NewVec3(3, 2, 3), core.NewVec3(8, 8, 8)),
	}

	return New(camera, root, sceneLights, 640, 360)
}
