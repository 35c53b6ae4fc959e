package server

import (
	"testing"

	"github.com/olio-render/olio/pkg/core"
	"github.com/olio-render/olio/pkg/material"
)

func TestExtractMaterialInfo_ClampsColorChannels(t *testing.T) {
	// Coefficients outside [0, 1] are legal in scene files; the display
	// color must still be a six-digit hex string
	overbright := material.NewPhong(
		core.NewVec3(3, -0.5, 0.5),
		core.NewVec3(3, -0.5, 0.5),
		core.NewVec3(0, 0, 0),
		1,
		core.NewVec3(0, 0, 0),
	)

	matType, props := extractMaterialInfo(overbright)
	if matType != "phong" {
		t.Fatalf("Expected material type 'phong', got %q", matType)
	}

	color, ok := props["color"].(string)
	if !ok {
		t.Fatal("Expected a color property")
	}
	if color != "#ff007f" {
		t.Errorf("Expected clamped color #ff007f, got %q", color)
	}
}

func TestExtractMaterialInfo_NilMaterial(t *testing.T) {
	matType, props := extractMaterialInfo(nil)
	if matType != "none" {
		t.Errorf("Expected material type 'none', got %q", matType)
	}
	if props != nil {
		t.Errorf("Expected no properties, got %v", props)
	}
}
