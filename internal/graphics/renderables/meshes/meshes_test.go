package meshes

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"spin-sphere/internal/scene"
)

func TestPointLightsScalesByIntensity(t *testing.T) {
	white := colorful.Color{R: 1, G: 1, B: 1}
	l := scene.NewPointLight(white, 150, 100)
	l.Position = mgl32.Vec3{0, 10, 10}

	got := pointLights([]*scene.PointLight{l})
	if len(got) != 1 {
		t.Fatalf("got %d lights", len(got))
	}
	if got[0].color != (mgl32.Vec3{150, 150, 150}) {
		t.Errorf("color: got %v", got[0].color)
	}
	if got[0].position != l.Position || got[0].distance != 100 || got[0].decay != scene.PointLightDecay {
		t.Errorf("got %+v", got[0])
	}
}

func TestPointLightsCapped(t *testing.T) {
	var lights []*scene.PointLight
	for i := 0; i < MaxLights+2; i++ {
		lights = append(lights, scene.NewPointLight(colorful.Color{}, 1, 0))
	}
	if got := len(pointLights(lights)); got != MaxLights {
		t.Fatalf("got %d lights, want %d", got, MaxLights)
	}
}

func TestLinearColorDecodesSRGB(t *testing.T) {
	c, err := scene.ParseColor("#808080")
	if err != nil {
		t.Fatal(err)
	}
	got := linearColor(scene.NewStandardMaterial(c, 0.5))
	// sRGB 0.502 decodes to about 0.216 linear.
	if math.Abs(float64(got.X())-0.216) > 1e-3 || got.X() != got.Y() || got.Y() != got.Z() {
		t.Fatalf("got %v", got)
	}
}

func TestVisibleSkipsCollapsedMeshes(t *testing.T) {
	m := scene.NewMesh(scene.NewSphereGeometry(1, 8, 6), scene.NewStandardMaterial(colorful.Color{}, 0.5))
	if !visible(m) {
		t.Fatal("unit-scale mesh should be visible")
	}
	m.Scale = mgl32.Vec3{0, 0, 0}
	if visible(m) {
		t.Fatal("zero-scale mesh should be skipped")
	}
}
