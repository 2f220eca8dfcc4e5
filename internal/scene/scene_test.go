package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSphereGeometryCounts(t *testing.T) {
	g := NewSphereGeometry(3, 64, 64)
	if got, want := g.VertexCount(), 65*65; got != want {
		t.Fatalf("vertices: got %d, want %d", got, want)
	}
	// Pole rows contribute one triangle per segment, other rows two.
	if got, want := len(g.Indices), 64*(64-1)*6; got != want {
		t.Fatalf("indices: got %d, want %d", got, want)
	}
	for _, idx := range g.Indices {
		if int(idx) >= g.VertexCount() {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestSphereGeometryRadiusAndNormals(t *testing.T) {
	const radius = 3
	g := NewSphereGeometry(radius, 16, 12)
	for i := 0; i < g.VertexCount(); i++ {
		p := mgl32.Vec3(g.Position(i))
		n := mgl32.Vec3(g.Normal(i))
		if d := p.Len(); math.Abs(float64(d-radius)) > 1e-4 {
			t.Fatalf("vertex %d: distance %v, want %v", i, d, radius)
		}
		if l := n.Len(); math.Abs(float64(l-1)) > 1e-4 {
			t.Fatalf("vertex %d: normal length %v", i, l)
		}
	}
}

func TestSphereGeometryWindsOutward(t *testing.T) {
	g := NewSphereGeometry(1, 8, 6)
	for i := 0; i < len(g.Indices); i += 3 {
		a := mgl32.Vec3(g.Position(int(g.Indices[i])))
		b := mgl32.Vec3(g.Position(int(g.Indices[i+1])))
		c := mgl32.Vec3(g.Position(int(g.Indices[i+2])))
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		if n.Dot(centroid) <= 0 {
			t.Fatalf("triangle %d faces inward", i/3)
		}
	}
}

func TestSphereGeometryClampsSegments(t *testing.T) {
	g := NewSphereGeometry(1, 1, 1)
	if got, want := g.VertexCount(), 4*3; got != want {
		t.Fatalf("vertices: got %d, want %d", got, want)
	}
}

func TestCameraProjectionIsCached(t *testing.T) {
	c := NewPerspectiveCamera(45, 800.0/600.0, 0.1, 100)
	before := c.ProjectionMatrix()

	c.Aspect = 1024.0 / 768.0
	if c.ProjectionMatrix() != before {
		t.Fatalf("projection changed without UpdateProjectionMatrix")
	}

	c.Aspect = 2
	c.UpdateProjectionMatrix()
	want := mgl32.Perspective(mgl32.DegToRad(45), 2, 0.1, 100)
	if c.ProjectionMatrix() != want {
		t.Fatalf("projection: got %v, want %v", c.ProjectionMatrix(), want)
	}
}

func TestAspectRatio(t *testing.T) {
	if got := AspectRatio(1024, 768); got != float32(1024)/float32(768) {
		t.Errorf("1024x768: got %v", got)
	}
	if got := AspectRatio(800, 0); got != 1 {
		t.Errorf("zero height: got %v", got)
	}
}

func TestCameraViewLooksAtTarget(t *testing.T) {
	c := NewPerspectiveCamera(45, 1, 0.1, 100)
	c.Position = mgl32.Vec3{0, 0, 20}
	c.LookAt(mgl32.Vec3{})
	// The target lands on the view-space -Z axis.
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(p.X())) > 1e-5 || math.Abs(float64(p.Y())) > 1e-5 || math.Abs(float64(p.Z()+20)) > 1e-4 {
		t.Fatalf("target in view space: got %v", p)
	}
}

func TestModelMatrixScale(t *testing.T) {
	m := NewMesh(NewSphereGeometry(1, 8, 6), NewStandardMaterial(mustColor(t, "#00ff83"), 0.5))
	m.Scale = mgl32.Vec3{0, 0, 0}
	p := m.ModelMatrix().Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	if p.Vec3() != (mgl32.Vec3{}) {
		t.Fatalf("zero scale: got %v", p)
	}

	m.Scale = mgl32.Vec3{1, 1, 1}
	m.Position = mgl32.Vec3{1, 2, 3}
	p = m.ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if p.Vec3() != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("translation: got %v", p)
	}
}

func TestSceneAddAndQuery(t *testing.T) {
	s := New()
	mesh := NewMesh(NewSphereGeometry(1, 8, 6), NewStandardMaterial(mustColor(t, "#00ff83"), 0.5))
	light := NewPointLight(mustColor(t, "#ffffff"), 150, 100)
	cam := NewPerspectiveCamera(45, 1, 0.1, 100)

	s.Add(mesh, light)
	s.Add(cam, mesh)

	if s.Len() != 3 {
		t.Fatalf("len: got %d, want 3", s.Len())
	}
	if len(s.Meshes()) != 1 || s.Meshes()[0] != mesh {
		t.Errorf("meshes: got %v", s.Meshes())
	}
	if len(s.Lights()) != 1 || s.Lights()[0].Decay != PointLightDecay {
		t.Errorf("lights: got %v", s.Lights())
	}
	if len(s.Cameras()) != 1 {
		t.Errorf("cameras: got %v", s.Cameras())
	}
}

func TestParseColor(t *testing.T) {
	c := mustColor(t, "#00ff83")
	r, g, b := c.RGB255()
	if r != 0 || g != 255 || b != 0x83 {
		t.Fatalf("got %d,%d,%d", r, g, b)
	}
	if _, err := ParseColor("not-a-color"); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewChromeCopiesLinks(t *testing.T) {
	links := []string{"Explore", "Create"}
	c := NewChrome("Sphere", links, "Give it a spin")
	links[0] = "changed"
	if c.Links[0] != "Explore" {
		t.Fatalf("links aliased: %v", c.Links)
	}
	if c.TitleOpacity != 1 || c.NavOffset != 0 {
		t.Fatalf("chrome should start fully shown, got %+v", c)
	}
}
