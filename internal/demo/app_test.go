package demo

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"spin-sphere/internal/config"
)

func settingsFor(t *testing.T, stage int) config.Settings {
	t.Helper()
	s, err := config.ForStage(stage)
	if err != nil {
		t.Fatalf("stage %d: %v", stage, err)
	}
	return s
}

func startApp(t *testing.T, stage int) (*App, *fakeHost, *recordingRenderer) {
	t.Helper()
	host := newFakeHost(800, 600)
	rec := &recordingRenderer{}
	var calls int
	app, err := Start(host, settingsFor(t, stage), factory(rec, &calls))
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return app, host, rec
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestStartBuildsSceneAndSchedulesOneFrame(t *testing.T) {
	host := newFakeHost(800, 600)
	rec := &recordingRenderer{}
	var calls int
	app, err := Start(host, settingsFor(t, 4), factory(rec, &calls))
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	s := app.Scene()
	if len(s.Meshes()) != 1 || len(s.Lights()) != 1 || len(s.Cameras()) != 1 {
		t.Fatalf("scene: %d meshes, %d lights, %d cameras", len(s.Meshes()), len(s.Lights()), len(s.Cameras()))
	}
	if calls != 1 {
		t.Fatalf("renderer created %d times", calls)
	}
	if rec.renders != 1 || rec.lastScene != s || rec.lastCamera != app.Camera() {
		t.Fatalf("initial render: %d renders", rec.renders)
	}
	if host.registrations != 1 || len(host.pending) != 1 {
		t.Fatalf("frame registrations: %d", host.registrations)
	}
	if rec.width != 800 || rec.height != 600 || rec.ratio != 2 {
		t.Fatalf("renderer size %dx%d ratio %v", rec.width, rec.height, rec.ratio)
	}
	if app.Session().Dragging {
		t.Fatal("session should start without a drag")
	}
}

func TestStartUsesSceneConstants(t *testing.T) {
	app, _, _ := startApp(t, 1)

	cam := app.Camera()
	if cam.FOV != config.DefaultFOV || cam.Near != config.DefaultNear || cam.Far != config.DefaultFar {
		t.Fatalf("camera: fov=%v near=%v far=%v", cam.FOV, cam.Near, cam.Far)
	}
	if cam.Aspect != float32(800)/600 || cam.Position != (mgl32.Vec3{0, 0, 20}) {
		t.Fatalf("camera aspect %v position %v", cam.Aspect, cam.Position)
	}
	light := app.Scene().Lights()[0]
	if light.Intensity != 150 || light.Distance != 100 || light.Position != (mgl32.Vec3{0, 10, 10}) {
		t.Fatalf("light: %+v", light)
	}
	mat := app.Mesh().Material
	if r, g, b := mat.Color.RGB255(); r != 0 || g != 255 || b != 131 {
		t.Fatalf("material color: %d %d %d", r, g, b)
	}
}

func TestStartFailsWithoutSurface(t *testing.T) {
	host := newFakeHost(800, 600)
	host.noSurface = true
	var calls int
	if _, err := Start(host, settingsFor(t, 4), factory(&recordingRenderer{}, &calls)); err == nil {
		t.Fatal("expected error for a missing surface")
	}
	if calls != 0 || host.registrations != 0 {
		t.Fatalf("nothing should run after the failure: %d renderers, %d frames", calls, host.registrations)
	}
}

func TestRenderLoopReschedulesItself(t *testing.T) {
	app, host, rec := startApp(t, 3)
	host.run(10, 1.0/60)

	if rec.renders != 11 {
		t.Fatalf("renders: got %d, want 11", rec.renders)
	}
	if app.Frames() != 10 {
		t.Fatalf("frames: %d", app.Frames())
	}
	if len(host.pending) != 1 {
		t.Fatalf("pending frames: %d", len(host.pending))
	}
}

func TestRenderLoopAdvancesControls(t *testing.T) {
	app, host, _ := startApp(t, 3)
	before := app.Camera().Position
	host.run(30, 1.0/60)
	if app.Camera().Position == before {
		t.Fatal("auto-rotating controls did not move the camera")
	}
}

func TestResizeUpdatesCameraAndRenderer(t *testing.T) {
	app, host, rec := startApp(t, 2)
	host.fireResize(1024, 768)

	cam := app.Camera()
	if cam.Aspect != float32(1024)/768 {
		t.Fatalf("aspect: %v", cam.Aspect)
	}
	want := mgl32.Perspective(mgl32.DegToRad(cam.FOV), float32(1024)/768, cam.Near, cam.Far)
	if cam.ProjectionMatrix() != want {
		t.Fatal("projection matrix was not rebuilt")
	}
	if rec.width != 1024 || rec.height != 768 {
		t.Fatalf("renderer size: %dx%d", rec.width, rec.height)
	}
	if app.Session().Viewport != (Viewport{1024, 768}) {
		t.Fatalf("viewport: %+v", app.Session().Viewport)
	}
}

func TestResizeIsIdempotent(t *testing.T) {
	app, host, rec := startApp(t, 4)
	host.fireResize(1024, 768)
	proj := app.Camera().ProjectionMatrix()
	aspect := app.Camera().Aspect
	session := app.Session()

	host.fireResize(1024, 768)
	if app.Camera().ProjectionMatrix() != proj || app.Camera().Aspect != aspect {
		t.Fatal("second resize changed the camera")
	}
	if rec.width != 1024 || rec.height != 768 || app.Session() != session {
		t.Fatal("second resize changed renderer or session state")
	}
}

func TestResizeIgnoresEmptySurface(t *testing.T) {
	app, host, rec := startApp(t, 4)
	host.fireResize(0, 0)
	if app.Camera().Aspect != float32(800)/600 || rec.width != 800 || rec.height != 600 {
		t.Fatal("zero size should be ignored")
	}
}

func TestStageOneIgnoresResize(t *testing.T) {
	app, host, rec := startApp(t, 1)
	if len(host.resize) != 0 || len(host.move) != 0 {
		t.Fatalf("stage 1 subscribed to %d resize and %d move handlers", len(host.resize), len(host.move))
	}
	if app.Controls() != nil || app.Scene().Chrome != nil {
		t.Fatal("stage 1 should have no controls and no chrome")
	}
	if rec.ratio != 1 {
		t.Fatalf("pixel ratio: %v", rec.ratio)
	}
}

func TestDragToCornerDrivesColor(t *testing.T) {
	app, host, _ := startApp(t, 4)

	host.fireDown(0, 0)
	host.fireMove(800, 600)
	if got := app.Session().Target; got != (TargetColor{255, 255, 150}) {
		t.Fatalf("target: %v", got)
	}
	if !app.Tweens().Running(colorTween) {
		t.Fatal("no color transition requested")
	}

	host.run(70, 1.0/60)
	c := app.Mesh().Material.Color
	if !near(c.R, 1) || !near(c.G, 1) || !near(c.B, 150.0/255) {
		t.Fatalf("material color: %+v", c)
	}
}

func TestMoveWithoutDragRequestsNothing(t *testing.T) {
	app, host, _ := startApp(t, 4)
	before := app.Mesh().Material.Color

	host.fireMove(400, 300)
	if app.Tweens().Running(colorTween) || app.Session().HasTarget {
		t.Fatal("move without a drag requested a color transition")
	}
	host.run(70, 1.0/60)
	if app.Mesh().Material.Color != before {
		t.Fatal("material color changed")
	}
}

func TestReleaseStopsColorDrive(t *testing.T) {
	app, host, _ := startApp(t, 4)
	host.fireDown(0, 0)
	host.fireUp(0, 0)
	host.fireMove(800, 600)
	if app.Session().HasTarget {
		t.Fatal("move after release set a target")
	}
}

func TestLatestColorTargetWins(t *testing.T) {
	app, host, _ := startApp(t, 4)
	host.fireDown(0, 0)
	host.fireMove(800, 0)
	host.run(10, 1.0/60)
	host.fireMove(0, 600)

	if app.Tweens().Active() > 2 {
		t.Fatalf("superseded color tween still running: %d active", app.Tweens().Active())
	}
	host.run(70, 1.0/60)
	c := app.Mesh().Material.Color
	if !near(c.R, 0) || !near(c.G, 1) || !near(c.B, 150.0/255) {
		t.Fatalf("material color: %+v", c)
	}
}

func TestStageThreeHasNoColorDrive(t *testing.T) {
	app, host, _ := startApp(t, 3)
	before := app.Mesh().Material.Color
	host.fireDown(0, 0)
	host.fireMove(800, 600)
	if app.Session().HasTarget || app.Tweens().Running(colorTween) {
		t.Fatal("stage 3 drove the color")
	}
	if app.Mesh().Material.Color != before {
		t.Fatal("material color changed")
	}
}

func TestIntroTimeline(t *testing.T) {
	app, host, _ := startApp(t, 4)

	chrome := app.Scene().Chrome
	if chrome == nil {
		t.Fatal("stage 4 should show chrome")
	}
	if app.Mesh().Scale != (mgl32.Vec3{}) || chrome.NavOffset != -1 || chrome.TitleOpacity != 0 {
		t.Fatalf("intro start state: scale %v nav %v title %v", app.Mesh().Scale, chrome.NavOffset, chrome.TitleOpacity)
	}

	// One step per second: after 1.5s the sphere is full size and the nav is moving.
	host.run(90, 1.0/60)
	if app.Mesh().Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Fatalf("scale after first step: %v", app.Mesh().Scale)
	}
	if chrome.NavOffset <= -1 || chrome.NavOffset >= 0 || chrome.TitleOpacity != 0 {
		t.Fatalf("mid intro: nav %v title %v", chrome.NavOffset, chrome.TitleOpacity)
	}

	host.run(120, 1.0/60)
	if chrome.NavOffset != 0 || chrome.TitleOpacity != 1 {
		t.Fatalf("intro end: nav %v title %v", chrome.NavOffset, chrome.TitleOpacity)
	}
}

func TestDisposeReleasesRenderer(t *testing.T) {
	app, _, rec := startApp(t, 4)
	app.Dispose()
	if !rec.disposed {
		t.Fatal("renderer not disposed")
	}
}
