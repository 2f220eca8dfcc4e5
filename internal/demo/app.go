// Package demo builds the sphere scene and wires the render loop, the resize
// handler and the pointer-driven color to a Host.
package demo

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/segmentio/ksuid"

	"spin-sphere/internal/config"
	"spin-sphere/internal/controls"
	"spin-sphere/internal/profiling"
	"spin-sphere/internal/scene"
	"spin-sphere/internal/tween"
)

// colorTween keys the material color animation; a new target replaces the
// one in flight.
const colorTween = "material.color"

// App is a running demo: the scene, its collaborators and the session state.
type App struct {
	host     Host
	settings config.Settings
	session  Session
	// id is session.ID, kept apart so other goroutines can read it.
	id ksuid.KSUID

	scene    *scene.Scene
	mesh     *scene.Mesh
	light    *scene.PointLight
	camera   *scene.PerspectiveCamera
	renderer Renderer
	controls *controls.Orbit
	tweens   *tween.Engine

	slowFrame time.Duration
	frames    atomic.Uint64
}

// Start constructs the scene, binds a renderer to the host's surface, draws
// the first frame and schedules the render loop. It runs once; an error
// means the demo cannot start.
func Start(host Host, settings config.Settings, newRenderer RendererFactory) (*App, error) {
	a := &App{
		host:      host,
		settings:  settings,
		scene:     scene.New(),
		tweens:    tween.NewEngine(),
		slowFrame: time.Duration(settings.Window.SlowFrameMillis) * time.Millisecond,
	}

	bg, err := scene.ParseColor(settings.Renderer.Background)
	if err != nil {
		return nil, err
	}
	a.scene.Background = bg

	sphere := settings.Sphere
	geometry := scene.NewSphereGeometry(sphere.Radius, sphere.WidthSegments, sphere.HeightSegments)
	color, err := scene.ParseColor(sphere.Color)
	if err != nil {
		return nil, err
	}
	a.mesh = scene.NewMesh(geometry, scene.NewStandardMaterial(color, sphere.Roughness))
	a.scene.Add(a.mesh)

	lightColor, err := scene.ParseColor(settings.Light.Color)
	if err != nil {
		return nil, err
	}
	a.light = scene.NewPointLight(lightColor, settings.Light.Intensity, settings.Light.Distance)
	a.light.Position = mgl32.Vec3(settings.Light.Position)
	a.scene.Add(a.light)

	width, height := host.Size()
	if width <= 0 || height <= 0 {
		width, height = settings.Window.Width, settings.Window.Height
	}
	a.session = NewSession(Viewport{Width: width, Height: height})
	a.id = a.session.ID

	cam := settings.Camera
	a.camera = scene.NewPerspectiveCamera(cam.FOV, scene.AspectRatio(width, height), cam.Near, cam.Far)
	a.camera.Position = mgl32.Vec3(cam.Position)
	a.scene.Add(a.camera)

	surface, err := host.Surface()
	if err != nil {
		return nil, fmt.Errorf("output surface: %w", err)
	}
	a.renderer, err = newRenderer(surface)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	a.renderer.SetSize(width, height)
	ratio := settings.Renderer.PixelRatio
	if ratio <= 0 {
		ratio = host.PixelRatio()
	}
	a.renderer.SetPixelRatio(ratio)

	if c := settings.Controls; c.Enabled {
		a.controls = controls.NewOrbit(a.camera, width, height, controls.Options{
			EnableDamping:   c.EnableDamping,
			DampingFactor:   c.DampingFactor,
			EnablePan:       c.EnablePan,
			EnableZoom:      c.EnableZoom,
			AutoRotate:      c.AutoRotate,
			AutoRotateSpeed: c.AutoRotateSpeed,
		})
	}

	if settings.Intro.Enabled {
		a.playIntro()
	}

	a.subscribe()

	a.renderer.Render(a.scene, a.camera)
	host.NextFrame(a.tick)

	log.Printf("[%s] started stage %d at %dx%d (pixel ratio %v)", a.id, settings.Stage, width, height, ratio)
	return a, nil
}

// playIntro grows the sphere from nothing, then slides the nav bar in, then
// fades the title in.
func (a *App) playIntro() {
	intro := a.settings.Intro
	chrome := scene.NewChrome(intro.Brand, intro.Links, intro.Title)
	a.scene.Chrome = chrome

	s := &a.mesh.Scale
	tl := tween.NewTimeline(intro.StepDuration).
		FromTo(
			tween.FromTo(tween.Float32(&s[0]), 0, 1),
			tween.FromTo(tween.Float32(&s[1]), 0, 1),
			tween.FromTo(tween.Float32(&s[2]), 0, 1),
		).
		FromTo(tween.FromTo(tween.Float32(&chrome.NavOffset), -1, 0)).
		FromTo(tween.FromTo(tween.Float32(&chrome.TitleOpacity), 0, 1))
	a.tweens.Play(tl)
}

func (a *App) subscribe() {
	if a.settings.Resize.Enabled {
		a.host.OnResize(a.handleResize)
	}
	if a.controls == nil && !a.settings.ColorDrive.Enabled {
		return
	}
	a.host.OnPointerDown(a.handlePointerDown)
	a.host.OnPointerUp(a.handlePointerUp)
	a.host.OnPointerMove(a.handlePointerMove)
	if a.controls != nil {
		a.host.OnWheel(a.controls.Wheel)
	}
}

// tick is one iteration of the render loop. It re-registers itself with the
// host, so the loop runs for as long as the host keeps producing frames.
func (a *App) tick(dt float64) {
	profiling.ResetFrame()
	start := time.Now()

	func() {
		defer profiling.Track("tween.Update")()
		a.tweens.Update(dt)
	}()
	if a.controls != nil {
		func() {
			defer profiling.Track("controls.Update")()
			a.controls.Update(dt)
		}()
	}
	a.renderer.Render(a.scene, a.camera)
	a.frames.Add(1)

	a.host.NextFrame(a.tick)

	if d := time.Since(start); a.slowFrame > 0 && d > a.slowFrame {
		log.Printf("[%s] Slow frame: %v. Top tasks: %s", a.id, d, profiling.TopN(5))
	}
}

// handleResize pushes a new surface size into the camera and renderer.
// Applying the same size twice leaves the same state.
func (a *App) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.session = a.session.Resize(width, height)

	a.camera.Aspect = float32(width) / float32(height)
	// The projection is cached; it must be rebuilt after changing Aspect.
	a.camera.UpdateProjectionMatrix()
	a.renderer.SetSize(width, height)
	if a.controls != nil {
		a.controls.SetSize(width, height)
	}
}

func (a *App) handlePointerDown(ev PointerEvent) {
	a.session = a.session.PointerDown()
	if a.controls != nil {
		a.controls.PointerDown(ev.X, ev.Y, ev.Button)
	}
}

func (a *App) handlePointerUp(ev PointerEvent) {
	a.session = a.session.PointerUp()
	if a.controls != nil {
		a.controls.PointerUp()
	}
}

func (a *App) handlePointerMove(ev PointerEvent) {
	if a.controls != nil {
		a.controls.PointerMove(ev.X, ev.Y)
	}
	if !a.settings.ColorDrive.Enabled {
		return
	}
	next, ok := a.session.PointerMove(ev.X, ev.Y, a.settings.ColorDrive.Blue)
	a.session = next
	if ok {
		a.animateColor(next.Target)
	}
}

// animateColor tweens the material toward target, starting from wherever
// the color is now.
func (a *App) animateColor(target TargetColor) {
	to := target.Normalized()
	c := &a.mesh.Material.Color
	a.tweens.To(colorTween, a.settings.ColorDrive.Duration,
		tween.To(tween.Float64(&c.R), float32(to.R)),
		tween.To(tween.Float64(&c.G), float32(to.G)),
		tween.To(tween.Float64(&c.B), float32(to.B)),
	)
}

// Session returns a copy of the current session state.
func (a *App) Session() Session { return a.session }

func (a *App) Scene() *scene.Scene              { return a.scene }
func (a *App) Mesh() *scene.Mesh                { return a.mesh }
func (a *App) Camera() *scene.PerspectiveCamera { return a.camera }
func (a *App) Controls() *controls.Orbit        { return a.controls }
func (a *App) Tweens() *tween.Engine            { return a.tweens }

// ID identifies this run in log lines.
func (a *App) ID() ksuid.KSUID { return a.id }

// Frames is the number of render-loop ticks so far. Safe to call from any
// goroutine.
func (a *App) Frames() uint64 {
	return a.frames.Load()
}

// Dispose releases the renderer. The host must not deliver further frames.
func (a *App) Dispose() {
	log.Printf("[%s] stopping after %d frames", a.id, a.Frames())
	a.renderer.Dispose()
}
