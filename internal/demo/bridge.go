package demo

import (
	"spin-sphere/internal/controls"
	"spin-sphere/internal/scene"
)

// PointerEvent is a pointer position in logical pixels from the top-left
// corner of the surface. Button is only meaningful for down/up events.
type PointerEvent struct {
	X, Y   float64
	Button controls.Button
}

// Host is the bridge to the windowing environment. Every callback runs on
// the host's single event thread; handlers never run concurrently.
type Host interface {
	// Surface returns the drawable the renderer binds to. It fails when no
	// output surface exists.
	Surface() (Surface, error)
	// Size is the current logical surface size.
	Size() (width, height int)
	// PixelRatio is framebuffer pixels per logical pixel.
	PixelRatio() float32

	OnResize(func(width, height int))
	OnPointerDown(func(PointerEvent))
	OnPointerUp(func(PointerEvent))
	OnPointerMove(func(PointerEvent))
	OnWheel(func(dy float64))

	// NextFrame registers cb to run once at the next display refresh, with
	// the seconds elapsed since the previous frame.
	NextFrame(cb func(dt float64))
}

// Surface is the output a renderer draws to.
type Surface interface {
	FramebufferSize() (width, height int)
}

// Renderer draws a scene from a camera onto the surface it was created for.
type Renderer interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float32)
	Render(s *scene.Scene, camera *scene.PerspectiveCamera)
	Dispose()
}

// RendererFactory binds a new Renderer to surface.
type RendererFactory func(surface Surface) (Renderer, error)
