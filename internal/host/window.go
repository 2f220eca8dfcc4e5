// Package host runs the demo in a GLFW window with an OpenGL 4.1 core context.
package host

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"spin-sphere/internal/config"
	"spin-sphere/internal/controls"
	"spin-sphere/internal/demo"
)

// Window is a demo.Host backed by a GLFW window. glfw.Init must have been
// called, and every method must run on the main thread.
type Window struct {
	win     *glfw.Window
	sched   *scheduler
	glReady bool

	resize []func(width, height int)
	down   []func(demo.PointerEvent)
	up     []func(demo.PointerEvent)
	move   []func(demo.PointerEvent)
	wheel  []func(dy float64)
}

var _ demo.Host = (*Window)(nil)

// Open creates the window and makes its context current.
func Open(cfg config.WindowSettings) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	resizable := glfw.False
	if cfg.Resizable {
		resizable = glfw.True
	}
	glfw.WindowHint(glfw.Resizable, resizable)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()

	// A frame cap replaces vsync; without one, pace on the display refresh.
	config.SetFPSLimit(cfg.FPSLimit)
	if config.GetFPSLimit() > 0 {
		glfw.SwapInterval(0)
	} else {
		glfw.SwapInterval(1)
	}

	w := &Window{win: win, sched: newScheduler(time.Now)}
	w.installCallbacks()
	return w, nil
}

// Surface loads the OpenGL bindings for the window's context.
func (w *Window) Surface() (demo.Surface, error) {
	if w.win == nil {
		return nil, fmt.Errorf("window is closed")
	}
	if !w.glReady {
		if err := gl.Init(); err != nil {
			return nil, fmt.Errorf("init OpenGL: %w", err)
		}
		w.glReady = true
	}
	return surface{w.win}, nil
}

type surface struct {
	win *glfw.Window
}

func (s surface) FramebufferSize() (int, int) {
	return s.win.GetFramebufferSize()
}

// Size returns the window size in screen coordinates.
func (w *Window) Size() (int, int) {
	return w.win.GetSize()
}

// PixelRatio is framebuffer pixels per screen coordinate, 1 when unknown.
func (w *Window) PixelRatio() float32 {
	ww, _ := w.win.GetSize()
	fw, _ := w.win.GetFramebufferSize()
	if ww <= 0 || fw <= 0 {
		return 1
	}
	return float32(fw) / float32(ww)
}

func (w *Window) OnResize(cb func(width, height int))      { w.resize = append(w.resize, cb) }
func (w *Window) OnPointerDown(cb func(demo.PointerEvent)) { w.down = append(w.down, cb) }
func (w *Window) OnPointerUp(cb func(demo.PointerEvent))   { w.up = append(w.up, cb) }
func (w *Window) OnPointerMove(cb func(demo.PointerEvent)) { w.move = append(w.move, cb) }
func (w *Window) OnWheel(cb func(dy float64))              { w.wheel = append(w.wheel, cb) }

// NextFrame registers cb for the next frame, replacing any callback that
// has not run yet.
func (w *Window) NextFrame(cb func(dt float64)) {
	w.sched.setNext(cb)
}

func (w *Window) installCallbacks() {
	w.win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		for _, cb := range w.resize {
			cb(width, height)
		}
	})

	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, fbWidth, fbHeight int) {
		if w.glReady {
			gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		}
	})

	w.win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		ev := demo.PointerEvent{X: xpos, Y: ypos}
		for _, cb := range w.move {
			cb(ev)
		}
	})

	w.win.SetMouseButtonCallback(func(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := gw.GetCursorPos()
		ev := demo.PointerEvent{X: x, Y: y, Button: mapButton(button)}
		handlers := w.down
		if action == glfw.Release {
			handlers = w.up
		} else if action != glfw.Press {
			return
		}
		for _, cb := range handlers {
			cb(ev)
		}
	})

	w.win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		for _, cb := range w.wheel {
			cb(yoff)
		}
	})

	// Some platforms block the main loop while the user drags the window
	// border; draw from the refresh callback so resizing stays live.
	w.win.SetRefreshCallback(func(gw *glfw.Window) {
		w.sched.frame(gw.SwapBuffers)
	})
}

func mapButton(b glfw.MouseButton) controls.Button {
	switch b {
	case glfw.MouseButtonRight:
		return controls.ButtonRight
	case glfw.MouseButtonMiddle:
		return controls.ButtonMiddle
	default:
		return controls.ButtonLeft
	}
}

// Run is the host scheduler: it dispatches events and runs the pending
// frame callback once per refresh until the window is asked to close.
func (w *Window) Run() {
	w.sched.restartClock()
	for !w.win.ShouldClose() && !w.sched.stopping() {
		if w.sched.idle() {
			// Nothing to draw; sleep until input arrives.
			glfw.WaitEventsTimeout(0.1)
			continue
		}
		w.sched.tick(glfw.PollEvents, w.win.SwapBuffers)
		if d := w.sched.pace(config.GetFPSLimit()); d > 0 {
			time.Sleep(d)
		}
	}
}

// RequestClose asks Run to return. Safe to call from any goroutine, and a
// no-op once the window is closed.
func (w *Window) RequestClose() {
	w.sched.requestClose(glfw.PostEmptyEvent)
}

// Close destroys the window.
func (w *Window) Close() {
	w.sched.shutdown(func() {
		w.win.Destroy()
		w.win = nil
	})
}
