package demo

import (
	"errors"

	"spin-sphere/internal/scene"
)

type fakeSurface struct{ w, h int }

func (s fakeSurface) FramebufferSize() (int, int) { return s.w, s.h }

// fakeHost records subscriptions and runs frames on demand.
type fakeHost struct {
	width, height int
	ratio         float32
	noSurface     bool

	resize []func(int, int)
	down   []func(PointerEvent)
	up     []func(PointerEvent)
	move   []func(PointerEvent)
	wheel  []func(float64)

	pending       []func(float64)
	registrations int
}

func newFakeHost(w, h int) *fakeHost {
	return &fakeHost{width: w, height: h, ratio: 1}
}

func (h *fakeHost) Surface() (Surface, error) {
	if h.noSurface {
		return nil, errors.New("no window")
	}
	return fakeSurface{h.width, h.height}, nil
}

func (h *fakeHost) Size() (int, int)                    { return h.width, h.height }
func (h *fakeHost) PixelRatio() float32                 { return h.ratio }
func (h *fakeHost) OnResize(cb func(int, int))          { h.resize = append(h.resize, cb) }
func (h *fakeHost) OnPointerDown(cb func(PointerEvent)) { h.down = append(h.down, cb) }
func (h *fakeHost) OnPointerUp(cb func(PointerEvent))   { h.up = append(h.up, cb) }
func (h *fakeHost) OnPointerMove(cb func(PointerEvent)) { h.move = append(h.move, cb) }
func (h *fakeHost) OnWheel(cb func(float64))            { h.wheel = append(h.wheel, cb) }

func (h *fakeHost) NextFrame(cb func(float64)) {
	h.pending = append(h.pending, cb)
	h.registrations++
}

// step runs the callbacks registered for this frame.
func (h *fakeHost) step(dt float64) {
	cbs := h.pending
	h.pending = nil
	for _, cb := range cbs {
		cb(dt)
	}
}

func (h *fakeHost) run(frames int, dt float64) {
	for i := 0; i < frames; i++ {
		h.step(dt)
	}
}

func (h *fakeHost) fireResize(w, ht int) {
	h.width, h.height = w, ht
	for _, cb := range h.resize {
		cb(w, ht)
	}
}

func (h *fakeHost) fireDown(x, y float64) {
	for _, cb := range h.down {
		cb(PointerEvent{X: x, Y: y})
	}
}

func (h *fakeHost) fireUp(x, y float64) {
	for _, cb := range h.up {
		cb(PointerEvent{X: x, Y: y})
	}
}

func (h *fakeHost) fireMove(x, y float64) {
	for _, cb := range h.move {
		cb(PointerEvent{X: x, Y: y})
	}
}

// recordingRenderer counts calls instead of drawing.
type recordingRenderer struct {
	width, height int
	ratio         float32
	renders       int
	disposed      bool
	lastScene     *scene.Scene
	lastCamera    *scene.PerspectiveCamera
}

func (r *recordingRenderer) SetSize(w, h int)            { r.width, r.height = w, h }
func (r *recordingRenderer) SetPixelRatio(ratio float32) { r.ratio = ratio }
func (r *recordingRenderer) Dispose()                    { r.disposed = true }

func (r *recordingRenderer) Render(s *scene.Scene, c *scene.PerspectiveCamera) {
	r.renders++
	r.lastScene, r.lastCamera = s, c
}

// factory returns a RendererFactory that hands out rec and counts calls.
func factory(rec *recordingRenderer, calls *int) RendererFactory {
	return func(Surface) (Renderer, error) {
		*calls++
		return rec, nil
	}
}
