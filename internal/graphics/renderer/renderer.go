package renderer

import (
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"

	"spin-sphere/internal/graphics"
	"spin-sphere/internal/profiling"
	"spin-sphere/internal/scene"
)

// Surface is the window-backed framebuffer frames end up on.
type Surface interface {
	FramebufferSize() (width, height int)
}

// Renderer orchestrates rendering via renderable features. Frames are drawn
// offscreen at the drawing-buffer size (logical size times pixel ratio) and
// scaled onto the surface.
type Renderer struct {
	surface     Surface
	renderables []Renderable
	target      graphics.RenderTarget

	width, height int
	pixelRatio    float32

	viewportW, viewportH int
	lastErr              string
}

// NewRenderer binds to surface and initializes the renderables in order.
// The GL context must be current.
func NewRenderer(surface Surface, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	fw, fh := surface.FramebufferSize()
	r := &Renderer{
		surface:     surface,
		renderables: rs,
		width:       fw,
		height:      fh,
		pixelRatio:  1,
	}
	for i, renderable := range rs {
		if err := renderable.Init(); err != nil {
			// Release what was set up before the failure.
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, err
		}
	}
	return r, nil
}

// SetSize sets the logical output size.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
}

// Size returns the logical output size.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// SetPixelRatio sets how many drawing-buffer pixels back one logical pixel.
func (r *Renderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	r.pixelRatio = ratio
}

// PixelRatio returns the current pixel ratio.
func (r *Renderer) PixelRatio() float32 {
	return r.pixelRatio
}

// DrawingBufferSize returns the offscreen resolution frames are drawn at.
func (r *Renderer) DrawingBufferSize() (int, int) {
	return graphics.DrawingBufferSize(r.width, r.height, r.pixelRatio)
}

// Render draws one frame of s seen from camera.
func (r *Renderer) Render(s *scene.Scene, camera *scene.PerspectiveCamera) {
	defer profiling.Track("renderer.Render")()

	dw, dh := r.DrawingBufferSize()
	if err := r.target.Resize(dw, dh); err != nil {
		if msg := err.Error(); msg != r.lastErr {
			log.Printf("renderer: %v", err)
			r.lastErr = msg
		}
		return
	}
	r.lastErr = ""
	if dw != r.viewportW || dh != r.viewportH {
		r.viewportW, r.viewportH = dw, dh
		for _, renderable := range r.renderables {
			renderable.SetViewport(dw, dh)
		}
	}

	r.target.Bind()
	bg := s.Background
	gl.ClearColor(float32(bg.R), float32(bg.G), float32(bg.B), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	ctx := RenderContext{
		Scene:      s,
		Camera:     camera,
		View:       camera.ViewMatrix(),
		Proj:       camera.ProjectionMatrix(),
		Width:      r.width,
		Height:     r.height,
		PixelRatio: r.pixelRatio,
	}
	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}

	fw, fh := r.surface.FramebufferSize()
	r.target.BlitToScreen(fw, fh)
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.target.Dispose()
}
