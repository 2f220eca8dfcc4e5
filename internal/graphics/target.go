package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// RenderTarget is an offscreen color+depth buffer. Frames are drawn into it
// at the drawing-buffer resolution and then scaled onto the window.
type RenderTarget struct {
	fbo           uint32
	color, depth  uint32
	Width, Height int
}

// Resize reallocates storage when the size changed. It is a no-op otherwise.
func (t *RenderTarget) Resize(width, height int) error {
	if width == t.Width && height == t.Height && t.fbo != 0 {
		return nil
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render target size must be positive, got %dx%d", width, height)
	}
	if t.fbo == 0 {
		gl.GenFramebuffers(1, &t.fbo)
		gl.GenRenderbuffers(1, &t.color)
		gl.GenRenderbuffers(1, &t.depth)
	}

	gl.BindRenderbuffer(gl.RENDERBUFFER, t.color)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, t.color)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depth)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("incomplete framebuffer: 0x%x", status)
	}

	t.Width, t.Height = width, height
	return nil
}

// Bind makes the target the draw framebuffer and sets the viewport to cover it.
func (t *RenderTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.Width), int32(t.Height))
}

// BlitToScreen copies the target onto the default framebuffer, filtering
// when the sizes differ.
func (t *RenderTarget) BlitToScreen(width, height int) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	filter := uint32(gl.NEAREST)
	if width != t.Width || height != t.Height {
		filter = gl.LINEAR
	}
	gl.BlitFramebuffer(0, 0, int32(t.Width), int32(t.Height), 0, 0, int32(width), int32(height), gl.COLOR_BUFFER_BIT, filter)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Dispose releases the framebuffer and its storage.
func (t *RenderTarget) Dispose() {
	if t.fbo == 0 {
		return
	}
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteRenderbuffers(1, &t.color)
	gl.DeleteRenderbuffers(1, &t.depth)
	*t = RenderTarget{}
}

// DrawingBufferSize is the pixel size of a surface of logical size w x h
// rendered at ratio, rounded to whole pixels and at least 1x1.
func DrawingBufferSize(width, height int, ratio float32) (int, int) {
	if ratio <= 0 {
		ratio = 1
	}
	w := int(float32(width)*ratio + 0.5)
	h := int(float32(height)*ratio + 0.5)
	return max(w, 1), max(h, 1)
}
