package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"spin-sphere/internal/scene"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Scene  *scene.Scene
	Camera *scene.PerspectiveCamera
	View   mgl32.Mat4
	Proj   mgl32.Mat4
	// Logical surface size; multiply by PixelRatio for drawing-buffer pixels.
	Width, Height int
	PixelRatio    float32
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}
