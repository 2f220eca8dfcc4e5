package ui

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"spin-sphere/internal/graphics"
	renderer "spin-sphere/internal/graphics/renderer"
	"spin-sphere/internal/profiling"
	"spin-sphere/internal/scene"
)

// Layout sizes in logical pixels.
const (
	NavHeight     = 64
	NavPadding    = 32
	LinkGap       = 32
	NavTextSize   = 20
	TitleTextSize = 48

	// atlasPixels is the bake size; text is scaled down from it.
	atlasPixels = 64
)

var (
	navColor  = mgl32.Vec3{0, 0, 0}
	textColor = mgl32.Vec3{1, 1, 1}
)

// Rect is a screen-space rectangle (top-left origin).
type Rect struct {
	X, Y, W, H float32
}

// Text is one string placed with its baseline at (X, Y).
type Text struct {
	Text  string
	X, Y  float32
	Size  float32
	Alpha float32
}

// Layout is the chrome's placement for one frame, in logical pixels.
type Layout struct {
	Nav      Rect
	NavAlpha float32
	Texts    []Text
}

// MeasureFunc returns the advance width of text at a pixel size.
type MeasureFunc func(text string, size float32) float32

// LayoutChrome places the nav bar along the top edge, offset by NavOffset
// bar heights, with the brand on the left and links right-aligned. The title
// is centered near the bottom and fades with TitleOpacity.
func LayoutChrome(c *scene.Chrome, width, height float32, measure MeasureFunc) Layout {
	if c == nil {
		return Layout{}
	}
	navY := c.NavOffset * NavHeight
	l := Layout{
		Nav:      Rect{X: 0, Y: navY, W: width, H: NavHeight},
		NavAlpha: 0.25,
	}
	baseline := navY + NavHeight/2 + NavTextSize*0.35

	if c.Brand != "" {
		l.Texts = append(l.Texts, Text{Text: c.Brand, X: NavPadding, Y: baseline, Size: NavTextSize, Alpha: 1})
	}
	x := width - NavPadding
	links := make([]Text, len(c.Links))
	for i := len(c.Links) - 1; i >= 0; i-- {
		w := measure(c.Links[i], NavTextSize)
		x -= w
		links[i] = Text{Text: c.Links[i], X: x, Y: baseline, Size: NavTextSize, Alpha: 1}
		x -= LinkGap
	}
	l.Texts = append(l.Texts, links...)

	if c.Title != "" && c.TitleOpacity > 0 {
		w := measure(c.Title, TitleTextSize)
		l.Texts = append(l.Texts, Text{
			Text:  c.Title,
			X:     (width - w) / 2,
			Y:     height * 0.85,
			Size:  TitleTextSize,
			Alpha: min(c.TitleOpacity, 1),
		})
	}
	return l
}

// UI draws the scene's Chrome over the 3D view
type UI struct {
	shader *graphics.Shader
	font   *graphics.FontRenderer
	vao    uint32
	vbo    uint32

	viewportW, viewportH int
}

// NewUI creates a new UI renderable
func NewUI() *UI {
	return &UI{}
}

// Init compiles the rect shader and bakes the glyph atlas
func (u *UI) Init() error {
	var err error
	u.shader, err = graphics.NewShader(graphics.UIShader)
	if err != nil {
		return err
	}
	atlas, err := graphics.BakeAtlas(nil, atlasPixels)
	if err != nil {
		return err
	}
	u.font, err = graphics.NewFontRenderer(atlas)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &u.vao)
	gl.GenBuffers(1, &u.vbo)
	gl.BindVertexArray(u.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, u.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*2*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return nil
}

// SetViewport records the drawing-buffer size in pixels
func (u *UI) SetViewport(width, height int) {
	u.viewportW, u.viewportH = width, height
	u.font.SetViewport(width, height)
}

// Render draws the chrome, if the scene has one
func (u *UI) Render(ctx renderer.RenderContext) {
	if ctx.Scene.Chrome == nil {
		return
	}
	defer profiling.Track("renderer.renderUI")()

	atlas := u.font.Atlas()
	measure := func(text string, size float32) float32 {
		w, _ := atlas.Measure(text, size/atlasPixels)
		return w
	}
	l := LayoutChrome(ctx.Scene.Chrome, float32(ctx.Width), float32(ctx.Height), measure)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r := ctx.PixelRatio
	if l.Nav.Y+l.Nav.H > 0 {
		u.DrawFilledRect(l.Nav.X*r, l.Nav.Y*r, l.Nav.W*r, l.Nav.H*r, navColor, l.NavAlpha)
	}
	for _, t := range l.Texts {
		u.font.Render(t.Text, t.X*r, t.Y*r, t.Size/atlasPixels*r, textColor, t.Alpha)
	}

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

// Dispose cleans up OpenGL resources
func (u *UI) Dispose() {
	if u.vao != 0 {
		gl.DeleteVertexArrays(1, &u.vao)
	}
	if u.vbo != 0 {
		gl.DeleteBuffers(1, &u.vbo)
	}
	if u.font != nil {
		u.font.Dispose()
	}
	if u.shader != nil {
		u.shader.Delete()
	}
}

// DrawFilledRect draws a rectangle in drawing-buffer pixels (top-left origin).
// Blending must already be enabled.
func (u *UI) DrawFilledRect(x, y, w, h float32, color mgl32.Vec3, alpha float32) {
	verts := RectNDC(x, y, w, h, float32(u.viewportW), float32(u.viewportH))

	u.shader.Use()
	u.shader.SetVector4("uColor", color.X(), color.Y(), color.Z(), alpha)

	gl.BindVertexArray(u.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, u.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts[:]))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// RectNDC converts a pixel rectangle to two triangles in normalized device coordinates.
func RectNDC(x, y, w, h, viewW, viewH float32) [12]float32 {
	x0 := (x/viewW)*2 - 1
	y0 := 1 - (y/viewH)*2
	x1 := ((x+w)/viewW)*2 - 1
	y1 := 1 - ((y+h)/viewH)*2
	return [12]float32{
		x0, y0,
		x1, y0,
		x1, y1,
		x0, y0,
		x1, y1,
		x0, y1,
	}
}
