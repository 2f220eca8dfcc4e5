package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph = rune(32)
	lastGlyph  = rune(126)
	atlasWidth = 512
	padding    = 1
)

// Glyph describes one character's placement and metrics within the atlas
type Glyph struct {
	// Pixel coordinates of the glyph in the atlas (top-left origin)
	AtlasX, AtlasY float32
	Width, Height  float32
	// Offset from the pen position on the baseline
	BearingX, BearingY float32
	Advance            float32
}

// Atlas is a baked single-channel glyph sheet. TextureID is 0 until uploaded.
type Atlas struct {
	TextureID uint32
	Image     *image.Alpha
	Glyphs    map[rune]Glyph
	// LineHeight is ascent plus descent in pixels
	LineHeight float32
}

// BakeAtlas rasterizes printable ASCII from a TrueType/OpenType font at
// pixels size. It does not touch OpenGL. A nil ttf uses Go Regular.
func BakeAtlas(ttf []byte, pixels int) (*Atlas, error) {
	if ttf == nil {
		ttf = goregular.TTF
	}
	if pixels <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %d", pixels)
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(pixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	type baked struct {
		r       rune
		dr      image.Rectangle
		mask    image.Image
		maskp   image.Point
		advance fixed.Int26_6
	}
	var glyphs []baked
	for r := firstGlyph; r <= lastGlyph; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		glyphs = append(glyphs, baked{r, dr, mask, maskp, advance})
	}

	// Pack rows once to size the sheet, then again to draw.
	place := func(fn func(g baked, x, y int)) int {
		x, y, rowH := 0, 0, 0
		for _, g := range glyphs {
			w, h := g.dr.Dx(), g.dr.Dy()
			if w == 0 || h == 0 {
				fn(g, x, y)
				continue
			}
			if x+w > atlasWidth {
				x = 0
				y += rowH + padding
				rowH = 0
			}
			fn(g, x, y)
			x += w + padding
			if h > rowH {
				rowH = h
			}
		}
		return y + rowH
	}
	height := nextPowerOfTwo(place(func(baked, int, int) {}))

	atlas := &Atlas{
		Image:  image.NewAlpha(image.Rect(0, 0, atlasWidth, height)),
		Glyphs: make(map[rune]Glyph, len(glyphs)),
	}
	place(func(g baked, x, y int) {
		w, h := g.dr.Dx(), g.dr.Dy()
		if w > 0 && h > 0 && g.mask != nil {
			draw.Draw(atlas.Image, image.Rect(x, y, x+w, y+h), g.mask, g.maskp, draw.Src)
		}
		atlas.Glyphs[g.r] = Glyph{
			AtlasX:   float32(x),
			AtlasY:   float32(y),
			Width:    float32(w),
			Height:   float32(h),
			BearingX: float32(g.dr.Min.X),
			BearingY: float32(-g.dr.Min.Y),
			Advance:  float32(math.Round(float64(g.advance) / 64.0)),
		}
	})
	m := face.Metrics()
	atlas.LineHeight = float32((m.Ascent + m.Descent).Ceil())
	return atlas, nil
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Upload sends the atlas to OpenGL as a GL_RED texture.
func (a *Atlas) Upload() {
	b := a.Image.Bounds()
	gl.GenTextures(1, &a.TextureID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, a.TextureID)
	// Tight byte alignment for single-channel upload
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(a.Image.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}

// Measure returns the width and tallest glyph height of text at scale.
func (a *Atlas) Measure(text string, scale float32) (float32, float32) {
	var width, maxH float32
	for _, r := range text {
		g, ok := a.Glyphs[r]
		if !ok {
			g = a.Glyphs[' ']
		}
		width += g.Advance * scale
		if g.Height*scale > maxH {
			maxH = g.Height * scale
		}
	}
	return width, maxH
}

// Vertices lays out text with its baseline starting at (x, y), as
// triangles of (x, y, u, v). Missing glyphs advance like a space.
func (a *Atlas) Vertices(text string, x, y, scale float32) []float32 {
	b := a.Image.Bounds()
	aw, ah := float32(b.Dx()), float32(b.Dy())
	vertices := make([]float32, 0, len(text)*6*4)
	for _, r := range text {
		g, ok := a.Glyphs[r]
		if !ok {
			x += a.Glyphs[' '].Advance * scale
			continue
		}
		if g.Width > 0 && g.Height > 0 {
			xPos := x + g.BearingX*scale
			yPos := y - g.BearingY*scale
			w := g.Width * scale
			h := g.Height * scale
			u0, v0 := g.AtlasX/aw, g.AtlasY/ah
			u1, v1 := (g.AtlasX+g.Width)/aw, (g.AtlasY+g.Height)/ah
			vertices = append(vertices,
				xPos, yPos+h, u0, v1,
				xPos, yPos, u0, v0,
				xPos+w, yPos, u1, v0,
				xPos, yPos+h, u0, v1,
				xPos+w, yPos, u1, v0,
				xPos+w, yPos+h, u1, v1,
			)
		}
		x += g.Advance * scale
	}
	return vertices
}

// FontRenderer draws text from an uploaded atlas in pixel coordinates
// (top-left origin).
type FontRenderer struct {
	atlas      *Atlas
	shader     *Shader
	projection mgl32.Mat4
	vao        uint32
	vbo        uint32
}

// NewFontRenderer uploads atlas if needed and compiles the font shader.
func NewFontRenderer(atlas *Atlas) (*FontRenderer, error) {
	if atlas == nil || len(atlas.Glyphs) == 0 {
		return nil, fmt.Errorf("invalid font atlas")
	}
	shader, err := NewShader(FontShader)
	if err != nil {
		return nil, err
	}
	if atlas.TextureID == 0 {
		atlas.Upload()
	}
	fr := &FontRenderer{atlas: atlas, shader: shader}
	gl.GenVertexArrays(1, &fr.vao)
	gl.GenBuffers(1, &fr.vbo)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 64*6*4*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return fr, nil
}

// Atlas returns the glyph sheet used for layout.
func (fr *FontRenderer) Atlas() *Atlas {
	return fr.atlas
}

// SetViewport maps pixel coordinates onto a width x height target.
func (fr *FontRenderer) SetViewport(width, height int) {
	fr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// Render draws text with its baseline at (x, y).
func (fr *FontRenderer) Render(text string, x, y, scale float32, color mgl32.Vec3, alpha float32) {
	verts := fr.atlas.Vertices(text, x, y, scale)
	if len(verts) == 0 || alpha <= 0 {
		return
	}

	fr.shader.Use()
	fr.shader.SetVector3("textColor", color.X(), color.Y(), color.Z())
	fr.shader.SetFloat("textAlpha", alpha)
	fr.shader.SetMatrix4("projection", fr.projection)
	fr.shader.SetInt("text", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fr.atlas.TextureID)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)

	// Orphan then fill to avoid stalls on dynamic updates
	size := len(verts) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(verts))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(verts)/4))
	gl.BindVertexArray(0)
}

// Dispose releases GL resources, including the atlas texture.
func (fr *FontRenderer) Dispose() {
	if fr.vao != 0 {
		gl.DeleteVertexArrays(1, &fr.vao)
	}
	if fr.vbo != 0 {
		gl.DeleteBuffers(1, &fr.vbo)
	}
	if fr.atlas.TextureID != 0 {
		gl.DeleteTextures(1, &fr.atlas.TextureID)
		fr.atlas.TextureID = 0
	}
	fr.shader.Delete()
}
