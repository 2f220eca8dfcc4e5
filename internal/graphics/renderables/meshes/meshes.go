package meshes

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"spin-sphere/internal/graphics"
	renderer "spin-sphere/internal/graphics/renderer"
	"spin-sphere/internal/profiling"
	"spin-sphere/internal/scene"
)

// MaxLights is the number of point lights the standard shader evaluates.
const MaxLights = 4

// Meshes draws every scene.Mesh with the standard material shader.
type Meshes struct {
	shader  *graphics.Shader
	buffers map[*scene.Geometry]*graphics.GeometryBuffers
}

// New creates the mesh renderable
func New() *Meshes {
	return &Meshes{buffers: make(map[*scene.Geometry]*graphics.GeometryBuffers)}
}

// Init compiles the standard shader
func (m *Meshes) Init() error {
	var err error
	m.shader, err = graphics.NewShader(graphics.StandardShader)
	if err != nil {
		return err
	}
	return nil
}

func (m *Meshes) SetViewport(width, height int) {}

// Render draws all meshes lit by up to MaxLights point lights
func (m *Meshes) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderMeshes")()

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	m.shader.Use()
	m.shader.SetMatrix4("view", ctx.View)
	m.shader.SetMatrix4("proj", ctx.Proj)
	eye := ctx.Camera.Position
	m.shader.SetVector3("cameraPos", eye.X(), eye.Y(), eye.Z())

	lights := pointLights(ctx.Scene.Lights())
	m.shader.SetInt("lightCount", int32(len(lights)))
	for i, l := range lights {
		m.shader.SetVector3(fmt.Sprintf("lightPos[%d]", i), l.position.X(), l.position.Y(), l.position.Z())
		m.shader.SetVector3(fmt.Sprintf("lightColor[%d]", i), l.color.X(), l.color.Y(), l.color.Z())
		m.shader.SetFloat(fmt.Sprintf("lightDistance[%d]", i), l.distance)
		m.shader.SetFloat(fmt.Sprintf("lightDecay[%d]", i), l.decay)
	}

	for _, mesh := range ctx.Scene.Meshes() {
		if !visible(mesh) {
			continue
		}
		buf, ok := m.buffers[mesh.Geometry]
		if !ok {
			buf = graphics.UploadGeometry(mesh.Geometry)
			m.buffers[mesh.Geometry] = buf
		}

		model := mesh.ModelMatrix()
		m.shader.SetMatrix4("model", model)
		m.shader.SetMatrix3("normalMatrix", model.Mat3().Inv().Transpose())

		c := linearColor(mesh.Material)
		m.shader.SetVector3("baseColor", c.X(), c.Y(), c.Z())
		m.shader.SetFloat("roughness", mesh.Material.Roughness)
		buf.Draw()
	}
	gl.BindVertexArray(0)
}

// Dispose releases the shader and every uploaded geometry
func (m *Meshes) Dispose() {
	for g, buf := range m.buffers {
		buf.Dispose()
		delete(m.buffers, g)
	}
	if m.shader != nil {
		m.shader.Delete()
	}
}

// visible skips meshes collapsed to zero scale; their normal matrix is singular.
func visible(mesh *scene.Mesh) bool {
	if mesh.Geometry == nil || mesh.Material == nil {
		return false
	}
	s := mesh.Scale
	return s.X() != 0 && s.Y() != 0 && s.Z() != 0
}

type pointLight struct {
	position mgl32.Vec3
	// linear RGB scaled by intensity
	color    mgl32.Vec3
	distance float32
	decay    float32
}

// pointLights converts scene lights to shader inputs, keeping the first MaxLights.
func pointLights(lights []*scene.PointLight) []pointLight {
	if len(lights) > MaxLights {
		lights = lights[:MaxLights]
	}
	out := make([]pointLight, 0, len(lights))
	for _, l := range lights {
		r, g, b := l.Color.LinearRgb()
		out = append(out, pointLight{
			position: l.Position,
			color:    mgl32.Vec3{float32(r), float32(g), float32(b)}.Mul(l.Intensity),
			distance: l.Distance,
			decay:    l.Decay,
		})
	}
	return out
}

// linearColor converts the material's sRGB base color for lighting.
func linearColor(mat *scene.StandardMaterial) mgl32.Vec3 {
	r, g, b := mat.Color.Clamped().LinearRgb()
	return mgl32.Vec3{float32(r), float32(g), float32(b)}
}
