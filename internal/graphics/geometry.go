package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"spin-sphere/internal/scene"
)

// GeometryBuffers holds the GPU copy of a scene.Geometry.
type GeometryBuffers struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// UploadGeometry creates a VAO with position (0), normal (1) and uv (2)
// attributes matching scene.VertexStride.
func UploadGeometry(g *scene.Geometry) *GeometryBuffers {
	b := &GeometryBuffers{indexCount: int32(len(g.Indices))}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.GenBuffers(1, &b.ebo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*4, gl.Ptr(g.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)

	stride := int32(scene.VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)

	gl.BindVertexArray(0)
	return b
}

// Draw issues one indexed draw call.
func (b *GeometryBuffers) Draw() {
	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (b *GeometryBuffers) Dispose() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteBuffers(1, &b.ebo)
}
