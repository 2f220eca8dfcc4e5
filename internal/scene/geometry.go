package scene

import (
	"github.com/chewxy/math32"
)

// VertexStride is the number of float32s per vertex in Geometry.Vertices:
// position (3), normal (3), uv (2).
const VertexStride = 8

// Geometry is an indexed triangle list with interleaved attributes.
type Geometry struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Vertices) / VertexStride
}

// Position returns the position of vertex i.
func (g *Geometry) Position(i int) [3]float32 {
	o := i * VertexStride
	return [3]float32{g.Vertices[o], g.Vertices[o+1], g.Vertices[o+2]}
}

// Normal returns the normal of vertex i.
func (g *Geometry) Normal(i int) [3]float32 {
	o := i*VertexStride + 3
	return [3]float32{g.Vertices[o], g.Vertices[o+1], g.Vertices[o+2]}
}

// NewSphereGeometry builds a UV sphere centered at the origin. widthSegments
// runs around the equator, heightSegments from pole to pole. Triangles wind
// counter-clockwise seen from outside; the pole rows emit one triangle per
// segment instead of a degenerate quad.
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	cols := widthSegments + 1
	rows := heightSegments + 1
	g := &Geometry{
		Vertices: make([]float32, 0, cols*rows*VertexStride),
		Indices:  make([]uint32, 0, widthSegments*(heightSegments-1)*6),
	}

	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		sinTheta, cosTheta := math32.Sincos(v * math32.Pi)

		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinPhi, cosPhi := math32.Sincos(u * 2 * math32.Pi)

			// Unit direction doubles as the normal
			nx := -cosPhi * sinTheta
			ny := cosTheta
			nz := sinPhi * sinTheta

			g.Vertices = append(g.Vertices,
				nx*radius, ny*radius, nz*radius,
				nx, ny, nz,
				u, 1-v,
			)
		}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy*cols + ix + 1)
			b := uint32(iy*cols + ix)
			c := uint32((iy+1)*cols + ix)
			d := uint32((iy+1)*cols + ix + 1)

			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}

	return g
}
