package scene

// Mesh places a Geometry with a Material in the scene.
type Mesh struct {
	Object3D
	Geometry *Geometry
	Material *StandardMaterial
}

func NewMesh(geometry *Geometry, material *StandardMaterial) *Mesh {
	return &Mesh{
		Object3D: newObject3D(),
		Geometry: geometry,
		Material: material,
	}
}

func (m *Mesh) Object() *Object3D { return &m.Object3D }
