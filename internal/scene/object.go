package scene

import "github.com/go-gl/mathgl/mgl32"

// Object3D is the transform shared by everything placed in a Scene.
type Object3D struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale    mgl32.Vec3
}

func newObject3D() Object3D {
	return Object3D{Scale: mgl32.Vec3{1, 1, 1}}
}

// ModelMatrix composes translation * rotation * scale.
func (o *Object3D) ModelMatrix() mgl32.Mat4 {
	rot := mgl32.HomogRotate3DZ(o.Rotation[2]).
		Mul4(mgl32.HomogRotate3DY(o.Rotation[1])).
		Mul4(mgl32.HomogRotate3DX(o.Rotation[0]))
	return mgl32.Translate3D(o.Position[0], o.Position[1], o.Position[2]).
		Mul4(rot).
		Mul4(mgl32.Scale3D(o.Scale[0], o.Scale[1], o.Scale[2]))
}

// Node is implemented by every object a Scene can hold.
type Node interface {
	Object() *Object3D
}
