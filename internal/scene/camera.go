package scene

import "github.com/go-gl/mathgl/mgl32"

// PerspectiveCamera handles the view and projection matrices.
//
// The projection matrix is cached: after changing FOV, Aspect, Near or Far,
// call UpdateProjectionMatrix for the change to take effect.
type PerspectiveCamera struct {
	Object3D
	FOV    float32 // vertical, in degrees
	Aspect float32
	Near   float32
	Far    float32

	Target mgl32.Vec3
	Up     mgl32.Vec3

	projection mgl32.Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Object3D: newObject3D(),
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Up:       mgl32.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *PerspectiveCamera) Object() *Object3D { return &c.Object3D }

// UpdateProjectionMatrix recomputes the cached projection from the current fields.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

func (c *PerspectiveCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// LookAt points the camera at target.
func (c *PerspectiveCamera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

// AspectRatio returns width/height, or 1 when height is not positive so a
// minimized surface never produces an infinite aspect.
func AspectRatio(width, height int) float32 {
	if height <= 0 || width <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
