package controls

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"spin-sphere/internal/scene"
)

// Button identifies which pointer button started a gesture.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

type gesture int

const (
	gestureNone gesture = iota
	gestureRotate
	gesturePan
)

const (
	polarEpsilon = 1e-6
	// moveEpsilon absorbs float32 noise from the spherical round trip.
	moveEpsilon = 1e-4
)

// Options configures an Orbit. Zero values for the speeds fall back to 1.
type Options struct {
	EnableDamping bool
	// DampingFactor is the fraction of pending motion applied per tick (0, 1].
	DampingFactor float32
	EnablePan     bool
	EnableZoom    bool
	AutoRotate    bool
	// AutoRotateSpeed of 1 is one full turn per 60 seconds.
	AutoRotateSpeed float32
	RotateSpeed     float32
	PanSpeed        float32
	ZoomSpeed       float32
	MinDistance     float32
	MaxDistance     float32 // 0 = unlimited
}

// spherical is a point relative to the orbit target: phi is the polar angle
// from +Y, theta the azimuth around Y measured from +Z.
type spherical struct {
	radius, phi, theta float32
}

func sphericalFrom(v mgl32.Vec3) spherical {
	r := v.Len()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		radius: r,
		theta:  math32.Atan2(v.X(), v.Z()),
		phi:    math32.Acos(clamp(v.Y()/r, -1, 1)),
	}
}

func (s spherical) vec() mgl32.Vec3 {
	sinPhiRadius := math32.Sin(s.phi) * s.radius
	return mgl32.Vec3{
		sinPhiRadius * math32.Sin(s.theta),
		math32.Cos(s.phi) * s.radius,
		sinPhiRadius * math32.Cos(s.theta),
	}
}

// Orbit rotates a camera around its target. Call Update once per frame.
type Orbit struct {
	camera *scene.PerspectiveCamera
	opts   Options

	width, height int

	delta     spherical // pending rotation (radius unused)
	scale     float32   // pending dolly factor
	panOffset mgl32.Vec3

	gesture      gesture
	lastX, lastY float64
}

// NewOrbit binds controls to camera and a surface of the given size.
func NewOrbit(camera *scene.PerspectiveCamera, width, height int, opts Options) *Orbit {
	if opts.DampingFactor <= 0 {
		opts.DampingFactor = 0.05
	}
	if opts.RotateSpeed == 0 {
		opts.RotateSpeed = 1
	}
	if opts.PanSpeed == 0 {
		opts.PanSpeed = 1
	}
	if opts.ZoomSpeed == 0 {
		opts.ZoomSpeed = 1
	}
	o := &Orbit{
		camera: camera,
		opts:   opts,
		scale:  1,
	}
	o.SetSize(width, height)
	return o
}

// Options returns the active configuration.
func (o *Orbit) Options() Options {
	return o.opts
}

// SetSize updates the surface size used to scale pointer motion.
func (o *Orbit) SetSize(width, height int) {
	o.width, o.height = width, height
}

// Rotating reports whether a pointer gesture is in progress.
func (o *Orbit) Rotating() bool {
	return o.gesture != gestureNone
}

func (o *Orbit) autoRotationAngle(dt float64) float32 {
	return 2 * math32.Pi / 60 * o.opts.AutoRotateSpeed * float32(dt)
}

func (o *Orbit) rotateLeft(angle float32) { o.delta.theta -= angle }
func (o *Orbit) rotateUp(angle float32)   { o.delta.phi -= angle }

// Update advances the controls by dt seconds and moves the camera. It returns
// true when the camera position changed.
func (o *Orbit) Update(dt float64) bool {
	target := o.camera.Target
	offset := o.camera.Position.Sub(target)
	s := sphericalFrom(offset)

	if o.opts.AutoRotate && o.gesture == gestureNone {
		o.rotateLeft(o.autoRotationAngle(dt))
	}

	if o.opts.EnableDamping {
		s.theta += o.delta.theta * o.opts.DampingFactor
		s.phi += o.delta.phi * o.opts.DampingFactor
	} else {
		s.theta += o.delta.theta
		s.phi += o.delta.phi
	}
	s.phi = clamp(s.phi, polarEpsilon, math32.Pi-polarEpsilon)

	s.radius *= o.scale
	if s.radius < o.opts.MinDistance {
		s.radius = o.opts.MinDistance
	}
	if o.opts.MaxDistance > 0 && s.radius > o.opts.MaxDistance {
		s.radius = o.opts.MaxDistance
	}

	if o.opts.EnableDamping {
		target = target.Add(o.panOffset.Mul(o.opts.DampingFactor))
	} else {
		target = target.Add(o.panOffset)
	}

	before := o.camera.Position
	o.camera.Position = target.Add(s.vec())
	o.camera.LookAt(target)

	if o.opts.EnableDamping {
		keep := 1 - o.opts.DampingFactor
		o.delta.theta *= keep
		o.delta.phi *= keep
		o.panOffset = o.panOffset.Mul(keep)
	} else {
		o.delta = spherical{}
		o.panOffset = mgl32.Vec3{}
	}
	o.scale = 1

	return o.camera.Position.Sub(before).Len() > moveEpsilon
}

// PointerDown starts a gesture: left rotates, right pans when enabled.
func (o *Orbit) PointerDown(x, y float64, button Button) {
	o.lastX, o.lastY = x, y
	switch {
	case button == ButtonLeft:
		o.gesture = gestureRotate
	case button == ButtonRight && o.opts.EnablePan:
		o.gesture = gesturePan
	default:
		o.gesture = gestureNone
	}
}

// PointerMove continues the active gesture.
func (o *Orbit) PointerMove(x, y float64) {
	dx := float32(x - o.lastX)
	dy := float32(y - o.lastY)
	o.lastX, o.lastY = x, y
	if o.height <= 0 {
		return
	}

	switch o.gesture {
	case gestureRotate:
		h := float32(o.height)
		o.rotateLeft(2 * math32.Pi * dx / h * o.opts.RotateSpeed)
		o.rotateUp(2 * math32.Pi * dy / h * o.opts.RotateSpeed)
	case gesturePan:
		o.pan(dx, dy)
	}
}

// PointerUp ends the active gesture; pending motion keeps decaying when damped.
func (o *Orbit) PointerUp() {
	o.gesture = gestureNone
}

// Wheel dollies toward (dy > 0) or away from the target when zoom is enabled.
func (o *Orbit) Wheel(dy float64) {
	if !o.opts.EnableZoom || dy == 0 {
		return
	}
	step := math32.Pow(0.95, o.opts.ZoomSpeed)
	if dy > 0 {
		o.scale *= step
	} else {
		o.scale /= step
	}
}

// pan moves the target in the camera plane so the point under the pointer
// follows it.
func (o *Orbit) pan(dx, dy float32) {
	offset := o.camera.Position.Sub(o.camera.Target)
	distance := offset.Len() * math32.Tan(mgl32.DegToRad(o.camera.FOV)/2)
	h := float32(o.height)

	view := o.camera.ViewMatrix().Inv()
	right := view.Col(0).Vec3()
	up := view.Col(1).Vec3()

	o.panOffset = o.panOffset.
		Add(right.Mul(-2 * dx * distance / h * o.opts.PanSpeed)).
		Add(up.Mul(2 * dy * distance / h * o.opts.PanSpeed))
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
