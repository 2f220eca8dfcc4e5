package scene

import "github.com/lucasb-eyer/go-colorful"

// PointLightDecay is the physically based inverse-square falloff exponent.
const PointLightDecay = 2

// PointLight emits in all directions from its position. Distance is the range
// at which the light reaches zero; 0 means unlimited.
type PointLight struct {
	Object3D
	Color     colorful.Color
	Intensity float32
	Distance  float32
	Decay     float32
}

func NewPointLight(color colorful.Color, intensity, distance float32) *PointLight {
	return &PointLight{
		Object3D:  newObject3D(),
		Color:     color,
		Intensity: intensity,
		Distance:  distance,
		Decay:     PointLightDecay,
	}
}

func (l *PointLight) Object() *Object3D { return &l.Object3D }
