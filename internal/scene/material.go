package scene

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a "#rrggbb" or "#rgb" string into a normalized sRGB color.
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return c, nil
}

// StandardMaterial is a rough/diffuse surface lit by point lights.
// Color components are normalized sRGB in [0, 1].
type StandardMaterial struct {
	Color     colorful.Color
	Roughness float32
}

func NewStandardMaterial(color colorful.Color, roughness float32) *StandardMaterial {
	return &StandardMaterial{Color: color, Roughness: roughness}
}
