package demo

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/segmentio/ksuid"
)

// Viewport is the latest observed surface size in logical pixels.
type Viewport struct {
	Width, Height int
}

// TargetColor is an 8-bit sRGB color the material is animating toward.
type TargetColor struct {
	R, G, B uint8
}

// Normalized returns c with components in [0, 1].
func (c TargetColor) Normalized() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Session is the mutable state shared by the event handlers. Transitions
// are value methods returning the next Session; the receiver is unchanged.
type Session struct {
	ID        ksuid.KSUID
	Viewport  Viewport
	Dragging  bool
	Target    TargetColor
	HasTarget bool
}

// NewSession starts a session for a surface of the given size.
func NewSession(viewport Viewport) Session {
	return Session{ID: ksuid.New(), Viewport: viewport}
}

// Resize records a new surface size. Non-positive sizes, as reported for a
// minimized window, leave the session unchanged.
func (s Session) Resize(width, height int) Session {
	if width <= 0 || height <= 0 {
		return s
	}
	s.Viewport = Viewport{Width: width, Height: height}
	return s
}

// PointerDown starts a drag.
func (s Session) PointerDown() Session {
	s.Dragging = true
	return s
}

// PointerUp ends a drag.
func (s Session) PointerUp() Session {
	s.Dragging = false
	return s
}

// PointerMove derives a new target color while dragging. The bool reports
// whether a new target was produced; outside a drag the session is unchanged.
func (s Session) PointerMove(x, y float64, blue uint8) (Session, bool) {
	if !s.Dragging || s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return s, false
	}
	s.Target = ColorFromPointer(x, y, s.Viewport, blue)
	s.HasTarget = true
	return s, true
}

// ColorFromPointer maps x across the width to red and y down the height to
// green, each rounded to the nearest step in [0, 255]. Blue is fixed.
func ColorFromPointer(x, y float64, vp Viewport, blue uint8) TargetColor {
	return TargetColor{
		R: channel(x, vp.Width),
		G: channel(y, vp.Height),
		B: blue,
	}
}

func channel(pos float64, extent int) uint8 {
	if extent <= 0 {
		return 0
	}
	v := math.Round(pos / float64(extent) * 255)
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Max(0, math.Min(255, v)))
}
