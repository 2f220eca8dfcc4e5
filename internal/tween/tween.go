// Package tween animates float properties over time on top of gween.
package tween

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultEase is used when no easing is given.
var DefaultEase ease.TweenFunc = ease.OutQuad

// Channel reads and writes one animated value.
type Channel struct {
	Get func() float32
	Set func(float32)
}

// Float32 animates *p.
func Float32(p *float32) Channel {
	return Channel{
		Get: func() float32 { return *p },
		Set: func(v float32) { *p = v },
	}
}

// Float64 animates *p. Values pass through float32 while tweening.
func Float64(p *float64) Channel {
	return Channel{
		Get: func() float32 { return float32(*p) },
		Set: func(v float32) { *p = float64(v) },
	}
}

// Prop is one property of a tween: where it goes and, optionally, where it starts.
type Prop struct {
	ch      Channel
	from    float32
	to      float32
	hasFrom bool
}

// To animates ch from whatever it holds when the tween starts.
func To(ch Channel, to float32) Prop {
	return Prop{ch: ch, to: to}
}

// FromTo animates ch between two fixed values.
func FromTo(ch Channel, from, to float32) Prop {
	return Prop{ch: ch, from: from, to: to, hasFrom: true}
}

type track struct {
	ch Channel
	tw *gween.Tween
}

// step moves a group of props together over one duration.
type step struct {
	duration float32
	props    []Prop
	tracks   []track
	started  bool
}

func (s *step) start(easing ease.TweenFunc) {
	s.started = true
	s.tracks = s.tracks[:0]
	for _, p := range s.props {
		from := p.ch.Get()
		if p.hasFrom {
			from = p.from
		}
		s.tracks = append(s.tracks, track{ch: p.ch, tw: gween.New(from, p.to, s.duration, easing)})
	}
}

// update returns true once every track reached its end, along with the time
// left over past the end of the step.
func (s *step) update(dt float32) (bool, float32) {
	if s.duration <= 0 {
		for _, p := range s.props {
			p.ch.Set(p.to)
		}
		return true, dt
	}
	done := true
	overflow := dt
	for _, t := range s.tracks {
		v, finished := t.tw.Update(dt)
		t.ch.Set(v)
		if finished {
			overflow = t.tw.Overflow
		} else {
			done = false
		}
	}
	return done, overflow
}
