package tween

import "github.com/tanema/gween/ease"

// Timeline plays steps one after another. Each FromTo step uses the
// timeline's default duration.
type Timeline struct {
	duration float32
	ease     ease.TweenFunc
	steps    []*step
	index    int
}

// NewTimeline returns an empty timeline whose steps last defaultDuration seconds.
func NewTimeline(defaultDuration float32) *Timeline {
	return &Timeline{duration: defaultDuration, ease: DefaultEase}
}

// Ease replaces the easing for steps that have not started yet.
func (tl *Timeline) Ease(fn ease.TweenFunc) *Timeline {
	if fn != nil {
		tl.ease = fn
	}
	return tl
}

// FromTo appends a step of the default duration. The from values are written
// right away so the first frame already shows the start state.
func (tl *Timeline) FromTo(props ...Prop) *Timeline {
	return tl.FromToFor(tl.duration, props...)
}

// FromToFor is FromTo with its own duration.
func (tl *Timeline) FromToFor(duration float32, props ...Prop) *Timeline {
	for _, p := range props {
		if p.hasFrom {
			p.ch.Set(p.from)
		}
	}
	tl.steps = append(tl.steps, &step{duration: duration, props: props})
	return tl
}

// Len returns the number of steps.
func (tl *Timeline) Len() int {
	return len(tl.steps)
}

// Duration returns the sum of all step durations.
func (tl *Timeline) Duration() float32 {
	var total float32
	for _, s := range tl.steps {
		total += s.duration
	}
	return total
}

// Done reports whether every step has finished.
func (tl *Timeline) Done() bool {
	return tl.index >= len(tl.steps)
}

// update advances the current step; time left past its end carries into the next.
func (tl *Timeline) update(dt float32) bool {
	for tl.index < len(tl.steps) {
		s := tl.steps[tl.index]
		if !s.started {
			s.start(tl.ease)
		}
		done, overflow := s.update(dt)
		if !done {
			return false
		}
		tl.index++
		dt = overflow
	}
	return true
}
