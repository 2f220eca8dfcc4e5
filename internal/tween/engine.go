package tween

import "github.com/tanema/gween/ease"

type runner interface {
	update(dt float32) bool
}

// single runs one step on its own, dropping the overflow a timeline would
// carry into its next step.
type single struct {
	s *step
}

func (t single) update(dt float32) bool {
	done, _ := t.s.update(dt)
	return done
}

type entry struct {
	key string
	run runner
}

// Engine steps every running tween and timeline once per frame. It is not
// safe for concurrent use; call it from the render loop only.
type Engine struct {
	ease    ease.TweenFunc
	running []entry
}

// NewEngine returns an engine using DefaultEase.
func NewEngine() *Engine {
	return &Engine{ease: DefaultEase}
}

// SetEase changes the easing for tweens started by To.
func (e *Engine) SetEase(fn ease.TweenFunc) {
	if fn != nil {
		e.ease = fn
	}
}

// To starts a tween of props over duration seconds. A running tween with
// the same key is dropped, and the new one begins at the current values,
// so the latest target wins without a jump.
func (e *Engine) To(key string, duration float32, props ...Prop) {
	if key != "" {
		e.cancel(key)
	}
	s := &step{duration: duration, props: props}
	s.start(e.ease)
	e.running = append(e.running, entry{key: key, run: single{s}})
}

// Play runs tl until its last step finishes.
func (e *Engine) Play(tl *Timeline) {
	e.running = append(e.running, entry{run: tl})
}

// Running reports whether a tween with key is in flight.
func (e *Engine) Running(key string) bool {
	for _, r := range e.running {
		if r.key == key {
			return true
		}
	}
	return false
}

// Active returns the number of tweens and timelines in flight.
func (e *Engine) Active() int {
	return len(e.running)
}

// Update advances everything by dt seconds and drops what finished.
func (e *Engine) Update(dt float64) {
	kept := e.running[:0]
	for _, r := range e.running {
		if !r.run.update(float32(dt)) {
			kept = append(kept, r)
		}
	}
	for i := len(kept); i < len(e.running); i++ {
		e.running[i] = entry{}
	}
	e.running = kept
}

func (e *Engine) cancel(key string) {
	for i, r := range e.running {
		if r.key == key {
			e.running = append(e.running[:i], e.running[i+1:]...)
			return
		}
	}
}
