package host

import (
	"sync"
	"time"
)

// scheduler is the GLFW-free part of the window loop: the single pending
// frame callback, the frame clock, frame pacing and the quit request.
type scheduler struct {
	now func() time.Time

	pending func(dt float64)
	last    time.Time
	drawn   bool

	// deadline is when the next capped frame may start.
	deadline time.Time

	mu     sync.Mutex
	quit   bool
	closed bool
}

func newScheduler(now func() time.Time) *scheduler {
	if now == nil {
		now = time.Now
	}
	return &scheduler{now: now, last: now()}
}

// setNext registers cb for the next frame, replacing one that has not run.
func (s *scheduler) setNext(cb func(dt float64)) {
	s.pending = cb
}

func (s *scheduler) idle() bool {
	return s.pending == nil
}

// restartClock makes the next frame's dt count from now.
func (s *scheduler) restartClock() {
	s.last = s.now()
}

// frame runs the pending callback with the seconds since the previous frame,
// then swap. The slot is cleared first so the callback can queue its successor.
func (s *scheduler) frame(swap func()) bool {
	cb := s.pending
	if cb == nil {
		return false
	}
	s.pending = nil

	t := s.now()
	dt := t.Sub(s.last).Seconds()
	s.last = t
	s.drawn = true

	cb(dt)
	swap()
	return true
}

// tick polls for events and then runs the pending frame, unless a refresh
// delivered during the poll already drew one.
func (s *scheduler) tick(poll, swap func()) {
	s.drawn = false
	poll()
	if !s.drawn {
		s.frame(swap)
	}
}

// pace returns how long to sleep so frames start at most limit times per
// second. A limit of 0 leaves pacing to vsync.
func (s *scheduler) pace(limit int) time.Duration {
	if limit <= 0 {
		s.deadline = time.Time{}
		return 0
	}
	interval := time.Second / time.Duration(limit)
	t := s.now()
	if s.deadline.IsZero() {
		s.deadline = t
	}
	s.deadline = s.deadline.Add(interval)
	// Behind by more than a frame: start over instead of racing to catch up.
	if s.deadline.Before(t) {
		s.deadline = t
	}
	return s.deadline.Sub(t)
}

// requestClose asks the loop to stop and calls wake to interrupt a blocking
// event wait. After shutdown it does nothing. Safe from any goroutine.
func (s *scheduler) requestClose(wake func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.quit = true
	wake()
}

func (s *scheduler) stopping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quit
}

// shutdown runs destroy once; later close requests are ignored.
func (s *scheduler) shutdown(destroy func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	destroy()
}
