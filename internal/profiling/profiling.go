// Package profiling keeps per-frame timings so slow frames can be explained.
package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Profiler accumulates named durations for the current frame.
type Profiler struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	now    func() time.Time
}

// New returns an empty profiler.
func New() *Profiler {
	return &Profiler{totals: make(map[string]time.Duration), now: time.Now}
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer p.Track("renderer.Render")()
func (p *Profiler) Track(name string) func() {
	start := p.now()
	return func() {
		p.Add(name, p.now().Sub(start))
	}
}

// Add records d under name.
func (p *Profiler) Add(name string, d time.Duration) {
	p.mu.Lock()
	p.totals[name] += d
	p.mu.Unlock()
}

// Reset clears the totals. Call at the start of each frame.
func (p *Profiler) Reset() {
	p.mu.Lock()
	clear(p.totals)
	p.mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func (p *Profiler) Snapshot() map[string]time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]time.Duration, len(p.totals))
	for k, v := range p.totals {
		out[k] = v
	}
	return out
}

// Total is the sum of everything tracked this frame.
func (p *Profiler) Total() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	var sum time.Duration
	for _, v := range p.totals {
		sum += v
	}
	return sum
}

// TopN formats the n largest totals, slowest first.
// Example: "renderer.Render:4.2ms, tween.Update:0.3ms"
func (p *Profiler) TopN(n int) string {
	type pair struct {
		name string
		dur  time.Duration
	}
	ss := p.Snapshot()
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		parts = append(parts, e.name+":"+formatMs(e.dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops it for whole milliseconds.
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := strconv.FormatFloat(ms, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + "ms"
}

var std = New()

// Track records into the process-wide profiler.
// Usage: defer profiling.Track("renderer.Render")()
func Track(name string) func() {
	return std.Track(name)
}

// ResetFrame clears the process-wide totals. Call at the start of each frame.
func ResetFrame() {
	std.Reset()
}

// FrameTotal is Total for the process-wide profiler.
func FrameTotal() time.Duration {
	return std.Total()
}

// TopN is Profiler.TopN for the process-wide profiler.
func TopN(n int) string {
	return std.TopN(n)
}
