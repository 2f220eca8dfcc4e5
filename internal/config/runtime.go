package config

import "sync"

// FrameSettings holds settings that can change while the window is open.
type FrameSettings struct {
	mu       sync.RWMutex
	fpsLimit int // 0 = vsync pacing
}

var globalFrameSettings = &FrameSettings{}

// GetFPSLimit returns the current frame rate cap
func GetFPSLimit() int {
	globalFrameSettings.mu.RLock()
	defer globalFrameSettings.mu.RUnlock()
	return globalFrameSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap; 0 disables the limiter
func SetFPSLimit(limit int) {
	globalFrameSettings.mu.Lock()
	defer globalFrameSettings.mu.Unlock()

	// Clamp to reasonable values
	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalFrameSettings.fpsLimit = limit
}
