package scheduler

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides pausable simulation time with pause duration tracking
type PausableClock struct {
	mu sync.RWMutex

	provider  TimeProvider
	realStart time.Time

	isPaused        atomic.Bool
	pauseStartTime  time.Time
	totalPausedTime time.Duration
}

// NewPausableClock creates a clock reading real time from provider; nil uses the system clock
func NewPausableClock(provider TimeProvider) *PausableClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		provider:  provider,
		realStart: provider.Now(),
	}
}

// Elapsed returns simulation time since creation, frozen while paused
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.pauseStartTime.Sub(pc.realStart) - pc.totalPausedTime
	}
	return pc.provider.Now().Sub(pc.realStart) - pc.totalPausedTime
}

// RealTime returns the provider's time, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return pc.provider.Now()
}

// Pause stops simulation time advancement
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.pauseStartTime = pc.provider.Now()
	}
}

// Resume continues simulation time advancement
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		defer pc.mu.Unlock()

		if !pc.pauseStartTime.IsZero() {
			pc.totalPausedTime += pc.provider.Now().Sub(pc.pauseStartTime)
			pc.pauseStartTime = time.Time{}
		}
	}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time including a pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		total += pc.provider.Now().Sub(pc.pauseStartTime)
	}
	return total
}
