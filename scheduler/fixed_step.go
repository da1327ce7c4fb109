// Package scheduler drives a simulation at a fixed timestep from a pausable,
// time-scaled clock.
package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/status"
)

// Stepper advances a simulation by dt seconds
type Stepper interface {
	Tick(dt float64)
}

// StepFunc adapts a function to Stepper
type StepFunc func(dt float64)

func (f StepFunc) Tick(dt float64) { f(dt) }

// FixedStep accumulates scaled clock time and spends it in whole steps
// Every step is exactly StepDuration of simulation time regardless of frame rate
type FixedStep struct {
	mu sync.Mutex

	stepper   Stepper
	clock     *PausableClock
	step      time.Duration
	maxSteps  int
	timeScale func() float64

	lastElapsed time.Duration
	accumulator time.Duration

	tickCount atomic.Uint64
	statTicks *atomic.Int64

	// Loop control
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// Option customizes a FixedStep
type Option func(*FixedStep)

// WithClock replaces the default system clock
func WithClock(c *PausableClock) Option {
	return func(fs *FixedStep) { fs.clock = c }
}

// WithTimeScale sets the simulated-seconds-per-real-second source, read every Advance
func WithTimeScale(fn func() float64) Option {
	return func(fs *FixedStep) { fs.timeScale = fn }
}

// WithMaxSteps caps catch-up steps per Advance
func WithMaxSteps(n int) Option {
	return func(fs *FixedStep) {
		if n > 0 {
			fs.maxSteps = n
		}
	}
}

// WithRegistry publishes the step count
func WithRegistry(r *status.Registry) Option {
	return func(fs *FixedStep) { fs.statTicks = r.Ints.Get(status.KeySchedulerSteps) }
}

// NewFixedStep creates a scheduler driving stepper at parameter.StepsPerSecond
func NewFixedStep(stepper Stepper, opts ...Option) *FixedStep {
	fs := &FixedStep{
		stepper:   stepper,
		step:      parameter.StepDuration,
		maxSteps:  parameter.MaxStepsPerAdvance,
		timeScale: func() float64 { return 1 },
		stopChan:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(fs)
	}
	if fs.clock == nil {
		fs.clock = NewPausableClock(nil)
	}
	fs.lastElapsed = fs.clock.Elapsed()
	return fs
}

// StepSeconds is the fixed dt handed to the stepper
func (fs *FixedStep) StepSeconds() float64 { return fs.step.Seconds() }

// Advance runs as many whole steps as the scaled elapsed time allows and returns the count
// Time owed beyond the catch-up cap is dropped so a stall cannot spiral
func (fs *FixedStep) Advance() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	now := fs.clock.Elapsed()
	delta := now - fs.lastElapsed
	fs.lastElapsed = now
	if delta <= 0 {
		return 0
	}

	scale := fs.timeScale()
	if !(scale > 0) {
		return 0
	}
	fs.accumulator += time.Duration(float64(delta) * scale)

	steps := 0
	for fs.accumulator >= fs.step && steps < fs.maxSteps {
		fs.runStepLocked()
		fs.accumulator -= fs.step
		steps++
	}
	if fs.accumulator >= fs.step {
		fs.accumulator = 0
	}
	return steps
}

// StepOnce runs a single step, also while paused
func (fs *FixedStep) StepOnce() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.runStepLocked()
}

func (fs *FixedStep) runStepLocked() {
	fs.stepper.Tick(fs.step.Seconds())
	n := fs.tickCount.Add(1)
	if fs.statTicks != nil {
		fs.statTicks.Store(int64(n))
	}
}

// Pause freezes simulation time
func (fs *FixedStep) Pause() { fs.clock.Pause() }

// Resume continues simulation time; time spent paused is never replayed
func (fs *FixedStep) Resume() { fs.clock.Resume() }

// TogglePause flips pause state and returns the new state
func (fs *FixedStep) TogglePause() bool {
	if fs.clock.IsPaused() {
		fs.Resume()
		return false
	}
	fs.Pause()
	return true
}

// IsPaused returns current pause state
func (fs *FixedStep) IsPaused() bool { return fs.clock.IsPaused() }

// Ticks returns steps run so far
func (fs *FixedStep) Ticks() uint64 { return fs.tickCount.Load() }

// Start begins advancing every interval on a background goroutine
func (fs *FixedStep) Start(interval time.Duration) {
	if interval <= 0 {
		interval = fs.step
	}
	if fs.running.CompareAndSwap(false, true) {
		fs.wg.Add(1)
		go fs.loop(interval)
	}
}

// Stop halts the loop and waits for the in-flight step
func (fs *FixedStep) Stop() {
	fs.stopOnce.Do(func() {
		if fs.running.CompareAndSwap(true, false) {
			close(fs.stopChan)
			fs.wg.Wait()
		}
	})
}

func (fs *FixedStep) loop(interval time.Duration) {
	defer fs.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-fs.stopChan:
			return
		case <-ticker.C:
			fs.Advance()
		}
	}
}
