// Package audio sonifies the flock: a hum whose pitch follows mean speed.
// Audio is optional; every method is safe before or after Initialize fails.
package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/shoal/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager owns the speaker and the hum voice
type SoundManager struct {
	mu          sync.Mutex
	hum         *HumGenerator
	humCtrl     *beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	hum := NewHumGenerator(sampleRate)
	return &SoundManager{
		hum:     hum,
		humCtrl: &beep.Ctrl{Streamer: hum, Paused: true},
		mixer:   &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration))
	if err != nil {
		return err
	}

	sm.mixer.Add(sm.humCtrl)
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the hum and clears the mixer
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.humCtrl.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// IsInitialized reports whether the speaker is running
func (sm *SoundManager) IsInitialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// SetEnabled starts or pauses the hum
func (sm *SoundManager) SetEnabled(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		sm.humCtrl.Paused = !on
		return
	}
	speaker.Lock()
	sm.humCtrl.Paused = !on
	speaker.Unlock()
}

// ToggleEnabled flips the hum and returns the new state
func (sm *SoundManager) ToggleEnabled() bool {
	on := !sm.Enabled()
	sm.SetEnabled(on)
	return on
}

// Enabled reports whether the hum is playing (or would be, once initialized)
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return !sm.humCtrl.Paused
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !sm.humCtrl.Paused
}

// Update retunes the hum from the flock's mean speed; lock-free for the frame loop
func (sm *SoundManager) Update(meanSpeed, maxSpeed float64) {
	sm.hum.SetTarget(SpeedToFrequency(meanSpeed, maxSpeed))
}

// Target returns the frequency the hum is gliding toward
func (sm *SoundManager) Target() float64 {
	return sm.hum.target.Get()
}
