package parameter

import "time"

// Sonification
const (
	// AudioSampleRate is the output sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// HumBaseFreq and HumSpanFreq map mean speed 0..maxSpeed onto BaseFreq..BaseFreq+SpanFreq
	HumBaseFreq = 110.0
	HumSpanFreq = 220.0

	// HumGain is the output amplitude
	HumGain = 0.08

	// HumGlide is the per-sample smoothing factor toward the target frequency
	HumGlide = 0.0005
)
