package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/status"
)

// HumGenerator is an endless tone that glides toward a settable frequency
// Target is written from the simulation side and read on the speaker goroutine
type HumGenerator struct {
	sr     beep.SampleRate
	target status.AtomicFloat
	freq   float64
	phase  float64
	gain   float64
}

// NewHumGenerator starts at the base frequency
func NewHumGenerator(sr beep.SampleRate) *HumGenerator {
	g := &HumGenerator{
		sr:   sr,
		freq: parameter.HumBaseFreq,
		gain: parameter.HumGain,
	}
	g.target.Set(parameter.HumBaseFreq)
	return g
}

// SetTarget sets the frequency the tone glides toward
func (g *HumGenerator) SetTarget(freq float64) {
	g.target.Set(freq)
}

// Frequency returns the current (gliding) frequency
func (g *HumGenerator) Frequency() float64 { return g.freq }

func (g *HumGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	target := g.target.Get()
	step := 2 * math.Pi / float64(g.sr)
	for i := range samples {
		g.freq += (target - g.freq) * parameter.HumGlide

		// Fundamental plus a soft octave for body
		sample := math.Sin(g.phase) + 0.3*math.Sin(2*g.phase)
		sample *= g.gain / 1.3

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += step * g.freq
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}
	}
	return len(samples), true
}

func (g *HumGenerator) Err() error {
	return nil
}

// SpeedToFrequency maps mean speed in [0, maxSpeed] onto the hum range
func SpeedToFrequency(speed, maxSpeed float64) float64 {
	if maxSpeed <= 0 {
		return parameter.HumBaseFreq
	}
	ratio := math.Max(0, math.Min(1, speed/maxSpeed))
	return parameter.HumBaseFreq + parameter.HumSpanFreq*ratio
}
