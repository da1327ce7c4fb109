package agent

import "github.com/lixenwraith/shoal/vmath"

// Wanderer is the abstract rotating point behind the wander force
// Its angle performs a bounded random walk; it has no position of its own
type Wanderer struct {
	// Angle in degrees, [-180, 180)
	Angle float64
	// AngularVelocity in degrees per second, |AngularVelocity| <= MaxAngular
	AngularVelocity float64
	MaxAngular      float64
}

// Draw sets the angular bound and draws a new angular velocity uniformly in [-speed, speed)
func (w *Wanderer) Draw(rng *vmath.FastRand, speed float64) {
	if speed <= 0 {
		w.MaxAngular = 0
		w.AngularVelocity = 0
		return
	}
	w.MaxAngular = speed
	w.AngularVelocity = rng.FloatBetween(-speed, speed)
}

// Step integrates the angle by one step of dt seconds
func (w *Wanderer) Step(dt float64) {
	av := vmath.Clamp(w.AngularVelocity, -w.MaxAngular, w.MaxAngular)
	w.Angle = vmath.WrapDegrees(w.Angle + av*dt)
}

// Reset releases the wanderer state
func (w *Wanderer) Reset() {
	*w = Wanderer{}
}
