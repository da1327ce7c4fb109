package vmath

import "math"

// --- Scalars ---

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 { return deg * (math.Pi / 180) }

// RadToDeg converts radians to degrees
func RadToDeg(rad float64) float64 { return rad * (180 / math.Pi) }

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapDegrees maps an angle in degrees into [-180, 180)
func WrapDegrees(deg float64) float64 {
	return Wrap(deg, -180, 180)
}

// Wrap maps v into the half-open range [lo, hi)
// A degenerate range returns lo
func Wrap(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	w := lo + math.Mod(math.Mod(v-lo, span)+span, span)
	// Mod of a value a hair below span rounds up to span
	if w >= hi {
		return lo
	}
	return w
}

// DeltaDegrees returns the signed shortest difference b-a in degrees, in [-180, 180)
func DeltaDegrees(a, b float64) float64 {
	return WrapDegrees(b - a)
}

// IsFinite reports whether f is neither NaN nor infinite
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// --- Randomness ---

// FastRand is a xorshift64 source, one per agent so draws stay deterministic
// regardless of how agents are scheduled across workers
type FastRand struct {
	state uint64
}

// NewFastRand seeds a source; zero seed is remapped since xorshift sticks at zero
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 returns a uniform value in [0, 1) from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// FloatBetween returns a uniform value in [lo, hi)
func (r *FastRand) FloatBetween(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Angle returns a uniform angle in radians in [-pi, pi)
func (r *FastRand) Angle() float64 {
	return r.FloatBetween(-math.Pi, math.Pi)
}
