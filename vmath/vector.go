package vmath

import "math"

// Vec2 is a float64 2D vector used by steering and kinematics
// Value type: every operation returns a new vector
type Vec2 struct {
	X, Y float64
}

// Zero is the zero vector
var Zero = Vec2{}

// V2 builds a vector from components
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// FromPolar builds a vector of length radius at angle (radians)
func FromPolar(angle, radius float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: cos * radius, Y: sin * radius}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// LenSq returns squared length without sqrt
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// IsZero reports exact equality with the zero vector
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// IsFinite reports whether both components are finite
func (v Vec2) IsFinite() bool { return IsFinite(v.X) && IsFinite(v.Y) }

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Zero
	}
	return Vec2{v.X / l, v.Y / l}
}

// SetLength rescales to length l while preserving direction
// The zero vector has no direction and stays zero
func (v Vec2) SetLength(l float64) Vec2 {
	return v.Normalize().Scale(l)
}

// Limit clamps length to max while preserving direction
// Non-positive max yields the zero vector
func (v Vec2) Limit(max float64) Vec2 {
	if max <= 0 {
		return Zero
	}
	lsq := v.LenSq()
	if lsq <= max*max {
		return v
	}
	return v.Scale(max / math.Sqrt(lsq))
}

// Rotate rotates counter-clockwise in a y-up frame (clockwise on a y-down screen) by angle radians
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Angle returns the heading in radians, atan2(y, x)
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// DistanceTo returns Euclidean distance between two points
func (v Vec2) DistanceTo(o Vec2) float64 { return o.Sub(v).Len() }
