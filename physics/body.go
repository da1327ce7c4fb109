// Package physics owns kinematic bodies, their integration and the world
// rectangle they wrap across.
package physics

import "github.com/lixenwraith/shoal/vmath"

// Kind separates moving flock members from fixed obstacles sharing the spatial index
type Kind uint8

const (
	KindFish Kind = iota
	KindStatic
)

func (k Kind) String() string {
	switch k {
	case KindFish:
		return "fish"
	case KindStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Body is the kinematic state of one simulated object
// Agents write Acceleration only; the integrator owns Velocity, Center and Heading
type Body struct {
	ID   int
	Kind Kind

	Center       vmath.Vec2
	Velocity     vmath.Vec2
	Acceleration vmath.Vec2

	// Heading in radians, follows velocity and holds its last value while stopped
	Heading  float64
	MaxSpeed float64
	Radius   float64
}

// NewFish returns a moving body at center with the given velocity
func NewFish(id int, center, velocity vmath.Vec2, radius float64) *Body {
	return &Body{
		ID:       id,
		Kind:     KindFish,
		Center:   center,
		Velocity: velocity,
		Heading:  velocity.Angle(),
		Radius:   radius,
	}
}

// NewStatic returns an immovable body
func NewStatic(id int, center vmath.Vec2, radius float64) *Body {
	return &Body{
		ID:     id,
		Kind:   KindStatic,
		Center: center,
		Radius: radius,
	}
}

// IsStatic reports whether the body never integrates
func (b *Body) IsStatic() bool { return b.Kind == KindStatic }

// Speed returns the velocity magnitude
func (b *Body) Speed() float64 { return b.Velocity.Len() }
