package physics

import "github.com/lixenwraith/shoal/vmath"

// CapSpeed limits the velocity vector magnitude to maxSpeed
// Non-positive maxSpeed disables the cap; returns true if velocity was clamped
func CapSpeed(vel *vmath.Vec2, maxSpeed float64) bool {
	if maxSpeed <= 0 {
		return false
	}
	if vel.LenSq() <= maxSpeed*maxSpeed {
		return false
	}
	*vel = vel.Limit(maxSpeed)
	return true
}

// UpdateHeading points the heading along velocity, keeping the last heading at rest
func UpdateHeading(b *Body) {
	if b.Velocity.IsZero() {
		return
	}
	b.Heading = b.Velocity.Angle()
}
