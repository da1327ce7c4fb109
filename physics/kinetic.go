package physics

// Integrator advances a body by one step from its current acceleration
type Integrator interface {
	Integrate(b *Body, dt float64)
}

// Euler is semi-implicit Euler integration with a max-speed clamp
// v = cap(v + a*dt); p = p + v*dt
type Euler struct{}

// Integrate performs physics integration on a moving body; static bodies are left untouched
func (Euler) Integrate(b *Body, dt float64) {
	if b.IsStatic() || dt <= 0 {
		return
	}
	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	CapSpeed(&b.Velocity, b.MaxSpeed)
	b.Center = b.Center.Add(b.Velocity.Scale(dt))
	UpdateHeading(b)
}
