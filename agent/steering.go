package agent

import (
	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/physics"
	"github.com/lixenwraith/shoal/vmath"
)

// Steer limits desired to max speed, takes the velocity delta and limits it to max force
// Every behaviour funnels through here
func (f *Fish) Steer(desired vmath.Vec2) vmath.Vec2 {
	cfg := &f.env.Config
	return desired.Limit(cfg.MaxSpeed).Sub(f.Body.Velocity).Limit(cfg.MaxForce)
}

// Seek steers toward target, asking to arrive within one simulation step
func (f *Fish) Seek(target vmath.Vec2) vmath.Vec2 {
	desired := target.Sub(f.Body.Center).Scale(f.env.StepsPerSecond)
	return f.Steer(desired)
}

// Flee steers directly away from target at max speed
func (f *Fish) Flee(target vmath.Vec2) vmath.Vec2 {
	desired := f.Body.Center.Sub(target).SetLength(f.env.Config.MaxSpeed)
	return f.Steer(desired)
}

// alignHeading returns the projection-weighted mean velocity of neighbours ahead
// ok is false when no neighbour contributes a usable signal
func (f *Fish) alignHeading(neighbors []*physics.Body) (heading vmath.Vec2, ok bool) {
	var sum vmath.Vec2
	var productSum float64

	for _, n := range neighbors {
		d := n.Center.Sub(f.Body.Center)
		dist := d.Len()
		if dist == 0 {
			continue
		}
		product := d.Dot(f.Body.Velocity) / dist
		// Behind or abeam; also rejects NaN
		if !(product > 0) {
			continue
		}
		sum = sum.Add(n.Velocity.Scale(product))
		productSum += product
	}

	if sum.IsZero() || productSum < parameter.AlignProductEpsilon {
		return vmath.Zero, false
	}
	return sum.Scale(1 / productSum), true
}

// Align matches the heading of neighbours in front, weighted by how far ahead they are
func (f *Fish) Align(neighbors []*physics.Body) vmath.Vec2 {
	if len(neighbors) == 0 {
		return vmath.Zero
	}
	heading, ok := f.alignHeading(neighbors)
	if !ok {
		return vmath.Zero
	}
	return f.Steer(heading)
}

// Cohere seeks the centroid of neighbours
func (f *Fish) Cohere(neighbors []*physics.Body) vmath.Vec2 {
	if len(neighbors) == 0 {
		return vmath.Zero
	}
	var sum vmath.Vec2
	for _, n := range neighbors {
		sum = sum.Add(n.Center)
	}
	f.CohereTarget = sum.Scale(1 / float64(len(neighbors)))
	return f.Seek(f.CohereTarget)
}

// Separate pushes away from close neighbours with inverse-linear falloff
// Coincident neighbours have no direction and contribute nothing
func (f *Fish) Separate(neighbors []*physics.Body) vmath.Vec2 {
	if len(neighbors) == 0 {
		return vmath.Zero
	}
	var sum vmath.Vec2
	for _, n := range neighbors {
		away := f.Body.Center.Sub(n.Center)
		dist := away.Len()
		if dist == 0 {
			continue
		}
		// Unit direction over distance
		sum = sum.Add(away.Scale(1 / (dist * dist)))
	}
	return sum.Limit(f.env.Config.MaxForce)
}

// Contain seeks the globe center when the look-ahead point leaves the globe
func (f *Fish) Contain() vmath.Vec2 {
	cfg := &f.env.Config
	f.ContainTarget = f.Body.Center.Add(f.Body.Velocity.Scale(cfg.ContainTime))

	globe := f.env.Globe
	if !globe.Valid() || globe.Contains(f.ContainTarget) {
		return vmath.Zero
	}
	return f.Seek(globe.Center)
}

// Wander samples the wander circle ahead of the fish at the wanderer's angle
func (f *Fish) Wander() vmath.Vec2 {
	cfg := &f.env.Config
	radius := cfg.MaxForce * cfg.WanderRadius
	distance := cfg.WanderStrength * (cfg.MaxForce - radius)
	heading := f.Body.Heading

	p := vmath.FromPolar(vmath.DegToRad(f.WanderBody.Angle), radius)
	p.X += distance
	p = p.Rotate(heading)

	f.WanderPoint = f.Body.Center.Add(p)
	f.WanderCircle = vmath.Circle{
		Center: f.Body.Center.Add(vmath.FromPolar(heading, distance)),
		Radius: radius,
	}
	return p.Limit(cfg.MaxForce)
}
