package vmath

// Circle is a center and radius in world units
type Circle struct {
	Center Vec2
	Radius float64
}

// Valid reports whether the circle encloses any area
func (c Circle) Valid() bool { return c.Radius > 0 }

// Contains reports whether p lies strictly inside the circle
// Points on the rim are outside; a circle with non-positive radius contains nothing
func (c Circle) Contains(p Vec2) bool {
	if c.Radius <= 0 {
		return false
	}
	return p.Sub(c.Center).LenSq() < c.Radius*c.Radius
}

// OverlapsDisc reports whether a disc of radius r at p touches or overlaps the circle
func (c Circle) OverlapsDisc(p Vec2, r float64) bool {
	reach := c.Radius + r
	if reach < 0 {
		return false
	}
	return p.Sub(c.Center).LenSq() <= reach*reach
}

// PointAt returns the rim point at angle (radians)
func (c Circle) PointAt(angle float64) Vec2 {
	return c.Center.Add(FromPolar(angle, c.Radius))
}
