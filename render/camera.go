package render

import (
	"math"

	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/vmath"
)

// Camera maps world coordinates to terminal cells
// World y grows downward, matching screen rows
type Camera struct {
	Center vmath.Vec2
	Zoom   float64

	// FollowID is the body id to track; -1 disables follow
	FollowID int
}

// NewCamera centers on the origin at default zoom
func NewCamera() *Camera {
	return &Camera{Zoom: parameter.ZoomDefault, FollowID: -1}
}

// ZoomIn increases magnification by one step
func (c *Camera) ZoomIn() {
	c.Zoom = vmath.Clamp(c.Zoom+parameter.ZoomStep, parameter.ZoomMin, parameter.ZoomMax)
}

// ZoomOut decreases magnification by one step
func (c *Camera) ZoomOut() {
	c.Zoom = vmath.Clamp(c.Zoom-parameter.ZoomStep, parameter.ZoomMin, parameter.ZoomMax)
}

// Follow tracks body id
func (c *Camera) Follow(id int) { c.FollowID = id }

// Unfollow stops tracking and recenters on the origin
func (c *Camera) Unfollow() {
	c.FollowID = -1
	c.Center = vmath.Zero
}

// Following reports whether a body is tracked
func (c *Camera) Following() bool { return c.FollowID >= 0 }

// scale returns terminal columns per world unit for a screen width
func (c *Camera) scale(width int) float64 {
	return float64(width) * c.Zoom / parameter.ViewWorldSpan
}

// WorldToScreen projects p; the result may be off screen
func (c *Camera) WorldToScreen(p vmath.Vec2, width, height int) (int, int) {
	s := c.scale(width)
	x := float64(width)/2 + (p.X-c.Center.X)*s
	y := float64(height)/2 + (p.Y-c.Center.Y)*s/parameter.CellAspect
	return int(math.Floor(x)), int(math.Floor(y))
}

// ScreenToWorld returns the world point at the center of cell (x, y)
func (c *Camera) ScreenToWorld(x, y, width, height int) vmath.Vec2 {
	s := c.scale(width)
	if s == 0 {
		return c.Center
	}
	return vmath.V2(
		c.Center.X+(float64(x)+0.5-float64(width)/2)/s,
		c.Center.Y+(float64(y)+0.5-float64(height)/2)*parameter.CellAspect/s,
	)
}
