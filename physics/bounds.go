package physics

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"

	"github.com/lixenwraith/shoal/vmath"
)

// Bounds is the world rectangle bodies wrap across (toroidal topology)
// Edges are half-open: the low edge belongs to the world, the high edge maps back to low
type Bounds struct {
	rect r2.Rect
}

// NewBounds builds bounds from a lower-left corner and size
func NewBounds(minX, minY, width, height float64) Bounds {
	return Bounds{rect: r2.Rect{
		X: r1.Interval{Lo: minX, Hi: minX + width},
		Y: r1.Interval{Lo: minY, Hi: minY + height},
	}}
}

// Rect exposes the underlying rectangle
func (w Bounds) Rect() r2.Rect { return w.rect }

// Min returns the low corner
func (w Bounds) Min() vmath.Vec2 {
	lo := w.rect.Lo()
	return vmath.V2(lo.X, lo.Y)
}

// Max returns the high corner
func (w Bounds) Max() vmath.Vec2 {
	hi := w.rect.Hi()
	return vmath.V2(hi.X, hi.Y)
}

// Size returns width and height
func (w Bounds) Size() vmath.Vec2 {
	s := w.rect.Size()
	return vmath.V2(s.X, s.Y)
}

// Contains reports whether p lies inside the closed rectangle
func (w Bounds) Contains(p vmath.Vec2) bool {
	return w.rect.ContainsPoint(r2.Point{X: p.X, Y: p.Y})
}

// WrapPoint relocates p into the half-open rectangle by whole world spans
func (w Bounds) WrapPoint(p vmath.Vec2) vmath.Vec2 {
	return vmath.V2(
		vmath.Wrap(p.X, w.rect.X.Lo, w.rect.X.Hi),
		vmath.Wrap(p.Y, w.rect.Y.Lo, w.rect.Y.Hi),
	)
}

// Wrap moves a body that left the rectangle to the opposite edge, returns true if it moved
func (w Bounds) Wrap(b *Body) bool {
	p := w.WrapPoint(b.Center)
	if p == b.Center {
		return false
	}
	b.Center = p
	return true
}
