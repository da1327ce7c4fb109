package spatial

import (
	"math"

	"github.com/lixenwraith/shoal/physics"
	"github.com/lixenwraith/shoal/vmath"
)

// Grid is a dense uniform hash grid over the world rectangle
// Bodies are binned by center; queries widen by the largest indexed radius
type Grid struct {
	origin    vmath.Vec2
	cellSize  float64
	Width     int
	Height    int
	Cells     [][]*physics.Body // 1D array: index = y*Width + x
	count     int
	maxRadius float64
}

// NewGrid covers bounds with square cells of cellSize
func NewGrid(bounds physics.Bounds, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	size := bounds.Size()
	w := int(math.Ceil(size.X / cellSize))
	h := int(math.Ceil(size.Y / cellSize))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Grid{
		origin:   bounds.Min(),
		cellSize: cellSize,
		Width:    w,
		Height:   h,
		Cells:    make([][]*physics.Body, w*h),
	}
}

// cellOf maps a world point to clamped cell coordinates
func (g *Grid) cellOf(p vmath.Vec2) (int, int) {
	x := int(math.Floor((p.X - g.origin.X) / g.cellSize))
	y := int(math.Floor((p.Y - g.origin.Y) / g.cellSize))
	return clampInt(x, 0, g.Width-1), clampInt(y, 0, g.Height-1)
}

// Clear removes all bodies while keeping cell capacity
func (g *Grid) Clear() {
	for i := range g.Cells {
		clear(g.Cells[i])
		g.Cells[i] = g.Cells[i][:0]
	}
	g.count = 0
	g.maxRadius = 0
}

// Add inserts a body into the cell holding its center
func (g *Grid) Add(b *physics.Body) {
	x, y := g.cellOf(b.Center)
	idx := y*g.Width + x
	g.Cells[idx] = append(g.Cells[idx], b)
	g.count++
	if b.Radius > g.maxRadius {
		g.maxRadius = b.Radius
	}
}

func (g *Grid) Rebuild(bodies []*physics.Body) {
	g.Clear()
	for _, b := range bodies {
		g.Add(b)
	}
}

func (g *Grid) Len() int { return g.count }

func (g *Grid) QueryCircle(center vmath.Vec2, radius float64, exclude *physics.Body, dst []*physics.Body) []*physics.Body {
	if radius < 0 || g.count == 0 {
		return dst
	}
	reach := vmath.V2(radius+g.maxRadius, radius+g.maxRadius)
	x0, y0 := g.cellOf(center.Sub(reach))
	x1, y1 := g.cellOf(center.Add(reach))

	for y := y0; y <= y1; y++ {
		row := y * g.Width
		for x := x0; x <= x1; x++ {
			for _, b := range g.Cells[row+x] {
				if b == exclude {
					continue
				}
				if overlaps(center, radius, b) {
					dst = append(dst, b)
				}
			}
		}
	}
	return dst
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
