package spatial

import (
	"github.com/dhconnelly/rtreego"

	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/physics"
	"github.com/lixenwraith/shoal/vmath"
)

// minExtent keeps point-sized bodies from producing degenerate rectangles
const minExtent = 0.01

// entry adapts a body to rtreego.Spatial, bounding box captured at rebuild
type entry struct {
	body *physics.Body
	rect rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect { return e.rect }

// RTree is a bulk-loaded R-tree over body bounding boxes
type RTree struct {
	tree    *rtreego.Rtree
	entries []entry
}

// NewRTree returns an empty tree
func NewRTree() *RTree {
	return &RTree{tree: rtreego.NewTree(2, parameter.RTreeMinChildren, parameter.RTreeMaxChildren)}
}

// boxAround returns the square bounding box of a disc
func boxAround(center vmath.Vec2, radius float64) rtreego.Rect {
	half := radius
	if half < minExtent {
		half = minExtent
	}
	r, err := rtreego.NewRect(
		rtreego.Point{center.X - half, center.Y - half},
		[]float64{2 * half, 2 * half},
	)
	if err != nil {
		// Only reachable with non-positive lengths, excluded by minExtent
		panic(err)
	}
	return r
}

func (t *RTree) Rebuild(bodies []*physics.Body) {
	if cap(t.entries) < len(bodies) {
		t.entries = make([]entry, len(bodies))
	}
	t.entries = t.entries[:len(bodies)]

	spatials := make([]rtreego.Spatial, len(bodies))
	for i, b := range bodies {
		t.entries[i] = entry{body: b, rect: boxAround(b.Center, b.Radius)}
		spatials[i] = &t.entries[i]
	}
	t.tree = rtreego.NewTree(2, parameter.RTreeMinChildren, parameter.RTreeMaxChildren, spatials...)
}

func (t *RTree) Len() int { return t.tree.Size() }

func (t *RTree) QueryCircle(center vmath.Vec2, radius float64, exclude *physics.Body, dst []*physics.Body) []*physics.Body {
	if radius < 0 || t.tree.Size() == 0 {
		return dst
	}
	matches := t.tree.SearchIntersect(boxAround(center, radius), func(results []rtreego.Spatial, object rtreego.Spatial) (refuse, abort bool) {
		e := object.(*entry)
		return e.body == exclude || !overlaps(center, radius, e.body), false
	})
	for _, m := range matches {
		dst = append(dst, m.(*entry).body)
	}
	return dst
}
