// Package spatial answers circular range queries over the bodies of one tick.
// An index is rebuilt from a consistent snapshot before the compute phase and
// is read-only while agents query it, so concurrent queries are safe.
package spatial

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/physics"
	"github.com/lixenwraith/shoal/vmath"
)

// Index is the spatial query collaborator
type Index interface {
	// Rebuild replaces the indexed set; callers must not query concurrently with Rebuild
	Rebuild(bodies []*physics.Body)

	// QueryCircle appends to dst every body whose disc overlaps the query circle,
	// excluding exclude itself, and returns the extended slice
	QueryCircle(center vmath.Vec2, radius float64, exclude *physics.Body, dst []*physics.Body) []*physics.Body

	// Len returns the number of indexed bodies
	Len() int
}

// New returns the index implementation registered under name
func New(name string, bounds physics.Bounds) (Index, error) {
	switch name {
	case parameter.IndexGrid, "":
		return NewGrid(bounds, parameter.GridCellSize), nil
	case parameter.IndexRTree:
		return NewRTree(), nil
	default:
		return nil, errors.Errorf("unknown spatial index %q", name)
	}
}

// overlaps is the shared narrow-phase test
func overlaps(center vmath.Vec2, radius float64, b *physics.Body) bool {
	return vmath.Circle{Center: center, Radius: radius}.OverlapsDisc(b.Center, b.Radius)
}

// FilterKind keeps bodies of kind k in place and returns the shortened slice
func FilterKind(bodies []*physics.Body, k physics.Kind) []*physics.Body {
	n := 0
	for _, b := range bodies {
		if b.Kind == k {
			bodies[n] = b
			n++
		}
	}
	for i := n; i < len(bodies); i++ {
		bodies[i] = nil
	}
	return bodies[:n]
}
