package parameter

// World rectangle: agents wrap toroidally across these edges
const (
	WorldMinX   = -512.0
	WorldMinY   = -512.0
	WorldWidth  = 1024.0
	WorldHeight = 1024.0
)

// Fish body
const (
	// FishRadius is the overlap radius of a fish body (half the 8-unit triangle height)
	FishRadius = 4.0

	// InitialSpeed is the speed of a freshly spawned fish at a random heading
	InitialSpeed = 1.0
)

// Numeric guards
const (
	// AlignProductEpsilon is the minimum accumulated projection weight before alignment divides by it
	AlignProductEpsilon = 1e-9
)
