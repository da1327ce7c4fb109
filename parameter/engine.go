package parameter

import "time"

// Simulation stepping
const (
	// StepsPerSecond is the fixed physics rate; seek scales distance by it to arrive within one step
	StepsPerSecond = 60

	// StepDuration is one fixed simulation step
	StepDuration = time.Second / StepsPerSecond

	// MaxStepsPerAdvance caps catch-up steps after a stall so the scheduler cannot spiral
	MaxStepsPerAdvance = 8

	// ServeReportInterval is how often the tuning server broadcasts telemetry
	ServeReportInterval = 250 * time.Millisecond
)

// Spatial index
const (
	// GridCellSize is the hash grid cell edge in world units, sized near the default nearRange
	GridCellSize = 64.0

	// RTreeMinChildren and RTreeMaxChildren are the R-tree node branching bounds
	RTreeMinChildren = 25
	RTreeMaxChildren = 50

	// IndexGrid and IndexRTree name the available spatial index implementations
	IndexGrid  = "grid"
	IndexRTree = "rtree"
)
