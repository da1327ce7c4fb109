package status

import "sync/atomic"

// Telemetry keys written by the world once per tick
const (
	KeyTicks          = "world.ticks"
	KeyFishCount      = "world.fish"
	KeyObstacleCount  = "world.obstacles"
	KeyRestarts       = "world.restarts"
	KeyMeanSpeed      = "flock.speed.mean"
	KeyMaxSpeed       = "flock.speed.max"
	KeyMeanNeighbors  = "flock.neighbors.mean"
	KeyContained      = "flock.contained"
	KeyMeanAccel      = "flock.accel.mean"
	KeyGlobeRadius    = "globe.radius"
	KeyTickDurationUs = "world.tick_us"

	// KeySchedulerSteps counts fixed steps run by the scheduler
	KeySchedulerSteps = "scheduler.steps"
)

// Registry is the central metrics facade
// Producers cache pointers during init; update loops write directly to atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// Snapshot copies every metric into a plain map, ints widened to float64
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, r.TotalCount())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = float64(ptr.Load())
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		out[key] = ptr.Get()
	})
	return out
}
