package world

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/shoal/status"
)

// telemetry caches registry pointers so the tick loop writes atomics directly
type telemetry struct {
	ticks         *atomic.Int64
	fishCount     *atomic.Int64
	obstacleCount *atomic.Int64
	restarts      *atomic.Int64
	contained     *atomic.Int64
	tickUs        *atomic.Int64

	meanSpeed     *status.AtomicFloat
	maxSpeed      *status.AtomicFloat
	meanNeighbors *status.AtomicFloat
	meanAccel     *status.AtomicFloat
	globeRadius   *status.AtomicFloat
}

func newTelemetry(r *status.Registry) telemetry {
	return telemetry{
		ticks:         r.Ints.Get(status.KeyTicks),
		fishCount:     r.Ints.Get(status.KeyFishCount),
		obstacleCount: r.Ints.Get(status.KeyObstacleCount),
		restarts:      r.Ints.Get(status.KeyRestarts),
		contained:     r.Ints.Get(status.KeyContained),
		tickUs:        r.Ints.Get(status.KeyTickDurationUs),
		meanSpeed:     r.Floats.Get(status.KeyMeanSpeed),
		maxSpeed:      r.Floats.Get(status.KeyMaxSpeed),
		meanNeighbors: r.Floats.Get(status.KeyMeanNeighbors),
		meanAccel:     r.Floats.Get(status.KeyMeanAccel),
		globeRadius:   r.Floats.Get(status.KeyGlobeRadius),
	}
}

// record writes per-tick aggregates; called with the world lock held
func (t telemetry) record(w *World, neighbors int, took time.Duration) {
	var speedSum, speedMax, accelSum float64
	alive, inside := 0, 0
	globe := w.env.Globe
	for _, f := range w.fishes {
		if !f.Active {
			continue
		}
		alive++
		s := f.Body.Speed()
		speedSum += s
		if s > speedMax {
			speedMax = s
		}
		accelSum += f.Body.Acceleration.Len()
		if globe.Contains(f.Body.Center) {
			inside++
		}
	}

	t.ticks.Store(w.ticks.Load())
	t.fishCount.Store(int64(alive))
	t.obstacleCount.Store(int64(len(w.obstacles)))
	t.contained.Store(int64(inside))
	t.tickUs.Store(took.Microseconds())
	t.globeRadius.Set(globe.Radius)
	t.maxSpeed.Set(speedMax)
	if alive == 0 {
		t.meanSpeed.Set(0)
		t.meanAccel.Set(0)
		t.meanNeighbors.Set(0)
		return
	}
	t.meanSpeed.Set(speedSum / float64(alive))
	t.meanAccel.Set(accelSum / float64(alive))
	t.meanNeighbors.Set(float64(neighbors) / float64(alive))
}
