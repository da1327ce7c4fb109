package world

import (
	"sync"
	"time"

	"github.com/lixenwraith/shoal/agent"
	"github.com/lixenwraith/shoal/physics"
	"github.com/lixenwraith/shoal/spatial"
)

// Tick advances the flock by dt seconds
// Order: config snapshot, index rebuild, parallel steering, integrate, wrap, telemetry
func (w *World) Tick(dt float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.torndown {
		return
	}
	if w.restartPending.Swap(false) {
		w.restartLocked()
	}

	start := time.Now()

	// Containment radius and every weight are re-read each tick
	w.refreshLocked()

	// Snapshot of last tick's positions; read-only until integration
	w.index.Rebuild(w.bodies)

	neighbors := w.compute()

	for _, f := range w.fishes {
		if !f.Active {
			continue
		}
		w.integrator.Integrate(f.Body, dt)
		f.WanderBody.Step(dt)
		w.bounds.Wrap(f.Body)
	}

	w.ticks.Add(1)
	w.statTick.record(w, neighbors, time.Since(start))
}

// compute runs every fish's Update across the worker pool and returns the total near-neighbour count
// Fish only write their own acceleration and debug state during this phase
func (w *World) compute() int {
	n := len(w.fishes)
	if n == 0 {
		return 0
	}
	workers := w.workers
	if workers > n {
		workers = n
	}
	if len(w.scratch) < workers {
		w.scratch = append(w.scratch, make([]workerScratch, workers-len(w.scratch))...)
	}

	if workers == 1 {
		w.computeRange(&w.scratch[0], w.fishes)
		return w.scratch[0].neighbors
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		lo := i * chunk
		if lo >= n {
			w.scratch[i].neighbors = 0
			continue
		}
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(s *workerScratch, fishes []*agent.Fish) {
			defer wg.Done()
			w.computeRange(s, fishes)
		}(&w.scratch[i], w.fishes[lo:hi])
	}
	wg.Wait()

	total := 0
	for i := 0; i < workers; i++ {
		total += w.scratch[i].neighbors
	}
	return total
}

func (w *World) computeRange(s *workerScratch, fishes []*agent.Fish) {
	cfg := &w.env.Config
	s.neighbors = 0
	for _, f := range fishes {
		if !f.Active {
			continue
		}
		s.near = w.Sense(f.Body, cfg.NearRange, s.near[:0])
		s.separate = w.Sense(f.Body, cfg.SeparateRange, s.separate[:0])
		s.neighbors += len(s.near)
		f.Update(s.near, s.separate)
	}
	// Drop references held past this tick
	clear(s.near[:cap(s.near)])
	clear(s.separate[:cap(s.separate)])
}

// Sense queries the index around self and keeps flock members only
func (w *World) Sense(self *physics.Body, radius float64, dst []*physics.Body) []*physics.Body {
	dst = w.index.QueryCircle(self.Center, radius, self, dst)
	return spatial.FilterKind(dst, physics.KindFish)
}
