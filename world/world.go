// Package world owns the flock: population, containment globe, obstacles and
// the per-tick orchestration that turns steering into motion.
package world

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/shoal/agent"
	"github.com/lixenwraith/shoal/config"
	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/physics"
	"github.com/lixenwraith/shoal/spatial"
	"github.com/lixenwraith/shoal/status"
	"github.com/lixenwraith/shoal/vmath"
)

// Options wires the world's collaborators; zero fields get defaults
type Options struct {
	Index      spatial.Index
	Integrator physics.Integrator
	Bounds     *physics.Bounds
	Workers    int
	Seed       uint64
	Registry   *status.Registry
	Logger     *log.Logger
}

// World is the flock simulation
// Tick, Restart, AddObstacle and Teardown serialize on an internal lock;
// read views are meant for the goroutine that drives Tick
type World struct {
	mu sync.Mutex

	live       *config.Live
	env        *agent.Env
	index      spatial.Index
	integrator physics.Integrator
	bounds     physics.Bounds
	workers    int
	rng        *vmath.FastRand
	logger     *log.Logger

	fishes    []*agent.Fish
	obstacles []*physics.Body
	bodies    []*physics.Body
	nextID    int

	// globeRadius is the containment radius in force; radiusSeen is the live
	// containRadius it was last reconciled with
	globeRadius float64
	radiusSeen  float64

	ticks          atomic.Int64
	restartPending atomic.Bool
	torndown       bool

	// Per-worker scratch, reused across ticks
	scratch []workerScratch

	stats    *status.Registry
	statTick telemetry
}

type workerScratch struct {
	near      []*physics.Body
	separate  []*physics.Body
	neighbors int
}

// New creates an empty world reading tunables from live
func New(live *config.Live, opts Options) *World {
	if opts.Bounds == nil {
		b := physics.NewBounds(parameter.WorldMinX, parameter.WorldMinY, parameter.WorldWidth, parameter.WorldHeight)
		opts.Bounds = &b
	}
	if opts.Index == nil {
		opts.Index = spatial.NewGrid(*opts.Bounds, parameter.GridCellSize)
	}
	if opts.Integrator == nil {
		opts.Integrator = physics.Euler{}
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	if opts.Registry == nil {
		opts.Registry = status.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	w := &World{
		live:       live,
		env:        agent.NewEnv(live.Snapshot()),
		index:      opts.Index,
		integrator: opts.Integrator,
		bounds:     *opts.Bounds,
		workers:    opts.Workers,
		rng:        vmath.NewFastRand(opts.Seed),
		logger:     opts.Logger,
		stats:      opts.Registry,
	}
	w.globeRadius = w.env.Globe.Radius
	w.radiusSeen = w.env.Globe.Radius
	w.statTick = newTelemetry(opts.Registry)
	return w
}

// Initialize spawns quantity fish at the origin with unit velocity at random headings
// and sets the containment radius as given; the live store is left untouched and
// only a later containRadius change through it replaces the radius
func (w *World) Initialize(quantity int, containRadius float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.radiusSeen = w.live.Snapshot().ContainRadius
	w.globeRadius = containRadius
	w.spawnLocked(quantity)
	w.torndown = false
	w.logger.Info("flock initialized", "quantity", quantity, "radius", w.env.Globe.Radius)
}

// refreshLocked installs the live snapshot into the shared env
func (w *World) refreshLocked() {
	cfg := w.live.Snapshot()
	if cfg.ContainRadius != w.radiusSeen {
		w.radiusSeen = cfg.ContainRadius
		w.globeRadius = cfg.ContainRadius
	}
	w.env.Refresh(cfg)
	w.env.Globe.Radius = w.globeRadius
}

func (w *World) spawnLocked(quantity int) {
	w.refreshLocked()
	w.destroyFishesLocked()
	if quantity < 0 {
		quantity = 0
	}
	w.fishes = make([]*agent.Fish, 0, quantity)
	for i := 0; i < quantity; i++ {
		velocity := vmath.FromPolar(w.rng.Angle(), parameter.InitialSpeed)
		body := physics.NewFish(w.nextID, vmath.Zero, velocity, parameter.FishRadius)
		body.MaxSpeed = w.env.Config.MaxSpeed
		w.nextID++
		w.fishes = append(w.fishes, agent.NewFish(body, w.env, vmath.NewFastRand(w.rng.Next())))
	}
	w.rebuildBodiesLocked()
}

func (w *World) destroyFishesLocked() {
	for _, f := range w.fishes {
		f.Destroy()
	}
	w.fishes = nil
}

func (w *World) rebuildBodiesLocked() {
	w.bodies = w.bodies[:0]
	for _, f := range w.fishes {
		if f.Active {
			w.bodies = append(w.bodies, f.Body)
		}
	}
	w.bodies = append(w.bodies, w.obstacles...)
}

// RequestRestart schedules a restart at the start of the next tick; safe from any goroutine
func (w *World) RequestRestart() {
	w.restartPending.Store(true)
}

// Restart rebuilds the population from the live quantity; obstacles are kept
func (w *World) Restart() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.restartLocked()
}

func (w *World) restartLocked() {
	cfg := w.live.Snapshot()
	w.spawnLocked(cfg.Quantity)
	w.statTick.restarts.Add(1)
	w.logger.Info("flock restarted", "quantity", cfg.Quantity)
}

// AddObstacle inserts a static body the flock must ignore as a neighbour
func (w *World) AddObstacle(center vmath.Vec2, radius float64) *physics.Body {
	w.mu.Lock()
	defer w.mu.Unlock()

	b := physics.NewStatic(w.nextID, center, radius)
	w.nextID++
	w.obstacles = append(w.obstacles, b)
	w.rebuildBodiesLocked()
	w.logger.Debug("obstacle added", "id", b.ID, "x", center.X, "y", center.Y, "radius", radius)
	return b
}

// Teardown destroys every fish and drops obstacles
func (w *World) Teardown() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.destroyFishesLocked()
	w.obstacles = nil
	w.bodies = w.bodies[:0]
	w.index.Rebuild(nil)
	w.torndown = true
	w.logger.Info("flock torn down", "ticks", w.ticks.Load())
}

// Fishes returns the live population
func (w *World) Fishes() []*agent.Fish { return w.fishes }

// Obstacles returns the static bodies
func (w *World) Obstacles() []*physics.Body { return w.obstacles }

// FirstAlive returns the first active fish, nil if none
func (w *World) FirstAlive() *agent.Fish {
	for _, f := range w.fishes {
		if f.Active {
			return f
		}
	}
	return nil
}

// Globe returns the containment circle used by the last tick
func (w *World) Globe() vmath.Circle { return w.env.Globe }

// Bounds returns the wrap rectangle
func (w *World) Bounds() physics.Bounds { return w.bounds }

// Config returns the config snapshot used by the last tick
func (w *World) Config() config.Config { return w.env.Config }

// Live returns the runtime-tunable store
func (w *World) Live() *config.Live { return w.live }

// Registry returns the telemetry registry
func (w *World) Registry() *status.Registry { return w.stats }

// Ticks returns the number of completed ticks; safe from any goroutine
func (w *World) Ticks() int64 { return w.ticks.Load() }
