package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/lixenwraith/shoal/config"
	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/physics"
	"github.com/lixenwraith/shoal/scheduler"
	"github.com/lixenwraith/shoal/spatial"
	"github.com/lixenwraith/shoal/status"
	"github.com/lixenwraith/shoal/vmath"
	"github.com/lixenwraith/shoal/world"
)

// session is one initialized flock and its driving collaborators
type session struct {
	cfg      config.Config
	live     *config.Live
	world    *world.World
	stepper  *scheduler.FixedStep
	registry *status.Registry
	logger   *log.Logger
}

// loadConfig reads the config file and layers global flags over it
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.LoadOrDefault(c.GlobalString("config"))
	if err != nil {
		return cfg, err
	}
	if c.GlobalIsSet("seed") {
		cfg.Seed = c.GlobalUint64("seed")
	}
	if c.GlobalIsSet("workers") {
		cfg.Workers = c.GlobalInt("workers")
	}
	if s := c.GlobalString("index"); s != "" {
		cfg.Index = s
	}
	cfg.Clamp()
	return cfg, nil
}

// parseObstacle reads "x,y,radius"
func parseObstacle(s string) (vmath.Circle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return vmath.Circle{}, errors.Errorf("obstacle %q: want x,y,radius", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return vmath.Circle{}, errors.Wrapf(err, "obstacle %q", s)
		}
		if !vmath.IsFinite(f) {
			return vmath.Circle{}, errors.Wrapf(config.ErrNotFinite, "obstacle %q", s)
		}
		v[i] = f
	}
	c := vmath.Circle{Center: vmath.V2(v[0], v[1]), Radius: v[2]}
	if !c.Valid() {
		return vmath.Circle{}, errors.Errorf("obstacle %q: radius must be positive", s)
	}
	return c, nil
}

// newSession builds and initializes the world described by the flags
func newSession(c *cli.Context, logger *log.Logger) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	var obstacles []vmath.Circle
	for _, s := range c.GlobalStringSlice("obstacle") {
		o, err := parseObstacle(s)
		if err != nil {
			return nil, err
		}
		obstacles = append(obstacles, o)
	}
	return buildSession(cfg, obstacles, logger)
}

// buildSession wires a world, index and scheduler for cfg
func buildSession(cfg config.Config, obstacles []vmath.Circle, logger *log.Logger) (*session, error) {
	bounds := physics.NewBounds(parameter.WorldMinX, parameter.WorldMinY, parameter.WorldWidth, parameter.WorldHeight)
	index, err := spatial.New(cfg.Index, bounds)
	if err != nil {
		return nil, err
	}

	registry := status.NewRegistry()
	live := config.NewLive(cfg)
	w := world.New(live, world.Options{
		Index:    index,
		Bounds:   &bounds,
		Workers:  cfg.Workers,
		Seed:     cfg.Seed,
		Registry: registry,
		Logger:   logger,
	})
	w.Initialize(cfg.Quantity, cfg.ContainRadius)
	for _, o := range obstacles {
		w.AddObstacle(o.Center, o.Radius)
	}

	stepper := scheduler.NewFixedStep(w,
		scheduler.WithTimeScale(func() float64 {
			v, _ := live.Get("timeScale")
			return v
		}),
		scheduler.WithRegistry(registry),
	)

	logger.Debug("session ready", "index", cfg.Index, "workers", cfg.Workers, "seed", cfg.Seed, "obstacles", len(obstacles))
	return &session{
		cfg:      cfg,
		live:     live,
		world:    w,
		stepper:  stepper,
		registry: registry,
		logger:   logger,
	}, nil
}
