// Package agent computes per-fish steering: five weighted behaviours blended
// into one bounded acceleration per tick.
package agent

import (
	"github.com/lixenwraith/shoal/config"
	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/vmath"
)

// Env is the per-tick shared context every fish reads
// The world refreshes it between ticks; fish never write to it
type Env struct {
	Config config.Config

	// Globe is the containment region
	Globe vmath.Circle

	// StepsPerSecond scales seek so the target is reached within one step
	StepsPerSecond float64
}

// NewEnv returns an Env centered on the origin with the globe radius from cfg
func NewEnv(cfg config.Config) *Env {
	return &Env{
		Config:         cfg,
		Globe:          vmath.Circle{Radius: cfg.ContainRadius},
		StepsPerSecond: parameter.StepsPerSecond,
	}
}

// Refresh installs a new config snapshot and re-reads the globe radius
func (e *Env) Refresh(cfg config.Config) {
	e.Config = cfg
	e.Globe.Radius = cfg.ContainRadius
}
