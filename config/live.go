package config

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/shoal/status"
	"github.com/lixenwraith/shoal/vmath"
)

// Live is the runtime-tunable store shared by the simulation and the tuning surface
// Each tunable is an independent atomic scalar; readers may observe a mix of
// stale and fresh values across fields, never a torn single value
type Live struct {
	values *status.MetricMap[status.AtomicFloat]
	ptrs   []*status.AtomicFloat
	base   Config
}

// NewLive seeds a store from cfg; startup-only knobs are carried unchanged
func NewLive(cfg Config) *Live {
	l := &Live{
		values: status.NewMetricMap[status.AtomicFloat](),
		ptrs:   make([]*status.AtomicFloat, len(fields)),
		base:   cfg,
	}
	for i, f := range fields {
		// Cache pointers; hot path reads skip the map
		l.ptrs[i] = l.values.Get(f.name)
		l.ptrs[i].Set(f.get(&cfg))
	}
	return l
}

// Get reads one tunable
func (l *Live) Get(name string) (float64, error) {
	i, ok := fieldIndex[name]
	if !ok {
		return 0, errors.Wrap(ErrUnknownParameter, name)
	}
	return l.ptrs[i].Get(), nil
}

// Set clamps and stores one tunable, returning the applied value
func (l *Live) Set(name string, v float64) (float64, error) {
	i, ok := fieldIndex[name]
	if !ok {
		return 0, errors.Wrap(ErrUnknownParameter, name)
	}
	if !vmath.IsFinite(v) {
		return 0, errors.Wrapf(ErrNotFinite, "%s=%v", name, v)
	}
	applied := fields[i].normalize(v)
	l.ptrs[i].Set(applied)
	return applied, nil
}

// Apply stores every tunable of cfg
func (l *Live) Apply(cfg Config) {
	for i, f := range fields {
		l.ptrs[i].Set(f.get(&cfg))
	}
}

// Snapshot reads every tunable into a Config value
func (l *Live) Snapshot() Config {
	cfg := l.base
	for i, f := range fields {
		f.set(&cfg, l.ptrs[i].Get())
	}
	return cfg
}

// Values returns all tunables keyed by name
func (l *Live) Values() map[string]float64 {
	out := make(map[string]float64, len(fields))
	l.values.Range(func(key string, ptr *status.AtomicFloat) {
		out[key] = ptr.Get()
	})
	return out
}
