// Package config holds the flock tunables, their TOML file form and the
// runtime store the tuning surface writes into.
package config

import (
	"bytes"
	"math"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/vmath"
)

var (
	// ErrUnknownParameter is returned for a tunable name that does not exist
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrNotFinite is returned for NaN or infinite values
	ErrNotFinite = errors.New("value is not finite")
)

// Config is one consistent set of tunables
// Simulation code treats a Config as read-only for the duration of a tick
type Config struct {
	AlignWeight    float64 `toml:"alignWeight"`
	CohereWeight   float64 `toml:"cohereWeight"`
	ContainWeight  float64 `toml:"containWeight"`
	SeparateWeight float64 `toml:"separateWeight"`
	WanderWeight   float64 `toml:"wanderWeight"`

	MaxForce float64 `toml:"maxForce"`
	MaxSpeed float64 `toml:"maxSpeed"`

	NearRange     float64 `toml:"nearRange"`
	SeparateRange float64 `toml:"separateRange"`

	ContainRadius float64 `toml:"containRadius"`
	ContainTime   float64 `toml:"containTime"`

	WanderRadius   float64 `toml:"wanderRadius"`
	WanderSpeed    float64 `toml:"wanderSpeed"`
	WanderStrength float64 `toml:"wanderStrength"`

	// Quantity is applied on restart
	Quantity int `toml:"quantity"`

	TimeScale float64 `toml:"timeScale"`

	// Startup-only knobs, not part of the live tuning surface
	Workers int    `toml:"workers"`
	Seed    uint64 `toml:"seed"`
	Index   string `toml:"index"`
}

// Default returns the balanced defaults
func Default() Config {
	return Config{
		AlignWeight:    parameter.DefaultAlignWeight,
		CohereWeight:   parameter.DefaultCohereWeight,
		ContainWeight:  parameter.DefaultContainWeight,
		SeparateWeight: parameter.DefaultSeparateWeight,
		WanderWeight:   parameter.DefaultWanderWeight,
		MaxForce:       parameter.DefaultMaxForce,
		MaxSpeed:       parameter.DefaultMaxSpeed,
		NearRange:      parameter.DefaultNearRange,
		SeparateRange:  parameter.DefaultSeparateRange,
		ContainRadius:  parameter.DefaultContainRadius,
		ContainTime:    parameter.DefaultContainTime,
		WanderRadius:   parameter.DefaultWanderRadius,
		WanderSpeed:    parameter.DefaultWanderSpeed,
		WanderStrength: parameter.DefaultWanderStrength,
		Quantity:       parameter.DefaultQuantity,
		TimeScale:      parameter.DefaultTimeScale,
		Workers:        runtime.GOMAXPROCS(0),
		Seed:           0,
		Index:          parameter.IndexGrid,
	}
}

// field describes one live-tunable scalar
type field struct {
	name     string
	min, max float64
	integer  bool
	get      func(*Config) float64
	set      func(*Config, float64)
}

// fields is the tuning surface in panel order
var fields = []field{
	{"alignWeight", parameter.WeightMin, parameter.WeightMax, false,
		func(c *Config) float64 { return c.AlignWeight }, func(c *Config, v float64) { c.AlignWeight = v }},
	{"cohereWeight", parameter.WeightMin, parameter.WeightMax, false,
		func(c *Config) float64 { return c.CohereWeight }, func(c *Config, v float64) { c.CohereWeight = v }},
	{"containWeight", parameter.WeightMin, parameter.WeightMax, false,
		func(c *Config) float64 { return c.ContainWeight }, func(c *Config, v float64) { c.ContainWeight = v }},
	{"separateWeight", parameter.WeightMin, parameter.WeightMax, false,
		func(c *Config) float64 { return c.SeparateWeight }, func(c *Config, v float64) { c.SeparateWeight = v }},
	{"wanderWeight", parameter.WeightMin, parameter.WeightMax, false,
		func(c *Config) float64 { return c.WanderWeight }, func(c *Config, v float64) { c.WanderWeight = v }},
	{"maxForce", parameter.MaxForceMin, parameter.MaxForceMax, false,
		func(c *Config) float64 { return c.MaxForce }, func(c *Config, v float64) { c.MaxForce = v }},
	{"maxSpeed", parameter.MaxSpeedMin, parameter.MaxSpeedMax, false,
		func(c *Config) float64 { return c.MaxSpeed }, func(c *Config, v float64) { c.MaxSpeed = v }},
	{"nearRange", parameter.NearRangeMin, parameter.NearRangeMax, false,
		func(c *Config) float64 { return c.NearRange }, func(c *Config, v float64) { c.NearRange = v }},
	{"separateRange", parameter.SeparateRangeMin, parameter.SeparateRangeMax, false,
		func(c *Config) float64 { return c.SeparateRange }, func(c *Config, v float64) { c.SeparateRange = v }},
	{"containRadius", parameter.ContainRadiusMin, parameter.ContainRadiusMax, false,
		func(c *Config) float64 { return c.ContainRadius }, func(c *Config, v float64) { c.ContainRadius = v }},
	{"containTime", parameter.ContainTimeMin, parameter.ContainTimeMax, false,
		func(c *Config) float64 { return c.ContainTime }, func(c *Config, v float64) { c.ContainTime = v }},
	{"wanderRadius", parameter.WanderRadiusMin, parameter.WanderRadiusMax, false,
		func(c *Config) float64 { return c.WanderRadius }, func(c *Config, v float64) { c.WanderRadius = v }},
	{"wanderSpeed", parameter.WanderSpeedMin, parameter.WanderSpeedMax, false,
		func(c *Config) float64 { return c.WanderSpeed }, func(c *Config, v float64) { c.WanderSpeed = v }},
	{"wanderStrength", parameter.WanderStrengthMin, parameter.WanderStrengthMax, false,
		func(c *Config) float64 { return c.WanderStrength }, func(c *Config, v float64) { c.WanderStrength = v }},
	{"quantity", parameter.QuantityMin, parameter.QuantityMax, true,
		func(c *Config) float64 { return float64(c.Quantity) }, func(c *Config, v float64) { c.Quantity = int(v) }},
	{"timeScale", parameter.TimeScaleMin, parameter.TimeScaleMax, false,
		func(c *Config) float64 { return c.TimeScale }, func(c *Config, v float64) { c.TimeScale = v }},
}

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(fields))
	for i, f := range fields {
		m[f.name] = i
	}
	return m
}()

// Names returns the live-tunable parameter names in panel order
func Names() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

// Range returns the tuning range of a parameter
func Range(name string) (lo, hi float64, err error) {
	i, ok := fieldIndex[name]
	if !ok {
		return 0, 0, errors.Wrap(ErrUnknownParameter, name)
	}
	return fields[i].min, fields[i].max, nil
}

// normalize clamps v into the field range, rounding integer fields
func (f field) normalize(v float64) float64 {
	if f.integer {
		v = math.Round(v)
	}
	return vmath.Clamp(v, f.min, f.max)
}

// Get returns a tunable by name
func (c *Config) Get(name string) (float64, error) {
	i, ok := fieldIndex[name]
	if !ok {
		return 0, errors.Wrap(ErrUnknownParameter, name)
	}
	return fields[i].get(c), nil
}

// Set clamps v into the parameter range and stores it, returning the applied value
func (c *Config) Set(name string, v float64) (float64, error) {
	i, ok := fieldIndex[name]
	if !ok {
		return 0, errors.Wrap(ErrUnknownParameter, name)
	}
	if !vmath.IsFinite(v) {
		return 0, errors.Wrapf(ErrNotFinite, "%s=%v", name, v)
	}
	applied := fields[i].normalize(v)
	fields[i].set(c, applied)
	return applied, nil
}

// Clamp forces every tunable into its tuning range and repairs startup knobs
func (c *Config) Clamp() {
	for _, f := range fields {
		v := f.get(c)
		if !vmath.IsFinite(v) {
			v = f.min
		}
		f.set(c, f.normalize(v))
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	c.Index = strings.ToLower(strings.TrimSpace(c.Index))
	if c.Index != parameter.IndexRTree {
		c.Index = parameter.IndexGrid
	}
}

// Load decodes a TOML file over the defaults and clamps the result
// Keys the Config does not know are rejected
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	cfg.Clamp()
	return cfg, nil
}

// LoadOrDefault returns defaults for an empty path and Load otherwise
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), errors.Wrap(err, "config file")
	}
	return Load(path)
}

// Encode renders the Config as TOML
func Encode(c Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	return buf.Bytes(), nil
}
