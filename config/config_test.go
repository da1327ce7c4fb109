package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"

	"github.com/lixenwraith/shoal/parameter"
)

// TestDefaultMatchesBalancedValues guards the tuned defaults
func TestDefaultMatchesBalancedValues(t *testing.T) {
	cfg := Default()
	want := map[string]float64{
		"alignWeight":    0.8,
		"cohereWeight":   0.4,
		"containRadius":  512,
		"containTime":    1,
		"containWeight":  0.8,
		"maxForce":       120,
		"maxSpeed":       60,
		"nearRange":      60,
		"quantity":       100,
		"separateRange":  15,
		"separateWeight": 0.2,
		"wanderRadius":   0.25,
		"wanderSpeed":    360,
		"wanderStrength": 0.5,
		"wanderWeight":   1,
		"timeScale":      1,
	}
	for name, w := range want {
		got, err := cfg.Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		if got != w {
			t.Errorf("%s: expected %v, got %v", name, w, got)
		}
	}
	if len(Names()) != len(want) {
		t.Errorf("expected %d tunables, got %d", len(want), len(Names()))
	}
}

// TestClampAppliesRanges checks out-of-range and non-finite values are repaired
func TestClampAppliesRanges(t *testing.T) {
	cfg := Default()
	cfg.MaxForce = 5000
	cfg.NearRange = -3
	cfg.WanderRadius = math.NaN()
	cfg.Quantity = 0
	cfg.Workers = 0
	cfg.Index = " RTREE "
	cfg.Clamp()

	if cfg.MaxForce != parameter.MaxForceMax {
		t.Errorf("maxForce: expected %v, got %v", parameter.MaxForceMax, cfg.MaxForce)
	}
	if cfg.NearRange != parameter.NearRangeMin {
		t.Errorf("nearRange: expected %v, got %v", parameter.NearRangeMin, cfg.NearRange)
	}
	if cfg.WanderRadius != parameter.WanderRadiusMin {
		t.Errorf("wanderRadius: expected %v, got %v", parameter.WanderRadiusMin, cfg.WanderRadius)
	}
	if cfg.Quantity != parameter.QuantityMin {
		t.Errorf("quantity: expected %d, got %d", parameter.QuantityMin, cfg.Quantity)
	}
	if cfg.Workers != 1 {
		t.Errorf("workers: expected 1, got %d", cfg.Workers)
	}
	if cfg.Index != parameter.IndexRTree {
		t.Errorf("index: expected %q, got %q", parameter.IndexRTree, cfg.Index)
	}
}

func TestSetRejectsUnknownAndNonFinite(t *testing.T) {
	cfg := Default()
	if _, err := cfg.Set("gravity", 1); errors.Cause(err) != ErrUnknownParameter {
		t.Errorf("expected ErrUnknownParameter, got %v", err)
	}
	if _, err := cfg.Set("maxSpeed", math.Inf(1)); errors.Cause(err) != ErrNotFinite {
		t.Errorf("expected ErrNotFinite, got %v", err)
	}
	applied, err := cfg.Set("quantity", 42.6)
	if err != nil {
		t.Fatalf("Set quantity: %v", err)
	}
	if applied != 43 || cfg.Quantity != 43 {
		t.Errorf("expected quantity rounded to 43, got applied=%v stored=%d", applied, cfg.Quantity)
	}
}

// TestLoadOverridesDefaults decodes a partial file over defaults
func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shoal.toml")
	data := "maxSpeed = 90.0\nquantity = 40\nseed = 7\nindex = \"rtree\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxSpeed != 90 || cfg.Quantity != 40 || cfg.Seed != 7 || cfg.Index != parameter.IndexRTree {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.AlignWeight != parameter.DefaultAlignWeight {
		t.Errorf("default lost: alignWeight=%v", cfg.AlignWeight)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("maxSped = 90.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "maxSped") {
		t.Fatalf("expected unknown key error naming maxSped, got %v", err)
	}
}

// TestEncodeRoundTrip writes the defaults and loads them back
func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Workers = 3
	data, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", cfg, loaded)
	}
}

func TestLiveSetAndSnapshot(t *testing.T) {
	base := Default()
	base.Seed = 99
	live := NewLive(base)

	applied, err := live.Set("containRadius", 1000)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if applied != parameter.ContainRadiusMax {
		t.Errorf("expected clamp to %v, got %v", parameter.ContainRadiusMax, applied)
	}

	snap := live.Snapshot()
	if snap.ContainRadius != parameter.ContainRadiusMax {
		t.Errorf("snapshot containRadius %v", snap.ContainRadius)
	}
	if snap.Seed != 99 || snap.Index != base.Index {
		t.Errorf("startup knobs not carried: %+v", snap)
	}
	if got := live.Values()["containRadius"]; got != parameter.ContainRadiusMax {
		t.Errorf("Values containRadius %v", got)
	}
}

// TestLiveConcurrentAccess exercises racing writers and snapshot readers
func TestLiveConcurrentAccess(t *testing.T) {
	live := NewLive(Default())
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				_, _ = live.Set("maxSpeed", float64(60+(i*j)%200))
			}
		}(i)
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				s := live.Snapshot()
				if s.MaxSpeed < parameter.MaxSpeedMin || s.MaxSpeed > parameter.MaxSpeedMax {
					t.Errorf("torn or unclamped maxSpeed %v", s.MaxSpeed)
					return
				}
			}
		}()
	}
	wg.Wait()
}
