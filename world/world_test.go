package world

import (
	"math"
	"testing"

	"github.com/lixenwraith/shoal/config"
	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/physics"
	"github.com/lixenwraith/shoal/spatial"
	"github.com/lixenwraith/shoal/status"
	"github.com/lixenwraith/shoal/vmath"
)

const dt = 1.0 / parameter.StepsPerSecond

func newTestWorld(t *testing.T, workers int, seed uint64) *World {
	t.Helper()
	return New(config.NewLive(config.Default()), Options{Workers: workers, Seed: seed})
}

// TestFlockStaysInBounds runs the 100-fish, radius-512 scenario for 1000 ticks
func TestFlockStaysInBounds(t *testing.T) {
	w := newTestWorld(t, 4, 1234)
	w.Initialize(100, 512)

	bounds := w.Bounds()
	maxSpeed := w.Live().Snapshot().MaxSpeed
	for tick := 0; tick < 1000; tick++ {
		w.Tick(dt)
		for _, f := range w.Fishes() {
			b := f.Body
			if !b.Center.IsFinite() || !b.Velocity.IsFinite() {
				t.Fatalf("tick %d: fish %d has non-finite state %+v", tick, b.ID, b)
			}
			if b.Center.X < -512 || b.Center.X > 512 || b.Center.Y < -512 || b.Center.Y > 512 {
				t.Fatalf("tick %d: fish %d outside world %+v", tick, b.ID, b.Center)
			}
			if !bounds.Contains(b.Center) {
				t.Fatalf("tick %d: fish %d outside bounds", tick, b.ID)
			}
			if b.Speed() > maxSpeed+1e-9 {
				t.Fatalf("tick %d: fish %d speed %v exceeds %v", tick, b.ID, b.Speed(), maxSpeed)
			}
		}
	}
	if w.Ticks() != 1000 {
		t.Errorf("expected 1000 ticks, got %d", w.Ticks())
	}
}

func TestInitializeSpawnsAtOriginWithUnitVelocity(t *testing.T) {
	w := newTestWorld(t, 1, 9)
	w.Initialize(25, 300)

	if len(w.Fishes()) != 25 {
		t.Fatalf("expected 25 fish, got %d", len(w.Fishes()))
	}
	if w.Globe().Radius != 300 {
		t.Errorf("expected globe radius 300, got %v", w.Globe().Radius)
	}
	seen := make(map[float64]bool)
	for _, f := range w.Fishes() {
		if f.Body.Center != vmath.Zero {
			t.Errorf("fish %d not at origin: %+v", f.ID(), f.Body.Center)
		}
		if math.Abs(f.Body.Speed()-1) > 1e-12 {
			t.Errorf("fish %d speed %v, expected 1", f.ID(), f.Body.Speed())
		}
		seen[f.Body.Heading] = true
	}
	if len(seen) < 20 {
		t.Errorf("headings not independent: %d distinct of 25", len(seen))
	}
}

// TestWorkerCountDoesNotChangeResult compares serial and parallel compute phases
func TestWorkerCountDoesNotChangeResult(t *testing.T) {
	serial := newTestWorld(t, 1, 77)
	parallel := newTestWorld(t, 8, 77)
	serial.Initialize(60, 512)
	parallel.Initialize(60, 512)

	for i := 0; i < 200; i++ {
		serial.Tick(dt)
		parallel.Tick(dt)
	}
	for i, f := range serial.Fishes() {
		g := parallel.Fishes()[i]
		if f.Body.Center != g.Body.Center || f.Body.Velocity != g.Body.Velocity {
			t.Fatalf("fish %d diverged: %+v vs %+v", i, f.Body, g.Body)
		}
	}
}

func TestSenseFiltersObstacles(t *testing.T) {
	w := newTestWorld(t, 1, 5)
	w.Initialize(10, 512)
	rock := w.AddObstacle(vmath.V2(0, 0), 50)

	// Index is rebuilt during Tick; populate it directly for the query
	w.index.Rebuild(w.bodies)
	self := w.Fishes()[0].Body
	raw := w.index.QueryCircle(self.Center, 60, self, nil)
	foundRock := false
	for _, b := range raw {
		if b == rock {
			foundRock = true
		}
	}
	if !foundRock {
		t.Fatal("expected the raw query to return the obstacle")
	}

	got := w.Sense(self, 60, nil)
	if len(got) != 9 {
		t.Errorf("expected the 9 other fish, got %d", len(got))
	}
	for _, b := range got {
		if b.Kind != physics.KindFish || b == self {
			t.Errorf("unexpected body in neighbours: %+v", b)
		}
	}

	// Obstacles never move
	for i := 0; i < 30; i++ {
		w.Tick(dt)
	}
	if rock.Center != vmath.Zero || !rock.Velocity.IsZero() {
		t.Errorf("obstacle moved: %+v", rock)
	}
}

// TestContainRadiusReadEachTick checks runtime tuning without restart
func TestContainRadiusReadEachTick(t *testing.T) {
	w := newTestWorld(t, 2, 3)
	w.Initialize(5, 512)
	if _, err := w.Live().Set("containRadius", 128); err != nil {
		t.Fatal(err)
	}
	w.Tick(dt)
	if w.Globe().Radius != 128 {
		t.Errorf("expected radius 128 after tick, got %v", w.Globe().Radius)
	}
	for _, f := range w.Fishes() {
		if f.Env().Globe.Radius != 128 {
			t.Fatalf("fish %d sees radius %v", f.ID(), f.Env().Globe.Radius)
		}
	}
}

// TestInitializeRadiusIsNotClamped keeps the caller's radius out of the tuning range
// and leaves the live store alone
func TestInitializeRadiusIsNotClamped(t *testing.T) {
	w := newTestWorld(t, 1, 5)
	w.Initialize(3, 1000)
	w.Tick(dt)
	if w.Globe().Radius != 1000 {
		t.Errorf("expected globe radius 1000, got %v", w.Globe().Radius)
	}
	if got, _ := w.Live().Get("containRadius"); got != parameter.DefaultContainRadius {
		t.Errorf("live containRadius changed to %v", got)
	}

	// A later tuning change still wins
	if _, err := w.Live().Set("containRadius", 200); err != nil {
		t.Fatal(err)
	}
	w.Tick(dt)
	if w.Globe().Radius != 200 {
		t.Errorf("expected tuned radius 200, got %v", w.Globe().Radius)
	}
}

// TestInitializeDegenerateRadius checks a non-positive globe yields no containment force
func TestInitializeDegenerateRadius(t *testing.T) {
	for _, radius := range []float64{0, -5} {
		w := newTestWorld(t, 1, 5)
		w.Initialize(3, radius)
		w.Tick(dt)
		if w.Globe().Radius != radius {
			t.Errorf("radius %v: globe radius %v", radius, w.Globe().Radius)
		}
		for _, f := range w.Fishes() {
			if !f.Forces.Contain.IsZero() {
				t.Errorf("radius %v: fish %d contain force %+v", radius, f.ID(), f.Forces.Contain)
			}
		}
	}
}

func TestRestartUsesLiveQuantity(t *testing.T) {
	reg := status.NewRegistry()
	w := New(config.NewLive(config.Default()), Options{Workers: 2, Seed: 11, Registry: reg})
	w.Initialize(10, 512)
	old := w.Fishes()
	w.AddObstacle(vmath.V2(100, 100), 20)

	if _, err := w.Live().Set("quantity", 30); err != nil {
		t.Fatal(err)
	}
	w.RequestRestart()
	w.Tick(dt)

	if len(w.Fishes()) != 30 {
		t.Fatalf("expected 30 fish after restart, got %d", len(w.Fishes()))
	}
	for _, f := range old {
		if f.Active {
			t.Fatal("old fish should be destroyed")
		}
	}
	if len(w.Obstacles()) != 1 {
		t.Errorf("obstacles should survive restart")
	}
	snap := reg.Snapshot()
	if snap[status.KeyRestarts] != 1 {
		t.Errorf("expected 1 restart, got %v", snap[status.KeyRestarts])
	}
	if snap[status.KeyFishCount] != 30 || snap[status.KeyObstacleCount] != 1 {
		t.Errorf("unexpected counts %v", snap)
	}
}

func TestTelemetryRecorded(t *testing.T) {
	reg := status.NewRegistry()
	w := New(config.NewLive(config.Default()), Options{Workers: 1, Seed: 2, Registry: reg})
	w.Initialize(20, 512)
	for i := 0; i < 120; i++ {
		w.Tick(dt)
	}
	snap := reg.Snapshot()
	if snap[status.KeyTicks] != 120 {
		t.Errorf("expected 120 ticks, got %v", snap[status.KeyTicks])
	}
	if snap[status.KeyMeanSpeed] <= 0 || snap[status.KeyMaxSpeed] > 60+1e-9 {
		t.Errorf("implausible speeds mean=%v max=%v", snap[status.KeyMeanSpeed], snap[status.KeyMaxSpeed])
	}
	if snap[status.KeyGlobeRadius] != 512 {
		t.Errorf("expected globe radius 512, got %v", snap[status.KeyGlobeRadius])
	}
}

func TestRTreeIndexWorld(t *testing.T) {
	bounds := physics.NewBounds(parameter.WorldMinX, parameter.WorldMinY, parameter.WorldWidth, parameter.WorldHeight)
	idx, err := spatial.New(parameter.IndexRTree, bounds)
	if err != nil {
		t.Fatal(err)
	}
	w := New(config.NewLive(config.Default()), Options{Workers: 2, Seed: 21, Index: idx, Bounds: &bounds})
	w.Initialize(40, 512)
	w.AddObstacle(vmath.V2(-200, 50), 30)
	for i := 0; i < 300; i++ {
		w.Tick(dt)
	}

	// Both indexes must agree on every neighbourhood of the same snapshot
	grid := spatial.NewGrid(bounds, parameter.GridCellSize)
	grid.Rebuild(w.bodies)
	idx.Rebuild(w.bodies)
	for _, f := range w.Fishes() {
		want := grid.QueryCircle(f.Body.Center, 60, f.Body, nil)
		got := idx.QueryCircle(f.Body.Center, 60, f.Body, nil)
		if len(want) != len(got) {
			t.Fatalf("fish %d: grid found %d, rtree found %d", f.ID(), len(want), len(got))
		}
		ids := make(map[int]bool, len(want))
		for _, b := range want {
			ids[b.ID] = true
		}
		for _, b := range got {
			if !ids[b.ID] {
				t.Fatalf("fish %d: rtree returned %d not found by grid", f.ID(), b.ID)
			}
		}
	}
}

func TestTeardown(t *testing.T) {
	w := newTestWorld(t, 1, 4)
	w.Initialize(5, 512)
	fishes := w.Fishes()
	w.Teardown()
	if len(w.Fishes()) != 0 || w.FirstAlive() != nil {
		t.Error("expected empty world after teardown")
	}
	for _, f := range fishes {
		if f.Active {
			t.Error("fish still active after teardown")
		}
	}
	// Ticking a torn-down world is a no-op
	w.Tick(dt)
	if w.Ticks() != 0 {
		t.Errorf("expected no ticks, got %d", w.Ticks())
	}
}
