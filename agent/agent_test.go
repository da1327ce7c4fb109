package agent

import (
	"math"
	"testing"

	"github.com/lixenwraith/shoal/config"
	"github.com/lixenwraith/shoal/physics"
	"github.com/lixenwraith/shoal/vmath"
)

const eps = 1e-9

func newTestFish(center, velocity vmath.Vec2) *Fish {
	env := NewEnv(config.Default())
	body := physics.NewFish(0, center, velocity, 4)
	body.MaxSpeed = env.Config.MaxSpeed
	return NewFish(body, env, vmath.NewFastRand(7))
}

func neighbor(id int, center, velocity vmath.Vec2) *physics.Body {
	return physics.NewFish(id, center, velocity, 4)
}

// literalNeighbors is the fixed three-body fixture
func literalNeighbors() []*physics.Body {
	return []*physics.Body{
		neighbor(1, vmath.V2(10, 0), vmath.V2(1, 0)),
		neighbor(2, vmath.V2(0, 10), vmath.V2(0, 1)),
		neighbor(3, vmath.V2(-5, -5), vmath.V2(-1, -1)),
	}
}

func TestEmptyNeighborsYieldZero(t *testing.T) {
	f := newTestFish(vmath.Zero, vmath.V2(1, 0))
	if got := f.Align(nil); !got.IsZero() {
		t.Errorf("align: expected zero, got %+v", got)
	}
	if got := f.Cohere(nil); !got.IsZero() {
		t.Errorf("cohere: expected zero, got %+v", got)
	}
	if got := f.Separate([]*physics.Body{}); !got.IsZero() {
		t.Errorf("separate: expected zero, got %+v", got)
	}
}

// TestSteerNeverExceedsMaxForce sweeps desired magnitudes and directions
func TestSteerNeverExceedsMaxForce(t *testing.T) {
	f := newTestFish(vmath.Zero, vmath.V2(-30, 40))
	maxForce := f.env.Config.MaxForce
	for _, mag := range []float64{0, 1e-12, 1, 60, 500, 1e9} {
		for deg := -180.0; deg < 180; deg += 15 {
			desired := vmath.FromPolar(vmath.DegToRad(deg), mag)
			got := f.Steer(desired)
			if !got.IsFinite() {
				t.Fatalf("non-finite steer for %+v", desired)
			}
			if got.Len() > maxForce+eps {
				t.Fatalf("steer %+v length %v exceeds %v", desired, got.Len(), maxForce)
			}
		}
	}
}

func TestSeparateCoincidentIsZeroContribution(t *testing.T) {
	f := newTestFish(vmath.V2(3, 3), vmath.V2(1, 0))
	got := f.Separate([]*physics.Body{neighbor(1, vmath.V2(3, 3), vmath.V2(0, 1))})
	if !got.IsFinite() || !got.IsZero() {
		t.Fatalf("expected zero force, got %+v", got)
	}

	// Coincident plus a real neighbour: only the real one counts
	got = f.Separate([]*physics.Body{
		neighbor(1, vmath.V2(3, 3), vmath.V2(0, 1)),
		neighbor(2, vmath.V2(5, 3), vmath.V2(0, 1)),
	})
	if math.Abs(got.X+0.5) > eps || math.Abs(got.Y) > eps {
		t.Errorf("expected (-0.5, 0), got %+v", got)
	}
}

func TestSeparateLimitedToMaxForce(t *testing.T) {
	f := newTestFish(vmath.Zero, vmath.V2(1, 0))
	f.env.Config.MaxForce = 30
	var crowd []*physics.Body
	for i := 0; i < 50; i++ {
		crowd = append(crowd, neighbor(i+1, vmath.V2(1e-4, 0), vmath.Zero))
	}
	got := f.Separate(crowd)
	if math.Abs(got.Len()-30) > eps {
		t.Errorf("expected length 30, got %v", got.Len())
	}
	if got.X >= 0 {
		t.Errorf("expected push toward -x, got %+v", got)
	}
}

func TestContainInsideAndOutside(t *testing.T) {
	f := newTestFish(vmath.V2(100, 0), vmath.V2(50, 0))
	f.env.Globe = vmath.Circle{Radius: 512}

	if got := f.Contain(); !got.IsZero() {
		t.Errorf("inside: expected zero, got %+v", got)
	}
	if f.ContainTarget != vmath.V2(150, 0) {
		t.Errorf("expected projection (150,0), got %+v", f.ContainTarget)
	}

	f.Body.Center = vmath.V2(480, 0)
	got := f.Contain()
	if got.IsZero() {
		t.Fatal("outside: expected nonzero force")
	}
	toCenter := f.env.Globe.Center.Sub(f.Body.Center)
	if got.Dot(toCenter) <= 0 {
		t.Errorf("expected force toward center, got %+v", got)
	}
}

// TestContainRimAndDegenerateGlobe covers the boundary and non-positive radius
func TestContainRimAndDegenerateGlobe(t *testing.T) {
	f := newTestFish(vmath.V2(500, 0), vmath.V2(12, 0))
	f.env.Config.ContainTime = 1
	f.env.Globe = vmath.Circle{Radius: 512}
	if got := f.Contain(); got.IsZero() {
		t.Error("projection on the rim counts as outside")
	}

	f.env.Globe.Radius = 0
	if got := f.Contain(); !got.IsZero() {
		t.Errorf("degenerate globe: expected zero, got %+v", got)
	}
}

func TestWanderBoundedAndSmooth(t *testing.T) {
	f := newTestFish(vmath.Zero, vmath.V2(0, 1))
	f.Body.Heading = math.Pi / 2
	cfg := f.env.Config
	dt := 1.0 / f.env.StepsPerSecond

	prev := f.WanderBody.Angle
	for i := 0; i < 600; i++ {
		f.WanderBody.Draw(f.rng, cfg.WanderSpeed)
		w := f.Wander()
		if w.Len() > cfg.MaxForce+eps {
			t.Fatalf("step %d: wander length %v exceeds %v", i, w.Len(), cfg.MaxForce)
		}
		f.WanderBody.Step(dt)
		delta := math.Abs(vmath.DeltaDegrees(prev, f.WanderBody.Angle))
		if delta > cfg.WanderSpeed*dt+eps {
			t.Fatalf("step %d: angle jumped %v degrees", i, delta)
		}
		prev = f.WanderBody.Angle
	}
}

// TestWanderForwardBiased checks the zero-angle sample lies straight ahead
func TestWanderForwardBiased(t *testing.T) {
	f := newTestFish(vmath.Zero, vmath.V2(1, 0))
	// radius 30, distance 0.5*(120-30) = 45, so the sample is 75 ahead
	got := f.Wander()
	if math.Abs(got.X-75) > eps || math.Abs(got.Y) > eps {
		t.Errorf("expected (75, 0), got %+v", got)
	}
	if f.WanderCircle.Center != vmath.V2(45, 0) || f.WanderCircle.Radius != 30 {
		t.Errorf("unexpected wander circle %+v", f.WanderCircle)
	}

	f.Body.Heading = math.Pi
	got = f.Wander()
	if math.Abs(got.X+75) > eps || math.Abs(got.Y) > 1e-6 {
		t.Errorf("expected (-75, 0) after turning around, got %+v", got)
	}
}

// TestAlignLiteralFixture uses the fixed fixture: only the first neighbour is ahead
func TestAlignLiteralFixture(t *testing.T) {
	f := newTestFish(vmath.Zero, vmath.V2(1, 0))
	heading, ok := f.alignHeading(literalNeighbors())
	if !ok {
		t.Fatal("expected an alignment signal")
	}
	if heading != vmath.V2(1, 0) {
		t.Errorf("expected heading (1,0), got %+v", heading)
	}

	// A faster leader ahead produces a +x steering force
	leaders := literalNeighbors()
	leaders[0].Velocity = vmath.V2(5, 0)
	got := f.Align(leaders)
	if got.X <= 0 || math.Abs(got.Y) > math.Abs(got.X) {
		t.Errorf("expected force primarily along +x, got %+v", got)
	}
	if math.Abs(got.X-4) > eps {
		t.Errorf("expected (4,0), got %+v", got)
	}
}

func TestAlignSkipsBehindAndCoincident(t *testing.T) {
	f := newTestFish(vmath.Zero, vmath.V2(1, 0))
	behind := []*physics.Body{
		neighbor(1, vmath.V2(-10, 0), vmath.V2(0, 1)),
		neighbor(2, vmath.Zero, vmath.V2(0, 1)),
		neighbor(3, vmath.V2(0, 7), vmath.V2(0, 1)),
	}
	if got := f.Align(behind); !got.IsZero() {
		t.Errorf("expected zero, got %+v", got)
	}

	// Neighbour ahead but standing still gives a zero velocity sum
	still := []*physics.Body{neighbor(1, vmath.V2(10, 0), vmath.Zero)}
	if got := f.Align(still); !got.IsZero() {
		t.Errorf("expected zero for zero velocity sum, got %+v", got)
	}
}

// TestForcesDeterministic recomputes the fixture and compares bit-for-bit
func TestForcesDeterministic(t *testing.T) {
	run := func() [3]vmath.Vec2 {
		f := newTestFish(vmath.Zero, vmath.V2(1, 0))
		n := literalNeighbors()
		return [3]vmath.Vec2{f.Align(n), f.Cohere(n), f.Separate(n)}
	}
	a, b := run(), run()
	if a != b {
		t.Fatalf("forces differ between runs: %+v vs %+v", a, b)
	}

	f := newTestFish(vmath.Zero, vmath.V2(1, 0))
	f.Cohere(literalNeighbors())
	want := vmath.V2(5.0/3, 5.0/3)
	if math.Abs(f.CohereTarget.X-want.X) > eps || math.Abs(f.CohereTarget.Y-want.Y) > eps {
		t.Errorf("expected centroid %+v, got %+v", want, f.CohereTarget)
	}
}

func TestSeekArrivesWithinOneStep(t *testing.T) {
	f := newTestFish(vmath.Zero, vmath.Zero)
	// 0.5 units at 60 steps/s is 30 units/s, under max speed and max force
	got := f.Seek(vmath.V2(0.5, 0))
	if math.Abs(got.X-30) > eps || got.Y != 0 {
		t.Errorf("expected (30,0), got %+v", got)
	}
}

func TestFleeAwayFromTarget(t *testing.T) {
	f := newTestFish(vmath.Zero, vmath.Zero)
	got := f.Flee(vmath.V2(0, 10))
	if got.Y >= 0 || math.Abs(got.X) > eps {
		t.Errorf("expected force toward -y, got %+v", got)
	}
	if got.Len() > f.env.Config.MaxForce+eps {
		t.Errorf("flee exceeds max force: %v", got.Len())
	}
	if got := f.Flee(f.Body.Center); !got.IsZero() {
		t.Errorf("fleeing own position should be zero, got %+v", got)
	}
}

// TestUpdateIdempotentWithinTick calls Update twice on unchanged inputs
func TestUpdateIdempotentWithinTick(t *testing.T) {
	f := newTestFish(vmath.V2(20, -30), vmath.V2(10, 4))
	near := literalNeighbors()
	sep := near[:1]

	f.Update(near, sep)
	first := f.Body.Acceleration
	firstForces := f.Forces
	f.Update(near, sep)

	if f.Body.Acceleration != first {
		t.Errorf("acceleration changed: %+v vs %+v", first, f.Body.Acceleration)
	}
	if f.Forces != firstForces {
		t.Errorf("forces changed: %+v vs %+v", firstForces, f.Forces)
	}
}

func TestUpdateBlendsAndLimits(t *testing.T) {
	f := newTestFish(vmath.V2(600, 0), vmath.V2(60, 0))
	f.Update(literalNeighbors(), literalNeighbors())

	cfg := f.env.Config
	if f.Body.Acceleration.Len() > cfg.MaxForce+eps {
		t.Errorf("acceleration %v exceeds max force", f.Body.Acceleration.Len())
	}
	if f.Body.MaxSpeed != cfg.MaxSpeed {
		t.Errorf("max speed not refreshed: %v", f.Body.MaxSpeed)
	}
	if f.NearCircle.Radius != cfg.NearRange || f.SeparateCircle.Radius != cfg.SeparateRange {
		t.Errorf("query circles not refreshed: %+v %+v", f.NearCircle, f.SeparateCircle)
	}
	if f.Forces.Contain.IsZero() {
		t.Error("fish outside the globe should be contained")
	}
	if f.WanderBody.MaxAngular != cfg.WanderSpeed {
		t.Errorf("wander bound not refreshed: %v", f.WanderBody.MaxAngular)
	}

	// Zero weights silence everything
	for _, name := range []string{"alignWeight", "cohereWeight", "containWeight", "separateWeight", "wanderWeight"} {
		if _, err := f.env.Config.Set(name, 0); err != nil {
			t.Fatal(err)
		}
	}
	f.Update(literalNeighbors(), literalNeighbors())
	if !f.Body.Acceleration.IsZero() {
		t.Errorf("expected zero acceleration with zero weights, got %+v", f.Body.Acceleration)
	}
}

func TestWandererStepWrapsAndClamps(t *testing.T) {
	w := Wanderer{Angle: 179, AngularVelocity: 600, MaxAngular: 360}
	w.Step(0.01)
	if math.Abs(w.Angle-(-177.4)) > 1e-9 {
		t.Errorf("expected wrapped angle -177.4, got %v", w.Angle)
	}

	w.Draw(vmath.NewFastRand(3), 0)
	if w.AngularVelocity != 0 || w.MaxAngular != 0 {
		t.Errorf("zero speed should stop the wanderer: %+v", w)
	}
}

func TestDestroyReleasesWanderer(t *testing.T) {
	f := newTestFish(vmath.Zero, vmath.V2(1, 0))
	f.Update(nil, nil)
	f.WanderBody.Step(0.5)
	f.Destroy()
	if f.Active {
		t.Error("expected inactive fish")
	}
	if f.WanderBody != (Wanderer{}) {
		t.Errorf("wanderer not released: %+v", f.WanderBody)
	}
}
