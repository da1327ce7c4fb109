package agent

import (
	"github.com/lixenwraith/shoal/physics"
	"github.com/lixenwraith/shoal/vmath"
)

// Forces holds the last unweighted behaviour outputs, kept for debug drawing only
type Forces struct {
	Align    vmath.Vec2
	Cohere   vmath.Vec2
	Contain  vmath.Vec2
	Separate vmath.Vec2
	Wander   vmath.Vec2
}

// Fish is one steering agent
// Update writes Body.Acceleration and the debug fields below; it never moves the body
type Fish struct {
	Body       *physics.Body
	WanderBody Wanderer

	// Rotation is the visual heading in radians
	Rotation float64

	Forces Forces

	// Debug targets
	CohereTarget  vmath.Vec2
	ContainTarget vmath.Vec2
	WanderPoint   vmath.Vec2

	// Debug circles
	NearCircle     vmath.Circle
	SeparateCircle vmath.Circle
	WanderCircle   vmath.Circle

	Active bool

	rng *vmath.FastRand
	env *Env
}

// NewFish wraps body in an agent reading shared state from env
func NewFish(body *physics.Body, env *Env, rng *vmath.FastRand) *Fish {
	return &Fish{
		Body:     body,
		Rotation: body.Heading,
		Active:   true,
		rng:      rng,
		env:      env,
	}
}

// ID returns the body id
func (f *Fish) ID() int { return f.Body.ID }

// Env returns the shared context the fish reads
func (f *Fish) Env() *Env { return f.env }

// Update recomputes every force from scratch and stores their weighted, limited sum
func (f *Fish) Update(near, separate []*physics.Body) {
	cfg := &f.env.Config
	body := f.Body

	f.Rotation = body.Heading
	body.MaxSpeed = cfg.MaxSpeed
	f.WanderBody.Draw(f.rng, cfg.WanderSpeed)
	f.NearCircle = vmath.Circle{Center: body.Center, Radius: cfg.NearRange}
	f.SeparateCircle = vmath.Circle{Center: body.Center, Radius: cfg.SeparateRange}
	f.CohereTarget = body.Center

	f.Forces = Forces{
		Align:    f.Align(near),
		Cohere:   f.Cohere(near),
		Contain:  f.Contain(),
		Separate: f.Separate(separate),
		Wander:   f.Wander(),
	}

	acc := f.Forces.Align.Scale(cfg.AlignWeight).
		Add(f.Forces.Cohere.Scale(cfg.CohereWeight)).
		Add(f.Forces.Contain.Scale(cfg.ContainWeight)).
		Add(f.Forces.Separate.Scale(cfg.SeparateWeight)).
		Add(f.Forces.Wander.Scale(cfg.WanderWeight))

	body.Acceleration = acc.Limit(cfg.MaxForce)
}

// Destroy deactivates the fish and releases the wanderer
func (f *Fish) Destroy() {
	f.Active = false
	f.WanderBody.Reset()
	f.Body.Acceleration = vmath.Zero
	f.Forces = Forces{}
}
