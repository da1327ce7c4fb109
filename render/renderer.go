package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/shoal/agent"
	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/vmath"
	"github.com/lixenwraith/shoal/world"
)

// fishGlyphs by heading octant, clockwise from +x on a y-down screen
var fishGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Glyph returns the arrow for a heading in radians
func Glyph(heading float64) rune {
	octant := int(math.Round(heading/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return fishGlyphs[octant]
}

// Status is the frame's status bar content
type Status struct {
	Ticks     int64
	Paused    bool
	TimeScale float64
	Message   string
}

// Renderer draws one world per frame
type Renderer struct {
	screen Screen
	Camera *Camera
	Debug  DebugOptions

	width, height int
}

// NewRenderer draws to screen with a fresh camera
func NewRenderer(screen Screen) *Renderer {
	return &Renderer{screen: screen, Camera: NewCamera()}
}

// Draw renders the world, overlays and status bar, then shows the frame
func (r *Renderer) Draw(w *world.World, st Status) {
	r.width, r.height = r.screen.Size()
	r.screen.Fill(' ', styleBase)
	if r.width <= 0 || r.height <= 1 {
		r.screen.Show()
		return
	}

	followed := r.track(w)

	r.circle(w.Globe(), '·', styleGlobe)
	for _, o := range w.Obstacles() {
		r.disc(vmath.Circle{Center: o.Center, Radius: o.Radius}, '▒', styleObstacle)
	}

	if r.Debug.Any() {
		for _, f := range w.Fishes() {
			if f.Active {
				r.overlay(f)
			}
		}
	}

	for _, f := range w.Fishes() {
		if !f.Active {
			continue
		}
		style := styleFish
		if f == followed {
			style = styleFollow
		}
		x, y := r.project(f.Body.Center)
		r.set(x, y, Glyph(f.Rotation), style)
	}

	r.statusBar(w, st, followed)
	r.screen.Show()
}

// track moves the camera onto the followed fish, dropping follow if it is gone
func (r *Renderer) track(w *world.World) *agent.Fish {
	if !r.Camera.Following() {
		return nil
	}
	for _, f := range w.Fishes() {
		if f.Active && f.ID() == r.Camera.FollowID {
			r.Camera.Center = f.Body.Center
			return f
		}
	}
	r.Camera.Unfollow()
	return nil
}

// overlay draws the enabled debug layers for one fish
func (r *Renderer) overlay(f *agent.Fish) {
	c := f.Body.Center
	d := &r.Debug

	if d.NearRange {
		r.circle(f.NearCircle, '·', styleBase.Foreground(RgbRange))
	}
	if d.SeparateRange {
		r.circle(f.SeparateCircle, '·', styleBase.Foreground(RgbSeparate))
	}
	if d.WanderRadius {
		r.circle(f.WanderCircle, '·', styleBase.Foreground(RgbWander))
	}
	if d.Velocity {
		r.line(c, c.Add(f.Body.Velocity), styleBase.Foreground(RgbVelocity))
	}
	if d.Align {
		r.force(c, f.Forces.Align, RgbAlign)
	}
	if d.Cohere {
		r.force(c, f.Forces.Cohere, RgbCohere)
		if !f.Forces.Cohere.IsZero() {
			x, y := r.project(f.CohereTarget)
			r.set(x, y, '+', styleBase.Foreground(RgbCohere))
		}
	}
	if d.Contain {
		r.force(c, f.Forces.Contain, RgbContain)
		if !f.Forces.Contain.IsZero() {
			x, y := r.project(f.ContainTarget)
			r.set(x, y, '×', styleBase.Foreground(RgbContain))
		}
	}
	if d.Separate {
		r.force(c, f.Forces.Separate, RgbSeparate)
	}
	if d.Wander {
		r.force(c, f.Forces.Wander, RgbWander)
		x, y := r.project(f.WanderPoint)
		r.set(x, y, '∘', styleBase.Foreground(RgbWander))
	}
	if d.Acceleration {
		r.force(c, f.Body.Acceleration, RgbAcceleration)
	}
}

func (r *Renderer) force(from, v vmath.Vec2, color tcell.Color) {
	if v.IsZero() {
		return
	}
	r.line(from, from.Add(v.Scale(parameter.ForceDrawScale)), styleBase.Foreground(color))
}

func (r *Renderer) statusBar(w *world.World, st Status, followed *agent.Fish) {
	row := r.height - 1
	for x := 0; x < r.width; x++ {
		r.set(x, row, ' ', styleStatus)
	}

	text := fmt.Sprintf(" shoal  fish %d  tick %d  zoom %.2fx  scale %.1f",
		len(w.Fishes()), st.Ticks, r.Camera.Zoom, st.TimeScale)
	if st.Paused {
		text += "  [paused]"
	}
	if followed != nil {
		text += fmt.Sprintf("  follow #%d", followed.ID())
	}
	x := r.text(0, row, text, styleStatus)

	hint := "  " + st.Message
	if st.Message == "" {
		hint = "  q quit  space pause  . step  r restart  f/u follow  +/- zoom  [/] speed  1-0 debug  m hum"
	}
	r.text(x, row, hint, styleStatusDim)
}

// project maps a world point to a cell
func (r *Renderer) project(p vmath.Vec2) (int, int) {
	return r.Camera.WorldToScreen(p, r.width, r.height-1)
}

// set writes a cell if it lies in the drawing area above the status bar
func (r *Renderer) set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

// text writes s from column x and returns the column after it
func (r *Renderer) text(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= r.width {
			break
		}
		r.set(x, y, ch, style)
		x++
	}
	return x
}

// line steps cell by cell between the projected endpoints
func (r *Renderer) line(a, b vmath.Vec2, style tcell.Style) {
	x0, y0 := r.project(a)
	x1, y1 := r.project(b)
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		return
	}
	// Skip the origin cell so the fish glyph stays visible
	for i := 1; i <= steps; i++ {
		x := x0 + int(math.Round(float64(dx*i)/float64(steps)))
		y := y0 + int(math.Round(float64(dy*i)/float64(steps)))
		if y >= r.height-1 {
			continue
		}
		r.set(x, y, '·', style)
	}
}

// circle samples the rim with enough points to close it on screen
func (r *Renderer) circle(c vmath.Circle, ch rune, style tcell.Style) {
	if !c.Valid() {
		return
	}
	cells := 2 * math.Pi * c.Radius * r.Camera.scale(r.width)
	n := int(math.Min(math.Max(cells*2, 16), parameter.GlobeSegments*4))
	for i := 0; i < n; i++ {
		x, y := r.project(c.PointAt(2 * math.Pi * float64(i) / float64(n)))
		if y >= r.height-1 {
			continue
		}
		r.set(x, y, ch, style)
	}
}

// disc fills every cell whose center lies inside c
func (r *Renderer) disc(c vmath.Circle, ch rune, style tcell.Style) {
	h := r.height - 1
	x0, y0 := r.project(c.Center.Sub(vmath.V2(c.Radius, c.Radius)))
	x1, y1 := r.project(c.Center.Add(vmath.V2(c.Radius, c.Radius)))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, r.width-1), min(y1, h-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := r.Camera.ScreenToWorld(x, y, r.width, h)
			if c.Contains(p) {
				r.set(x, y, ch, style)
			}
		}
	}
	// Small obstacles still get one cell
	x, y := r.project(c.Center)
	if y < h {
		r.set(x, y, ch, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
