package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	"github.com/lixenwraith/shoal/audio"
	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/render"
	"github.com/lixenwraith/shoal/status"
)

// viewer is the interactive terminal front end
type viewer struct {
	s        *session
	screen   tcell.Screen
	renderer *render.Renderer
	sound    *audio.SoundManager

	meanSpeed *status.AtomicFloat

	message   string
	messageAt time.Time
}

func viewAction(c *cli.Context) error {
	logger, logFile := setupLogging(c.GlobalBool("debug"))
	if logFile != nil {
		defer logFile.Close()
	}

	s, err := newSession(c, logger)
	if err != nil {
		return err
	}
	defer s.world.Teardown()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer recoverTerminal(screen.Fini)
	screen.EnableMouse()
	screen.HideCursor()

	v := newViewer(s, screen)

	if !c.Bool("no-audio") {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			// Non-fatal, the flock runs silent
			logger.Warn("audio initialization failed", "err", err)
		} else {
			sm.SetEnabled(!c.Bool("mute"))
			v.sound = sm
		}
	}

	v.run()
	v.cleanup()
	return nil
}

func newViewer(s *session, screen tcell.Screen) *viewer {
	return &viewer{
		s:         s,
		screen:    screen,
		renderer:  render.NewRenderer(screen),
		meanSpeed: s.registry.Floats.Get(status.KeyMeanSpeed),
	}
}

func (v *viewer) run() {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !v.handleInput(ev) {
				return
			}

		case <-ticker.C:
			v.frame()
		}
	}
}

// frame advances the simulation by wall time and redraws
func (v *viewer) frame() {
	v.s.stepper.Advance()
	if v.sound != nil {
		v.sound.Update(v.meanSpeed.Get(), v.s.world.Config().MaxSpeed)
	}
	v.draw()
}

func (v *viewer) draw() {
	scale, _ := v.s.live.Get("timeScale")
	st := render.Status{
		Ticks:     v.s.world.Ticks(),
		Paused:    v.s.stepper.IsPaused(),
		TimeScale: scale,
	}
	if v.message != "" && time.Since(v.messageAt) < parameter.MessageDuration {
		st.Message = v.message
	}
	v.renderer.Draw(v.s.world, st)
}

func (v *viewer) notify(format string, args ...any) {
	v.message = fmt.Sprintf(format, args...)
	v.messageAt = time.Now()
	v.s.logger.Debug("viewer", "notice", v.message)
}

// handleInput applies one terminal event; false means quit
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			w, h := v.screen.Size()
			x, y := ev.Position()
			if y >= h-1 {
				return true
			}
			p := v.renderer.Camera.ScreenToWorld(x, y, w, h)
			v.s.world.AddObstacle(p, parameter.ClickObstacleRadius)
			v.notify("obstacle at %.0f,%.0f", p.X, p.Y)
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	r := ev.Rune()
	switch r {
	case 'q':
		return false

	case ' ':
		if v.s.stepper.TogglePause() {
			v.notify("paused")
		} else {
			v.notify("resumed")
		}

	case '.':
		if v.s.stepper.IsPaused() {
			v.s.stepper.StepOnce()
		}

	case 'r':
		v.s.world.RequestRestart()
		v.renderer.Camera.Unfollow()
		v.notify("restart")

	case 'f':
		if f := v.s.world.FirstAlive(); f != nil {
			v.renderer.Camera.Follow(f.ID())
			v.notify("following fish %d", f.ID())
		}

	case 'u':
		v.renderer.Camera.Unfollow()

	case '+', '=':
		v.renderer.Camera.ZoomIn()
	case '-', '_':
		v.renderer.Camera.ZoomOut()

	case '[', ']':
		cur, _ := v.s.live.Get("timeScale")
		next := cur * parameter.TimeScaleFactor
		if r == '[' {
			next = cur / parameter.TimeScaleFactor
		}
		applied, err := v.s.live.Set("timeScale", next)
		if err == nil {
			v.notify("time scale %.2fx", applied)
		}

	case 'm':
		if v.sound == nil {
			v.notify("audio unavailable")
		} else if v.sound.ToggleEnabled() {
			v.notify("hum on")
		} else {
			v.notify("hum off")
		}

	case 'd':
		on := !v.renderer.Debug.Any()
		v.renderer.Debug.SetAll(on)

	default:
		if r >= '0' && r <= '9' {
			// 1..9 then 0 map onto the sorted overlay names
			i := int(r-'0') - 1
			if r == '0' {
				i = 9
			}
			names := render.DebugNames()
			if i < len(names) {
				on, _ := v.renderer.Debug.Toggle(names[i])
				v.notify("%s %v", names[i], on)
			}
		}
	}
	return true
}

func (v *viewer) cleanup() {
	if v.sound != nil {
		v.sound.Cleanup()
	}
	v.screen.Fini()
}
