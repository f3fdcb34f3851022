package core

import (
	"fmt"
	"runtime"

	"github.com/hubastard/hellogl/engine/gfx"
	"github.com/hubastard/hellogl/engine/logging"
	"github.com/hubastard/hellogl/engine/profiler"
)

// State of the frame loop.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Loop drives update -> render -> present until a quit or Escape arrives.
type Loop struct {
	eng    *Engine
	app    App
	state  State
	frames uint64
	prof   *profiler.Recorder
}

func NewLoop(eng *Engine, app App) *Loop {
	return &Loop{eng: eng, app: app, state: Running}
}

func (l *Loop) State() State { return l.state }

// Frames counts presented frames.
func (l *Loop) Frames() uint64 { return l.frames }

func (l *Loop) Stop() { l.state = Stopped }

// Profile records a span per frame phase into r. nil disables recording.
func (l *Loop) Profile(r *profiler.Recorder) { l.prof = r }

// Step runs one iteration. Events are drained first; if one of them stops the loop no
// frame is rendered.
func (l *Loop) Step() State {
	if l.state == Stopped {
		return l.state
	}
	defer l.prof.Start("frame")()
	win := l.eng.Window

	end := l.prof.Start("events")
	win.PollEvents()
	for {
		ev, ok := win.NextEvent()
		if !ok {
			break
		}
		l.handle(ev)
	}
	end()
	if l.state == Stopped {
		return l.state
	}

	end = l.prof.Start("update")
	l.app.OnUpdate(l.eng)
	end()
	end = l.prof.Start("render")
	l.app.OnRender(l.eng)
	end()
	end = l.prof.Start("swap")
	win.SwapBuffers()
	end()
	l.frames++
	return l.state
}

// Run steps until stopped.
func (l *Loop) Run() {
	for l.Step() == Running {
	}
}

func (l *Loop) handle(ev Event) {
	switch e := ev.(type) {
	case EventQuit:
		l.Stop()
	case EventKey:
		if e.Down && e.Key == KeyEscape {
			l.Stop()
		}
	case EventResize:
		l.eng.resize(e.W, e.H)
	}
	l.app.OnEvent(l.eng, ev)
}

// Run wires the platform window + device and executes the main loop. Any construction
// failure is returned; the caller decides to exit.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newDevice func(Window, Config) (gfx.Device, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()

	dev, err := newDevice(win, cfg)
	if err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	if s, ok := dev.(interface{ Shutdown() }); ok {
		defer s.Shutdown()
	}

	eng := NewEngine(win, dev, cfg, nil)
	if err := app.OnStart(eng); err != nil {
		return fmt.Errorf("failed to load resources: %w", err)
	}
	// Resources go before the device and window (defers run in reverse).
	defer app.OnShutdown(eng)

	loop := NewLoop(eng, app)
	var prof *profiler.Recorder
	if cfg.ProfilePath != "" {
		prof = profiler.NewRecorder(profiler.DefaultCapacity)
		loop.Profile(prof)
	}
	loop.Run()
	logging.Logger().Info("engine exit", "frames", loop.Frames())

	if prof != nil {
		if err := prof.WriteFile(cfg.ProfilePath, cfg.Title); err != nil {
			logging.Logger().Warn("profile not written", "path", cfg.ProfilePath, "err", err)
		} else {
			logging.Logger().Info("profile written", "path", cfg.ProfilePath)
		}
	}
	return nil
}
