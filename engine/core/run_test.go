package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/hellogl/engine/gfx"
	"github.com/hubastard/hellogl/engine/gfx/gfxtest"
	"github.com/hubastard/hellogl/engine/profiler"
)

// scriptWindow hands out one batch of events per PollEvents call.
type scriptWindow struct {
	batches   [][]Event
	pending   []Event
	log       *[]string
	destroyed bool
}

func (w *scriptWindow) PollEvents() {
	w.pending = nil
	if len(w.batches) > 0 {
		w.pending, w.batches = w.batches[0], w.batches[1:]
	}
}

func (w *scriptWindow) NextEvent() (Event, bool) {
	if len(w.pending) == 0 {
		return nil, false
	}
	ev := w.pending[0]
	w.pending = w.pending[1:]
	return ev, true
}

func (w *scriptWindow) SwapBuffers()                { *w.log = append(*w.log, "swap") }
func (w *scriptWindow) FramebufferSize() (int, int) { return 400, 300 }
func (w *scriptWindow) Destroy()                    { w.destroyed = true }

type recordingApp struct {
	log      *[]string
	events   []Event
	startErr error
	viewport [2]int
}

func (a *recordingApp) OnStart(*Engine) error {
	*a.log = append(*a.log, "start")
	return a.startErr
}
func (a *recordingApp) OnUpdate(*Engine) { *a.log = append(*a.log, "update") }
func (a *recordingApp) OnRender(e *Engine) {
	a.viewport[0], a.viewport[1] = e.Viewport()
	*a.log = append(*a.log, "render")
}
func (a *recordingApp) OnEvent(_ *Engine, ev Event) { a.events = append(a.events, ev) }
func (a *recordingApp) OnShutdown(*Engine)          { *a.log = append(*a.log, "shutdown") }

func newHarness(batches ...[]Event) (*scriptWindow, *recordingApp, *[]string) {
	log := &[]string{}
	return &scriptWindow{batches: batches, log: log}, &recordingApp{log: log}, log
}

func TestLoop_FrameOrder(t *testing.T) {
	win, app, log := newHarness()
	loop := NewLoop(NewEngine(win, gfxtest.NewDevice(), DefaultConfig("t"), nil), app)

	assert.Equal(t, Running, loop.Step())
	assert.Equal(t, Running, loop.Step())
	assert.Equal(t, []string{"update", "render", "swap", "update", "render", "swap"}, *log)
	assert.Equal(t, uint64(2), loop.Frames())
}

func TestLoop_StopEvents(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
	}{
		{"quit", EventQuit{}},
		{"escape", EventKey{Key: KeyEscape, Down: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win, app, log := newHarness(nil, []Event{tt.ev})
			loop := NewLoop(NewEngine(win, gfxtest.NewDevice(), DefaultConfig("t"), nil), app)

			loop.Run()
			assert.Equal(t, Stopped, loop.State())
			assert.Equal(t, uint64(1), loop.Frames(), "no frame after the stop event")
			assert.Equal(t, []string{"update", "render", "swap"}, *log)
			assert.Equal(t, []Event{tt.ev}, app.events)

			assert.Equal(t, Stopped, loop.Step(), "stopped is terminal")
			assert.Len(t, *log, 3)
		})
	}
}

func TestLoop_IgnoresOtherEvents(t *testing.T) {
	other := []Event{
		EventKey{Key: KeyEscape, Down: false},
		EventKey{Key: KeyUnknown, Down: false},
		EventKey{Key: KeyUnknown, Down: true},
	}
	win, app, _ := newHarness(other)
	loop := NewLoop(NewEngine(win, gfxtest.NewDevice(), DefaultConfig("t"), nil), app)

	assert.Equal(t, Running, loop.Step())
	assert.Equal(t, other, app.events)
}

func TestLoop_Resize(t *testing.T) {
	win, app, _ := newHarness(
		[]Event{EventResize{W: 800, H: 600}},
		[]Event{EventResize{W: 0, H: 0}},
	)
	loop := NewLoop(NewEngine(win, gfxtest.NewDevice(), DefaultConfig("t"), nil), app)

	loop.Step()
	assert.Equal(t, [2]int{800, 600}, app.viewport)
	loop.Step()
	assert.Equal(t, [2]int{800, 600}, app.viewport, "minimised size is ignored")
}

func TestRun(t *testing.T) {
	win, app, log := newHarness([]Event{EventQuit{}})
	dev := gfxtest.NewDevice()

	err := Run(app, DefaultConfig("t"),
		func(Config) (Window, error) { return win, nil },
		func(Window, Config) (gfx.Device, error) { return dev, nil },
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "shutdown"}, *log)
	assert.True(t, win.destroyed)
}

func TestLoop_Profile(t *testing.T) {
	win, app, _ := newHarness(nil, []Event{EventQuit{}})
	loop := NewLoop(NewEngine(win, gfxtest.NewDevice(), DefaultConfig("t"), nil), app)
	prof := profiler.NewRecorder(64)
	loop.Profile(prof)

	loop.Run()
	// Frame one: frame, events, update, render, swap. Frame two stops after events.
	assert.Equal(t, 2*5+2*2, prof.Len())
}

func TestRun_WritesProfile(t *testing.T) {
	win, app, _ := newHarness(nil, []Event{EventQuit{}})
	cfg := DefaultConfig("t")
	cfg.ProfilePath = filepath.Join(t.TempDir(), "frames.speedscope.json")

	err := Run(app, cfg,
		func(Config) (Window, error) { return win, nil },
		func(Window, Config) (gfx.Device, error) { return gfxtest.NewDevice(), nil },
	)
	require.NoError(t, err)
	b, err := os.ReadFile(cfg.ProfilePath)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"render"`)
}

func TestRun_Failures(t *testing.T) {
	boom := errors.New("boom")

	t.Run("invalid config", func(t *testing.T) {
		win, app, log := newHarness()
		cfg := DefaultConfig("t")
		cfg.Width = 0
		err := Run(app, cfg,
			func(Config) (Window, error) { return win, nil },
			func(Window, Config) (gfx.Device, error) { return gfxtest.NewDevice(), nil },
		)
		assert.ErrorContains(t, err, "invalid config")
		assert.Empty(t, *log)
	})

	t.Run("window", func(t *testing.T) {
		_, app, log := newHarness()
		err := Run(app, DefaultConfig("t"),
			func(Config) (Window, error) { return nil, boom },
			func(Window, Config) (gfx.Device, error) { return gfxtest.NewDevice(), nil },
		)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, *log)
	})

	t.Run("device", func(t *testing.T) {
		win, app, log := newHarness()
		err := Run(app, DefaultConfig("t"),
			func(Config) (Window, error) { return win, nil },
			func(Window, Config) (gfx.Device, error) { return nil, boom },
		)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, *log)
		assert.True(t, win.destroyed)
	})

	t.Run("resources", func(t *testing.T) {
		win, app, log := newHarness()
		app.startErr = &gfx.Error{Kind: gfx.KindAssetLoad, Resource: "hello1.bmp", Err: boom}
		err := Run(app, DefaultConfig("t"),
			func(Config) (Window, error) { return win, nil },
			func(Window, Config) (gfx.Device, error) { return gfxtest.NewDevice(), nil },
		)
		assert.ErrorContains(t, err, "failed to load resources")
		assert.ErrorIs(t, err, gfx.ErrAssetLoad)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"start"}, *log, "no frames and no shutdown after a failed start")
		assert.True(t, win.destroyed)
	})
}
