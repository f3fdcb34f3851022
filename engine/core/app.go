package core

import (
	"time"

	"github.com/hubastard/hellogl/engine/gfx"
)

// App defines the demo hooks driven by the frame loop.
type App interface {
	OnStart(e *Engine) error     // build GPU resources; an error aborts Run
	OnUpdate(e *Engine)          // advance animation state, once per frame
	OnRender(e *Engine)          // submit the frame
	OnEvent(e *Engine, ev Event) // every drained event, after the loop reacted to it
	OnShutdown(e *Engine)        // release GPU resources
}

// Engine exposes core services to the App.
type Engine struct {
	Window Window
	Device gfx.Device
	Config Config
	Clock  Clock

	width, height int
}

func NewEngine(win Window, dev gfx.Device, cfg Config, clock Clock) *Engine {
	if clock == nil {
		clock = NewWallClock()
	}
	e := &Engine{Window: win, Device: dev, Config: cfg, Clock: clock}
	e.width, e.height = win.FramebufferSize()
	return e
}

// Viewport is the last known framebuffer size in pixels.
func (e *Engine) Viewport() (int, int) { return e.width, e.height }

func (e *Engine) resize(w, h int) {
	if w < 1 || h < 1 {
		return // minimised
	}
	e.width, e.height = w, h
}

// Window abstraction over the platform layer.
type Window interface {
	// PollEvents pumps the OS queue without blocking.
	PollEvents()
	// NextEvent pops one pumped event; false when the queue is empty.
	NextEvent() (Event, bool)
	SwapBuffers()
	FramebufferSize() (int, int)
	Destroy()
}

// Clock supplies monotonic time since start.
type Clock interface {
	Milliseconds() float64
}

type wallClock struct{ start time.Time }

func NewWallClock() Clock { return wallClock{start: time.Now()} }

func (c wallClock) Milliseconds() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// Event model: a closed set.
type Event interface{ isEvent() }

type EventQuit struct{}

func (EventQuit) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
}

func (EventKey) isEvent() {}

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
)
