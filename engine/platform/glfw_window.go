package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/hellogl/engine/core"
	"github.com/hubastard/hellogl/engine/logging"
)

// GLFWWindow implements core.Window. GLFW callbacks append to a queue that the frame
// loop drains through NextEvent.
type GLFWWindow struct {
	w     *glfw.Window
	queue EventQueue
}

// NewGLFWWindow must be called on the main thread before any GL calls. It leaves a
// 3.3 core context current and GL function pointers loaded.
func NewGLFWWindow(cfg core.Config) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	// GL 3.2+ core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.RedBits, 8)
	glfw.WindowHint(glfw.GreenBits, 8)
	glfw.WindowHint(glfw.BlueBits, 8)
	glfw.WindowHint(glfw.DepthBits, cfg.DepthBits)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("load GL functions: %w", err)
	}

	gw := &GLFWWindow{w: win}

	win.SetCloseCallback(func(*glfw.Window) { gw.queue.Push(core.EventQuit{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.queue.Push(core.EventResize{W: w, H: h})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		gw.queue.Push(core.EventKey{Key: translateKey(key), Down: action == glfw.Press})
	})

	w, h := win.GetFramebufferSize()
	logging.Logger().Info("window created", "title", cfg.Title, "framebuffer", fmt.Sprintf("%dx%d", w, h), "vsync", cfg.VSync)
	return gw, nil
}

// core.Window impl
func (g *GLFWWindow) PollEvents()                   { glfw.PollEvents() }
func (g *GLFWWindow) NextEvent() (core.Event, bool) { return g.queue.Pop() }
func (g *GLFWWindow) SwapBuffers()                  { g.w.SwapBuffers() }
func (g *GLFWWindow) FramebufferSize() (int, int)   { return g.w.GetFramebufferSize() }

func (g *GLFWWindow) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}

// translateKey maps the keys the frame loop reacts to; everything else is KeyUnknown.
func translateKey(k glfw.Key) core.Key {
	if k == glfw.KeyEscape {
		return core.KeyEscape
	}
	return core.KeyUnknown
}
