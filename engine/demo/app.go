// Package demo holds the two hello-gl scenes: a cross-faded textured quad and a
// frame-driven rotating cube. Each is a core.App.
package demo

import (
	"embed"
	"io/fs"
	"os"

	"github.com/hubastard/hellogl/engine/core"
	"github.com/hubastard/hellogl/engine/logging"
	"github.com/hubastard/hellogl/engine/scene"
)

//go:embed assets
var embedded embed.FS

// AssetFS returns dir as a filesystem, or the embedded assets when dir is empty.
func AssetFS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(embedded, "assets")
	if err != nil {
		panic(err) // embedded tree is fixed at build time
	}
	return sub
}

// Quad cross-fades two bitmaps over wall-clock time.
type Quad struct {
	Assets fs.FS

	res  *QuadResources
	fade scene.FadeState
}

func (q *Quad) OnStart(e *core.Engine) error {
	res, err := NewQuadResources(e.Device, q.Assets)
	if err != nil {
		return err
	}
	q.res = res
	logging.Logger().Info("quad resources ready", "program", res.Program.Handle)
	return nil
}

func (q *Quad) OnUpdate(e *core.Engine) {
	q.fade.Update(float32(e.Clock.Milliseconds()))
}

func (q *Quad) OnRender(e *core.Engine) {
	w, h := e.Viewport()
	RenderQuad(e.Device, q.res, q.fade.Factor, w, h)
}

func (q *Quad) OnEvent(*core.Engine, core.Event) {}

func (q *Quad) OnShutdown(e *core.Engine) {
	if q.res != nil {
		q.res.Release(e.Device)
		q.res = nil
	}
}

// Cube spins a shaded cube by a fixed step per rendered frame.
type Cube struct {
	Assets fs.FS

	res    *CubeResources
	spin   scene.Spin
	angles scene.Angles
}

func (c *Cube) OnStart(e *core.Engine) error {
	res, err := NewCubeResources(e.Device, c.Assets)
	if err != nil {
		return err
	}
	c.res = res
	e.Device.EnableDepthTest()
	logging.Logger().Info("cube resources ready", "program", res.Program.Handle)
	return nil
}

func (c *Cube) OnUpdate(*core.Engine) { c.angles = c.spin.Next() }

func (c *Cube) OnRender(e *core.Engine) {
	w, h := e.Viewport()
	RenderCube(e.Device, c.res, c.angles, w, h, e.Config.ClearColor)
}

func (c *Cube) OnEvent(*core.Engine, core.Event) {}

func (c *Cube) OnShutdown(e *core.Engine) {
	if c.res != nil {
		c.res.Release(e.Device)
		c.res = nil
	}
}
