package demo

import (
	"github.com/hubastard/hellogl/engine/colors"
	"github.com/hubastard/hellogl/engine/gfx"
	"github.com/hubastard/hellogl/engine/logging"
	"github.com/hubastard/hellogl/engine/scene"
)

// RenderQuad draws the cross-faded quad: one 4-index strip.
func RenderQuad(dev gfx.Device, r *QuadResources, fade float32, width, height int) {
	dev.Viewport(width, height)
	r.Program.Use()

	dev.Uniform1f(r.Locations.Uniform(uFadeFactor), fade)

	dev.ActiveTexture(0)
	dev.BindTexture(r.Textures[0])
	dev.Uniform1i(r.Locations.Uniform(uTexture0), 0)

	dev.ActiveTexture(1)
	dev.BindTexture(r.Textures[1])
	dev.Uniform1i(r.Locations.Uniform(uTexture1), 1)

	pos := r.Locations.Attrib(aPosition)
	dev.BindBuffer(gfx.ArrayBuffer, r.VertexBuffer)
	dev.VertexAttribPointer(pos, 2, 2*4, 0)
	dev.EnableVertexAttribArray(pos)

	dev.BindBuffer(gfx.ElementArrayBuffer, r.ElementBuffer)
	dev.DrawElements(gfx.TriangleStrip, len(quadIndices), gfx.UnsignedShort, 0)

	dev.DisableVertexAttribArray(pos)
	checkErrors(dev, "quad")
}

// RenderCube clears, uploads the frame's transforms and draws the cube strip.
func RenderCube(dev gfx.Device, r *CubeResources, angles scene.Angles, width, height int, clear colors.Color) {
	t := scene.ComputeCubeTransforms(angles, width, height)

	dev.Viewport(width, height)
	dev.Clear(clear, true)
	r.Program.Use()

	dev.UniformMatrix4(r.Locations.Uniform(uMVP), t.MVP)
	dev.UniformMatrix4(r.Locations.Uniform(uModelView), t.ModelView)
	dev.UniformMatrix3(r.Locations.Uniform(uNormal), t.Normal)

	attribs := [3]struct {
		loc    gfx.Location
		offset int
	}{
		{r.Locations.Attrib(aPosition), cubePositionOffset},
		{r.Locations.Attrib(aColor), cubeColorOffset},
		{r.Locations.Attrib(aNormal), cubeNormalOffset},
	}

	dev.BindBuffer(gfx.ArrayBuffer, r.VertexBuffer)
	for _, a := range attribs {
		dev.VertexAttribPointer(a.loc, 3, cubeStride, a.offset)
		dev.EnableVertexAttribArray(a.loc)
	}

	dev.BindBuffer(gfx.ElementArrayBuffer, r.ElementBuffer)
	dev.DrawElements(gfx.TriangleStrip, r.IndexCount, gfx.UnsignedShort, 0)

	for _, a := range attribs {
		dev.DisableVertexAttribArray(a.loc)
	}
	checkErrors(dev, "cube")
}

// checkErrors logs, never aborts: the swap chain belongs to the window layer.
func checkErrors(dev gfx.Device, what string) {
	if err := dev.Error(); err != nil {
		logging.Logger().Warn("GL error after draw", "draw", what, "err", err)
	}
}
