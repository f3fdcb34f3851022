package demo

import (
	"io/fs"

	"github.com/hubastard/hellogl/engine/gfx"
)

// Asset names, relative to the asset root.
const (
	QuadVertexShader   = "hello-gl.v.glsl"
	QuadFragmentShader = "hello-gl.f.glsl"
	CubeVertexShader   = "hello-cube.v.glsl"
	CubeFragmentShader = "hello-cube.f.glsl"
)

var QuadTextures = [2]string{"hello1.bmp", "hello2.bmp"}

// Uniform and attribute names.
const (
	uFadeFactor = "fade_factor"
	uTexture0   = "textures[0]"
	uTexture1   = "textures[1]"
	uMVP        = "mvp_matrix"
	uModelView  = "modelview_matrix"
	uNormal     = "normal_matrix"
	aPosition   = "position"
	aColor      = "color"
	aNormal     = "normal"
)

// QuadResources holds every GPU object of the textured quad. Immutable once built.
type QuadResources struct {
	Program       *gfx.Program
	VertexBuffer  gfx.BufferHandle
	ElementBuffer gfx.BufferHandle
	Textures      [2]gfx.TextureHandle
	Locations     gfx.LocationTable
}

// NewQuadResources builds the quad's program, buffers and textures in that order. On
// error nothing is left allocated.
func NewQuadResources(dev gfx.Device, fsys fs.FS) (res *QuadResources, err error) {
	res = &QuadResources{}
	defer func() {
		if err != nil {
			res.Release(dev)
			res = nil
		}
	}()

	if res.Program, err = gfx.LoadProgram(dev, fsys, QuadVertexShader, QuadFragmentShader); err != nil {
		return res, err
	}
	res.Locations, err = res.Program.Resolve(
		[]string{uFadeFactor, uTexture0, uTexture1},
		[]string{aPosition},
	)
	if err != nil {
		return res, err
	}
	if res.VertexBuffer, err = gfx.UploadBuffer(dev, gfx.ArrayBuffer, quadVertices[:]); err != nil {
		return res, err
	}
	if res.ElementBuffer, err = gfx.UploadBuffer(dev, gfx.ElementArrayBuffer, quadIndices[:]); err != nil {
		return res, err
	}
	for i, name := range QuadTextures {
		if res.Textures[i], err = gfx.LoadTexture(dev, fsys, name); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Release deletes everything in reverse creation order. Safe on a partial bundle.
func (r *QuadResources) Release(dev gfx.Device) {
	for i := len(r.Textures) - 1; i >= 0; i-- {
		dev.DeleteTexture(r.Textures[i])
		r.Textures[i] = 0
	}
	dev.DeleteBuffer(r.ElementBuffer)
	dev.DeleteBuffer(r.VertexBuffer)
	r.ElementBuffer, r.VertexBuffer = 0, 0
	if r.Program != nil {
		r.Program.Delete()
	}
}

// CubeResources holds the cube's program and interleaved geometry. Immutable once built.
type CubeResources struct {
	Program       *gfx.Program
	VertexBuffer  gfx.BufferHandle
	ElementBuffer gfx.BufferHandle
	IndexCount    int
	Locations     gfx.LocationTable
}

// NewCubeResources builds the cube's program and buffers. On error nothing is left
// allocated.
func NewCubeResources(dev gfx.Device, fsys fs.FS) (res *CubeResources, err error) {
	res = &CubeResources{}
	defer func() {
		if err != nil {
			res.Release(dev)
			res = nil
		}
	}()

	if res.Program, err = gfx.LoadProgram(dev, fsys, CubeVertexShader, CubeFragmentShader); err != nil {
		return res, err
	}
	res.Locations, err = res.Program.Resolve(
		[]string{uMVP, uModelView, uNormal},
		[]string{aPosition, aColor, aNormal},
	)
	if err != nil {
		return res, err
	}
	if res.VertexBuffer, err = gfx.UploadBuffer(dev, gfx.ArrayBuffer, cubeVertices[:]); err != nil {
		return res, err
	}
	if res.ElementBuffer, err = gfx.UploadBuffer(dev, gfx.ElementArrayBuffer, cubeIndices[:]); err != nil {
		return res, err
	}
	res.IndexCount = len(cubeIndices)
	return res, nil
}

func (r *CubeResources) Release(dev gfx.Device) {
	dev.DeleteBuffer(r.ElementBuffer)
	dev.DeleteBuffer(r.VertexBuffer)
	r.ElementBuffer, r.VertexBuffer = 0, 0
	if r.Program != nil {
		r.Program.Delete()
	}
}
