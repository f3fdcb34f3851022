// Package gfx builds GPU resources (shaders, programs, buffers, textures) on top of a
// Device. The Device is the explicit "current binding" context: every bind, upload and
// draw goes through it, and it must only be used from the thread that owns the GL
// context.
package gfx

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/hellogl/engine/colors"
)

// Device is the subset of the GL API the renderer needs.
// Implementations: engine/gfx/gl (real driver) and engine/gfx/gfxtest (software recorder).
type Device interface {
	// Shaders
	CreateShader(stage Stage) ShaderHandle
	ShaderSource(sh ShaderHandle, src []byte)
	CompileShader(sh ShaderHandle)
	ShaderCompiled(sh ShaderHandle) bool
	ShaderInfoLog(sh ShaderHandle) string
	DeleteShader(sh ShaderHandle)

	// Programs
	CreateProgram() ProgramHandle
	AttachShader(p ProgramHandle, sh ShaderHandle)
	DetachShader(p ProgramHandle, sh ShaderHandle)
	LinkProgram(p ProgramHandle)
	ProgramLinked(p ProgramHandle) bool
	ProgramInfoLog(p ProgramHandle) string
	UniformLocation(p ProgramHandle, name string) Location
	AttribLocation(p ProgramHandle, name string) Location
	UseProgram(p ProgramHandle)
	DeleteProgram(p ProgramHandle)

	// Buffers
	GenBuffer() BufferHandle
	BindBuffer(target BufferTarget, b BufferHandle)
	BufferData(target BufferTarget, data []byte, usage Usage)
	BufferSize(target BufferTarget) int
	DeleteBuffer(b BufferHandle)

	// Textures (2D only)
	GenTexture() TextureHandle
	ActiveTexture(unit int)
	BindTexture(t TextureHandle)
	TexParameter(param TexParam, value int32)
	TexImageRGB(width, height int, pixels []byte)
	DeleteTexture(t TextureHandle)

	// Uniforms for the program in use
	Uniform1f(loc Location, v float32)
	Uniform1i(loc Location, v int32)
	UniformMatrix3(loc Location, m mgl32.Mat3)
	UniformMatrix4(loc Location, m mgl32.Mat4)

	// Vertex input and drawing
	VertexAttribPointer(loc Location, size int, stride int, offset int)
	EnableVertexAttribArray(loc Location)
	DisableVertexAttribArray(loc Location)
	DrawElements(mode Topology, count int, typ IndexType, offset int)

	// Framebuffer
	Viewport(width, height int)
	EnableDepthTest()
	Clear(c colors.Color, depth bool)

	// Error pops every pending error and reports them as one, or nil.
	Error() error
}
