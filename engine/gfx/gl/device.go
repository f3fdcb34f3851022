// Package glbackend implements gfx.Device on the OpenGL 3.3 core profile via go-gl.
package glbackend

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/hellogl/engine/colors"
	"github.com/hubastard/hellogl/engine/gfx"
	"github.com/hubastard/hellogl/engine/logging"
)

// Device forwards to the GL context current on the calling thread.
type Device struct {
	vao uint32
}

var _ gfx.Device = (*Device)(nil)

// NewDevice expects gl.Init to have been called with a current context. Core profile
// refuses attribute pointers without a vertex array object, so one is bound for the
// device's lifetime.
func NewDevice() (*Device, error) {
	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	if d.vao == 0 {
		return nil, &gfx.Error{
			Kind:     gfx.KindResourceCreation,
			Resource: "vertex array object",
			Detail:   "couldn't create",
			Err:      d.Error(),
		}
	}
	gl.BindVertexArray(d.vao)

	logging.Logger().Info("GL device",
		"vendor", gl.GoStr(gl.GetString(gl.VENDOR)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	)
	return d, nil
}

func (d *Device) Shutdown() {
	if d.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

// --- shaders ---

func (d *Device) CreateShader(stage gfx.Stage) gfx.ShaderHandle {
	return gfx.ShaderHandle(gl.CreateShader(uint32(stage)))
}

func (d *Device) ShaderSource(sh gfx.ShaderHandle, src []byte) {
	csrc, free := gl.Strs(string(src))
	defer free()
	length := int32(len(src))
	gl.ShaderSource(uint32(sh), 1, csrc, &length)
}

func (d *Device) CompileShader(sh gfx.ShaderHandle) { gl.CompileShader(uint32(sh)) }

func (d *Device) ShaderCompiled(sh gfx.ShaderHandle) bool {
	var status int32
	gl.GetShaderiv(uint32(sh), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ShaderInfoLog(sh gfx.ShaderHandle) string {
	var logLen int32
	gl.GetShaderiv(uint32(sh), gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen))
	gl.GetShaderInfoLog(uint32(sh), logLen, nil, gl.Str(log))
	return log
}

func (d *Device) DeleteShader(sh gfx.ShaderHandle) {
	if sh != 0 {
		gl.DeleteShader(uint32(sh))
	}
}

// --- programs ---

func (d *Device) CreateProgram() gfx.ProgramHandle { return gfx.ProgramHandle(gl.CreateProgram()) }

func (d *Device) AttachShader(p gfx.ProgramHandle, sh gfx.ShaderHandle) {
	gl.AttachShader(uint32(p), uint32(sh))
}

func (d *Device) DetachShader(p gfx.ProgramHandle, sh gfx.ShaderHandle) {
	gl.DetachShader(uint32(p), uint32(sh))
}

func (d *Device) LinkProgram(p gfx.ProgramHandle) { gl.LinkProgram(uint32(p)) }

func (d *Device) ProgramLinked(p gfx.ProgramHandle) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ProgramInfoLog(p gfx.ProgramHandle) string {
	var logLen int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen))
	gl.GetProgramInfoLog(uint32(p), logLen, nil, gl.Str(log))
	return log
}

func (d *Device) UniformLocation(p gfx.ProgramHandle, name string) gfx.Location {
	return gfx.Location(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *Device) AttribLocation(p gfx.ProgramHandle, name string) gfx.Location {
	return gfx.Location(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *Device) UseProgram(p gfx.ProgramHandle) { gl.UseProgram(uint32(p)) }

func (d *Device) DeleteProgram(p gfx.ProgramHandle) {
	if p != 0 {
		gl.DeleteProgram(uint32(p))
	}
}

// --- buffers ---

func (d *Device) GenBuffer() gfx.BufferHandle {
	var b uint32
	gl.GenBuffers(1, &b)
	return gfx.BufferHandle(b)
}

func (d *Device) BindBuffer(target gfx.BufferTarget, b gfx.BufferHandle) {
	gl.BindBuffer(uint32(target), uint32(b))
}

func (d *Device) BufferData(target gfx.BufferTarget, data []byte, usage gfx.Usage) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(uint32(target), len(data), ptr, uint32(usage))
}

func (d *Device) BufferSize(target gfx.BufferTarget) int {
	var size int32
	gl.GetBufferParameteriv(uint32(target), gl.BUFFER_SIZE, &size)
	return int(size)
}

func (d *Device) DeleteBuffer(b gfx.BufferHandle) {
	if b != 0 {
		n := uint32(b)
		gl.DeleteBuffers(1, &n)
	}
}

// --- textures ---

func (d *Device) GenTexture() gfx.TextureHandle {
	var t uint32
	gl.GenTextures(1, &t)
	return gfx.TextureHandle(t)
}

func (d *Device) ActiveTexture(unit int) { gl.ActiveTexture(gl.TEXTURE0 + uint32(unit)) }

func (d *Device) BindTexture(t gfx.TextureHandle) { gl.BindTexture(gl.TEXTURE_2D, uint32(t)) }

func (d *Device) TexParameter(param gfx.TexParam, value int32) {
	gl.TexParameteri(gl.TEXTURE_2D, uint32(param), value)
}

func (d *Device) TexImageRGB(width, height int, pixels []byte) {
	// RGB rows are 3*width bytes, not 4-aligned in general.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, int32(width), int32(height), 0, gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

func (d *Device) DeleteTexture(t gfx.TextureHandle) {
	if t != 0 {
		n := uint32(t)
		gl.DeleteTextures(1, &n)
	}
}

// --- uniforms ---

func (d *Device) Uniform1f(loc gfx.Location, v float32) { gl.Uniform1f(int32(loc), v) }
func (d *Device) Uniform1i(loc gfx.Location, v int32)   { gl.Uniform1i(int32(loc), v) }

func (d *Device) UniformMatrix3(loc gfx.Location, m mgl32.Mat3) {
	gl.UniformMatrix3fv(int32(loc), 1, false, &m[0])
}

func (d *Device) UniformMatrix4(loc gfx.Location, m mgl32.Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

// --- vertex input and draw ---

func (d *Device) VertexAttribPointer(loc gfx.Location, size, stride, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(loc), int32(size), gl.FLOAT, false, int32(stride), uintptr(offset))
}

func (d *Device) EnableVertexAttribArray(loc gfx.Location) {
	gl.EnableVertexAttribArray(uint32(loc))
}

func (d *Device) DisableVertexAttribArray(loc gfx.Location) {
	gl.DisableVertexAttribArray(uint32(loc))
}

func (d *Device) DrawElements(mode gfx.Topology, count int, typ gfx.IndexType, offset int) {
	gl.DrawElementsWithOffset(uint32(mode), int32(count), uint32(typ), uintptr(offset))
}

// --- framebuffer ---

func (d *Device) Viewport(width, height int) { gl.Viewport(0, 0, int32(width), int32(height)) }

func (d *Device) EnableDepthTest() { gl.Enable(gl.DEPTH_TEST) }

func (d *Device) Clear(c colors.Color, depth bool) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)
}

var glErrorNames = map[uint32]string{
	gl.INVALID_ENUM:                  "GL_INVALID_ENUM",
	gl.INVALID_VALUE:                 "GL_INVALID_VALUE",
	gl.INVALID_OPERATION:             "GL_INVALID_OPERATION",
	gl.INVALID_FRAMEBUFFER_OPERATION: "GL_INVALID_FRAMEBUFFER_OPERATION",
	gl.OUT_OF_MEMORY:                 "GL_OUT_OF_MEMORY",
}

// maxErrors bounds the drain loop; a lost context can report errors forever.
const maxErrors = 32

func (d *Device) Error() error {
	var errs []error
	for i := 0; i < maxErrors; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		name, ok := glErrorNames[code]
		if !ok {
			name = fmt.Sprintf("GL error 0x%04X", code)
		}
		errs = append(errs, errors.New(name))
	}
	return errors.Join(errs...)
}
