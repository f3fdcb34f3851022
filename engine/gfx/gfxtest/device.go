// Package gfxtest provides a software gfx.Device that records GPU state and calls, so
// resource construction and frame rendering can be tested without a GL context.
package gfxtest

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/hellogl/engine/colors"
	"github.com/hubastard/hellogl/engine/gfx"
)

const maxVertexAttribs = 16

// GL error codes reported by Error.
const (
	InvalidEnum      uint32 = 0x0500
	InvalidValue     uint32 = 0x0501
	InvalidOperation uint32 = 0x0502
)

var errNames = map[uint32]string{
	InvalidEnum:      "GL_INVALID_ENUM",
	InvalidValue:     "GL_INVALID_VALUE",
	InvalidOperation: "GL_INVALID_OPERATION",
}

type shader struct {
	stage    gfx.Stage
	src      []byte
	compiled bool
	log      string
	deleted  bool
}

type program struct {
	attached []gfx.ShaderHandle
	linked   bool
	log      string
	uniforms map[string]gfx.Location
	attribs  map[string]gfx.Location
	values   map[gfx.Location]any
}

// Buffer is the server-side copy of a buffer object.
type Buffer struct {
	Data  []byte
	Usage gfx.Usage
}

// Texture is the server-side copy of a 2D texture object.
type Texture struct {
	Params        map[gfx.TexParam]int32
	Width, Height int
	Pixels        []byte // level 0, RGB
}

// AttribPointer is the recorded vertex attribute layout.
type AttribPointer struct {
	Buffer gfx.BufferHandle
	Size   int
	Stride int
	Offset int
}

// Draw snapshots the state a draw call saw.
type Draw struct {
	Mode          gfx.Topology
	Count         int
	Type          gfx.IndexType
	Offset        int
	Program       gfx.ProgramHandle
	ArrayBuffer   gfx.BufferHandle
	ElementBuffer gfx.BufferHandle
	Enabled       []gfx.Location
	Pointers      map[gfx.Location]AttribPointer
	Units         map[int]gfx.TextureHandle
}

// Device implements gfx.Device in memory. The zero value is not usable; call NewDevice.
type Device struct {
	// Calls is the ordered log of state-changing calls, e.g. "UseProgram 3".
	Calls []string
	// Exhaust makes the named object kind ("shader", "program", "buffer", "texture")
	// fail allocation by returning 0.
	Exhaust map[string]bool

	next     uint32
	shaders  map[gfx.ShaderHandle]*shader
	programs map[gfx.ProgramHandle]*program
	buffers  map[gfx.BufferHandle]*Buffer
	textures map[gfx.TextureHandle]*Texture

	bound      map[gfx.BufferTarget]gfx.BufferHandle
	activeUnit int
	units      map[int]gfx.TextureHandle
	current    gfx.ProgramHandle
	enabled    map[gfx.Location]bool
	pointers   map[gfx.Location]AttribPointer

	Draws      []Draw
	ViewportWH [2]int
	DepthTest  bool
	ClearColor colors.Color
	Clears     int

	pending []uint32
}

func NewDevice() *Device {
	return &Device{
		Exhaust:  map[string]bool{},
		shaders:  map[gfx.ShaderHandle]*shader{},
		programs: map[gfx.ProgramHandle]*program{},
		buffers:  map[gfx.BufferHandle]*Buffer{},
		textures: map[gfx.TextureHandle]*Texture{},
		bound:    map[gfx.BufferTarget]gfx.BufferHandle{},
		units:    map[int]gfx.TextureHandle{},
		enabled:  map[gfx.Location]bool{},
		pointers: map[gfx.Location]AttribPointer{},
	}
}

var _ gfx.Device = (*Device)(nil)

func (d *Device) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) fail(code uint32) { d.pending = append(d.pending, code) }

func (d *Device) alloc(kind string) uint32 {
	if d.Exhaust[kind] {
		d.fail(InvalidOperation)
		return 0
	}
	d.next++
	return d.next
}

// ---- shaders ----

func (d *Device) CreateShader(stage gfx.Stage) gfx.ShaderHandle {
	if stage != gfx.VertexStage && stage != gfx.FragmentStage {
		d.fail(InvalidEnum)
		return 0
	}
	h := gfx.ShaderHandle(d.alloc("shader"))
	if h != 0 {
		d.shaders[h] = &shader{stage: stage}
	}
	d.record("CreateShader %s", stage)
	return h
}

func (d *Device) ShaderSource(sh gfx.ShaderHandle, src []byte) {
	s, ok := d.shaders[sh]
	if !ok {
		d.fail(InvalidValue)
		return
	}
	s.src = slices.Clone(src)
}

func (d *Device) CompileShader(sh gfx.ShaderHandle) {
	s, ok := d.shaders[sh]
	if !ok {
		d.fail(InvalidValue)
		return
	}
	d.record("CompileShader %d", sh)
	if line, msg := checkSyntax(s.src); msg != "" {
		s.compiled = false
		s.log = fmt.Sprintf("0:%d(1): error: %s\n", line, msg)
		return
	}
	s.compiled = true
	s.log = ""
}

func (d *Device) ShaderCompiled(sh gfx.ShaderHandle) bool {
	s, ok := d.shaders[sh]
	return ok && s.compiled
}

func (d *Device) ShaderInfoLog(sh gfx.ShaderHandle) string {
	if s, ok := d.shaders[sh]; ok {
		return s.log
	}
	return ""
}

func (d *Device) DeleteShader(sh gfx.ShaderHandle) {
	if sh == 0 {
		return
	}
	if s, ok := d.shaders[sh]; ok {
		s.deleted = true
		// GL keeps attached shaders alive until detached.
		for _, p := range d.programs {
			if slices.Contains(p.attached, sh) {
				return
			}
		}
		delete(d.shaders, sh)
	}
	d.record("DeleteShader %d", sh)
}

// ---- programs ----

func (d *Device) CreateProgram() gfx.ProgramHandle {
	h := gfx.ProgramHandle(d.alloc("program"))
	if h != 0 {
		d.programs[h] = &program{values: map[gfx.Location]any{}}
	}
	d.record("CreateProgram")
	return h
}

func (d *Device) AttachShader(p gfx.ProgramHandle, sh gfx.ShaderHandle) {
	prog, ok := d.programs[p]
	if !ok || d.shaders[sh] == nil {
		d.fail(InvalidValue)
		return
	}
	prog.attached = append(prog.attached, sh)
	d.record("AttachShader %d %d", p, sh)
}

func (d *Device) DetachShader(p gfx.ProgramHandle, sh gfx.ShaderHandle) {
	prog, ok := d.programs[p]
	if !ok {
		d.fail(InvalidValue)
		return
	}
	i := slices.Index(prog.attached, sh)
	if i < 0 {
		d.fail(InvalidOperation)
		return
	}
	prog.attached = slices.Delete(prog.attached, i, i+1)
	if s := d.shaders[sh]; s != nil && s.deleted {
		delete(d.shaders, sh)
	}
	d.record("DetachShader %d %d", p, sh)
}

func (d *Device) LinkProgram(p gfx.ProgramHandle) {
	prog, ok := d.programs[p]
	if !ok {
		d.fail(InvalidValue)
		return
	}
	d.record("LinkProgram %d", p)

	var vs, fs *shader
	for _, h := range prog.attached {
		s := d.shaders[h]
		switch s.stage {
		case gfx.VertexStage:
			vs = s
		case gfx.FragmentStage:
			fs = s
		}
	}
	switch {
	case vs == nil || fs == nil:
		prog.linked, prog.log = false, "error: program needs a vertex and a fragment shader\n"
		return
	case !vs.compiled || !fs.compiled:
		prog.linked, prog.log = false, "error: linking with uncompiled shader\n"
		return
	}

	vsDecl := parseDecls(vs.src, true)
	fsDecl := parseDecls(fs.src, false)
	prog.uniforms = map[string]gfx.Location{}
	prog.attribs = map[string]gfx.Location{}
	var next gfx.Location
	for _, u := range append(vsDecl.uniforms, fsDecl.uniforms...) {
		if _, dup := prog.uniforms[u.name]; dup {
			continue
		}
		if u.count == 0 {
			prog.uniforms[u.name] = next
			next++
			continue
		}
		prog.uniforms[u.name] = next
		for i := 0; i < u.count; i++ {
			prog.uniforms[fmt.Sprintf("%s[%d]", u.name, i)] = next
			next++
		}
	}
	for i, a := range vsDecl.attribs {
		prog.attribs[a.name] = gfx.Location(i)
	}
	prog.linked, prog.log = true, ""
}

func (d *Device) ProgramLinked(p gfx.ProgramHandle) bool {
	prog, ok := d.programs[p]
	return ok && prog.linked
}

func (d *Device) ProgramInfoLog(p gfx.ProgramHandle) string {
	if prog, ok := d.programs[p]; ok {
		return prog.log
	}
	return ""
}

func (d *Device) UniformLocation(p gfx.ProgramHandle, name string) gfx.Location {
	prog, ok := d.programs[p]
	if !ok || !prog.linked {
		d.fail(InvalidOperation)
		return gfx.NoLocation
	}
	if loc, ok := prog.uniforms[name]; ok {
		return loc
	}
	return gfx.NoLocation
}

func (d *Device) AttribLocation(p gfx.ProgramHandle, name string) gfx.Location {
	prog, ok := d.programs[p]
	if !ok || !prog.linked {
		d.fail(InvalidOperation)
		return gfx.NoLocation
	}
	if loc, ok := prog.attribs[name]; ok {
		return loc
	}
	return gfx.NoLocation
}

func (d *Device) UseProgram(p gfx.ProgramHandle) {
	if p != 0 {
		prog, ok := d.programs[p]
		if !ok || !prog.linked {
			d.fail(InvalidOperation)
			return
		}
	}
	d.current = p
	d.record("UseProgram %d", p)
}

func (d *Device) DeleteProgram(p gfx.ProgramHandle) {
	if p == 0 {
		return
	}
	prog, ok := d.programs[p]
	if !ok {
		d.fail(InvalidValue)
		return
	}
	for _, sh := range prog.attached {
		if s := d.shaders[sh]; s != nil && s.deleted {
			delete(d.shaders, sh)
		}
	}
	delete(d.programs, p)
	if d.current == p {
		d.current = 0
	}
	d.record("DeleteProgram %d", p)
}

// ---- buffers ----

func (d *Device) GenBuffer() gfx.BufferHandle {
	h := gfx.BufferHandle(d.alloc("buffer"))
	if h != 0 {
		d.buffers[h] = &Buffer{}
	}
	d.record("GenBuffer")
	return h
}

func (d *Device) BindBuffer(target gfx.BufferTarget, b gfx.BufferHandle) {
	if b != 0 && d.buffers[b] == nil {
		d.fail(InvalidOperation)
		return
	}
	d.bound[target] = b
	d.record("BindBuffer %s %d", target, b)
}

func (d *Device) BufferData(target gfx.BufferTarget, data []byte, usage gfx.Usage) {
	buf := d.buffers[d.bound[target]]
	if buf == nil {
		d.fail(InvalidOperation)
		return
	}
	buf.Data = slices.Clone(data)
	buf.Usage = usage
	d.record("BufferData %s %d", target, len(data))
}

func (d *Device) BufferSize(target gfx.BufferTarget) int {
	buf := d.buffers[d.bound[target]]
	if buf == nil {
		d.fail(InvalidOperation)
		return 0
	}
	return len(buf.Data)
}

func (d *Device) DeleteBuffer(b gfx.BufferHandle) {
	if b == 0 {
		return
	}
	delete(d.buffers, b)
	for t, h := range d.bound {
		if h == b {
			d.bound[t] = 0
		}
	}
	d.record("DeleteBuffer %d", b)
}

// ---- textures ----

func (d *Device) GenTexture() gfx.TextureHandle {
	h := gfx.TextureHandle(d.alloc("texture"))
	if h != 0 {
		d.textures[h] = &Texture{Params: map[gfx.TexParam]int32{}}
	}
	d.record("GenTexture")
	return h
}

func (d *Device) ActiveTexture(unit int) {
	if unit < 0 || unit >= 16 {
		d.fail(InvalidEnum)
		return
	}
	d.activeUnit = unit
	d.record("ActiveTexture %d", unit)
}

func (d *Device) BindTexture(t gfx.TextureHandle) {
	if t != 0 && d.textures[t] == nil {
		d.fail(InvalidOperation)
		return
	}
	d.units[d.activeUnit] = t
	d.record("BindTexture %d %d", d.activeUnit, t)
}

func (d *Device) TexParameter(param gfx.TexParam, value int32) {
	tex := d.textures[d.units[d.activeUnit]]
	if tex == nil {
		d.fail(InvalidOperation)
		return
	}
	tex.Params[param] = value
}

func (d *Device) TexImageRGB(width, height int, pixels []byte) {
	tex := d.textures[d.units[d.activeUnit]]
	if tex == nil {
		d.fail(InvalidOperation)
		return
	}
	if width <= 0 || height <= 0 || len(pixels) < width*height*3 {
		d.fail(InvalidValue)
		return
	}
	tex.Width, tex.Height = width, height
	tex.Pixels = slices.Clone(pixels[:width*height*3])
	d.record("TexImageRGB %dx%d", width, height)
}

func (d *Device) DeleteTexture(t gfx.TextureHandle) {
	if t == 0 {
		return
	}
	delete(d.textures, t)
	for u, h := range d.units {
		if h == t {
			d.units[u] = 0
		}
	}
	d.record("DeleteTexture %d", t)
}

// ---- uniforms ----

func (d *Device) setUniform(kind string, loc gfx.Location, v any) {
	prog := d.programs[d.current]
	if prog == nil {
		d.fail(InvalidOperation)
		return
	}
	if loc == gfx.NoLocation {
		return // silently ignored, as in GL
	}
	prog.values[loc] = v
	d.record("%s %d", kind, loc)
}

func (d *Device) Uniform1f(loc gfx.Location, v float32) { d.setUniform("Uniform1f", loc, v) }
func (d *Device) Uniform1i(loc gfx.Location, v int32)   { d.setUniform("Uniform1i", loc, v) }
func (d *Device) UniformMatrix3(loc gfx.Location, m mgl32.Mat3) {
	d.setUniform("UniformMatrix3", loc, m)
}
func (d *Device) UniformMatrix4(loc gfx.Location, m mgl32.Mat4) {
	d.setUniform("UniformMatrix4", loc, m)
}

// ---- vertex input and draw ----

func (d *Device) VertexAttribPointer(loc gfx.Location, size, stride, offset int) {
	if !loc.Valid() || loc >= maxVertexAttribs || size < 1 || size > 4 {
		d.fail(InvalidValue)
		return
	}
	if d.bound[gfx.ArrayBuffer] == 0 {
		d.fail(InvalidOperation)
		return
	}
	d.pointers[loc] = AttribPointer{Buffer: d.bound[gfx.ArrayBuffer], Size: size, Stride: stride, Offset: offset}
	d.record("VertexAttribPointer %d %d %d %d", loc, size, stride, offset)
}

func (d *Device) EnableVertexAttribArray(loc gfx.Location) {
	if !loc.Valid() || loc >= maxVertexAttribs {
		d.fail(InvalidValue)
		return
	}
	d.enabled[loc] = true
	d.record("EnableVertexAttribArray %d", loc)
}

func (d *Device) DisableVertexAttribArray(loc gfx.Location) {
	if !loc.Valid() || loc >= maxVertexAttribs {
		d.fail(InvalidValue)
		return
	}
	delete(d.enabled, loc)
	d.record("DisableVertexAttribArray %d", loc)
}

func (d *Device) DrawElements(mode gfx.Topology, count int, typ gfx.IndexType, offset int) {
	if d.current == 0 || d.bound[gfx.ElementArrayBuffer] == 0 {
		d.fail(InvalidOperation)
		return
	}
	dr := Draw{
		Mode: mode, Count: count, Type: typ, Offset: offset,
		Program:       d.current,
		ArrayBuffer:   d.bound[gfx.ArrayBuffer],
		ElementBuffer: d.bound[gfx.ElementArrayBuffer],
		Pointers:      map[gfx.Location]AttribPointer{},
		Units:         map[int]gfx.TextureHandle{},
	}
	for loc := range d.enabled {
		dr.Enabled = append(dr.Enabled, loc)
		dr.Pointers[loc] = d.pointers[loc]
	}
	slices.Sort(dr.Enabled)
	for u, t := range d.units {
		if t != 0 {
			dr.Units[u] = t
		}
	}
	d.Draws = append(d.Draws, dr)
	d.record("DrawElements %d %d", mode, count)
}

func (d *Device) Viewport(width, height int) {
	d.ViewportWH = [2]int{width, height}
	d.record("Viewport %d %d", width, height)
}

func (d *Device) EnableDepthTest() {
	d.DepthTest = true
	d.record("EnableDepthTest")
}

func (d *Device) Clear(c colors.Color, depth bool) {
	d.ClearColor = c
	d.Clears++
	d.record("Clear %t", depth)
}

func (d *Device) Error() error {
	if len(d.pending) == 0 {
		return nil
	}
	var errs []error
	for _, code := range d.pending {
		errs = append(errs, errors.New(errNames[code]))
	}
	d.pending = d.pending[:0]
	return errors.Join(errs...)
}

// ---- inspection helpers ----

// Buffer returns the contents of b, or nil if it does not exist.
func (d *Device) Buffer(b gfx.BufferHandle) *Buffer { return d.buffers[b] }

// Texture returns the state of t, or nil if it does not exist.
func (d *Device) Texture(t gfx.TextureHandle) *Texture { return d.textures[t] }

// UniformValue returns the last value set at loc in program p.
func (d *Device) UniformValue(p gfx.ProgramHandle, loc gfx.Location) (any, bool) {
	prog := d.programs[p]
	if prog == nil {
		return nil, false
	}
	v, ok := prog.values[loc]
	return v, ok
}

// EnabledAttribs lists attribute arrays currently enabled.
func (d *Device) EnabledAttribs() []gfx.Location {
	var out []gfx.Location
	for loc := range d.enabled {
		out = append(out, loc)
	}
	slices.Sort(out)
	return out
}

// Live counts objects not yet deleted.
func (d *Device) Live() int {
	return len(d.shaders) + len(d.programs) + len(d.buffers) + len(d.textures)
}

// CallIndex returns the position of the first call with the given prefix at or after
// from, or -1.
func (d *Device) CallIndex(prefix string, from int) int {
	for i := from; i < len(d.Calls); i++ {
		if strings.HasPrefix(d.Calls[i], prefix) {
			return i
		}
	}
	return -1
}
