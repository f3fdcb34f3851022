package gfx

import (
	"io/fs"
	"strings"

	"github.com/hubastard/hellogl/engine/assets"
	"github.com/hubastard/hellogl/engine/logging"
)

// CompileShader compiles src as one pipeline stage. name identifies the source in errors
// (normally the file name). src does not need a NUL terminator.
func CompileShader(dev Device, stage Stage, name string, src []byte) (ShaderHandle, error) {
	sh := dev.CreateShader(stage)
	if sh == 0 {
		return 0, errorf(KindResourceCreation, name, dev.Error(), "couldn't create %s shader object", stage)
	}
	dev.ShaderSource(sh, src)
	dev.CompileShader(sh)

	if !dev.ShaderCompiled(sh) {
		log := strings.TrimRight(dev.ShaderInfoLog(sh), "\x00\n ")
		dev.DeleteShader(sh)
		return 0, errorf(KindCompile, name, nil, "failed to compile: %s", log)
	}
	logging.Logger().Debug("compiled shader", "name", name, "stage", stage.String(), "handle", sh)
	return sh, nil
}

// Program is a linked vertex+fragment pair.
type Program struct {
	dev    Device
	Handle ProgramHandle
}

// LinkProgram links vs and fs. The stage objects are detached and deleted whether or not
// the link succeeds; the caller must not reuse them.
func LinkProgram(dev Device, vs, fs ShaderHandle) (*Program, error) {
	defer func() {
		dev.DeleteShader(vs)
		dev.DeleteShader(fs)
	}()

	prog := dev.CreateProgram()
	if prog == 0 {
		return nil, errorf(KindResourceCreation, "program", dev.Error(), "couldn't create program object")
	}
	dev.AttachShader(prog, vs)
	dev.AttachShader(prog, fs)
	dev.LinkProgram(prog)
	dev.DetachShader(prog, vs)
	dev.DetachShader(prog, fs)

	if !dev.ProgramLinked(prog) {
		log := strings.TrimRight(dev.ProgramInfoLog(prog), "\x00\n ")
		dev.DeleteProgram(prog)
		return nil, errorf(KindLink, "shader program", nil, "failed to link: %s", log)
	}
	logging.Logger().Debug("linked program", "handle", prog)
	return &Program{dev: dev, Handle: prog}, nil
}

// BuildProgram compiles both stages and links them. Whatever was created before a failure
// is deleted.
func BuildProgram(dev Device, vsName string, vsSrc []byte, fsName string, fsSrc []byte) (*Program, error) {
	vs, err := CompileShader(dev, VertexStage, vsName, vsSrc)
	if err != nil {
		return nil, err
	}
	fs, err := CompileShader(dev, FragmentStage, fsName, fsSrc)
	if err != nil {
		dev.DeleteShader(vs)
		return nil, err
	}
	return LinkProgram(dev, vs, fs)
}

// UniformLocation may return NoLocation; Resolve is the checked variant.
func (p *Program) UniformLocation(name string) Location {
	return p.dev.UniformLocation(p.Handle, name)
}

// AttribLocation may return NoLocation; Resolve is the checked variant.
func (p *Program) AttribLocation(name string) Location {
	return p.dev.AttribLocation(p.Handle, name)
}

func (p *Program) Use() { p.dev.UseProgram(p.Handle) }

func (p *Program) Delete() {
	if p.Handle != 0 {
		p.dev.DeleteProgram(p.Handle)
		p.Handle = 0
	}
}

// LoadProgram reads both stage sources from fsys and builds the program.
func LoadProgram(dev Device, fsys fs.FS, vsName, fsName string) (*Program, error) {
	vsSrc, err := assets.ReadShader(fsys, vsName)
	if err != nil {
		return nil, &Error{Kind: KindAssetLoad, Resource: vsName, Err: err}
	}
	fsSrc, err := assets.ReadShader(fsys, fsName)
	if err != nil {
		return nil, &Error{Kind: KindAssetLoad, Resource: fsName, Err: err}
	}
	return BuildProgram(dev, vsName, vsSrc, fsName, fsSrc)
}
