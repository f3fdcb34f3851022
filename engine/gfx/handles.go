package gfx

import "strconv"

// GPU object names. Zero is never a valid object.
type (
	ShaderHandle  uint32
	ProgramHandle uint32
	BufferHandle  uint32
	TextureHandle uint32
)

// Location is a uniform or attribute slot inside a linked program.
type Location int32

// NoLocation is what the driver reports for a name the program does not use.
const NoLocation Location = -1

func (l Location) Valid() bool { return l >= 0 }

// Enums below carry the numeric GL values so the GL backend can pass them through.

type Stage uint32

const (
	VertexStage   Stage = 0x8B31
	FragmentStage Stage = 0x8B30
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "stage(" + strconv.Itoa(int(s)) + ")"
}

type BufferTarget uint32

const (
	ArrayBuffer        BufferTarget = 0x8892
	ElementArrayBuffer BufferTarget = 0x8893
)

func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "array"
	case ElementArrayBuffer:
		return "element"
	}
	return "target(" + strconv.Itoa(int(t)) + ")"
}

type Usage uint32

const StaticDraw Usage = 0x88E4

type TexParam uint32

const (
	TextureMagFilter TexParam = 0x2800
	TextureMinFilter TexParam = 0x2801
	TextureWrapS     TexParam = 0x2802
	TextureWrapT     TexParam = 0x2803
)

const (
	Linear      int32 = 0x2601
	ClampToEdge int32 = 0x812F
)

type Topology uint32

const (
	Triangles     Topology = 0x0004
	TriangleStrip Topology = 0x0005
)

type IndexType uint32

const (
	UnsignedShort IndexType = 0x1403
	UnsignedInt   IndexType = 0x1405
)
