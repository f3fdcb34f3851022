package demo

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/hellogl/engine/colors"
)

// Quad: a full-viewport strip in clip space.
var quadVertices = [8]float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

var quadIndices = [4]uint16{0, 1, 2, 3}

// Cube vertex layout: position xyz, color rgb, normal xyz.
const (
	cubeFloatsPerVertex = 9
	cubeStride          = cubeFloatsPerVertex * 4 // bytes
	cubePositionOffset  = 0
	cubeColorOffset     = 3 * 4
	cubeNormalOffset    = 6 * 4
)

type cubeFace struct {
	normal, u, v mgl32.Vec3
	color        colors.Color
}

// Each face lists its corners as (-u,-v) (+u,-v) (-u,+v) (+u,+v) with u×v = normal, so
// the first triangle of every face is counter-clockwise seen from outside.
var cubeFaces = [6]cubeFace{
	{normal: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}, color: colors.Red},      // front
	{normal: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}, color: colors.Green},   // right
	{normal: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}, color: colors.Blue},   // back
	{normal: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}, color: colors.Yellow},  // left
	{normal: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}, color: colors.Magenta}, // top
	{normal: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}, color: colors.Cyan},    // bottom
}

var cubeVertices = buildCubeVertices()

func buildCubeVertices() (out [24 * cubeFloatsPerVertex]float32) {
	corners := [4][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	i := 0
	for _, f := range cubeFaces {
		rgb := f.color.RGB()
		for _, c := range corners {
			pos := f.normal.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1]))
			i += copy(out[i:], pos[:])
			i += copy(out[i:], rgb[:])
			i += copy(out[i:], f.normal[:])
		}
	}
	return out
}

// One strip for all six faces. Between faces the last index of one face and the first of
// the next are repeated, producing four zero-area triangles; two extra indices keep every
// face starting on an even strip position so winding is preserved.
var cubeIndices = [34]uint16{
	0, 1, 2, 3, 3, 4,
	4, 5, 6, 7, 7, 8,
	8, 9, 10, 11, 11, 12,
	12, 13, 14, 15, 15, 16,
	16, 17, 18, 19, 19, 20,
	20, 21, 22, 23,
}
