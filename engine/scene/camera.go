package scene

import "github.com/go-gl/mathgl/mgl32"

// Cube camera: the cube sits 8 units down -Z inside a 6..10 depth slab.
const (
	CubeDistance = 8
	FrustumHalfW = 2.8
	FrustumNear  = 6
	FrustumFar   = 10
)

// CubeModelView composes T(0,0,-8)·Rx·Ry·Rz for column vectors (applied right to left).
func CubeModelView(a Angles) mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -CubeDistance).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(a.X))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(a.Y))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(a.Z)))
}

// CubeProjection is a frustum with fixed horizontal extent; the vertical extent follows
// the viewport aspect (height/width). A degenerate viewport is treated as square.
func CubeProjection(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(height) / float32(width)
	}
	return mgl32.Frustum(
		-FrustumHalfW, FrustumHalfW,
		-FrustumHalfW*aspect, FrustumHalfW*aspect,
		FrustumNear, FrustumFar,
	)
}

// NormalMatrix is the upper-left 3x3 of mv. Valid only while mv has no non-uniform
// scale, which holds for rotation+translation.
func NormalMatrix(mv mgl32.Mat4) mgl32.Mat3 {
	return mgl32.Mat3{
		mv[0], mv[1], mv[2],
		mv[4], mv[5], mv[6],
		mv[8], mv[9], mv[10],
	}
}

// CubeTransforms bundles the three matrices uploaded per frame.
type CubeTransforms struct {
	ModelView mgl32.Mat4
	MVP       mgl32.Mat4
	Normal    mgl32.Mat3
}

func ComputeCubeTransforms(a Angles, width, height int) CubeTransforms {
	mv := CubeModelView(a)
	return CubeTransforms{
		ModelView: mv,
		MVP:       CubeProjection(width, height).Mul4(mv),
		Normal:    NormalMatrix(mv),
	}
}
