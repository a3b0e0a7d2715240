// Package mglconv converts between pkg/math values and go-gl/mathgl mgl64
// values. Both libraries store matrices column-major with column vectors, so
// every conversion is lossless.
package mglconv

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/spatial3d/pkg/math"
)

func Vec3(v math.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func FromVec3(v mgl64.Vec3) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Quat converts q. mgl64 keeps the scalar part in W and the vector part in V.
func Quat(q math.Quat) mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

func FromQuat(q mgl64.Quat) math.Quat {
	return math.Quat{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

func Mat3(m math.Mat3) mgl64.Mat3 {
	return mgl64.Mat3(m)
}

func FromMat3(m mgl64.Mat3) math.Mat3 {
	return math.Mat3(m)
}

func Mat4(m math.Mat4) mgl64.Mat4 {
	return mgl64.Mat4(m)
}

func FromMat4(m mgl64.Mat4) math.Mat4 {
	return math.Mat4(m)
}

// Points converts a slice of points, e.g. mesh vertices for upload.
func Points(ps []math.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(ps))
	for i, p := range ps {
		out[i] = Vec3(p)
	}
	return out
}
