package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix helpers over mgl64.Mat4 (column-major), angles in degrees

func RotateX(deg float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(mgl64.DegToRad(deg))
}

func RotateY(deg float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(mgl64.DegToRad(deg))
}

func Translate(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

// Scale returns a uniform scale matrix
func Scale(s float64) mgl64.Mat4 {
	return mgl64.Scale3D(s, s, s)
}

func Ortho(left, right, bottom, top, near, far float64) mgl64.Mat4 {
	return mgl64.Ortho(left, right, bottom, top, near, far)
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 of m
func NormalMatrix(m mgl64.Mat4) mgl64.Mat3 {
	return m.Mat3().Inv().Transpose()
}

// TransformPoint applies m to v with w = 1
func TransformPoint(m mgl64.Mat4, v Vec3F) Vec3F {
	r := m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 1})
	return Vec3F{r[0], r[1], r[2]}
}

// TransformDir applies m to v with w = 0
func TransformDir(m mgl64.Mat4, v Vec3F) Vec3F {
	r := m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return Vec3F{r[0], r[1], r[2]}
}

// Origin returns the translation column of m
func Origin(m mgl64.Mat4) Vec3F {
	return Vec3F{m[12], m[13], m[14]}
}

// RowLength returns the length of the xyz part of row r
func RowLength(m mgl64.Mat4, r int) float64 {
	return math.Sqrt(m.At(r, 0)*m.At(r, 0) + m.At(r, 1)*m.At(r, 1) + m.At(r, 2)*m.At(r, 2))
}

// MatApproxEqual compares all 16 components within eps
func MatApproxEqual(a, b mgl64.Mat4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
