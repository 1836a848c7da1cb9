package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// quatEpsilon is the magnitude below which a quaternion is degenerate
const quatEpsilon = 1e-12

// Quat is a rotation quaternion with vector part X, Y, Z and scalar part W
// Values are immutable; every operation returns a new quaternion
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns the zero rotation
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle returns the unit quaternion rotating angle radians about axis
// A zero-length axis yields identity
func QuatFromAxisAngle(axis Vec3F, angle float64) Quat {
	n := V3FNormalize(axis)
	if n == (Vec3F{}) {
		return QuatIdentity()
	}
	s, c := math.Sincos(angle / 2)
	return Quat{X: n.X * s, Y: n.Y * s, Z: n.Z * s, W: c}
}

// Compose returns the renormalized Hamilton product a ⊗ b
// The result applied to a vector rotates by b first, then by a
func Compose(a, b Quat) Quat {
	q := Quat{
		X: a.W*b.X + b.W*a.X + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y + b.W*a.Y + a.Z*b.X - a.X*b.Z,
		Z: a.W*b.Z + b.W*a.Z + a.X*b.Y - a.Y*b.X,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
	return q.Normalize()
}

// Norm returns the quaternion magnitude
func (q Quat) Norm() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize divides by magnitude; near-zero magnitude returns identity
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n < quatEpsilon {
		return QuatIdentity()
	}
	inv := 1.0 / n
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Conjugate returns the inverse rotation of a unit quaternion
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Rotate applies the rotation to v (q v q*)
func (q Quat) Rotate(v Vec3F) Vec3F {
	u := Vec3F{q.X, q.Y, q.Z}
	// v' = v + 2w(u×v) + 2u×(u×v)
	t := V3FScale(V3FCross(u, v), 2)
	return V3FAdd(V3FAdd(v, V3FScale(t, q.W)), V3FCross(u, t))
}

// Mat4 converts to a column-major homogeneous rotation matrix
func (q Quat) Mat4() mgl64.Mat4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return mgl64.Mat4{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// SameRotation reports whether q and o describe the same rotation within eps
// q and -q are the same rotation
func (q Quat) SameRotation(o Quat, eps float64) bool {
	d := math.Abs(q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W)
	return math.Abs(d-q.Norm()*o.Norm()) <= eps
}
