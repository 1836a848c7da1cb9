package vmath

import (
	"math"
)

// TrackballRadius is the virtual sphere radius in normalized viewport units
const TrackballRadius = 0.8

// ProjectToSphere returns the z lift of normalized point (x, y) on a trackball of radius r
// Within r/√2 of the center the point lands on the sphere; beyond it lands on
// the hyperbolic sheet z = (r²/2)/d, which meets the sphere at d = r/√2
func ProjectToSphere(r, x, y float64) float64 {
	d := math.Hypot(x, y)
	if d < r*math.Sqrt2/2 {
		return math.Sqrt(r*r - d*d)
	}
	t := r / math.Sqrt2
	return t * t / d
}

// TrackballQuat returns the rotation dragging normalized point p1 onto p2
// Identical points yield identity
func TrackballQuat(p1x, p1y, p2x, p2y float64) Quat {
	if p1x == p2x && p1y == p2y {
		return QuatIdentity()
	}

	p1 := Vec3F{p1x, p1y, ProjectToSphere(TrackballRadius, p1x, p1y)}
	p2 := Vec3F{p2x, p2y, ProjectToSphere(TrackballRadius, p2x, p2y)}

	axis := V3FCross(p1, p2)

	// Angle from chord length, clamped so asin stays defined
	t := V3FMag(V3FSub(p1, p2)) / (2 * TrackballRadius)
	t = max(-1, min(1, t))
	phi := 2 * math.Asin(t)

	return QuatFromAxisAngle(axis, phi)
}
