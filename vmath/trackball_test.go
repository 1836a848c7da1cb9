package vmath

import (
	"math"
	"testing"
)

func TestProjectToSphereContinuous(t *testing.T) {
	r := TrackballRadius
	edge := r * math.Sqrt2 / 2

	inside := ProjectToSphere(r, edge-1e-9, 0)
	outside := ProjectToSphere(r, edge+1e-9, 0)
	if math.Abs(inside-outside) > 1e-6 {
		t.Errorf("Expected continuous lift at silhouette, got %f vs %f", inside, outside)
	}

	if z := ProjectToSphere(r, 0, 0); math.Abs(z-r) > eps {
		t.Errorf("Expected z=r at center, got %f", z)
	}

	// Far points still lift above zero on the hyperbolic sheet
	if z := ProjectToSphere(r, 3, 4); z <= 0 {
		t.Errorf("Expected positive lift far outside, got %f", z)
	}
}

func TestTrackballQuatIdenticalPoints(t *testing.T) {
	tests := [][2]float64{{0, 0}, {0.3, -0.2}, {1, 1}}
	for _, p := range tests {
		if q := TrackballQuat(p[0], p[1], p[0], p[1]); q != QuatIdentity() {
			t.Errorf("Expected identity for zero drag at %v, got %+v", p, q)
		}
	}
}

func TestTrackballQuatDirection(t *testing.T) {
	tests := []struct {
		name     string
		p1x, p1y float64
		p2x, p2y float64
		front    func(v Vec3F) bool
	}{
		{"drag right", 0, 0, 0.3, 0, func(v Vec3F) bool { return v.X > 0 }},
		{"drag left", 0, 0, -0.3, 0, func(v Vec3F) bool { return v.X < 0 }},
		{"drag up", 0, 0, 0, 0.3, func(v Vec3F) bool { return v.Y > 0 }},
		{"drag down", 0, 0, 0, -0.3, func(v Vec3F) bool { return v.Y < 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := TrackballQuat(tt.p1x, tt.p1y, tt.p2x, tt.p2y)
			if math.Abs(q.Norm()-1) > eps {
				t.Errorf("Expected unit quaternion, got norm %f", q.Norm())
			}
			// The point facing the viewer follows the pointer
			moved := q.Rotate(Vec3F{0, 0, 1})
			if !tt.front(moved) {
				t.Errorf("Front point moved the wrong way: %+v", moved)
			}
		})
	}
}

func TestTrackballQuatOutsideSphere(t *testing.T) {
	// Drags entirely past the silhouette still rotate
	q := TrackballQuat(0.9, 0.9, 0.95, 0.85)
	if q.SameRotation(QuatIdentity(), 1e-12) {
		t.Error("Expected non-identity rotation for drag outside sphere")
	}
	if math.Abs(q.Norm()-1) > eps {
		t.Errorf("Expected unit quaternion, got %f", q.Norm())
	}
}

func TestTrackballQuatAngleClamped(t *testing.T) {
	// Chord longer than the sphere diameter clamps to a half turn
	q := TrackballQuat(-1, 0, 1, 0)
	if math.IsNaN(q.W) || math.IsNaN(q.X) {
		t.Fatalf("Expected finite quaternion, got %+v", q)
	}
	angle := 2 * math.Acos(math.Min(1, math.Abs(q.W)))
	if angle > math.Pi+eps {
		t.Errorf("Expected angle <= pi, got %f", angle)
	}
}
