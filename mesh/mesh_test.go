package mesh

import (
	"math"
	"testing"

	"github.com/lixenwraith/orrery/vmath"
)

func TestCircleDefault(t *testing.T) {
	pts := Circle(DefaultCircleStep)
	if len(pts) != 63 {
		t.Fatalf("Expected 63 vertices, got %d", len(pts))
	}
	for i, p := range pts {
		if math.Abs(vmath.V3FMag(p)-1) > 1e-12 || p.Y != 0 {
			t.Fatalf("Vertex %d off the unit XZ circle: %+v", i, p)
		}
	}
	first := vmath.Vec3F{X: math.Cos(0.1), Z: math.Sin(0.1)}
	if !vmath.V3FApproxEqual(pts[0], first, 1e-12) {
		t.Errorf("Expected first vertex at 0.1 rad, got %+v", pts[0])
	}
}

func TestCircleInvalidStep(t *testing.T) {
	if len(Circle(0)) != len(Circle(DefaultCircleStep)) {
		t.Error("Expected default step for zero")
	}
	if n := len(Circle(math.Pi / 2)); n != 4 {
		t.Errorf("Expected 4 vertices at quarter step, got %d", n)
	}
}

func TestSphereCounts(t *testing.T) {
	s := NewSphere(DefaultBands, DefaultBands)
	if len(s.Positions) != 51*51 {
		t.Errorf("Expected %d vertices, got %d", 51*51, len(s.Positions))
	}
	if s.Triangles() != 50*50*2 {
		t.Errorf("Expected %d triangles, got %d", 50*50*2, s.Triangles())
	}
	for _, idx := range s.Indices {
		if int(idx) >= len(s.Positions) {
			t.Fatalf("Index %d out of range", idx)
		}
	}
}

func TestSphereUnitNormals(t *testing.T) {
	s := NewSphere(8, 12)
	for i, p := range s.Positions {
		if math.Abs(vmath.V3FMag(p)-1) > 1e-12 {
			t.Fatalf("Vertex %d not on unit sphere: %+v", i, p)
		}
		if s.Normals[i] != p {
			t.Fatalf("Normal %d differs from position", i)
		}
		uv := s.UVs[i]
		if uv[0] < 0 || uv[0] > 1 || uv[1] < 0 || uv[1] > 1 {
			t.Fatalf("UV %d out of range: %v", i, uv)
		}
	}
	// Poles
	if !vmath.V3FApproxEqual(s.Positions[0], vmath.Vec3F{Y: 1}, 1e-12) {
		t.Errorf("Expected north pole first, got %+v", s.Positions[0])
	}
}

func TestSphereMinimumBands(t *testing.T) {
	s := NewSphere(0, 0)
	if s.Triangles() != 2*3*2 {
		t.Errorf("Expected clamped 2x3 tessellation, got %d triangles", s.Triangles())
	}
}
