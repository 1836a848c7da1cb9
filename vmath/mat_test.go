package vmath

import (
	"math"
	"testing"
)

func TestRotateYQuarterTurn(t *testing.T) {
	got := TransformPoint(RotateY(90), Vec3F{100, 0, 0})
	if !V3FApproxEqual(got, Vec3F{0, 0, -100}, 1e-9) {
		t.Errorf("Expected (0,0,-100), got %+v", got)
	}
}

func TestTranslateThenRotate(t *testing.T) {
	m := RotateY(180).Mul4(Translate(5, 0, 0))
	got := Origin(m)
	if !V3FApproxEqual(got, Vec3F{-5, 0, 0}, 1e-9) {
		t.Errorf("Expected (-5,0,0), got %+v", got)
	}
}

func TestTransformDirIgnoresTranslation(t *testing.T) {
	m := Translate(1, 2, 3).Mul4(Scale(2))
	got := TransformDir(m, Vec3F{1, 0, 0})
	if !V3FApproxEqual(got, Vec3F{2, 0, 0}, 1e-12) {
		t.Errorf("Expected (2,0,0), got %+v", got)
	}
}

func TestNormalMatrixUniformScale(t *testing.T) {
	n := NormalMatrix(RotateY(30).Mul4(Scale(4)))
	// Inverse-transpose of s*R is R/s
	want := RotateY(30).Mat3()
	for i := range n {
		if math.Abs(n[i]*4-want[i]) > 1e-9 {
			t.Fatalf("Normal matrix mismatch at %d: %f vs %f", i, n[i]*4, want[i])
		}
	}
}

func TestRowLengthOrtho(t *testing.T) {
	m := Ortho(-2, 2, -1, 1, -1, 1).Mul4(RotateX(30))
	if l := RowLength(m, 0); math.Abs(l-0.5) > 1e-12 {
		t.Errorf("Expected row 0 length 0.5, got %f", l)
	}
	if l := RowLength(m, 1); math.Abs(l-1) > 1e-12 {
		t.Errorf("Expected row 1 length 1, got %f", l)
	}
}
