package transform

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPushPopBalancedRestoresTop(t *testing.T) {
	s := NewStack()
	base := mgl64.Translate3D(1, 2, 3)
	s.Push(base)

	// N matched pushes and pops
	for i := 0; i < 25; i++ {
		s.Push(s.Top().Mul4(mgl64.HomogRotate3DY(float64(i))))
	}
	for i := 0; i < 25; i++ {
		s.Pop()
	}

	if s.Depth() != 1 {
		t.Fatalf("Expected depth 1, got %d", s.Depth())
	}
	if s.Top() != base {
		t.Errorf("Expected top restored to %v, got %v", base, s.Top())
	}
}

func TestPushStoresAbsolute(t *testing.T) {
	s := NewStack()
	s.Push(mgl64.Translate3D(5, 0, 0))
	s.Push(mgl64.Translate3D(0, 1, 0))

	// No implicit composition with the previous top
	if got := s.Top(); got != mgl64.Translate3D(0, 1, 0) {
		t.Errorf("Expected pushed matrix unchanged, got %v", got)
	}
}

func TestPopEmptyPanics(t *testing.T) {
	s := NewStack()
	defer func() {
		r := recover()
		ue, ok := r.(*UnbalancedError)
		if !ok {
			t.Fatalf("Expected *UnbalancedError panic, got %v", r)
		}
		if ue.Op != "pop" {
			t.Errorf("Expected pop op, got %q", ue.Op)
		}
	}()
	s.Pop()
}

func TestTopEmptyPanics(t *testing.T) {
	s := NewStack()
	defer func() {
		if _, ok := recover().(*UnbalancedError); !ok {
			t.Fatal("Expected *UnbalancedError panic")
		}
	}()
	s.Top()
}

func TestGuardConvertsPanic(t *testing.T) {
	s := NewStack()
	err := Guard(s, func() error {
		s.Push(mgl64.Ident4())
		s.Pop()
		s.Pop() // one too many
		return nil
	})

	var ue *UnbalancedError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected UnbalancedError, got %v", err)
	}
	if s.Depth() != 0 {
		t.Errorf("Expected stack reset after abort, got depth %d", s.Depth())
	}
}

func TestGuardReportsLeftovers(t *testing.T) {
	s := NewStack()
	err := Guard(s, func() error {
		s.Push(mgl64.Ident4())
		return nil
	})

	var ue *UnbalancedError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected UnbalancedError, got %v", err)
	}
	if ue.Depth != 1 {
		t.Errorf("Expected depth 1 reported, got %d", ue.Depth)
	}
}

func TestGuardResetsBeforePass(t *testing.T) {
	s := NewStack()
	s.Push(mgl64.Ident4())
	s.Push(mgl64.Ident4())

	err := Guard(s, func() error {
		if s.Depth() != 0 {
			t.Errorf("Expected empty stack at pass start, got %d", s.Depth())
		}
		return nil
	})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestGuardPassesThroughErrors(t *testing.T) {
	s := NewStack()
	sentinel := errors.New("boom")
	err := Guard(s, func() error {
		s.Push(mgl64.Ident4())
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("Expected sentinel error, got %v", err)
	}
}

func TestGuardRepanicsForeignPanics(t *testing.T) {
	s := NewStack()
	defer func() {
		if r := recover(); r != "other" {
			t.Errorf("Expected foreign panic to propagate, got %v", r)
		}
	}()
	_ = Guard(s, func() error { panic("other") })
}
