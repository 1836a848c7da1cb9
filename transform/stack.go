// Package transform holds the per-frame stack of composed coordinate frames.
//
// Entries are absolute matrices: Push stores its argument as given, so callers
// multiply by Top themselves when nesting. Reading Top always yields a
// ready-to-use world transform.
package transform

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// UnbalancedError reports a pop or peek against an empty stack, or a frame
// pass that left entries behind
type UnbalancedError struct {
	Op    string
	Depth int
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("transform stack unbalanced: %s at depth %d", e.Op, e.Depth)
}

// Stack is an ordered sequence of composed frames, top at the end
// Not safe for concurrent use; lives inside a single frame pass
type Stack struct {
	frames []mgl64.Mat4
}

// NewStack returns an empty stack with room for typical nesting depth
func NewStack() *Stack {
	return &Stack{frames: make([]mgl64.Mat4, 0, 8)}
}

// Push stores m as the new top
func (s *Stack) Push(m mgl64.Mat4) {
	s.frames = append(s.frames, m)
}

// Pop removes and returns the top; panics with *UnbalancedError when empty
func (s *Stack) Pop() mgl64.Mat4 {
	n := len(s.frames)
	if n == 0 {
		panic(&UnbalancedError{Op: "pop", Depth: 0})
	}
	m := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return m
}

// Top returns the current frame; panics with *UnbalancedError when empty
func (s *Stack) Top() mgl64.Mat4 {
	n := len(s.frames)
	if n == 0 {
		panic(&UnbalancedError{Op: "top", Depth: 0})
	}
	return s.frames[n-1]
}

// Depth returns the number of frames on the stack
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Reset empties the stack, keeping capacity
func (s *Stack) Reset() {
	s.frames = s.frames[:0]
}

// Guard resets s, runs pass, and converts an unbalanced-stack panic into an error
// A pass that returns with frames still pushed is also reported
// Panics of any other type propagate
func Guard(s *Stack, pass func() error) (err error) {
	s.Reset()

	defer func() {
		if r := recover(); r != nil {
			ue, ok := r.(*UnbalancedError)
			if !ok {
				panic(r)
			}
			s.Reset()
			err = errors.Wrap(ue, "frame pass aborted")
		}
	}()

	if err := pass(); err != nil {
		s.Reset()
		return err
	}

	if d := s.Depth(); d != 0 {
		s.Reset()
		return errors.WithStack(&UnbalancedError{Op: "end of pass", Depth: d})
	}
	return nil
}
