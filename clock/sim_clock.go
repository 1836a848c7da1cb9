// Package clock advances simulated days on a fixed frame budget, decoupled
// from how often the caller ticks.
package clock

import (
	"time"
)

const (
	DefaultFrameBudget  = time.Second / 30
	DefaultDaysPerFrame = 1.0
	DefaultMinDPF       = 1.0 / 1024
	DefaultMaxDPF       = 1024.0

	// TicksPerStep is the default number of caller ticks per frame budget
	TicksPerStep = 2
)

// Options configures a SimClock; zero fields take defaults
type Options struct {
	FrameBudget  time.Duration
	DaysPerFrame float64
	MinDPF       float64
	MaxDPF       float64
	Animate      bool
}

// SimClock is an accumulator-driven day counter
// Not safe for concurrent use; owned by the tick goroutine
type SimClock struct {
	day         float64
	dpf         float64
	minDPF      float64
	maxDPF      float64
	budget      time.Duration
	accumulator time.Duration
	animate     bool

	last    time.Time
	started bool
}

// New creates a clock at day 0
func New(opts Options) *SimClock {
	c := &SimClock{
		dpf:     opts.DaysPerFrame,
		minDPF:  opts.MinDPF,
		maxDPF:  opts.MaxDPF,
		budget:  opts.FrameBudget,
		animate: opts.Animate,
	}
	if c.budget <= 0 {
		c.budget = DefaultFrameBudget
	}
	if c.minDPF <= 0 {
		c.minDPF = DefaultMinDPF
	}
	if c.maxDPF <= 0 {
		c.maxDPF = DefaultMaxDPF
	}
	if c.maxDPF < c.minDPF {
		c.minDPF, c.maxDPF = c.maxDPF, c.minDPF
	}
	if c.dpf <= 0 {
		c.dpf = DefaultDaysPerFrame
	}
	c.dpf = c.clamp(c.dpf)
	return c
}

// Tick feeds a wall-clock reading and reports whether the day advanced
// The first reading only establishes the reference point
func (c *SimClock) Tick(now time.Time) bool {
	if !c.started {
		c.last = now
		c.started = true
		return false
	}
	dt := now.Sub(c.last)
	c.last = now
	return c.Advance(dt)
}

// Advance adds dt to the accumulator and reports whether the day advanced
// Reaching the budget resets the accumulator to zero; the day moves by one
// step only when animation is enabled, never more than once per call
func (c *SimClock) Advance(dt time.Duration) bool {
	if dt > 0 {
		c.accumulator += dt
	}
	if c.accumulator < c.budget {
		return false
	}
	c.accumulator = 0
	if !c.animate {
		return false
	}
	c.day += c.dpf
	return true
}

// Day returns the current simulated day
func (c *SimClock) Day() float64 {
	return c.day
}

// SetDay jumps to day, clamped at zero
func (c *SimClock) SetDay(day float64) {
	c.day = max(0, day)
}

// DaysPerFrame returns the current step size
func (c *SimClock) DaysPerFrame() float64 {
	return c.dpf
}

// Double doubles the step size up to the upper bound
func (c *SimClock) Double() float64 {
	c.dpf = c.clamp(c.dpf * 2)
	return c.dpf
}

// Halve halves the step size down to the lower bound
func (c *SimClock) Halve() float64 {
	c.dpf = c.clamp(c.dpf / 2)
	return c.dpf
}

// Animating reports whether ticks advance the day
func (c *SimClock) Animating() bool {
	return c.animate
}

// SetAnimate enables or disables day advancement
func (c *SimClock) SetAnimate(on bool) {
	c.animate = on
}

// ToggleAnimate flips animation and returns the new state
func (c *SimClock) ToggleAnimate() bool {
	c.animate = !c.animate
	return c.animate
}

// FrameBudget returns the wall-clock time per simulation step
func (c *SimClock) FrameBudget() time.Duration {
	return c.budget
}

// TickInterval returns the default caller tick period for this clock's budget
func (c *SimClock) TickInterval() time.Duration {
	return TickIntervalFor(c.budget)
}

// TickIntervalFor splits budget into TicksPerStep ticks, rounded up so that
// TicksPerStep steady ticks always reach the budget
// Ticking at exactly the budget loses a step whenever a tick arrives early
func TickIntervalFor(budget time.Duration) time.Duration {
	return (budget + TicksPerStep - 1) / TicksPerStep
}

// Accumulated returns time gathered toward the next step
func (c *SimClock) Accumulated() time.Duration {
	return c.accumulator
}

func (c *SimClock) clamp(v float64) float64 {
	return min(c.maxDPF, max(c.minDPF, v))
}
