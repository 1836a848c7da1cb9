// Package trackball turns pointer drags into accumulated camera orientation.
//
// The controller is a two-state machine. A press inside the viewport starts a
// drag; each move while dragging projects the previous and current pointer
// positions onto a virtual sphere and composes the rotation between them onto
// the accumulated orientation. A release ends the drag without rotating.
package trackball

import (
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/vmath"
)

// State is the controller's drag state
type State uint8

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Controller accumulates orientation from pointer events
// Not safe for concurrent use; owned by the tick loop
type Controller struct {
	state        State
	lastX, lastY float64 // Last pointer position in viewport pixels
	orientation  vmath.Quat
}

// New returns an idle controller with identity orientation
func New() *Controller {
	return &Controller{orientation: vmath.QuatIdentity()}
}

// Orientation returns the accumulated camera orientation
func (c *Controller) Orientation() vmath.Quat {
	return c.orientation
}

// SetOrientation replaces the accumulated orientation, renormalized
func (c *Controller) SetOrientation(q vmath.Quat) {
	c.orientation = q.Normalize()
}

// State returns the current drag state
func (c *Controller) State() State {
	return c.state
}

// Reset returns to identity orientation and ends any drag
func (c *Controller) Reset() {
	c.state = StateIdle
	c.orientation = vmath.QuatIdentity()
}

// Normalize maps viewport pixels to [-1, 1] with y up
func Normalize(px, py, width, height float64) (x, y float64) {
	return (2*px - width) / width, (height - 2*py) / height
}

// Handle applies a single pointer event
// Returns the incremental rotation composed this event and whether one was applied
// Release ends a drag whatever viewport it reports
func (c *Controller) Handle(ev input.Event) (vmath.Quat, bool) {
	switch ev.Kind {
	case input.EventPointerDown:
		if !validViewport(ev) || !inViewport(ev) {
			return vmath.QuatIdentity(), false
		}
		c.state = StateDragging
		c.lastX, c.lastY = ev.X, ev.Y

	case input.EventPointerMove:
		if c.state != StateDragging || !validViewport(ev) {
			return vmath.QuatIdentity(), false
		}
		return c.drag(ev)

	case input.EventPointerUp:
		c.state = StateIdle
	}

	return vmath.QuatIdentity(), false
}

// Apply handles events in order and returns the number of rotations composed
func (c *Controller) Apply(events []input.Event) int {
	applied := 0
	for _, ev := range events {
		if !ev.IsPointer() {
			continue
		}
		if _, ok := c.Handle(ev); ok {
			applied++
		}
	}
	return applied
}

func (c *Controller) drag(ev input.Event) (vmath.Quat, bool) {
	p1x, p1y := Normalize(c.lastX, c.lastY, ev.Width, ev.Height)
	p2x, p2y := Normalize(ev.X, ev.Y, ev.Width, ev.Height)

	// Zero-length chord has no rotation axis
	if p1x == p2x && p1y == p2y {
		return vmath.QuatIdentity(), false
	}

	inc := vmath.TrackballQuat(p1x, p1y, p2x, p2y)
	c.orientation = vmath.Compose(inc, c.orientation)
	c.lastX, c.lastY = ev.X, ev.Y
	return inc, true
}

func validViewport(ev input.Event) bool {
	return ev.Width > 0 && ev.Height > 0
}

func inViewport(ev input.Event) bool {
	return ev.X >= 0 && ev.X <= ev.Width && ev.Y >= 0 && ev.Y <= ev.Height
}
