// Package scene turns simulation state into a frame of placed drawables.
//
// Each body's frame is composed onto its parent's world frame, passed down
// explicitly; the transform stack records the nesting and must drain back to
// empty by the end of the pass.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/orbit"
	"github.com/lixenwraith/orrery/transform"
	"github.com/lixenwraith/orrery/vmath"
)

// RingColor is the color of orbit rings
var RingColor = colorful.Color{R: 1, G: 1, B: 0}

// Composer builds frames for one catalog; not safe for concurrent use
type Composer struct {
	catalog    *orbit.Catalog
	mult       orbit.Multipliers
	projection mgl64.Mat4
	stack      *transform.Stack
	seq        uint64

	// Per-pass scratch, indexed by catalog position
	day       float64
	common    mgl64.Mat4
	showRings bool
	rings     []Drawable
	bodies    []Drawable
}

// NewComposer creates a composer with a fixed view projection
func NewComposer(c *orbit.Catalog, m orbit.Multipliers, projection mgl64.Mat4) *Composer {
	return &Composer{
		catalog:    c,
		mult:       m,
		projection: projection,
		stack:      transform.NewStack(),
	}
}

// SetProjection replaces the view projection, e.g. on viewport resize
func (c *Composer) SetProjection(p mgl64.Mat4) {
	c.projection = p
}

// Catalog returns the composed catalog
func (c *Composer) Catalog() *orbit.Catalog {
	return c.catalog
}

// Compose builds the frame for the current state
// An unbalanced transform pass yields an error and no frame
func (c *Composer) Compose(s *State) (Frame, error) {
	c.day = s.Clock.Day()

	rot := s.Camera.Orientation().Mat4()
	gs := s.Camera.GlobalScale
	c.common = vmath.Scale(gs).Mul4(vmath.Ortho(-1, 1, -1, 1, -1, 1)).Mul4(rot)

	c.showRings = s.Flags.ShowRings
	c.rings = make([]Drawable, c.catalog.Len())
	c.bodies = make([]Drawable, c.catalog.Len())

	err := transform.Guard(c.stack, func() error {
		c.drawBody(c.catalog.Root(), mgl64.Ident4())
		return nil
	})
	if err != nil {
		return Frame{}, err
	}

	var rings []Drawable
	if c.showRings {
		for _, r := range c.rings {
			if r.Kind == KindRing {
				rings = append(rings, r)
			}
		}
	}

	c.seq++
	f := Frame{
		Seq:         c.seq,
		Day:         c.day,
		DayLabel:    FormatDay(c.day),
		ShowDay:     s.Flags.ShowDay,
		Animating:   s.Clock.Animating(),
		DPF:         s.Clock.DaysPerFrame(),
		Orientation: s.Camera.Orientation(),
		Projection:  c.projection,
		Lighting:    s.Flags.Lighting,
		Sound:       s.Flags.Sound,
		Light:       s.Light,
		Drawables:   append(rings, c.bodies...),
		Revolutions: make(map[string]int64, c.catalog.Len()),
	}
	for _, b := range c.catalog.Bodies() {
		if !b.IsRoot() {
			f.Revolutions[b.Name] = orbit.Revolutions(b, c.day)
		}
	}
	return f, nil
}

// drawBody places b in parentWorld and recurses into its children
// Returns b's own world frame; spin stays on the drawable
func (c *Composer) drawBody(b orbit.Body, parentWorld mgl64.Mat4) mgl64.Mat4 {
	own := parentWorld.Mul4(orbit.OrbitFrame(b, c.day))
	c.stack.Push(own)

	size := c.mult.Size(b)
	model := c.stack.Top().Mul4(orbit.SpinFrame(b, c.day)).Mul4(vmath.Scale(size))
	c.bodies[c.catalog.Index(b.Name)] = Drawable{
		Name:     b.Name,
		Kind:     KindSphere,
		World:    c.common.Mul4(model),
		Frame:    own,
		Size:     size,
		Color:    b.Color,
		Emissive: b.Emissive,
	}

	for _, child := range c.catalog.Children(b.Name) {
		if c.showRings {
			c.drawRing(child)
		}
		c.drawBody(child, own)
	}

	c.stack.Pop()
	return own
}

// drawRing places b's orbit ring in the frame on top of the stack, which is
// the parent's unspun frame while the parent's children are drawn
func (c *Composer) drawRing(b orbit.Body) {
	r := b.OrbitRadius()
	frame := c.stack.Top()
	c.rings[c.catalog.Index(b.Name)] = Drawable{
		Name:     b.Name,
		Kind:     KindRing,
		World:    c.common.Mul4(frame).Mul4(vmath.Scale(r)),
		Frame:    frame,
		Size:     r,
		Color:    RingColor,
		Emissive: true,
	}
}
