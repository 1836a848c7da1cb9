package orbit

import (
	"github.com/pkg/errors"
)

// Catalog is an immutable, validated body hierarchy in draw order
// Parents always precede their children
type Catalog struct {
	bodies   []Body
	index    map[string]int
	children map[string][]int
}

// NewCatalog validates bodies and builds the hierarchy
// Requires exactly one root, unique names, positive radii and periods, and
// every parent listed before its children
func NewCatalog(bodies []Body) (*Catalog, error) {
	if len(bodies) == 0 {
		return nil, errors.New("catalog is empty")
	}

	c := &Catalog{
		bodies:   make([]Body, len(bodies)),
		index:    make(map[string]int, len(bodies)),
		children: make(map[string][]int),
	}
	copy(c.bodies, bodies)

	roots := 0
	for i, b := range c.bodies {
		if b.Name == "" {
			return nil, errors.Errorf("body %d: missing name", i)
		}
		if _, dup := c.index[b.Name]; dup {
			return nil, errors.Errorf("body %q: duplicate name", b.Name)
		}
		if b.RadiusKm <= 0 {
			return nil, errors.Errorf("body %q: radius must be positive", b.Name)
		}
		if b.OrbitMultiplier < 0 {
			return nil, errors.Errorf("body %q: orbit multiplier must not be negative", b.Name)
		}

		if b.IsRoot() {
			roots++
			if roots > 1 {
				return nil, errors.Errorf("body %q: second root body", b.Name)
			}
		} else {
			pi, ok := c.index[b.Parent]
			if !ok {
				return nil, errors.Errorf("body %q: parent %q must be listed before it", b.Name, b.Parent)
			}
			if b.PeriodDays <= 0 {
				return nil, errors.Errorf("body %q: period must be positive", b.Name)
			}
			if b.OrbitKm <= 0 {
				return nil, errors.Errorf("body %q: orbit radius must be positive", b.Name)
			}
			c.children[c.bodies[pi].Name] = append(c.children[c.bodies[pi].Name], i)
		}
		c.index[b.Name] = i
	}

	if roots == 0 {
		return nil, errors.New("catalog has no root body")
	}
	return c, nil
}

// Default returns the stock solar system catalog
func Default() *Catalog {
	c, err := NewCatalog(DefaultBodies())
	if err != nil {
		panic(err)
	}
	return c
}

// Bodies returns all bodies in draw order
func (c *Catalog) Bodies() []Body {
	out := make([]Body, len(c.bodies))
	copy(out, c.bodies)
	return out
}

// Len returns the body count
func (c *Catalog) Len() int {
	return len(c.bodies)
}

// Body looks up a body by name
func (c *Catalog) Body(name string) (Body, bool) {
	i, ok := c.index[name]
	if !ok {
		return Body{}, false
	}
	return c.bodies[i], true
}

// Index returns the draw-order position of name, or -1
func (c *Catalog) Index(name string) int {
	i, ok := c.index[name]
	if !ok {
		return -1
	}
	return i
}

// Root returns the body without a parent
func (c *Catalog) Root() Body {
	for _, b := range c.bodies {
		if b.IsRoot() {
			return b
		}
	}
	return Body{}
}

// Children returns direct children of name in draw order
func (c *Catalog) Children(name string) []Body {
	idx := c.children[name]
	out := make([]Body, len(idx))
	for i, j := range idx {
		out[i] = c.bodies[j]
	}
	return out
}

// Lineage returns the chain from the root down to name, inclusive
func (c *Catalog) Lineage(name string) []Body {
	var chain []Body
	for {
		b, ok := c.Body(name)
		if !ok {
			break
		}
		chain = append(chain, b)
		if b.IsRoot() {
			break
		}
		name = b.Parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
