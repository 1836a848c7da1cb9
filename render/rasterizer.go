// Package render rasterizes composed frames onto depth-tested canvases: bodies
// as lit discs, orbit rings as line loops.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/mesh"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/vmath"
)

// Rasterizer draws frames; stateless apart from the ring tessellation
type Rasterizer struct {
	circle     []vmath.Vec3F
	Background RGB
}

// NewRasterizer uses the default ring tessellation
func NewRasterizer() *Rasterizer {
	return &Rasterizer{circle: mesh.Circle(mesh.DefaultCircleStep)}
}

// Draw clears c and rasterizes every drawable in f
func (r *Rasterizer) Draw(c Canvas, f *scene.Frame) {
	c.Clear(r.Background)
	eye := eyeBasis(f.Projection)

	for i := range f.Drawables {
		d := &f.Drawables[i]
		m := f.Projection.Mul4(d.World)
		switch d.Kind {
		case scene.KindRing:
			r.drawRing(c, m, FromColor(d.Color))
		case scene.KindSphere:
			r.drawSphere(c, m, d, f, eye)
		}
	}
}

// toPixel maps normalized device coordinates to canvas pixels, y down
func toPixel(c Canvas, p vmath.Vec3F) (x, y float64) {
	w, h := c.Size()
	return (p.X + 1) / 2 * float64(w), (1 - p.Y) / 2 * float64(h)
}

// drawRing rasterizes the unit circle under m as a closed polyline
func (r *Rasterizer) drawRing(c Canvas, m mgl64.Mat4, col RGB) {
	n := len(r.circle)
	if n < 2 {
		return
	}
	prev := vmath.TransformPoint(m, r.circle[n-1])
	for _, v := range r.circle {
		cur := vmath.TransformPoint(m, v)
		drawLine(c, prev, cur, col)
		prev = cur
	}
}

// drawLine steps from a to b one pixel at a time, interpolating depth
func drawLine(c Canvas, a, b vmath.Vec3F, col RGB) {
	ax, ay := toPixel(c, a)
	bx, by := toPixel(c, b)

	steps := int(math.Ceil(math.Max(math.Abs(bx-ax), math.Abs(by-ay))))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := ax + (bx-ax)*t
		y := ay + (by-ay)*t
		z := a.Z + (b.Z-a.Z)*t
		c.Plot(int(math.Floor(x)), int(math.Floor(y)), z, col)
	}
}

// drawSphere fills the projected outline of the unit sphere under m
// The projected image of a sphere under the scene's similarity transforms is
// an axis-aligned ellipse with half-axes given by the row lengths of m
func (r *Rasterizer) drawSphere(c Canvas, m mgl64.Mat4, d *scene.Drawable, f *scene.Frame, eye mgl64.Mat3) {
	w, h := c.Size()
	center := vmath.TransformPoint(m, vmath.Vec3F{})
	cx, cy := toPixel(c, center)

	rx := vmath.RowLength(m, 0) * float64(w) / 2
	ry := vmath.RowLength(m, 1) * float64(h) / 2
	rz := vmath.RowLength(m, 2)

	base := d.Color
	lit := f.Lighting && !d.Emissive

	// Sub-pixel bodies still occupy their center pixel
	if rx < 0.5 || ry < 0.5 {
		col := base
		if lit {
			col = Shade(base, vmath.Vec3F{Z: 1}, f.Light)
		}
		c.Plot(int(math.Floor(cx)), int(math.Floor(cy)), center.Z-rz, FromColor(col))
		return
	}

	minX := max(0, int(math.Floor(cx-rx)))
	maxX := min(w-1, int(math.Ceil(cx+rx)))
	minY := max(0, int(math.Floor(cy-ry)))
	maxY := min(h-1, int(math.Ceil(cy+ry)))

	for py := minY; py <= maxY; py++ {
		ny := -(float64(py) + 0.5 - cy) / ry
		for px := minX; px <= maxX; px++ {
			nx := (float64(px) + 0.5 - cx) / rx
			distSq := nx*nx + ny*ny
			if distSq > 1 {
				continue
			}
			nz := math.Sqrt(1 - distSq)

			col := base
			if lit {
				n := eyeNormal(eye, nx, ny, nz)
				col = Shade(base, n, f.Light)
			}
			c.Plot(px, py, center.Z-nz*rz, FromColor(col))
		}
	}
}

// eyeBasis recovers the rotation part of an orthographic projection by
// normalizing the rows of its upper 3x3
func eyeBasis(p mgl64.Mat4) mgl64.Mat3 {
	m := p.Mat3()
	for row := 0; row < 3; row++ {
		l := math.Sqrt(m.At(row, 0)*m.At(row, 0) + m.At(row, 1)*m.At(row, 1) + m.At(row, 2)*m.At(row, 2))
		if l == 0 {
			continue
		}
		for col := 0; col < 3; col++ {
			m.Set(row, col, m.At(row, col)/l)
		}
	}
	return m
}

// eyeNormal maps a screen-facing unit normal back into eye space
// Device z grows away from the viewer, so the facing component is negated
func eyeNormal(eye mgl64.Mat3, nx, ny, nz float64) vmath.Vec3F {
	v := eye.Transpose().Mul3x1(mgl64.Vec3{nx, ny, -nz})
	return vmath.V3FNormalize(vmath.Vec3F{X: v[0], Y: v[1], Z: v[2]})
}
