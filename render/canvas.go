package render

import (
	"math"
)

// Canvas is a depth-tested raster target
// Depth follows normalized device z: smaller is nearer
type Canvas interface {
	Size() (width, height int)
	// PixelAspect is the physical height of one pixel over its width
	PixelAspect() float64
	Clear(bg RGB)
	// Plot writes c at (x, y) if depth passes; reports whether it was written
	Plot(x, y int, depth float64, c RGB) bool
}

// ViewAspect returns the physical width over height of c, the aspect to
// build a projection with so spheres come out round
func ViewAspect(c Canvas) float64 {
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return 1
	}
	return float64(w) / (float64(h) * c.PixelAspect())
}

// depthBuffer is a per-pixel nearest-depth store
type depthBuffer []float64

func (d depthBuffer) reset() {
	if len(d) == 0 {
		return
	}
	d[0] = math.Inf(1)
	// Exponential copy
	for filled := 1; filled < len(d); filled *= 2 {
		copy(d[filled:], d[:filled])
	}
}

// test records depth at idx if nearer than the stored value
func (d depthBuffer) test(idx int, depth float64) bool {
	if depth >= d[idx] {
		return false
	}
	d[idx] = depth
	return true
}
