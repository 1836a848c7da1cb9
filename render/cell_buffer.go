package render

import (
	"github.com/gdamore/tcell/v2"
)

// cellAspect is the height of a terminal cell over its width
const cellAspect = 2.0

// CellBuffer rasterizes into terminal cells, one background color per cell,
// with a text layer drawn over the raster
type CellBuffer struct {
	width  int
	height int
	cells  []RGB
	depth  depthBuffer
	text   []rune
	textFg []RGB
}

// NewCellBuffer creates a buffer with the specified dimensions
func NewCellBuffer(width, height int) *CellBuffer {
	b := &CellBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *CellBuffer) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]RGB, size)
		b.depth = make(depthBuffer, size)
		b.text = make([]rune, size)
		b.textFg = make([]RGB, size)
	} else {
		b.cells = b.cells[:size]
		b.depth = b.depth[:size]
		b.text = b.text[:size]
		b.textFg = b.textFg[:size]
	}
	b.width = width
	b.height = height
	b.Clear(RGBBlack)
}

func (b *CellBuffer) Size() (int, int) {
	return b.width, b.height
}

func (b *CellBuffer) PixelAspect() float64 {
	return cellAspect
}

// Clear fills the raster with bg and drops all text
func (b *CellBuffer) Clear(bg RGB) {
	for i := range b.cells {
		b.cells[i] = bg
		b.text[i] = 0
	}
	b.depth.reset()
}

func (b *CellBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *CellBuffer) Plot(x, y int, depth float64, c RGB) bool {
	if !b.inBounds(x, y) {
		return false
	}
	idx := y*b.width + x
	if !b.depth.test(idx, depth) {
		return false
	}
	b.cells[idx] = c
	return true
}

// At returns the raster color at (x, y)
func (b *CellBuffer) At(x, y int) RGB {
	if !b.inBounds(x, y) {
		return RGBBlack
	}
	return b.cells[y*b.width+x]
}

// RuneAt returns the text rune at (x, y), 0 for none
func (b *CellBuffer) RuneAt(x, y int) rune {
	if !b.inBounds(x, y) {
		return 0
	}
	return b.text[y*b.width+x]
}

// DrawText writes s left to right from (x, y), clipped to the row
func (b *CellBuffer) DrawText(x, y int, s string, fg RGB) {
	for _, r := range s {
		if b.inBounds(x, y) {
			idx := y*b.width + x
			b.text[idx] = r
			b.textFg[idx] = fg
		}
		x++
	}
}

// Flush writes every cell to screen; the caller shows it
func (b *CellBuffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			style := tcell.StyleDefault.Background(RGBToTcell(b.cells[idx]))
			r := b.text[idx]
			if r == 0 {
				r = ' '
			} else {
				style = style.Foreground(RGBToTcell(b.textFg[idx]))
			}
			screen.SetContent(x, y, r, nil, style)
		}
	}
}
