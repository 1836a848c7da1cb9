package render

import (
	"image"
	"image/color"
)

// ImageCanvas rasterizes into an RGBA image with square pixels
type ImageCanvas struct {
	img   *image.RGBA
	depth depthBuffer
}

// NewImageCanvas creates a canvas of the given size
func NewImageCanvas(width, height int) *ImageCanvas {
	width, height = max(1, width), max(1, height)
	c := &ImageCanvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make(depthBuffer, width*height),
	}
	c.Clear(RGBBlack)
	return c
}

func (c *ImageCanvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *ImageCanvas) PixelAspect() float64 {
	return 1
}

func (c *ImageCanvas) Clear(bg RGB) {
	px := c.img.Pix
	for i := 0; i+3 < len(px); i += 4 {
		px[i], px[i+1], px[i+2], px[i+3] = bg.R, bg.G, bg.B, 0xff
	}
	c.depth.reset()
}

func (c *ImageCanvas) Plot(x, y int, depth float64, col RGB) bool {
	w, h := c.Size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return false
	}
	if !c.depth.test(y*w+x, depth) {
		return false
	}
	c.img.SetRGBA(x, y, color.RGBA{R: col.R, G: col.G, B: col.B, A: 0xff})
	return true
}

// Image returns the backing image; valid until the next Clear
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}
