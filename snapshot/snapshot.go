// Package snapshot renders a single frame offscreen and encodes it as PNG,
// WebP or TGA.
package snapshot

import (
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/scene"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatTGA  Format = "tga"
)

// DefaultSupersample is the render scale before downsampling
const DefaultSupersample = 2

// ParseFormat accepts a format name, case-insensitive
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatPNG, FormatWebP, FormatTGA:
		return f, nil
	}
	return "", errors.Errorf("unknown image format %q", s)
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.Errorf("%s: no file extension", path)
	}
	return ParseFormat(ext)
}

type Options struct {
	Width       int
	Height      int
	Supersample int // Zero takes DefaultSupersample, 1 disables
	Background  render.RGB
}

// Render rasterizes f at Supersample times the requested size and
// downsamples with Catmull-Rom
// f.Projection should be built for Width/Height
func Render(f *scene.Frame, opts Options) *image.RGBA {
	w, h := max(1, opts.Width), max(1, opts.Height)
	ss := opts.Supersample
	if ss <= 0 {
		ss = DefaultSupersample
	}

	canvas := render.NewImageCanvas(w*ss, h*ss)
	r := render.NewRasterizer()
	r.Background = opts.Background
	r.Draw(canvas, f)

	src := canvas.Image()
	if ss == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Encode writes img to w in format
func Encode(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatTGA:
		err = tga.Encode(w, img)
	default:
		return errors.Errorf("unknown image format %q", format)
	}
	return errors.Wrapf(err, "encode %s", format)
}
