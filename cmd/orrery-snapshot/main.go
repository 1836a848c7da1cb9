// Command orrery-snapshot renders one frame of the orrery to an image file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/orrery/clock"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/snapshot"
	"github.com/lixenwraith/orrery/vmath"
)

type options struct {
	configPath  string
	day         float64
	width       int
	height      int
	supersample int
	format      string
	output      string
	yaw         float64
	pitch       float64
	noOrbits    bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("orrery-snapshot", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "Path to a TOML config file")
	fs.Float64Var(&o.day, "day", 0, "Simulation day to render")
	fs.IntVar(&o.width, "width", 800, "Image width")
	fs.IntVar(&o.height, "height", 600, "Image height")
	fs.IntVar(&o.supersample, "supersample", snapshot.DefaultSupersample, "Render scale before downsampling")
	fs.StringVar(&o.format, "format", "", "png, webp or tga; defaults to the output extension")
	fs.StringVar(&o.output, "o", "orrery.png", "Output path, - for stdout")
	fs.Float64Var(&o.yaw, "yaw", 0, "Camera rotation about Y in degrees")
	fs.Float64Var(&o.pitch, "pitch", 0, "Camera rotation about X in degrees")
	fs.BoolVar(&o.noOrbits, "no-orbits", false, "Hide orbit rings")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.day < 0 {
		return o, errors.New("day must not be negative")
	}
	if o.width <= 0 || o.height <= 0 {
		return o, errors.New("width and height must be positive")
	}
	return o, nil
}

func (o options) resolveFormat() (snapshot.Format, error) {
	if o.format != "" {
		return snapshot.ParseFormat(o.format)
	}
	if o.output == "-" {
		return snapshot.FormatPNG, nil
	}
	return snapshot.FormatFromPath(o.output)
}

// renderFrame composes the configured scene at o.day with a fixed camera
func renderFrame(cfg *config.Config, o options) (*scene.Frame, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	mult := cfg.Multipliers()

	clk := clock.New(cfg.ClockOptions())
	clk.SetDay(o.day)
	state := scene.NewState(cat, mult, clk)
	state.Flags = cfg.Flags()
	state.Light = cfg.Light()
	if o.noOrbits {
		state.Flags.ShowRings = false
	}

	yaw := vmath.QuatFromAxisAngle(vmath.Vec3F{Y: 1}, mgl64.DegToRad(o.yaw))
	pitch := vmath.QuatFromAxisAngle(vmath.Vec3F{X: 1}, mgl64.DegToRad(o.pitch))
	state.Camera.Trackball.SetOrientation(vmath.Compose(pitch, yaw))

	aspect := float64(o.width) / float64(o.height)
	f, err := scene.NewComposer(cat, mult, scene.Projection(aspect, cfg.View.Tilt)).Compose(state)
	if err != nil {
		return nil, errors.Wrap(err, "compose")
	}
	return &f, nil
}

func run(args []string, stdout io.Writer) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	format, err := o.resolveFormat()
	if err != nil {
		return err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	f, err := renderFrame(cfg, o)
	if err != nil {
		return err
	}
	img := snapshot.Render(f, snapshot.Options{
		Width:       o.width,
		Height:      o.height,
		Supersample: o.supersample,
		Background:  render.FromColor(cfg.BackgroundColor()),
	})

	if o.output == "-" {
		return snapshot.Encode(stdout, img, format)
	}
	out, err := os.Create(o.output)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := snapshot.Encode(out, img, format); err != nil {
		out.Close()
		return err
	}
	return errors.Wrap(out.Close(), "close output")
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "orrery-snapshot: %v\n", err)
		os.Exit(1)
	}
}
