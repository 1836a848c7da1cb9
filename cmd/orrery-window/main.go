// Command orrery-window shows the orrery in a desktop window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/orrery/app"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/scene"
)

var (
	configPath = flag.String("config", "", "Path to a TOML config file")
	serveAddr  = flag.String("serve", "", "Stream frames over websocket on this address")
	audioFlag  = flag.Bool("audio", false, "Chime when bodies complete an orbit")
	width      = flag.Int("width", 800, "Initial window width")
	height     = flag.Int("height", 600, "Initial window height")
)

// game drives the engine from ebiten's update loop instead of its own ticker
type game struct {
	app      *app.App
	bindings input.Bindings
	raster   *render.Rasterizer

	canvas  *render.ImageCanvas
	surface *ebiten.Image
	frame   scene.Frame
	hasData bool

	dragging bool
	chars    []rune
}

func (g *game) Update() error {
	select {
	case <-g.app.Engine.Done():
		return ebiten.Termination
	default:
	}

	q := g.app.Engine.Queue()
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		q.Push(input.CommandEvent(input.CommandQuit))
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		if cmd, ok := g.bindings.Lookup(r); ok {
			q.Push(input.CommandEvent(cmd))
		}
	}

	if g.canvas != nil {
		w, h := g.canvas.Size()
		cx, cy := ebiten.CursorPosition()
		x, y, fw, fh := float64(cx), float64(cy), float64(w), float64(h)
		switch {
		case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
			g.dragging = true
			q.Push(input.PointerDown(x, y, fw, fh))
		case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.dragging:
			g.dragging = false
			q.Push(input.PointerUp(x, y, fw, fh))
		case g.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			q.Push(input.PointerMove(x, y, fw, fh))
		}
	}

	if f, ok := g.app.Engine.Tick(); ok {
		g.frame, g.hasData = f, true
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if !g.hasData || g.canvas == nil {
		return
	}
	g.raster.Draw(g.canvas, &g.frame)
	g.surface.WritePixels(g.canvas.Image().Pix)
	screen.DrawImage(g.surface, nil)

	if g.frame.ShowDay {
		ebitenutil.DebugPrintAt(screen, g.frame.DayLabel, 8, 8)
	}
	status := fmt.Sprintf("%g d/frame", g.frame.DPF)
	if !g.frame.Animating {
		status += "  paused"
	}
	ebitenutil.DebugPrintAt(screen, status, 8, screen.Bounds().Dy()-20)
}

// Layout renders at the window's logical size and refits the projection on resize
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(1, outsideWidth), max(1, outsideHeight)
	if g.canvas != nil {
		if cw, ch := g.canvas.Size(); cw == w && ch == h {
			return w, h
		}
	}

	g.canvas = render.NewImageCanvas(w, h)
	if g.surface != nil {
		g.surface.Deallocate()
	}
	g.surface = ebiten.NewImage(w, h)
	g.app.Engine.SetProjection(g.app.Projection(render.ViewAspect(g.canvas)))
	return w, h
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "orrery-window: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *serveAddr != "" {
		cfg.Stream.Addr = *serveAddr
	}
	if *audioFlag {
		cfg.Audio.Enabled = true
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}

	a, err := app.New(cfg, float64(*width)/float64(*height), log.Default())
	if err != nil {
		return err
	}
	if err := a.Start(); err != nil {
		return err
	}
	defer a.Stop()

	r := render.NewRasterizer()
	r.Background = render.FromColor(cfg.BackgroundColor())

	ebiten.SetWindowTitle("Orrery")
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(cfg.TickRate() + 0.5))

	g := &game{app: a, bindings: bindings, raster: r}
	return ebiten.RunGame(g)
}
