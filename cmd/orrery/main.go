package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/app"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/core"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/scene"
)

var (
	configPath    = flag.String("config", "", "Path to a TOML config file")
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/orrery.log")
	serveAddr     = flag.String("serve", "", "Stream frames over websocket on this address")
	audioFlag     = flag.Bool("audio", false, "Chime when bodies complete an orbit")
	colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "orrery: %v\n", err)
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

	// tcell reads color capability from the environment at screen creation
	switch *colorModeFlag {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	core.SetCrashScreen(screen)
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	w, h := screen.Size()
	ui := newTerminalUI(w, h, bindings, nil, cfg.View.Tilt, render.FromColor(cfg.BackgroundColor()))

	a, err := app.New(cfg, render.ViewAspect(ui.buf), log.Default())
	if err != nil {
		return err
	}
	ui.queue = a.Engine.Queue()
	if err := a.Start(); err != nil {
		return err
	}
	defer a.Stop()

	// Latest frame wins; the tick never waits on the terminal
	frames := make(chan scene.Frame, 1)
	a.Engine.AddSink(engine.SinkFunc(func(f scene.Frame) {
		select {
		case <-frames:
		default:
		}
		frames <- f
	}))

	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	a.Engine.Start()
	log.Printf("[MAIN] running, stream=%q audio=%v", cfg.Stream.Addr, cfg.Audio.Enabled)

	for {
		select {
		case <-a.Engine.Done():
			return nil
		case ev := <-events:
			if ui.handleEvent(ev) {
				a.Engine.SetProjection(ui.projection())
				screen.Sync()
			}
		case f := <-frames:
			ui.draw(screen, &f)
		}
	}
}
