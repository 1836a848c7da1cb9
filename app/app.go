// Package app wires configuration into a running engine with its optional
// sinks: the audio player and the websocket stream server.
package app

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/clock"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/metrics"
	"github.com/lixenwraith/orrery/orbit"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/stream"
)

const shutdownTimeout = 2 * time.Second

// App holds every long-lived component of one orrery process
type App struct {
	Config   *config.Config
	Catalog  *orbit.Catalog
	State    *scene.State
	Composer *scene.Composer
	Engine   *engine.Engine
	Metrics  *metrics.Collector
	Player   *audio.Player  // Nil when audio is disabled
	Hub      *stream.Hub    // Nil without a stream address
	Server   *stream.Server // Nil without a stream address

	logger *log.Logger
}

// New builds the component graph for a viewport of the given aspect
// Nothing runs until Start
func New(cfg *config.Config, aspect float64, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	cat, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	mult := cfg.Multipliers()

	clk := clock.New(cfg.ClockOptions())
	clk.SetDay(cfg.Sim.StartDay)

	state := scene.NewState(cat, mult, clk)
	state.Flags = cfg.Flags()
	state.Light = cfg.Light()

	a := &App{
		Config:   cfg,
		Catalog:  cat,
		State:    state,
		Composer: scene.NewComposer(cat, mult, scene.Projection(aspect, cfg.View.Tilt)),
		Metrics:  metrics.New(),
		logger:   logger,
	}
	a.Engine = engine.New(engine.Options{
		State:        state,
		Composer:     a.Composer,
		Metrics:      a.Metrics,
		Logger:       logger,
		TickInterval: cfg.TickInterval(),
	})

	if cfg.Audio.Enabled {
		a.Player = audio.NewPlayer(cat, cfg.Audio.Volume)
		a.Engine.AddSink(a.Player)
	}

	if cfg.Stream.Addr != "" {
		hub, err := stream.NewHub(stream.Options{
			Source:         a.Engine,
			Catalog:        cat,
			Metrics:        a.Metrics,
			Logger:         logger,
			MaxFPS:         cfg.Stream.MaxFPS,
			Burst:          cfg.Stream.Burst,
			AllowedOrigins: cfg.Stream.AllowedOrigins,
		})
		if err != nil {
			return nil, err
		}
		a.Hub = hub
		a.Server = stream.NewServer(cfg.Stream.Addr, hub)
		a.Engine.AddSink(hub)
	}
	return a, nil
}

// Projection returns the view projection for aspect with the configured tilt
func (a *App) Projection(aspect float64) mgl64.Mat4 {
	return scene.Projection(aspect, a.Config.View.Tilt)
}

// Start brings up audio and the stream server; the engine loop is left to the frontend
// Audio failure is logged and sound stays silent, a bind failure is returned
func (a *App) Start() error {
	if a.Player != nil {
		if err := a.Player.Initialize(); err != nil {
			a.logger.Printf("[APP] audio unavailable: %v", err)
		}
	}
	if a.Server != nil {
		if err := a.Server.Start(); err != nil {
			return errors.Wrap(err, "start stream")
		}
	}
	a.logger.Printf("[APP] started with %d bodies", a.Catalog.Len())
	return nil
}

// Stop halts the engine loop if running, then the server and audio
func (a *App) Stop() {
	a.Engine.Stop()
	if a.Server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.Server.Stop(ctx); err != nil {
			a.logger.Printf("[APP] stream shutdown: %v", err)
		}
		cancel()
	}
	if a.Player != nil {
		a.Player.Cleanup()
	}
	a.logger.Printf("[APP] stopped after %d ticks", a.Engine.Ticks())
}
