package app

import (
	"net/http"
	"testing"

	"github.com/lixenwraith/orrery/config"
)

func TestNewAppliesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Sim.StartDay = 100
	cfg.View.ShowOrbits = false
	cfg.Sim.Animate = false

	a, err := New(cfg, 1.5, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Player != nil || a.Server != nil {
		t.Error("Expected no optional sinks by default")
	}

	f, ok := a.Engine.Tick()
	if !ok {
		t.Fatal("Expected frame")
	}
	if f.Day != 100 || f.DayLabel != "Day 100" {
		t.Errorf("Expected start day 100, got %v", f.Day)
	}
	if f.Animating {
		t.Error("Expected animation off from config")
	}
	for _, d := range f.Drawables {
		if d.Kind.String() == "ring" {
			t.Fatal("Expected rings hidden from config")
		}
	}
	if f.Projection != a.Projection(1.5) {
		t.Error("Expected projection built for the given aspect")
	}
	if got := a.Engine.TickInterval(); got != cfg.TickInterval() || got >= cfg.FrameBudget() {
		t.Errorf("Expected engine to tick faster than the %v budget, got %v", cfg.FrameBudget(), got)
	}
}

func TestNewRejectsBadCatalog(t *testing.T) {
	cfg := config.Default()
	cfg.Bodies = nil
	if _, err := New(cfg, 1, nil); err == nil {
		t.Error("Expected error for empty catalog")
	}
}

func TestStreamServerLifecycle(t *testing.T) {
	cfg := config.Default()
	cfg.Stream.Addr = "127.0.0.1:0"

	a, err := New(cfg, 1, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer a.Stop()

	a.Engine.Tick()

	resp, err := http.Get("http://" + a.Server.Addr().String() + "/frame")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 after a tick, got %d", resp.StatusCode)
	}

	resp, err = http.Get("http://" + a.Server.Addr().String() + "/metrics")
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected metrics 200, got %d", resp.StatusCode)
	}
}
