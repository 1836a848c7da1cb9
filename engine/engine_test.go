package engine

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/orrery/clock"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/metrics"
	"github.com/lixenwraith/orrery/orbit"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/vmath"
)

type testRig struct {
	engine *Engine
	mock   *clock.MockTimeProvider
	queue  *input.Queue
	logBuf *bytes.Buffer
	frames []scene.Frame
}

func newRig(t *testing.T, dpf float64) *testRig {
	t.Helper()
	cat := orbit.Default()
	mult := orbit.DefaultMultipliers()
	clk := clock.New(clock.Options{Animate: true, DaysPerFrame: dpf})

	r := &testRig{
		mock:   clock.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		queue:  input.NewQueue(),
		logBuf: &bytes.Buffer{},
	}
	r.engine = New(Options{
		State:    scene.NewState(cat, mult, clk),
		Composer: scene.NewComposer(cat, mult, scene.Projection(1, 30)),
		Queue:    r.queue,
		Time:     r.mock,
		Metrics:  metrics.New(),
		Logger:   log.New(r.logBuf, "", 0),
	})
	r.engine.AddSink(SinkFunc(func(f scene.Frame) { r.frames = append(r.frames, f) }))
	return r
}

// step advances mock time by one frame budget and ticks
func (r *testRig) step() scene.Frame {
	r.mock.Advance(clock.DefaultFrameBudget)
	f, _ := r.engine.Tick()
	return f
}

func TestTickAdvancesDay(t *testing.T) {
	r := newRig(t, 1)
	r.engine.Tick() // reference reading

	for i := 1; i <= 5; i++ {
		f := r.step()
		if f.Day != float64(i) {
			t.Fatalf("Tick %d: expected day %d, got %f", i, i, f.Day)
		}
	}
	if len(r.frames) != 6 {
		t.Errorf("Expected 6 frames delivered, got %d", len(r.frames))
	}
	if r.engine.Ticks() != 6 {
		t.Errorf("Expected 6 ticks, got %d", r.engine.Ticks())
	}
	latest, ok := r.engine.Latest()
	if !ok || latest.Day != 5 {
		t.Errorf("Expected latest frame at day 5, got %+v", latest.Day)
	}
}

func TestTickRoutesCommands(t *testing.T) {
	r := newRig(t, 1)
	r.engine.Tick()

	r.queue.Push(input.CommandEvent(input.CommandToggleAnimation))
	f := r.step()
	if f.Animating || f.Day != 0 {
		t.Errorf("Expected paused at day 0, got animating=%v day=%f", f.Animating, f.Day)
	}

	r.queue.Push(input.CommandEvent(input.CommandToggleAnimation))
	r.queue.Push(input.CommandEvent(input.CommandFaster))
	f = r.step()
	if f.DPF != 2 || f.Day != 2 {
		t.Errorf("Expected a 2-day step, got dpf=%f day=%f", f.DPF, f.Day)
	}

	r.queue.Push(input.CommandEvent(input.CommandToggleOrbits))
	f = r.step()
	if _, ok := f.Drawable("earth", scene.KindRing); ok {
		t.Error("Expected rings hidden")
	}
}

func TestTickRoutesPointerToTrackball(t *testing.T) {
	r := newRig(t, 1)
	r.queue.Push(input.PointerDown(50, 50, 100, 100))
	r.queue.Push(input.PointerMove(60, 50, 100, 100))
	r.queue.Push(input.PointerMove(70, 55, 100, 100))
	r.queue.Push(input.PointerUp(70, 55, 100, 100))

	f, ok := r.engine.Tick()
	if !ok {
		t.Fatal("Frame dropped")
	}
	if f.Orientation.SameRotation(vmath.QuatIdentity(), 1e-12) {
		t.Error("Expected camera rotated by drag")
	}
	if r.engine.State().Camera.Trackball.State().String() != "idle" {
		t.Error("Expected trackball idle after release")
	}
}

func TestQuitClosesDone(t *testing.T) {
	r := newRig(t, 1)
	r.queue.Push(input.CommandEvent(input.CommandQuit))
	r.queue.Push(input.CommandEvent(input.CommandQuit))
	r.engine.Tick()

	select {
	case <-r.engine.Done():
	default:
		t.Fatal("Expected Done closed after quit")
	}
}

func TestCompletionsReported(t *testing.T) {
	r := newRig(t, 26)
	r.engine.Tick()

	// Day 26: baseline, no moon orbit yet
	f := r.step()
	if len(f.Completed) != 0 {
		t.Fatalf("Expected no completions at day %f, got %+v", f.Day, f.Completed)
	}
	// Day 52: moon passes 27
	f = r.step()
	if len(f.Completed) != 1 || f.Completed[0].Body != "moon" || f.Completed[0].Count != 1 {
		t.Errorf("Expected one moon completion at day %f, got %+v", f.Day, f.Completed)
	}
}

func TestCompletionsSkipFirstFrame(t *testing.T) {
	r := newRig(t, 1)
	r.engine.State().Clock.SetDay(1000)
	f, _ := r.engine.Tick()
	if len(f.Completed) != 0 {
		t.Errorf("Expected baseline only on first frame, got %+v", f.Completed)
	}
}

func TestUnknownCommandLogged(t *testing.T) {
	r := newRig(t, 1)
	r.queue.Push(input.CommandEvent(input.CommandNone))
	r.engine.Tick()
	if !strings.Contains(r.logBuf.String(), "ignored command") {
		t.Errorf("Expected ignored command logged, got %q", r.logBuf.String())
	}
}

func TestStartStop(t *testing.T) {
	cat := orbit.Default()
	mult := orbit.DefaultMultipliers()
	got := make(chan scene.Frame, 64)

	e := New(Options{
		State:        scene.NewState(cat, mult, clock.New(clock.Options{Animate: true})),
		Composer:     scene.NewComposer(cat, mult, scene.Projection(1, 30)),
		TickInterval: time.Millisecond,
	})
	e.AddSink(SinkFunc(func(f scene.Frame) {
		select {
		case got <- f:
		default:
		}
	}))

	e.Start()
	e.Start()
	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("No frame within 2s")
	}
	e.Stop()
	e.Stop()

	n := e.Ticks()
	time.Sleep(10 * time.Millisecond)
	if e.Ticks() != n {
		t.Error("Ticks continued after Stop")
	}
}

func TestSetProjectionAppliedNextTick(t *testing.T) {
	r := newRig(t, 1)
	want := scene.Projection(2, 10)
	r.engine.SetProjection(want)

	f := r.step()
	if !vmath.MatApproxEqual(f.Projection, want, 1e-12) {
		t.Errorf("Expected scheduled projection in frame, got %v", f.Projection)
	}
}

func TestDefaultTickIntervalBelowBudget(t *testing.T) {
	r := newRig(t, 1)
	budget := r.engine.State().Clock.FrameBudget()
	if got := r.engine.TickInterval(); got >= budget || got*clock.TicksPerStep < budget {
		t.Errorf("Expected tick interval in [budget/%d, budget), got %v for %v", clock.TicksPerStep, got, budget)
	}
}

func TestJitteredTicksKeepStepRate(t *testing.T) {
	tests := []struct {
		name   string
		deltas []time.Duration
	}{
		{"near 60Hz", []time.Duration{16600 * time.Microsecond, 16800 * time.Microsecond}},
		{"default interval", []time.Duration{clock.TickIntervalFor(clock.DefaultFrameBudget)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, 1)
			r.engine.Tick() // reference reading

			const ticks = 600
			var elapsed time.Duration
			for i := 0; i < ticks; i++ {
				d := tt.deltas[i%len(tt.deltas)]
				elapsed += d
				r.mock.Advance(d)
				r.engine.Tick()
			}

			latest, _ := r.engine.Latest()
			want := float64(elapsed) / float64(clock.DefaultFrameBudget)
			if diff := want - latest.Day; diff < -1 || diff > 1 {
				t.Errorf("Expected %.1f steps over %v, got %.0f", want, elapsed, latest.Day)
			}
		})
	}
}

func TestInputOverflowReported(t *testing.T) {
	r := newRig(t, 1)
	for i := 0; i < input.QueueSize+10; i++ {
		r.queue.Push(input.PointerMove(float64(i), 0, 100, 100))
	}
	r.engine.Tick()
	if !strings.Contains(r.logBuf.String(), "overwrote 10 events") {
		t.Errorf("Expected overflow logged, got %q", r.logBuf.String())
	}

	// Already reported overwrites are not logged again
	r.logBuf.Reset()
	r.step()
	if strings.Contains(r.logBuf.String(), "overwrote") {
		t.Errorf("Unexpected repeat report %q", r.logBuf.String())
	}
}
