// Package engine runs the single-consumer tick: drain input, advance the clock,
// compose the frame and hand it to sinks.
package engine

import (
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/clock"
	"github.com/lixenwraith/orrery/core"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/metrics"
	"github.com/lixenwraith/orrery/scene"
)

// Sink receives every composed frame on the tick goroutine
// Implementations that hand frames to other goroutines must not mutate them
type Sink interface {
	Consume(f scene.Frame)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(f scene.Frame)

func (fn SinkFunc) Consume(f scene.Frame) { fn(f) }

// Options wires an engine; State, Composer and Queue are required
type Options struct {
	State        *scene.State
	Composer     *scene.Composer
	Queue        *input.Queue
	Time         clock.TimeProvider
	Metrics      *metrics.Collector
	Logger       *log.Logger
	TickInterval time.Duration
}

// Engine owns the scene state and is its only mutator
type Engine struct {
	state    *scene.State
	composer *scene.Composer
	queue    *input.Queue
	time     clock.TimeProvider
	metrics  *metrics.Collector
	logger   *log.Logger
	sinks    []Sink

	tickInterval time.Duration
	tickCount    atomic.Uint64
	inputDropped uint64 // Queue overwrites already reported

	// Revolution baseline per body, nil until the first frame
	revolutions map[string]int64

	mu     sync.RWMutex
	latest scene.Frame
	ready  bool

	// Projection requested by a frontend, applied at the next tick
	projMu      sync.Mutex
	pendingProj *mgl64.Mat4

	quit     chan struct{}
	quitOnce sync.Once

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// New creates an engine; zero options take defaults
func New(opts Options) *Engine {
	e := &Engine{
		state:        opts.State,
		composer:     opts.Composer,
		queue:        opts.Queue,
		time:         opts.Time,
		metrics:      opts.Metrics,
		logger:       opts.Logger,
		tickInterval: opts.TickInterval,
		quit:         make(chan struct{}),
		stopChan:     make(chan struct{}),
	}
	if e.queue == nil {
		e.queue = input.NewQueue()
	}
	if e.time == nil {
		e.time = clock.NewMonotonicTimeProvider()
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard, "", 0)
	}
	if e.tickInterval <= 0 {
		e.tickInterval = e.state.Clock.TickInterval()
	}
	return e
}

// AddSink registers a frame consumer, must be called before Start()
func (e *Engine) AddSink(s Sink) {
	e.sinks = append(e.sinks, s)
}

// Queue returns the input queue producers push to
func (e *Engine) Queue() *input.Queue {
	return e.queue
}

// State returns the engine-owned state; only safe to touch from the tick goroutine
func (e *Engine) State() *scene.State {
	return e.state
}

// TickInterval returns the loop period used by Start
func (e *Engine) TickInterval() time.Duration {
	return e.tickInterval
}

// Ticks returns the number of ticks processed
func (e *Engine) Ticks() uint64 {
	return e.tickCount.Load()
}

// Latest returns the most recent frame, safe from any goroutine
func (e *Engine) Latest() (scene.Frame, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.latest, e.ready
}

// Done is closed once a quit command has been processed
func (e *Engine) Done() <-chan struct{} {
	return e.quit
}

// SetProjection schedules a view projection change, safe from any goroutine
func (e *Engine) SetProjection(p mgl64.Mat4) {
	e.projMu.Lock()
	e.pendingProj = &p
	e.projMu.Unlock()
}

// Tick runs one full cycle and returns the composed frame
// Returns false when the frame was dropped
func (e *Engine) Tick() (scene.Frame, bool) {
	e.tickCount.Add(1)

	e.projMu.Lock()
	if e.pendingProj != nil {
		e.composer.SetProjection(*e.pendingProj)
		e.pendingProj = nil
	}
	e.projMu.Unlock()

	rotations := e.handleInput(e.queue.Drain())
	e.metrics.RecordDrag(rotations)
	if n := e.queue.Overwritten(); n > e.inputDropped {
		e.metrics.RecordInputDropped(n - e.inputDropped)
		e.logger.Printf("[ENGINE] input queue overwrote %d events", n-e.inputDropped)
		e.inputDropped = n
	}

	advanced := e.state.Clock.Tick(e.time.Now())
	e.metrics.RecordTick(advanced, e.state.Clock.Day(), e.state.Clock.DaysPerFrame())

	start := time.Now()
	frame, err := e.composer.Compose(e.state)
	e.metrics.RecordCompose(time.Since(start), err)
	if err != nil {
		e.logger.Printf("[ENGINE] frame dropped at day %v: %v", e.state.Clock.Day(), err)
		return scene.Frame{}, false
	}

	frame.Completed = e.completions(frame.Revolutions)
	for _, c := range frame.Completed {
		e.metrics.RecordRevolutions(c.Body, c.Count)
	}

	e.mu.Lock()
	e.latest = frame
	e.ready = true
	e.mu.Unlock()

	for _, s := range e.sinks {
		s.Consume(frame)
	}
	return frame, true
}

// handleInput routes pointer events to the trackball and commands to state
// Returns the number of rotations applied
func (e *Engine) handleInput(events []input.Event) int {
	rotations := 0
	for _, ev := range events {
		switch {
		case ev.IsPointer():
			if _, ok := e.state.Camera.Trackball.Handle(ev); ok {
				rotations++
			}
		case ev.Kind == input.EventCommand:
			if ev.Command == input.CommandQuit {
				e.quitOnce.Do(func() { close(e.quit) })
				continue
			}
			if !e.state.Apply(ev.Command) {
				e.logger.Printf("[ENGINE] ignored command %s", ev.Command)
			}
		}
	}
	return rotations
}

// completions diffs revolution counts against the previous frame
// The first frame and any backwards jump only reset the baseline
func (e *Engine) completions(revs map[string]int64) []scene.Completion {
	prev := e.revolutions
	e.revolutions = revs
	if prev == nil {
		return nil
	}

	var out []scene.Completion
	for _, b := range e.composer.Catalog().Bodies() {
		n, ok := revs[b.Name]
		if !ok {
			continue
		}
		if d := n - prev[b.Name]; d > 0 {
			out = append(out, scene.Completion{Body: b.Name, Count: d})
		}
	}
	return out
}

// Start begins the tick loop
func (e *Engine) Start() {
	if e.running.CompareAndSwap(false, true) {
		e.wg.Add(1)
		core.Go(e.loop)
	}
}

// Stop halts the tick loop and waits for the in-flight tick
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		if e.running.CompareAndSwap(true, false) {
			close(e.stopChan)
			e.wg.Wait()
		}
	})
}

func (e *Engine) loop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopChan:
			return
		case <-e.quit:
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}
