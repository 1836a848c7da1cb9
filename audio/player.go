// Package audio plays a short chime whenever a body completes an orbit.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/orrery/orbit"
	"github.com/lixenwraith/orrery/scene"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Player turns frame completions into chimes
// Safe without an audio device: an uninitialized player counts but stays silent
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	pitches     map[string]float64
	volume      float64
	initialized bool
	chimes      int
}

// NewPlayer assigns one pitch per body in catalog draw order
func NewPlayer(c *orbit.Catalog, volume float64) *Player {
	p := &Player{
		mixer:   &beep.Mixer{},
		pitches: make(map[string]float64, c.Len()),
		volume:  volume,
	}
	for i, b := range c.Bodies() {
		p.pitches[b.Name] = Pitch(i)
	}
	return p
}

// Initialize sets up the speaker, a second call is a no-op
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences and detaches the mixer
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Consume plays one chime per completing body when the frame has sound on
func (p *Player) Consume(f scene.Frame) {
	if !f.Sound || len(f.Completed) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, c := range f.Completed {
		freq, ok := p.pitches[c.Body]
		if !ok {
			continue
		}
		p.chimes++
		if !p.initialized {
			continue
		}
		s := NewChime(freq, c.Count, p.volume, sampleRate)
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
}

// Chimes returns the number of chimes requested so far
func (p *Player) Chimes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chimes
}
