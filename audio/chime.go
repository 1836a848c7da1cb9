package audio

import (
	"time"

	"github.com/gopxl/beep"
)

const (
	chimeDuration = 450 * time.Millisecond
	chimeAttack   = 5 * time.Millisecond
	chimeRelease  = 380 * time.Millisecond
	chimeGap      = 90 * time.Millisecond

	// Upper bound on repeats per chime
	maxRepeats = 3
)

// pentatonic is C major pentatonic from C5
var pentatonic = []float64{523.25, 587.33, 659.25, 783.99, 880.00}

// Pitch returns the chime frequency for the body at draw-order index i
// Indices cycle through the pentatonic scale, rising an octave per lap
func Pitch(i int) float64 {
	if i < 0 {
		i = 0
	}
	f := pentatonic[i%len(pentatonic)]
	for lap := i / len(pentatonic); lap > 0; lap-- {
		f *= 2
	}
	return f
}

// NewChime builds a bell tone at freq repeated count times
func NewChime(freq float64, count int64, volume float64, rate beep.SampleRate) beep.Streamer {
	n := int(min(max(count, 1), maxRepeats))

	parts := make([]beep.Streamer, 0, 2*n)
	for i := 0; i < n; i++ {
		if i > 0 {
			parts = append(parts, beep.Silence(rate.N(chimeGap)))
		}
		parts = append(parts, bell(freq, rate))
	}
	return newVolume(beep.Seq(parts...), volume)
}

// bell mixes a sine fundamental with a quieter octave overtone
func bell(freq float64, rate beep.SampleRate) beep.Streamer {
	fund := NewEnvelope(NewOscillator(freq, chimeDuration, WaveSine, rate),
		chimeDuration, chimeAttack, chimeRelease, rate)
	over := NewEnvelope(NewOscillator(freq*2, chimeDuration, WaveTriangle, rate),
		chimeDuration, chimeAttack, chimeRelease/2, rate)
	return beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.2))
}
