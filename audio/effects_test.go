package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// TestOscillatorSine verifies sine wave generation
func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440.0, 100*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok || n != 100 {
		t.Fatalf("Expected 100 samples ok, got %d %v", n, ok)
	}
	for i := 0; i < n; i++ {
		if math.Abs(samples[i][0]) > 1 || samples[i][0] != samples[i][1] {
			t.Errorf("Sample %d invalid: %v", i, samples[i])
		}
	}
	if samples[0][0] != 0 {
		t.Errorf("Expected sine to start at 0, got %f", samples[0][0])
	}
	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

// TestOscillatorShapes verifies square and triangle ranges
func TestOscillatorShapes(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSquare, WaveTriangle} {
		osc := NewOscillator(220.0, 50*time.Millisecond, wave, rate)
		samples := make([][2]float64, 500)
		n, _ := osc.Stream(samples)

		hasPos, hasNeg := false, false
		for i := 0; i < n; i++ {
			v := samples[i][0]
			if v < -1 || v > 1 {
				t.Fatalf("Wave %d sample %d out of range: %f", wave, i, v)
			}
			hasPos = hasPos || v > 0.5
			hasNeg = hasNeg || v < -0.5
		}
		if !hasPos || !hasNeg {
			t.Errorf("Wave %d did not swing both ways", wave)
		}
	}
}

// TestOscillatorDuration verifies oscillator respects duration
func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 10 * time.Millisecond
	expected := rate.N(duration)

	osc := NewOscillator(440.0, duration, WaveSine, rate)
	n, _ := osc.Stream(make([][2]float64, expected*2))
	if n != expected {
		t.Errorf("Expected %d samples, got %d", expected, n)
	}

	n2, ok2 := osc.Stream(make([][2]float64, 10))
	if ok2 || n2 != 0 {
		t.Errorf("Expected drained oscillator, got n=%d ok=%v", n2, ok2)
	}
}

// TestEnvelopeShape verifies attack ramps up and release fades out
func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	duration := 100 * time.Millisecond

	// Square wave at 0 Hz is a constant 1
	env := NewEnvelope(NewOscillator(0, duration, WaveSquare, rate), duration, 20*time.Millisecond, 20*time.Millisecond, rate)
	samples := make([][2]float64, rate.N(duration))
	n, _ := env.Stream(samples)
	if n != 100 {
		t.Fatalf("Expected 100 samples, got %d", n)
	}

	if samples[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", samples[0][0])
	}
	if samples[10][0] != 0.5 {
		t.Errorf("Expected half volume mid-attack, got %f", samples[10][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("Expected full sustain, got %f", samples[50][0])
	}
	if samples[99][0] >= samples[85][0] {
		t.Errorf("Expected fade in release, got %f then %f", samples[85][0], samples[99][0])
	}
}
