package audio

import (
	"testing"

	"github.com/gopxl/beep"
)

func streamLen(s beep.Streamer) int {
	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestPitchProgression(t *testing.T) {
	if Pitch(0) != 523.25 {
		t.Errorf("Expected C5 for index 0, got %f", Pitch(0))
	}
	if Pitch(5) != 2*523.25 {
		t.Errorf("Expected C6 for index 5, got %f", Pitch(5))
	}
	if Pitch(-3) != Pitch(0) {
		t.Error("Expected negative index treated as 0")
	}
	for i := 1; i < 10; i++ {
		if Pitch(i) <= Pitch(i-1) {
			t.Errorf("Expected rising pitch at %d", i)
		}
	}
}

func TestChimeRepeatsCapped(t *testing.T) {
	rate := beep.SampleRate(8000)
	one := rate.N(chimeDuration)
	gap := rate.N(chimeGap)

	tests := []struct {
		count int64
		want  int
	}{
		{0, one},
		{1, one},
		{2, 2*one + gap},
		{3, 3*one + 2*gap},
		{50, 3*one + 2*gap},
	}
	for _, tt := range tests {
		if got := streamLen(NewChime(440, tt.count, 1, rate)); got != tt.want {
			t.Errorf("count %d: expected %d samples, got %d", tt.count, tt.want, got)
		}
	}
}

func TestChimeSilentAtZeroVolume(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := NewChime(440, 1, 0, rate)
	buf := make([][2]float64, 256)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 {
			t.Fatalf("Expected silence, got %f at %d", buf[i][0], i)
		}
	}
}
