package pcm

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestInt16RoundTrip(t *testing.T) {
	for v := math.MinInt16; v <= math.MaxInt16; v++ {
		got := ToInt16(FromInt16(int16(v)))
		if int(got) != v {
			t.Fatalf("round trip %d -> %d", v, got)
		}
	}
}

func TestToInt16Clamps(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1.5, math.MaxInt16},
		{1.0, math.MaxInt16},
		{-1.0, math.MinInt16},
		{-2.0, math.MinInt16},
		{0.5, 16384},
		{-0.5, -16384},
	}
	for _, tt := range tests {
		if got := ToInt16(tt.in); got != tt.want {
			t.Errorf("ToInt16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestInt16LERoundTrip(t *testing.T) {
	b := Sine(440, 1000, 16000, 0.7)
	back := FromInt16LE(b.Int16LE(), b.Rate)
	if back.Len() != b.Len() {
		t.Fatalf("len = %d, want %d", back.Len(), b.Len())
	}
	again := back.Int16LE()
	for i, v := range back.Int16LE() {
		if again[i] != v {
			t.Fatalf("byte %d differs", i)
		}
	}
	if back.Rate != 16000 {
		t.Errorf("rate = %d", back.Rate)
	}
}

func TestBufferTiming(t *testing.T) {
	b := NewBuffer(Working.SampleRate(), 44100*3/2)
	if got := b.Duration(); got != 1500*time.Millisecond {
		t.Errorf("Duration = %v", got)
	}
	if got := b.Millis(); got != 1500 {
		t.Errorf("Millis = %d", got)
	}
	if got := b.SamplesInMillis(70); got != 3087 {
		t.Errorf("SamplesInMillis(70) = %d", got)
	}
	if got := b.SamplesIn(10 * time.Millisecond); got != 441 {
		t.Errorf("SamplesIn(10ms) = %d", got)
	}
}

func TestSliceClampsBounds(t *testing.T) {
	b := &Buffer{Samples: []float64{1, 2, 3, 4}, Rate: 10}
	s := b.Slice(-3, 2)
	if s.Len() != 2 || s.Samples[0] != 1 {
		t.Errorf("Slice(-3,2) = %v", s.Samples)
	}
	s = b.Slice(3, 99)
	if s.Len() != 1 || s.Samples[0] != 4 {
		t.Errorf("Slice(3,99) = %v", s.Samples)
	}
	s = b.Slice(3, 1)
	if s.Len() != 0 {
		t.Errorf("Slice(3,1) = %v", s.Samples)
	}
	s.Samples = append(s.Samples, 9)
	if b.Samples[3] != 4 {
		t.Error("Slice shares storage with source")
	}
}

func TestDownmix(t *testing.T) {
	stereo := &Raw{Rate: 8000, Channels: 2}
	for _, v := range []int16{100, 300, -200, -400, 32767, 32767} {
		stereo.Data = append(stereo.Data, byte(v), byte(uint16(v)>>8))
	}
	mono := stereo.Downmix()
	if mono.Channels != 1 || mono.Frames() != 3 {
		t.Fatalf("mono = %d channels, %d frames", mono.Channels, mono.Frames())
	}
	got := FromInt16LE(mono.Data, mono.Rate).Ints()
	want := []int{200, -300, 32767}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		format     Format
		sampleRate int
	}{
		{L16Mono16K, 16000},
		{L16Mono24K, 24000},
		{L16Mono44K, 44100},
		{L16Mono48K, 48000},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.SampleRate(); got != tt.sampleRate {
				t.Errorf("SampleRate = %d, want %d", got, tt.sampleRate)
			}
			if !strings.Contains(tt.format.String(), strconv.Itoa(tt.sampleRate)) {
				t.Errorf("String = %q", tt.format.String())
			}
		})
	}
}
