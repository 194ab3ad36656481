package pcm

import (
	"math"
	"testing"
)

func TestDB(t *testing.T) {
	if got := DB(0); got != 1 {
		t.Errorf("DB(0) = %v", got)
	}
	if got := DB(-20); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("DB(-20) = %v", got)
	}
	if got := DB(-8); math.Abs(got-0.398107) > 1e-6 {
		t.Errorf("DB(-8) = %v", got)
	}
}

func TestToDB(t *testing.T) {
	if got := ToDB(1); got != 0 {
		t.Errorf("ToDB(1) = %v", got)
	}
	if got := ToDB(DB(-8)); math.Abs(got+8) > 1e-9 {
		t.Errorf("ToDB(DB(-8)) = %v", got)
	}
	if got := ToDB(0); got != SilenceDB {
		t.Errorf("ToDB(0) = %v, want %v", got, SilenceDB)
	}
}

func TestGainRangeOnlyTouchesRange(t *testing.T) {
	b := &Buffer{Samples: []float64{1, 1, 1, 1, 1}, Rate: 5}
	b.GainRange(1, 3, -6)
	want := []float64{1, DB(-6), DB(-6), 1, 1}
	for i := range want {
		if b.Samples[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, b.Samples[i], want[i])
		}
	}
	b.GainRange(4, 100, -6)
	if b.Samples[4] != DB(-6) {
		t.Errorf("clamped range not applied: %v", b.Samples[4])
	}
}

func TestOverlayDoesNotExtend(t *testing.T) {
	b := &Buffer{Samples: []float64{0, 0, 0, 0}, Rate: 4}
	b.Overlay(&Buffer{Samples: []float64{1, 2, 3}, Rate: 4}, 2)
	want := []float64{0, 0, 1, 2}
	if b.Len() != 4 {
		t.Fatalf("len = %d", b.Len())
	}
	for i := range want {
		if b.Samples[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, b.Samples[i], want[i])
		}
	}

	b.OverlayScaled(&Buffer{Samples: []float64{4, 4}, Rate: 4}, -1, 0.5)
	if b.Samples[0] != 2 || b.Samples[1] != 0 {
		t.Errorf("negative offset overlay = %v", b.Samples)
	}
	b.Overlay(&Buffer{Samples: []float64{1}, Rate: 4}, 10)
}

func TestFades(t *testing.T) {
	b := &Buffer{Samples: []float64{1, 1, 1, 1, 1, 1, 1, 1}, Rate: 8}
	b.FadeIn(4)
	b.FadeOut(4)
	want := []float64{0, 0.25, 0.5, 0.75, 0.75, 0.5, 0.25, 0}
	for i := range want {
		if math.Abs(b.Samples[i]-want[i]) > 1e-12 {
			t.Errorf("sample %d = %v, want %v", i, b.Samples[i], want[i])
		}
	}
}

func TestNormalize(t *testing.T) {
	b := Sine(220, 4410, 44100, 0.3)
	if !b.Normalize(0.9) {
		t.Fatal("Normalize reported silent buffer")
	}
	if got := b.Peak(); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("peak = %v, want 0.9", got)
	}

	silent := NewBuffer(44100, 100)
	if silent.Normalize(0.9) {
		t.Error("silent buffer normalized")
	}
	if silent.Peak() != 0 {
		t.Error("silent buffer changed")
	}
}

func TestRMSOfSine(t *testing.T) {
	b := Sine(441, 44100, 44100, 1)
	want := 1 / math.Sqrt2
	if got := b.RMS(); math.Abs(got-want) > 1e-3 {
		t.Errorf("RMS = %v, want %v", got, want)
	}
}

func TestDelayed(t *testing.T) {
	b := &Buffer{Samples: []float64{1, 2, 3, 4}, Rate: 4}
	d := b.Delayed(2)
	want := []float64{0, 0, 1, 2}
	for i := range want {
		if d.Samples[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, d.Samples[i], want[i])
		}
	}
	if all := b.Delayed(10); all.Len() != 4 || all.Peak() != 0 {
		t.Errorf("Delayed(10) = %v", all.Samples)
	}
}

func TestVoiceStaysInRange(t *testing.T) {
	b := Voice(196, 44100, 44100, 0.8)
	if p := b.Peak(); p > 0.8 || p < 0.4 {
		t.Errorf("peak = %v", p)
	}
	if b.Samples[0] != 0 {
		t.Errorf("attack does not start from silence: %v", b.Samples[0])
	}
	t.Logf("voice rms = %.3f", b.RMS())
}
