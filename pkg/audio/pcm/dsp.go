package pcm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DB converts a gain in decibels to a linear amplitude factor.
func DB(db float64) float64 {
	return math.Pow(10, db/20)
}

// SilenceDB is the level ToDB reports for amplitudes at or below 1e-6.
const SilenceDB = -120.0

// ToDB converts a linear amplitude to decibels, flooring at SilenceDB.
func ToDB(v float64) float64 {
	if v <= 1e-6 {
		return SilenceDB
	}
	return 20 * math.Log10(v)
}

// Scale multiplies every sample of b by f.
func (b *Buffer) Scale(f float64) {
	floats.Scale(f, b.Samples)
}

// GainRange applies a gain in decibels to the samples in [start, end).
func (b *Buffer) GainRange(start, end int, db float64) {
	start = clampIndex(start, len(b.Samples))
	end = clampIndex(end, len(b.Samples))
	if end <= start {
		return
	}
	floats.Scale(DB(db), b.Samples[start:end])
}

// Overlay adds src into b starting at sample offset. Samples of src that fall
// outside b are dropped; b never grows.
func (b *Buffer) Overlay(src *Buffer, offset int) {
	b.OverlayScaled(src, offset, 1)
}

// OverlayScaled adds src scaled by f into b starting at sample offset.
func (b *Buffer) OverlayScaled(src *Buffer, offset int, f float64) {
	if offset >= len(b.Samples) || src == nil {
		return
	}
	s := src.Samples
	if offset < 0 {
		if -offset >= len(s) {
			return
		}
		s = s[-offset:]
		offset = 0
	}
	dst := b.Samples[offset:]
	if len(s) > len(dst) {
		s = s[:len(dst)]
	}
	floats.AddScaled(dst[:len(s)], f, s)
}

// FadeIn ramps the first n samples linearly up from silence.
func (b *Buffer) FadeIn(n int) {
	n = min(n, len(b.Samples))
	for i := range n {
		b.Samples[i] *= float64(i) / float64(n)
	}
}

// FadeOut ramps the last n samples linearly down to silence.
func (b *Buffer) FadeOut(n int) {
	n = min(n, len(b.Samples))
	off := len(b.Samples) - n
	for i := range n {
		b.Samples[off+i] *= float64(n-1-i) / float64(n)
	}
}

// Peak returns the maximum absolute sample value.
func (b *Buffer) Peak() float64 {
	if len(b.Samples) == 0 {
		return 0
	}
	return floats.Norm(b.Samples, math.Inf(1))
}

// RMS returns the root mean square level of b.
func (b *Buffer) RMS() float64 {
	if len(b.Samples) == 0 {
		return 0
	}
	return floats.Norm(b.Samples, 2) / math.Sqrt(float64(len(b.Samples)))
}

// Normalize scales b so that its peak equals level. A silent buffer is left
// untouched and Normalize reports false.
func (b *Buffer) Normalize(level float64) bool {
	peak := b.Peak()
	if peak <= 0 {
		return false
	}
	b.Scale(level / peak)
	return true
}

// Delayed returns a copy of b shifted right by n samples. The head is filled
// with silence and the result keeps the length of b.
func (b *Buffer) Delayed(n int) *Buffer {
	out := NewBuffer(b.Rate, len(b.Samples))
	if n < len(b.Samples) {
		copy(out.Samples[max(n, 0):], b.Samples)
	}
	return out
}
