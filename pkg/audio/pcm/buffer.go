package pcm

import (
	"encoding/binary"
	"math"
	"time"
)

// Buffer is a mono sequence of floating point samples in [-1, 1] at a fixed
// sample rate.
//
// The methods that transform a Buffer do so in place. A stage that needs to
// keep its input must Clone it first.
type Buffer struct {
	Samples []float64
	Rate    int
}

// NewBuffer returns a silent buffer of n samples at the given rate.
func NewBuffer(rate, n int) *Buffer {
	if n < 0 {
		n = 0
	}
	return &Buffer{Samples: make([]float64, n), Rate: rate}
}

// Len returns the number of samples in b.
func (b *Buffer) Len() int {
	return len(b.Samples)
}

// Duration returns the playback duration of b.
func (b *Buffer) Duration() time.Duration {
	if b.Rate <= 0 {
		return 0
	}
	return time.Duration(len(b.Samples)) * time.Second / time.Duration(b.Rate)
}

// Millis returns the duration of b in whole milliseconds.
func (b *Buffer) Millis() int {
	if b.Rate <= 0 {
		return 0
	}
	return len(b.Samples) * 1000 / b.Rate
}

// SamplesIn returns the number of samples that cover d at the rate of b.
func (b *Buffer) SamplesIn(d time.Duration) int {
	return int(time.Duration(b.Rate) * d / time.Second)
}

// SamplesInMillis returns the sample index of the given millisecond offset.
func (b *Buffer) SamplesInMillis(ms int) int {
	return int(int64(ms) * int64(b.Rate) / 1000)
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	s := make([]float64, len(b.Samples))
	copy(s, b.Samples)
	return &Buffer{Samples: s, Rate: b.Rate}
}

// Slice returns a copy of the samples in [start, end). Bounds are clamped to
// the buffer.
func (b *Buffer) Slice(start, end int) *Buffer {
	start = clampIndex(start, len(b.Samples))
	end = clampIndex(end, len(b.Samples))
	if end < start {
		end = start
	}
	s := make([]float64, end-start)
	copy(s, b.Samples[start:end])
	return &Buffer{Samples: s, Rate: b.Rate}
}

// Truncate shortens b to at most n samples.
func (b *Buffer) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(b.Samples) {
		b.Samples = b.Samples[:n]
	}
}

// FromInt16 converts a signed 16-bit sample to a float in [-1, 1).
func FromInt16(v int16) float64 {
	return float64(v) / 32768
}

// ToInt16 converts a float sample to signed 16-bit, rounding to the nearest
// step and clamping to the representable range.
func ToInt16(v float64) int16 {
	x := math.Round(v * 32768)
	if x > math.MaxInt16 {
		return math.MaxInt16
	}
	if x < math.MinInt16 {
		return math.MinInt16
	}
	return int16(x)
}

// FromInt16LE decodes little-endian mono 16-bit PCM into a Buffer.
func FromInt16LE(data []byte, rate int) *Buffer {
	n := len(data) / 2
	b := NewBuffer(rate, n)
	for i := range n {
		b.Samples[i] = FromInt16(int16(binary.LittleEndian.Uint16(data[i*2:])))
	}
	return b
}

// Int16LE encodes b as little-endian mono 16-bit PCM.
func (b *Buffer) Int16LE() []byte {
	out := make([]byte, len(b.Samples)*2)
	for i, v := range b.Samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(ToInt16(v)))
	}
	return out
}

// Ints returns the samples of b as 16-bit integer values widened to int.
func (b *Buffer) Ints() []int {
	out := make([]int, len(b.Samples))
	for i, v := range b.Samples {
		out[i] = int(ToInt16(v))
	}
	return out
}

// Raw returns b as mono interleaved PCM.
func (b *Buffer) Raw() *Raw {
	return &Raw{Data: b.Int16LE(), Rate: b.Rate, Channels: 1}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
