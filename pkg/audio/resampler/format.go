package resampler

import (
	"fmt"

	"github.com/haivivi/interlude/pkg/audio/pcm"
)

// Format describes the audio format for resampling. Currently only supports
// 16-bit signed integer samples.
type Format struct {
	// SampleRate is the sample rate in Hz (e.g., 44100, 48000).
	SampleRate int

	// Stereo indicates stereo (2 channels) if true, mono (1 channel) if false.
	Stereo bool
}

// FormatOf returns the Format of decoded codec output. Only mono and stereo
// are accepted; wider layouts must be downmixed first.
func FormatOf(r *pcm.Raw) (Format, error) {
	switch r.Channels {
	case 1:
		return Format{SampleRate: r.Rate}, nil
	case 2:
		return Format{SampleRate: r.Rate, Stereo: true}, nil
	}
	return Format{}, fmt.Errorf("resampler: unsupported channel count %d", r.Channels)
}

// Mono returns the mono Format at the given rate.
func Mono(rate int) Format {
	return Format{SampleRate: rate}
}

func (f Format) channels() int {
	if f.Stereo {
		return 2
	}
	return 1
}

func (f Format) sampleBytes() int {
	return f.channels() * 2
}
