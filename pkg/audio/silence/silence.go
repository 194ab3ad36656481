// Package silence writes placeholder WAV files of digital silence.
//
// Silence stands in for a song or voice clip that has not been produced yet,
// so downstream mixing always has a file to read.
package silence

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/haivivi/interlude/pkg/audio/codec/wav"
	"github.com/haivivi/interlude/pkg/audio/pcm"
)

// DefaultFormat is the format of synthesized silence unless overridden.
const DefaultFormat = pcm.L16Mono16K

// Option configures Synthesize.
type Option func(*options)

type options struct {
	sampleRate int
}

// WithSampleRate sets the sample rate of the generated file.
func WithSampleRate(rate int) Option {
	return func(o *options) {
		o.sampleRate = rate
	}
}

// Synthesize writes a mono 16-bit WAV holding exactly seconds*rate zero
// frames to path, replacing any existing file. Frames are written one second
// at a time so long durations do not need a large buffer. Missing parent
// directories are created. A non-positive duration yields an empty file.
func Synthesize(path string, seconds int, opts ...Option) error {
	o := options{sampleRate: DefaultFormat.SampleRate()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sampleRate <= 0 {
		return fmt.Errorf("silence: invalid sample rate %d", o.sampleRate)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("silence: create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("silence: %w", err)
	}
	defer f.Close()

	total := int64(max(seconds, 0)) * int64(o.sampleRate)
	chunk := make([]int, o.sampleRate)
	w := wav.NewWriter(f, o.sampleRate, 1)
	for written := int64(0); written < total; {
		n := min(int64(len(chunk)), total-written)
		if err := w.Write(chunk[:n]); err != nil {
			return fmt.Errorf("silence: %w", err)
		}
		written += n
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("silence: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("silence: %w", err)
	}

	slog.Debug("silence synthesized", "path", path, "seconds", seconds, "rate", o.sampleRate)
	return nil
}
