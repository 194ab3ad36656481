// Package songify turns a spoken rendition of some lyrics into a sung one.
//
// The speech is cut into one segment per word, each segment is pitched onto
// a note of a simple repeating melody in the requested key, and the pieces
// are crossfaded back together, normalized, and optionally doubled.
package songify

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/haivivi/interlude/pkg/audio/audiofile"
	"github.com/haivivi/interlude/pkg/audio/pcm"
	"github.com/haivivi/interlude/pkg/audio/pitch"
)

const (
	// PeakLevel is the peak the stitched rendition is normalized to.
	PeakLevel = 0.9
	// CrossfadeDuration is the overlap between adjacent segments.
	CrossfadeDuration = 10 * time.Millisecond
)

// Request describes one songification job.
type Request struct {
	Input  string
	Lyrics string
	BPM    int
	Key    Key
	Style  Style
	Output string
}

// Result reports what a job produced.
type Result struct {
	Output      string        `json:"output" yaml:"output"`
	Key         string        `json:"key" yaml:"key"`
	Style       string        `json:"style" yaml:"style"`
	Duration    time.Duration `json:"-" yaml:"-"`
	Passthrough bool          `json:"passthrough,omitempty" yaml:"passthrough,omitempty"`
	Segments    []Segment     `json:"segments,omitempty" yaml:"segments,omitempty"`
}

// Option configures Run and Process.
type Option func(*options)

type options struct {
	progress func(done, total int)
	save     []audiofile.Option
}

// WithProgress registers fn to be called after each segment is processed.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithBitrate sets the bitrate in kbps used when the output is lossy.
func WithBitrate(kbps int) Option {
	return func(o *options) {
		o.save = append(o.save, audiofile.WithBitrate(kbps))
	}
}

func newOptions(opts []Option) *options {
	o := &options{progress: func(int, int) {}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run loads req.Input, songifies it and writes req.Output. An empty input is
// written back unchanged.
func Run(req Request, opts ...Option) (*Result, error) {
	o := newOptions(opts)

	in, err := audiofile.Load(req.Input)
	if err != nil {
		return nil, err
	}

	res := &Result{Output: req.Output, Key: req.Key.String(), Style: req.Style.String()}
	out := in
	if in.Len() == 0 {
		slog.Info("empty input, writing it through unchanged", "input", req.Input)
		res.Passthrough = true
	} else {
		out, res.Segments, err = process(in, req.Lyrics, req.Key, req.Style, o)
		if err != nil {
			return nil, err
		}
	}

	if err := audiofile.Save(req.Output, out, o.save...); err != nil {
		return nil, err
	}
	res.Duration = out.Duration()
	slog.Info("songified", "output", req.Output, "segments", len(res.Segments), "duration", res.Duration)
	return res, nil
}

// Process songifies in and returns the new rendition with the segments it
// was cut into. in is not modified.
func Process(in *pcm.Buffer, lyrics string, key Key, style Style, opts ...Option) (*pcm.Buffer, []Segment, error) {
	return process(in, lyrics, key, style, newOptions(opts))
}

func process(in *pcm.Buffer, lyrics string, key Key, style Style, o *options) (*pcm.Buffer, []Segment, error) {
	segs := Plan(lyrics, in.Len(), key)
	if in.Len() == 0 {
		return in.Clone(), segs, nil
	}

	parts := make([][]float64, 0, len(segs))
	for i, seg := range segs {
		if seg.Len() > 0 {
			shifted, st, err := pitch.ToNote(in.Samples[seg.Start:seg.End], in.Rate, seg.Note)
			if err != nil {
				return nil, nil, fmt.Errorf("songify: segment %d %q: %w", i, seg.Word, err)
			}
			slog.Debug("segment", "index", i, "word", seg.Word, "note", seg.Note, "semitones", st)
			parts = append(parts, shifted)
		}
		o.progress(i+1, len(segs))
	}
	if len(parts) == 0 {
		return in.Clone(), segs, nil
	}

	out := &pcm.Buffer{Samples: Stitch(parts, in.SamplesIn(CrossfadeDuration)), Rate: in.Rate}
	out.Normalize(PeakLevel)
	if err := style.Apply(out); err != nil {
		return nil, nil, err
	}
	return out, segs, nil
}
