// Package insertion overlays a voice clip onto a song inside a time window.
//
// The song is ducked by a fixed 8 dB for the length of the window and the
// clip, faded at both ends and thickened with a two-tap echo, is added on
// top. Everything outside the window is left untouched.
package insertion

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/haivivi/interlude/pkg/audio/audiofile"
	"github.com/haivivi/interlude/pkg/audio/pcm"
)

// Mixing constants. Gains are in dB.
const (
	DuckGain = -8.0

	EchoDelay1 = 70 * time.Millisecond
	EchoGain1  = -11.0
	EchoDelay2 = 140 * time.Millisecond
	EchoGain2  = -15.0
	ReverbTail = 180 * time.Millisecond

	MinFade = 120 * time.Millisecond
	MaxFade = 400 * time.Millisecond
)

// SongPlaceholderSeconds is the length of the silent song synthesized when
// the song file is missing: long enough to hold the window plus 5 seconds,
// and never shorter than 20 seconds.
func SongPlaceholderSeconds(endMs int) int {
	return max(20, endMs/1000+5)
}

// InsertPlaceholderSeconds is the length of the silent clip synthesized when
// the insert file is missing.
func InsertPlaceholderSeconds(startMs, endMs int) int {
	return max(6, (endMs-startMs)/1000)
}

// Request describes one insertion job. Offsets are milliseconds into the
// song.
type Request struct {
	Song    string `json:"song" yaml:"song"`
	Insert  string `json:"insert" yaml:"insert"`
	StartMs int    `json:"start_ms" yaml:"start_ms"`
	EndMs   int    `json:"end_ms" yaml:"end_ms"`
	Output  string `json:"output" yaml:"output"`
}

// Result reports what a job produced.
type Result struct {
	Output            string        `json:"output" yaml:"output"`
	Window            Window        `json:"window" yaml:"window"`
	SongSynthesized   bool          `json:"song_synthesized,omitempty" yaml:"song_synthesized,omitempty"`
	InsertSynthesized bool          `json:"insert_synthesized,omitempty" yaml:"insert_synthesized,omitempty"`
	Duration          time.Duration `json:"-" yaml:"-"`
}

// Option configures Mix.
type Option func(*options)

type options struct {
	save []audiofile.Option
}

// WithBitrate sets the bitrate in kbps used when the output is lossy.
func WithBitrate(kbps int) Option {
	return func(o *options) {
		o.save = append(o.save, audiofile.WithBitrate(kbps))
	}
}

// Mix overlays req.Insert onto req.Song and writes the result to
// req.Output at the song's sample rate. A missing WAV song or insert is replaced by synthesized
// silence first; a missing file of any other type fails with
// *audiofile.MissingAssetError.
func Mix(req Request, opts ...Option) (*Result, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	res := &Result{Output: req.Output}
	var err error
	if res.SongSynthesized, err = audiofile.Ensure(req.Song, SongPlaceholderSeconds(req.EndMs)); err != nil {
		return nil, err
	}
	if res.InsertSynthesized, err = audiofile.Ensure(req.Insert, InsertPlaceholderSeconds(req.StartMs, req.EndMs)); err != nil {
		return nil, err
	}

	// The song keeps its own rate so everything outside the window is
	// written back sample for sample. Only the insert is resampled.
	song, err := audiofile.LoadNative(req.Song)
	if err != nil {
		return nil, err
	}
	insert, err := audiofile.LoadAt(req.Insert, song.Rate)
	if err != nil {
		return nil, err
	}

	res.Window = NewWindow(req.StartMs, req.EndMs, song.Millis())
	if res.Window != (Window{StartMs: req.StartMs, EndMs: req.EndMs}) {
		slog.Debug("insert window clamped",
			"start_ms", req.StartMs, "end_ms", req.EndMs,
			"safe_start_ms", res.Window.StartMs, "safe_end_ms", res.Window.EndMs,
			"song_ms", song.Millis())
	}

	out := song
	if res.Window.Empty() {
		slog.Warn("song has no audio, writing it unchanged", "song", req.Song)
	} else if out, err = MixBuffers(song, insert, res.Window); err != nil {
		return nil, err
	}

	if err := audiofile.Save(req.Output, out, o.save...); err != nil {
		return nil, err
	}
	res.Duration = out.Duration()
	slog.Info("insert mixed", "output", req.Output, "rate", out.Rate,
		"start_ms", res.Window.StartMs, "end_ms", res.Window.EndMs)
	return res, nil
}

// MixBuffers ducks song inside w and overlays the prepared insert there. It
// takes ownership of both buffers: song is modified in place and returned,
// insert is truncated and faded. Both must share a sample rate.
func MixBuffers(song, insert *pcm.Buffer, w Window) (*pcm.Buffer, error) {
	if song.Rate != insert.Rate {
		return nil, fmt.Errorf("insertion: sample rate mismatch: song %d Hz, insert %d Hz", song.Rate, insert.Rate)
	}
	start := min(song.SamplesInMillis(w.StartMs), song.Len())
	end := min(song.SamplesInMillis(w.EndMs), song.Len())
	if end <= start {
		return song, nil
	}

	clip := PrepareInsert(insert, end-start, w.Millis())
	song.GainRange(start, end, DuckGain)
	song.Overlay(clip, start)
	return song, nil
}

// PrepareInsert truncates insert to n samples, fades it, and adds the echo
// bed. windowMs sizes the fades.
func PrepareInsert(insert *pcm.Buffer, n, windowMs int) *pcm.Buffer {
	insert.Truncate(n)

	fade := FadeLength(windowMs, insert.Duration())
	if f := insert.SamplesIn(fade); insert.Len() > 2*f {
		insert.FadeIn(f)
		insert.FadeOut(f)
	}

	bed := Reverb(insert)
	bed.Truncate(n)
	return bed
}

// FadeLength returns the fade applied to each end of the insert: a fifth of
// the window within [MinFade, MaxFade], but never more than a quarter of
// the clip.
func FadeLength(windowMs int, clip time.Duration) time.Duration {
	fade := time.Duration(windowMs/5) * time.Millisecond
	fade = max(MinFade, min(fade, MaxFade))
	return min(fade, clip/4)
}

// Reverb returns insert over a silent bed ReverbTail longer than it, with
// two attenuated echoes at EchoDelay1 and EchoDelay2.
func Reverb(insert *pcm.Buffer) *pcm.Buffer {
	bed := pcm.NewBuffer(insert.Rate, insert.Len()+insert.SamplesIn(ReverbTail))
	bed.OverlayScaled(insert, insert.SamplesIn(EchoDelay1), pcm.DB(EchoGain1))
	bed.OverlayScaled(insert, insert.SamplesIn(EchoDelay2), pcm.DB(EchoGain2))
	bed.Overlay(insert, 0)
	return bed
}
