// Package audiofile loads audio files into the working format and saves
// buffers back to disk, choosing the container from the file extension.
package audiofile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/haivivi/interlude/pkg/audio/codec/mp3"
	"github.com/haivivi/interlude/pkg/audio/codec/wav"
	"github.com/haivivi/interlude/pkg/audio/ffmpeg"
	"github.com/haivivi/interlude/pkg/audio/pcm"
	"github.com/haivivi/interlude/pkg/audio/resampler"
	"github.com/haivivi/interlude/pkg/audio/silence"
)

// MissingAssetError reports a required input that does not exist and cannot
// be stood in for by synthesized silence.
type MissingAssetError struct {
	Path   string
	Reason string
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("missing asset %s: %s", e.Path, e.Reason)
}

// IsWAV reports whether path names a WAV file. A path without an extension
// counts as WAV because that is what Save writes for it.
func IsWAV(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".wav", ".wave":
		return true
	}
	return false
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Load reads path and returns its audio in the working format.
func Load(path string) (*pcm.Buffer, error) {
	return LoadAt(path, pcm.Working.SampleRate())
}

// LoadNative reads path and returns its audio downmixed to mono at the
// file's own sample rate.
func LoadNative(path string) (*pcm.Buffer, error) {
	return LoadAt(path, 0)
}

// LoadAt reads path and returns its audio downmixed to mono at rate. A rate
// of zero keeps the rate stored in the file.
func LoadAt(path string, rate int) (*pcm.Buffer, error) {
	if !Exists(path) {
		return nil, &MissingAssetError{Path: path, Reason: "file not found"}
	}

	var raw *pcm.Raw
	var err error
	switch {
	case IsWAV(path):
		raw, err = loadWAV(path, rate)
	case strings.EqualFold(filepath.Ext(path), ".mp3"):
		return loadMP3(path, rate)
	default:
		raw, err = ffmpeg.Decode(path, rate)
	}
	if err != nil {
		return nil, err
	}
	if rate <= 0 {
		rate = raw.Rate
	}
	return Convert(raw, rate)
}

func loadWAV(path string, rate int) (*pcm.Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}
	raw, err := wav.Decode(bytes.NewReader(data))
	if errors.Is(err, wav.ErrUnsupported) {
		slog.Debug("wav encoding not native, using ffmpeg", "path", path, "error", err)
		return ffmpeg.Decode(path, rate)
	}
	if err != nil {
		return nil, fmt.Errorf("audiofile: %s: %w", path, err)
	}
	return raw, nil
}

// loadMP3 streams decoded frames straight through the resampler.
func loadMP3(path string, rate int) (*pcm.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("audiofile: %s: %w", path, err)
	}
	if rate <= 0 {
		rate = dec.SampleRate()
	}
	rs, err := resampler.New(dec, resampler.Format{SampleRate: dec.SampleRate(), Stereo: mp3.Channels == 2}, resampler.Mono(rate))
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}
	defer rs.Close()

	data, err := io.ReadAll(rs)
	if err != nil {
		return nil, fmt.Errorf("audiofile: decode %s: %w", path, err)
	}
	return pcm.FromInt16LE(data, rate), nil
}

// Convert downmixes raw to mono and resamples it to rate. Mono input that is
// already at rate is converted without touching the sample values.
func Convert(raw *pcm.Raw, rate int) (*pcm.Buffer, error) {
	if raw.Channels > 2 {
		raw = raw.Downmix()
	}
	if _, err := resampler.FormatOf(raw); err != nil {
		return nil, err
	}
	if raw.Channels == 1 && raw.Rate == rate {
		return pcm.FromInt16LE(raw.Data, rate), nil
	}
	if raw.Rate == rate {
		return pcm.FromInt16LE(raw.Downmix().Data, rate), nil
	}

	mono := pcm.FromInt16LE(raw.Downmix().Data, raw.Rate)
	out, err := resampler.Buffer(mono, rate)
	if err != nil {
		return nil, fmt.Errorf("audiofile: resample %d -> %d: %w", raw.Rate, rate, err)
	}
	return out, nil
}

// Option configures Save.
type Option func(*options)

type options struct {
	bitrate int
}

// WithBitrate sets the bitrate in kbps for lossy containers.
func WithBitrate(kbps int) Option {
	return func(o *options) {
		o.bitrate = kbps
	}
}

// Save writes b to path, creating parent directories. The container follows
// the extension; no extension means WAV. Non-WAV containers need ffmpeg.
func Save(path string, b *pcm.Buffer, opts ...Option) error {
	o := options{bitrate: ffmpeg.DefaultBitrate}
	for _, opt := range opts {
		opt(&o)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("audiofile: create directory: %w", err)
	}
	if !IsWAV(path) {
		return ffmpeg.Encode(path, b, o.bitrate)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}
	if err := wav.Encode(f, b); err != nil {
		f.Close()
		return fmt.Errorf("audiofile: %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}
	return nil
}

// Ensure makes sure path exists, writing seconds of silence there when it
// does not. It reports whether a file was synthesized. Only WAV paths can be
// synthesized; any other missing file yields a MissingAssetError.
func Ensure(path string, seconds int) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("audiofile: %w", err)
	}
	if !IsWAV(path) {
		return false, &MissingAssetError{
			Path:   path,
			Reason: "file not found and only WAV placeholders can be synthesized",
		}
	}
	if err := silence.Synthesize(path, seconds); err != nil {
		return false, err
	}
	slog.Info("synthesized silent placeholder", "path", path, "seconds", seconds)
	return true, nil
}
