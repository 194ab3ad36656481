// Package wav reads and writes RIFF/WAVE files holding integer PCM.
//
// Any bit depth go-audio can parse (8, 16, 24 or 32 bit) is accepted on
// input and narrowed to 16-bit. Output is always 16-bit PCM.
package wav

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/haivivi/interlude/pkg/audio/pcm"
)

// formatPCM is the WAVE_FORMAT_PCM tag.
const formatPCM = 1

// ErrUnsupported is returned for WAVE files that are valid but carry an
// encoding other than integer PCM (for example IEEE float or A-law).
var ErrUnsupported = errors.New("wav: unsupported encoding")

// Decode reads a whole WAVE stream and returns its samples as interleaved
// 16-bit PCM.
func Decode(r io.ReadSeeker) (*pcm.Raw, error) {
	d := gowav.NewDecoder(r)
	if !d.IsValidFile() {
		// go-audio rejects files whose duration is zero. A parsed format
		// chunk means the file is fine, just empty.
		if d.SampleRate > 0 && d.NumChans > 0 && d.BitDepth >= 8 {
			return &pcm.Raw{Rate: int(d.SampleRate), Channels: int(d.NumChans)}, nil
		}
		return nil, errors.New("wav: not a valid WAVE file")
	}
	if d.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupported, d.WavAudioFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: read PCM: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 || buf.Format.SampleRate <= 0 {
		return nil, errors.New("wav: missing format chunk")
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(d.BitDepth)
	}
	data := make([]byte, len(buf.Data)*2)
	for i, v := range buf.Data {
		s, err := narrow(v, depth)
		if err != nil {
			return nil, err
		}
		data[i*2] = byte(s)
		data[i*2+1] = byte(uint16(s) >> 8)
	}
	return &pcm.Raw{
		Data:     data,
		Rate:     buf.Format.SampleRate,
		Channels: buf.Format.NumChannels,
	}, nil
}

// narrow converts a sample of the given bit depth to signed 16-bit.
func narrow(v, depth int) (int16, error) {
	switch depth {
	case 8:
		// 8-bit WAVE data is unsigned.
		return int16((v - 128) << 8), nil
	case 16:
		return int16(v), nil
	case 24:
		return int16(v >> 8), nil
	case 32:
		return int16(v >> 16), nil
	}
	return 0, fmt.Errorf("%w: %d-bit samples", ErrUnsupported, depth)
}

// Writer streams mono or multi-channel 16-bit PCM into a WAVE container.
// The header is written with the first call to Write and patched with the
// final sizes on Close.
type Writer struct {
	enc      *gowav.Encoder
	format   *audio.Format
	wroteAny bool
}

// NewWriter returns a Writer producing 16-bit PCM at the given rate.
func NewWriter(w io.WriteSeeker, rate, channels int) *Writer {
	return &Writer{
		enc:    gowav.NewEncoder(w, rate, 16, channels, formatPCM),
		format: &audio.Format{NumChannels: channels, SampleRate: rate},
	}
}

// Write appends interleaved 16-bit samples widened to int.
func (w *Writer) Write(samples []int) error {
	w.wroteAny = true
	if err := w.enc.Write(&audio.IntBuffer{
		Format:         w.format,
		Data:           samples,
		SourceBitDepth: 16,
	}); err != nil {
		return fmt.Errorf("wav: write: %w", err)
	}
	return nil
}

// Close finalizes the header. A Writer that never received samples still
// produces a valid, empty file.
func (w *Writer) Close() error {
	if !w.wroteAny {
		if err := w.Write([]int{}); err != nil {
			return err
		}
	}
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wav: close: %w", err)
	}
	return nil
}

// Encode writes b as a mono 16-bit WAVE file.
func Encode(w io.WriteSeeker, b *pcm.Buffer) error {
	wr := NewWriter(w, b.Rate, 1)
	if err := wr.Write(b.Ints()); err != nil {
		return err
	}
	return wr.Close()
}
