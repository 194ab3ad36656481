// Package mp3 provides MP3 audio decoding.
//
// Decoding uses go-mp3, a pure Go port of the PDMP3 decoder. MP3 encoding
// is delegated to the ffmpeg package.
package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// Channels is the channel count of decoder output. Mono streams are
// duplicated into both channels.
const Channels = 2

// Decoder decodes MP3 audio to PCM.
// The output format is interleaved stereo int16 samples, little-endian.
type Decoder struct {
	dec *gomp3.Decoder
}

// NewDecoder creates a new MP3 decoder reading from r. The first frame is
// parsed immediately, so an invalid stream fails here.
func NewDecoder(r io.Reader) (*Decoder, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	return &Decoder{dec: dec}, nil
}

// SampleRate returns the sample rate of the MP3 stream.
func (d *Decoder) SampleRate() int {
	return d.dec.SampleRate()
}

// Read reads decoded PCM data into p.
func (d *Decoder) Read(p []byte) (int, error) {
	return d.dec.Read(p)
}
