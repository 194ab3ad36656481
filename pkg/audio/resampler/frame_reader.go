package resampler

import (
	"errors"
	"io"
	"log/slog"
)

// frameReader returns whole PCM frames from a byte stream whose reads may
// split a frame. Bytes of a split frame are carried to the next Read. A
// partial frame left when the source ends is discarded: decoders such as
// go-mp3 may stop mid-frame on truncated input.
type frameReader struct {
	r         io.Reader
	frameSize int

	carry    []byte
	carried  int
	dropped  int
	finished bool
}

func newFrameReader(r io.Reader, frameSize int) *frameReader {
	return &frameReader{
		r:         r,
		frameSize: frameSize,
		carry:     make([]byte, frameSize),
	}
}

// Read fills p with whole frames. p shorter than one frame yields
// io.ErrShortBuffer. The returned count is always a multiple of the frame
// size.
func (fr *frameReader) Read(p []byte) (int, error) {
	if len(p) < fr.frameSize {
		return 0, io.ErrShortBuffer
	}
	if fr.finished {
		return 0, io.EOF
	}
	p = p[:len(p)/fr.frameSize*fr.frameSize]

	n := copy(p, fr.carry[:fr.carried])
	fr.carried = 0

	rn, err := fr.r.Read(p[n:])
	n += rn
	rem := n % fr.frameSize
	n -= rem

	if errors.Is(err, io.EOF) {
		fr.finished = true
		if rem > 0 {
			fr.dropped += rem
			slog.Debug("resampler: dropped partial frame at end of input", "bytes", rem)
		}
		return n, io.EOF
	}
	copy(fr.carry, p[n:n+rem])
	fr.carried = rem
	return n, err
}
