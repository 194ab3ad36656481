package resampler

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/haivivi/interlude/pkg/audio/pcm"
)

// Resampler wraps an io.Reader and resamples audio from srcFmt to dstFmt.
// It supports sample rate conversion and channel conversion (mono↔stereo).
// The resampler must be closed with Close() to release resources.
type Resampler interface {
	io.ReadCloser
	CloseWithError(error) error
}

// Stream resamples 16-bit PCM read from an io.Reader. At end of input it
// drains the filter with silence and trims the output so that it holds
// exactly round(frames * dstRate / srcRate) frames.
type Stream struct {
	srcFmt Format
	src    io.Reader

	dstFmt  Format
	readBuf []byte

	mu            sync.Mutex
	closeErr      error
	resampler     resampling.Resampler
	leftover      []byte
	needsResample bool

	srcFrames int64
	outFrames int64
	drained   bool
}

// New creates a new Resampler that resamples audio from srcFmt to dstFmt. It
// supports sample rate conversion and channel conversion (mono↔stereo). The
// formats must use 16-bit signed integer samples.
func New(src io.Reader, srcFmt, dstFmt Format) (Resampler, error) {
	if srcFmt.SampleRate <= 0 || dstFmt.SampleRate <= 0 {
		return nil, fmt.Errorf("resampler: invalid sample rate %d -> %d", srcFmt.SampleRate, dstFmt.SampleRate)
	}
	needsResample := srcFmt.SampleRate != dstFmt.SampleRate

	var rs resampling.Resampler
	if needsResample {
		var err error
		rs, err = newResampler(float64(srcFmt.SampleRate), float64(dstFmt.SampleRate), dstFmt.channels())
		if err != nil {
			return nil, err
		}
	}

	return &Stream{
		srcFmt: srcFmt,
		src:    newFrameReader(src, srcFmt.sampleBytes()),

		dstFmt: dstFmt,

		resampler:     rs,
		needsResample: needsResample,
	}, nil
}

func newResampler(in, out float64, channels int) (resampling.Resampler, error) {
	rs, err := resampling.New(&resampling.Config{
		InputRate:  in,
		OutputRate: out,
		Channels:   channels,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("resampler: create %.0f -> %.0f: %w", in, out, err)
	}
	return rs, nil
}

// Read copies resampled audio data into p. It returns the number of bytes
// written and any encountered error. This method is not safe for concurrent
// use.
func (r *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if len(p) < r.dstFmt.sampleBytes() {
		return 0, io.ErrShortBuffer
	}

	// Truncate p to a multiple of sampleBytes
	p = p[:len(p)/r.dstFmt.sampleBytes()*r.dstFmt.sampleBytes()]

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.leftover) > 0 {
		n := copy(p, r.leftover)
		r.leftover = r.leftover[n:]
		return n, nil
	}

	if r.closeErr != nil {
		return 0, r.closeErr
	}

	if !r.needsResample {
		return r.readPassthrough(p)
	}
	return r.readAndProcess(p)
}

// readAndProcess reads from source and processes through resampler.
func (r *Stream) readAndProcess(p []byte) (int, error) {
	if r.drained {
		return 0, io.EOF
	}

	ratio := float64(r.srcFmt.SampleRate) / float64(r.dstFmt.SampleRate)
	srcBytesNeeded := int(float64(len(p))*ratio) + r.dstFmt.sampleBytes()*4
	srcBytesNeeded = srcBytesNeeded / r.dstFmt.sampleBytes() * r.dstFmt.sampleBytes()

	bytesRead, readErr := r.readSourceWithChannelConv(srcBytesNeeded)
	if readErr != nil && readErr != io.EOF {
		return 0, readErr
	}

	numChannels := r.dstFmt.channels()
	numFrames := bytesRead / (2 * numChannels)
	input := make([]float64, numFrames*numChannels, (numFrames+tailFrames(float64(r.srcFmt.SampleRate)))*numChannels)
	for i := range input {
		input[i] = pcm.FromInt16(int16(binary.LittleEndian.Uint16(r.readBuf[i*2:])))
	}
	r.srcFrames += int64(numFrames)

	if readErr == io.EOF {
		input = input[:cap(input)]
		r.drained = true
	}
	if len(input) == 0 {
		return 0, nil
	}

	output, err := r.resampler.Process(input)
	if err != nil {
		return 0, fmt.Errorf("resampler: process: %w", err)
	}

	frames := int64(len(output) / numChannels)
	if r.drained {
		want := int64(math.Round(float64(r.srcFrames) / ratio))
		frames = max(want-r.outFrames, 0)
		if pad := int(frames)*numChannels - len(output); pad > 0 {
			output = append(output, make([]float64, pad)...)
		}
	}
	output = output[:frames*int64(numChannels)]
	r.outFrames += frames

	outputBytes := make([]byte, len(output)*2)
	for i, s := range output {
		binary.LittleEndian.PutUint16(outputBytes[i*2:], uint16(pcm.ToInt16(s)))
	}

	n := copy(p, outputBytes)
	if len(outputBytes) > n {
		r.leftover = append(r.leftover, outputBytes[n:]...)
	}
	if n == 0 && r.drained {
		return 0, io.EOF
	}
	return n, nil
}

// readPassthrough reads without sample rate conversion.
func (r *Stream) readPassthrough(p []byte) (int, error) {
	n, err := r.readSourceWithChannelConv(len(p))
	if n == 0 {
		return 0, err
	}
	copy(p, r.readBuf[:n])
	return n, err
}

// readSourceWithChannelConv reads from source and handles channel conversion.
func (r *Stream) readSourceWithChannelConv(dstLen int) (int, error) {
	if cap(r.readBuf) < dstLen*2 {
		r.readBuf = make([]byte, dstLen*2)
	}

	if r.srcFmt.Stereo && !r.dstFmt.Stereo {
		rn, err := r.src.Read(r.readBuf[:dstLen*2])
		if rn == 0 {
			return 0, err
		}
		return stereoToMono(r.readBuf[:rn]), err
	}

	if r.srcFmt.Stereo == r.dstFmt.Stereo {
		return r.src.Read(r.readBuf[:dstLen])
	}

	rn, err := r.src.Read(r.readBuf[:dstLen/2])
	if rn == 0 {
		return 0, err
	}
	return monoToStereo(r.readBuf[:rn*2]), err
}

// Close releases resources and marks the resampler as closed.
// Subsequent Read calls will return io.ErrClosedPipe.
func (r *Stream) Close() error {
	return r.CloseWithError(fmt.Errorf("resampler: %w", io.ErrClosedPipe))
}

// CloseWithError releases resources with a custom error. Subsequent
// Read calls will return the provided error.
func (r *Stream) CloseWithError(err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closeErr == nil {
		r.closeErr = err
	}
	r.resampler = nil
	return nil
}

// tailFrames is the amount of silence pushed through the filter at end of
// input so the delayed tail comes out.
func tailFrames(srcRate float64) int {
	return max(256, int(srcRate/20))
}

// stereoToMono converts stereo 16-bit samples to mono in-place by averaging L
// and R channels.
func stereoToMono(b []byte) int {
	numFrames := len(b) / 4
	for i := range numFrames {
		j := i * 4
		k := i * 2
		l := int16(binary.LittleEndian.Uint16(b[j:]))
		r := int16(binary.LittleEndian.Uint16(b[j+2:]))
		m := int16((int32(l) + int32(r)) / 2)
		binary.LittleEndian.PutUint16(b[k:], uint16(m))
	}
	return numFrames * 2
}

// monoToStereo converts mono 16-bit samples to stereo in-place by duplicating
// each sample.
func monoToStereo(b []byte) int {
	stereoLen := len(b)
	numSamples := stereoLen / 4
	for i := numSamples - 1; i >= 0; i-- {
		s0, s1 := b[i*2], b[i*2+1]
		j := i * 4
		b[j], b[j+1] = s0, s1
		b[j+2], b[j+3] = s0, s1
	}
	return stereoLen
}
