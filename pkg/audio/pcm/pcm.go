package pcm

const (
	// L16Mono16K represents audio/L16; rate=16000; channels=1
	L16Mono16K Format = iota
	// L16Mono24K represents audio/L16; rate=24000; channels=1
	L16Mono24K
	// L16Mono44K represents audio/L16; rate=44100; channels=1
	L16Mono44K
	// L16Mono48K represents audio/L16; rate=48000; channels=1
	L16Mono48K
)

// Working is the format every processing stage operates in after ingestion.
const Working = L16Mono44K

// Format represents an audio format configuration.
type Format int

// SampleRate returns the sample rate in Hz for this format.
func (f Format) SampleRate() int {
	switch f {
	case L16Mono16K:
		return 16000
	case L16Mono24K:
		return 24000
	case L16Mono44K:
		return 44100
	case L16Mono48K:
		return 48000
	}
	panic("pcm: invalid audio type")
}

// String returns a human-readable string representation of the format.
func (f Format) String() string {
	switch f {
	case L16Mono16K:
		return "audio/L16; rate=16000; channels=1"
	case L16Mono24K:
		return "audio/L16; rate=24000; channels=1"
	case L16Mono44K:
		return "audio/L16; rate=44100; channels=1"
	case L16Mono48K:
		return "audio/L16; rate=48000; channels=1"
	}
	panic("pcm: invalid audio type")
}

// Raw is interleaved little-endian signed 16-bit PCM as produced by the
// container codecs, before downmixing and resampling.
type Raw struct {
	Data     []byte
	Rate     int
	Channels int
}

// Frames returns the number of frames (samples per channel) in r.
func (r *Raw) Frames() int {
	if r.Channels <= 0 {
		return 0
	}
	return len(r.Data) / 2 / r.Channels
}

// Downmix averages all channels of r into a mono Raw. Mono input is returned
// as is.
func (r *Raw) Downmix() *Raw {
	if r.Channels <= 1 {
		return r
	}
	frames := r.Frames()
	out := make([]byte, frames*2)
	for i := range frames {
		var sum int32
		for c := range r.Channels {
			j := (i*r.Channels + c) * 2
			sum += int32(int16(uint16(r.Data[j]) | uint16(r.Data[j+1])<<8))
		}
		m := int16(sum / int32(r.Channels))
		out[i*2] = byte(m)
		out[i*2+1] = byte(m >> 8)
	}
	return &Raw{Data: out, Rate: r.Rate, Channels: 1}
}
