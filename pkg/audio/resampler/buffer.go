package resampler

import (
	"math"

	"github.com/haivivi/interlude/pkg/audio/pcm"
)

// Resample converts mono samples from srcRate to dstRate in one pass. The
// rates may be fractional. The result always holds round(len * dst / src)
// samples.
func Resample(samples []float64, srcRate, dstRate float64) ([]float64, error) {
	want := int(math.Round(float64(len(samples)) * dstRate / srcRate))
	if srcRate == dstRate {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out, nil
	}
	if len(samples) == 0 {
		return []float64{}, nil
	}

	rs, err := newResampler(srcRate, dstRate, 1)
	if err != nil {
		return nil, err
	}
	input := make([]float64, len(samples)+tailFrames(srcRate))
	copy(input, samples)
	out, err := rs.Process(input)
	if err != nil {
		return nil, err
	}
	return fixLength(out, want), nil
}

// Buffer returns b converted to the given rate. b itself is not modified.
func Buffer(b *pcm.Buffer, rate int) (*pcm.Buffer, error) {
	out, err := Resample(b.Samples, float64(b.Rate), float64(rate))
	if err != nil {
		return nil, err
	}
	return &pcm.Buffer{Samples: out, Rate: rate}, nil
}

func fixLength(s []float64, n int) []float64 {
	if len(s) >= n {
		return s[:n]
	}
	return append(s, make([]float64, n-len(s))...)
}
