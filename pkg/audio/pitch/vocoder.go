package pitch

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FFTSize is the STFT window used by the phase vocoder.
const FFTSize = 2048

// vocoder holds the FFT plan and window shared by analysis and synthesis.
type vocoder struct {
	fft *fourier.FFT
	win []float64
}

func newVocoder() *vocoder {
	win := make([]float64, FFTSize)
	for i := range win {
		// Periodic Hann.
		win[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/FFTSize)
	}
	return &vocoder{fft: fourier.NewFFT(FFTSize), win: win}
}

// analyze returns the centered STFT of x, one column of FFTSize/2+1 bins per
// hop.
func (v *vocoder) analyze(x []float64) [][]complex128 {
	pad := FFTSize / 2
	padded := make([]float64, len(x)+2*pad)
	copy(padded[pad:], x)

	frames := 1 + (len(padded)-FFTSize)/HopLength
	spec := make([][]complex128, frames)
	buf := make([]float64, FFTSize)
	for t := range frames {
		start := t * HopLength
		for k := range buf {
			buf[k] = padded[start+k] * v.win[k]
		}
		spec[t] = v.fft.Coefficients(nil, buf)
	}
	return spec
}

// synthesize inverts spec by windowed overlap-add and returns length
// samples.
func (v *vocoder) synthesize(spec [][]complex128, length int) []float64 {
	if len(spec) == 0 {
		return make([]float64, length)
	}
	n := FFTSize + HopLength*(len(spec)-1)
	y := make([]float64, n)
	norm := make([]float64, n)
	frame := make([]float64, FFTSize)
	for t, col := range spec {
		v.fft.Sequence(frame, col)
		start := t * HopLength
		for k, s := range frame {
			y[start+k] += s / FFTSize * v.win[k]
			norm[start+k] += v.win[k] * v.win[k]
		}
	}
	for i := range y {
		if norm[i] > 1e-8 {
			y[i] /= norm[i]
		}
	}
	return fitLength(y[FFTSize/2:], length)
}

// stretchSpectrum resamples spec in time by rate (rate > 1 is faster),
// keeping the phase advance of every bin coherent between columns.
func stretchSpectrum(spec [][]complex128, rate float64) [][]complex128 {
	if len(spec) == 0 {
		return nil
	}
	bins := len(spec[0])
	advance := make([]float64, bins)
	for k := range advance {
		advance[k] = math.Pi * HopLength * float64(k) / float64(bins-1)
	}
	phase := make([]float64, bins)
	for k, c := range spec[0] {
		phase[k] = cmplx.Phase(c)
	}

	silent := make([]complex128, bins)
	column := func(i int) []complex128 {
		if i < len(spec) {
			return spec[i]
		}
		return silent
	}

	var out [][]complex128
	for t := 0; ; t++ {
		step := float64(t) * rate
		if step >= float64(len(spec)) {
			break
		}
		i := int(step)
		alpha := step - float64(i)
		c0, c1 := column(i), column(i+1)

		col := make([]complex128, bins)
		for k := range col {
			mag := (1-alpha)*cmplx.Abs(c0[k]) + alpha*cmplx.Abs(c1[k])
			col[k] = cmplx.Rect(mag, phase[k])

			dphi := cmplx.Phase(c1[k]) - cmplx.Phase(c0[k]) - advance[k]
			dphi -= 2 * math.Pi * math.Round(dphi/(2*math.Pi))
			phase[k] += advance[k] + dphi
		}
		out = append(out, col)
	}
	return out
}

// Stretch changes the duration of samples by 1/rate without changing its
// pitch. The result holds round(len/rate) samples.
func Stretch(samples []float64, rate float64) []float64 {
	length := int(math.Round(float64(len(samples)) / rate))
	if len(samples) == 0 {
		return make([]float64, length)
	}
	v := newVocoder()
	return v.synthesize(stretchSpectrum(v.analyze(samples), rate), length)
}

func fitLength(s []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, s)
	return out
}
