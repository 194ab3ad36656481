package pitch

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// FrameLength is the analysis frame size in samples.
	FrameLength = 2048
	// HopLength is the distance between frame starts in samples.
	HopLength = 512
	// Threshold is the YIN absolute threshold on the normalized difference.
	Threshold = 0.1

	// silenceFloor is the mean square below which a frame is unvoiced.
	silenceFloor = 1e-10
)

// Range bounds the frequencies the estimator may report.
type Range struct {
	Min, Max float64
}

// Voice is the range of a speaking or singing human voice.
var Voice = Range{Min: 80, Max: 400}

// Track returns one f0 estimate per frame in Hz. Unvoiced frames are NaN.
// Frames are centered: frame i covers samples around i*HopLength.
func Track(samples []float64, rate int, r Range) []float64 {
	if rate <= 0 || r.Min <= 0 || r.Max <= r.Min {
		return nil
	}
	tauMin := max(1, int(math.Floor(float64(rate)/r.Max)))
	tauMax := min(FrameLength-1, int(math.Ceil(float64(rate)/r.Min)))
	if tauMax <= tauMin+1 {
		return nil
	}
	w := FrameLength - tauMax

	pad := FrameLength / 2
	x := make([]float64, len(samples)+2*pad)
	copy(x[pad:], samples)

	frames := 1 + (len(x)-FrameLength)/HopLength
	out := make([]float64, frames)
	cmnd := make([]float64, tauMax+1)

	for f := range frames {
		frame := x[f*HopLength : f*HopLength+FrameLength]
		if floats.Dot(frame, frame)/FrameLength < silenceFloor {
			out[f] = math.NaN()
			continue
		}

		head := frame[:w]
		e0 := floats.Dot(head, head)
		eTau := e0
		var cum float64
		cmnd[0] = 1
		for tau := 1; tau <= tauMax; tau++ {
			in, outgoing := frame[tau-1+w], frame[tau-1]
			eTau += in*in - outgoing*outgoing
			d := e0 + eTau - 2*floats.Dot(head, frame[tau:tau+w])
			if d < 0 {
				d = 0
			}
			cum += d
			if cum > 0 {
				cmnd[tau] = d * float64(tau) / cum
			} else {
				cmnd[tau] = 1
			}
		}

		period := refine(cmnd, pickPeriod(cmnd, tauMin, tauMax), tauMax)
		out[f] = float64(rate) / period
	}
	return out
}

// pickPeriod returns the first dip below Threshold, walked down to its local
// minimum, or the global minimum when nothing crosses the threshold.
func pickPeriod(cmnd []float64, tauMin, tauMax int) int {
	for tau := tauMin; tau < tauMax; tau++ {
		if cmnd[tau] < Threshold {
			for tau+1 < tauMax && cmnd[tau+1] < cmnd[tau] {
				tau++
			}
			return tau
		}
	}
	return tauMin + floats.MinIdx(cmnd[tauMin:tauMax+1])
}

// refine fits a parabola through the dip and its neighbours.
func refine(cmnd []float64, tau, tauMax int) float64 {
	if tau < 1 || tau+1 > tauMax {
		return float64(tau)
	}
	a, b, c := cmnd[tau-1], cmnd[tau], cmnd[tau+1]
	denom := a - 2*b + c
	if denom == 0 {
		return float64(tau)
	}
	shift := 0.5 * (a - c) / denom
	if math.Abs(shift) > 1 {
		return float64(tau)
	}
	return float64(tau) + shift
}

// Estimate returns the median f0 over the voiced frames of samples. It
// reports false when no frame is voiced.
func Estimate(samples []float64, rate int, r Range) (float64, bool) {
	var voiced []float64
	for _, f0 := range Track(samples, rate, r) {
		if !math.IsNaN(f0) && !math.IsInf(f0, 0) && f0 > 0 {
			voiced = append(voiced, f0)
		}
	}
	if len(voiced) == 0 {
		return 0, false
	}
	sort.Float64s(voiced)
	return stat.Quantile(0.5, stat.Empirical, voiced, nil), true
}
