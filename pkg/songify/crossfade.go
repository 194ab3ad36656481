package songify

// Stitch concatenates parts in order, blending each boundary over fade
// samples with a linear ramp. The overlap shrinks to the shorter of the two
// parts when either is shorter than fade. The first sample of a part is
// never blended with anything before the sequence, nor the last with
// anything after it.
func Stitch(parts [][]float64, fade int) []float64 {
	if len(parts) == 0 {
		return nil
	}
	out := make([]float64, 0, totalLen(parts))
	out = append(out, parts[0]...)
	for _, p := range parts[1:] {
		f := min(fade, len(out), len(p))
		if f <= 0 {
			out = append(out, p...)
			continue
		}
		tail := out[len(out)-f:]
		for i := range f {
			t := ramp(i, f)
			tail[i] = tail[i]*(1-t) + p[i]*t
		}
		out = append(out, p[f:]...)
	}
	return out
}

// ramp returns the i-th of n points spaced evenly from 0 to 1 inclusive.
func ramp(i, n int) float64 {
	if n <= 1 {
		return 1
	}
	return float64(i) / float64(n-1)
}

func totalLen(parts [][]float64) int {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	return n
}
