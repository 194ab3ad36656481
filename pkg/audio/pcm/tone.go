package pcm

import "math"

// Sine returns n samples of a pure sine wave at freq Hz with the given peak
// amplitude.
func Sine(freq float64, n, rate int, amp float64) *Buffer {
	b := NewBuffer(rate, n)
	for i := range n {
		t := float64(i) / float64(rate)
		b.Samples[i] = amp * math.Sin(2*math.Pi*freq*t)
	}
	return b
}

// Voice returns n samples of a harmonic tone at freq Hz, shaped like a sung
// vowel: a handful of decaying partials under a soft attack and release.
// Its fundamental dominates, so pitch trackers lock onto freq.
func Voice(freq float64, n, rate int, amp float64) *Buffer {
	partials := []struct {
		ratio float64
		level float64
	}{
		{1, 1.0},
		{2, 0.5},
		{3, 0.3},
		{4, 0.15},
		{5, 0.08},
	}

	b := NewBuffer(rate, n)
	attack := max(1, rate/100)
	release := max(1, rate/50)
	for i := range n {
		t := float64(i) / float64(rate)
		var v float64
		for _, p := range partials {
			v += p.level * math.Sin(2*math.Pi*freq*p.ratio*t)
		}
		v /= 2.03

		env := 1.0
		if i < attack {
			env = float64(i) / float64(attack)
		}
		if tail := n - 1 - i; tail < release {
			env = math.Min(env, float64(tail)/float64(release))
		}
		b.Samples[i] = amp * env * v
	}
	return b
}
