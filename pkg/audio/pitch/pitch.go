package pitch

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/haivivi/interlude/pkg/audio/resampler"
)

// MIDIToHz returns the equal-tempered frequency of a MIDI note number, with
// note 69 at 440 Hz.
func MIDIToHz(note float64) float64 {
	return 440 * math.Pow(2, (note-69)/12)
}

// Semitones returns the interval from one frequency to another.
func Semitones(from, to float64) float64 {
	return 12 * math.Log2(to/from)
}

// Shift moves the pitch of samples by the given number of semitones while
// keeping its length. Shifts smaller than a millionth of a semitone return
// a copy of the input.
func Shift(samples []float64, rate int, semitones float64) ([]float64, error) {
	if len(samples) == 0 || math.Abs(semitones) < 1e-6 {
		return fitLength(samples, len(samples)), nil
	}
	ratio := math.Pow(2, semitones/12)
	stretched := Stretch(samples, 1/ratio)
	out, err := resampler.Resample(stretched, float64(rate)*ratio, float64(rate))
	if err != nil {
		return nil, fmt.Errorf("pitch: shift %.3f semitones: %w", semitones, err)
	}
	return fitLength(out, len(samples)), nil
}

// ToNote reshapes samples so that their estimated pitch lands on the given
// MIDI note. It returns the applied shift in semitones. Segments without a
// voiced frame are returned unchanged with a shift of zero.
func ToNote(samples []float64, rate, note int) ([]float64, float64, error) {
	f0, ok := Estimate(samples, rate, Voice)
	if !ok {
		slog.Debug("no pitch found, segment left unchanged", "samples", len(samples))
		return fitLength(samples, len(samples)), 0, nil
	}
	st := Semitones(f0, MIDIToHz(float64(note)))
	slog.Debug("pitch shift", "f0", f0, "note", note, "semitones", st)
	out, err := Shift(samples, rate, st)
	if err != nil {
		return nil, 0, err
	}
	return out, st, nil
}
