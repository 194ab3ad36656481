package songify

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haivivi/interlude/pkg/audio/pcm"
	"github.com/haivivi/interlude/pkg/audio/pitch"
)

// Timbre is the tone a melody preview is played with.
type Timbre int

const (
	// TimbreVoice is a vowel-like harmonic tone.
	TimbreVoice Timbre = iota
	// TimbreSine is a pure sine.
	TimbreSine
)

// ErrUnknownTimbre is returned by ParseTimbre.
var ErrUnknownTimbre = errors.New("songify: unknown timbre")

const (
	previewLevel = 0.5
	sineEdge     = 5 * time.Millisecond
)

func (t Timbre) String() string {
	if t == TimbreSine {
		return "sine"
	}
	return "voice"
}

// ParseTimbre parses "voice" or "sine".
func ParseTimbre(s string) (Timbre, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "voice", "":
		return TimbreVoice, nil
	case "sine":
		return TimbreSine, nil
	}
	return 0, fmt.Errorf("%w %q (want voice or sine)", ErrUnknownTimbre, s)
}

// RenderMelody plays the melody of lyrics in key at rate: one note per word,
// each one beat long at bpm. It is the audible counterpart of WriteMelody.
// Lyrics without words render as an empty buffer.
func RenderMelody(lyrics string, key Key, bpm, rate int, timbre Timbre) *pcm.Buffer {
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	melody := BuildMelody(lyrics, key)
	beat := rate * 60 / bpm
	out := pcm.NewBuffer(rate, beat*len(melody))
	for i, note := range melody {
		out.Overlay(tone(pitch.MIDIToHz(float64(note)), beat, rate, timbre), i*beat)
	}
	return out
}

func tone(freq float64, n, rate int, timbre Timbre) *pcm.Buffer {
	if timbre == TimbreVoice {
		return pcm.Voice(freq, n, rate, previewLevel)
	}
	b := pcm.Sine(freq, n, rate, previewLevel)
	if edge := b.SamplesIn(sineEdge); b.Len() > 2*edge {
		b.FadeIn(edge)
		b.FadeOut(edge)
	}
	return b
}
