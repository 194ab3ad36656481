package songify

import (
	"fmt"
	"strings"
)

// Mode is the mode of a musical key.
type Mode int

const (
	Major Mode = iota
	Minor
)

var scales = [...][7]int{
	Major: {0, 2, 4, 5, 7, 9, 11},
	Minor: {0, 2, 3, 5, 7, 8, 10},
}

// Scale returns the ascending semitone offsets of the mode.
func (m Mode) Scale() [7]int {
	if m == Minor {
		return scales[Minor]
	}
	return scales[Major]
}

func (m Mode) String() string {
	if m == Minor {
		return "minor"
	}
	return "major"
}

// DefaultNote is the base note for tonics that are not recognized (middle C).
const DefaultNote = 60

var tonicNotes = map[string]int{
	"C": 60, "C#": 61, "Db": 61,
	"D": 62, "D#": 63, "Eb": 63,
	"E": 64,
	"F": 65, "F#": 66, "Gb": 66,
	"G": 67, "G#": 68, "Ab": 68,
	"A": 69, "A#": 70, "Bb": 70,
	"B": 71,
}

// Key is a tonic pitch class and a mode.
type Key struct {
	Tonic string
	Mode  Mode
}

// Base returns the MIDI note of the tonic in the octave starting at middle C.
func (k Key) Base() int {
	if n, ok := tonicNotes[k.Tonic]; ok {
		return n
	}
	return DefaultNote
}

// Note returns the MIDI note of the given scale step, wrapping steps past the
// seventh degree back into the scale.
func (k Key) Note(step int) int {
	scale := k.Mode.Scale()
	return k.Base() + scale[((step%7)+7)%7]
}

// String formats k the way ParseKey reads it, e.g. "C_minor".
func (k Key) String() string {
	return k.Tonic + "_" + k.Mode.String()
}

// UnknownKeyError reports the parts of a key name that were not recognized.
// Tonic and Mode hold the offending part, or are empty when that part parsed.
type UnknownKeyError struct {
	Input string
	Tonic string
	Mode  string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("songify: unrecognized key %q (tonic %q, mode %q)", e.Input, e.Tonic, e.Mode)
}

// ParseKey reads a key name of the form "Tonic_mode", e.g. "C_minor" or
// "f#_MAJOR". The mode defaults to major when absent.
//
// Parsing is lenient: an unknown tonic plays from middle C and an unknown
// mode plays as major. In that case the usable Key is returned together with
// an *UnknownKeyError so the caller can decide whether to accept it.
func ParseKey(s string) (Key, error) {
	tonic, mode, hasMode := strings.Cut(strings.TrimSpace(s), "_")
	if !hasMode {
		mode = "major"
	}
	k := Key{Tonic: capitalize(tonic), Mode: Major}

	_, known := tonicNotes[k.Tonic]
	badTonic := !known
	badMode := false
	switch strings.ToLower(mode) {
	case "major":
	case "minor":
		k.Mode = Minor
	default:
		badMode = true
	}

	if badTonic || badMode {
		e := &UnknownKeyError{Input: s}
		if badTonic {
			e.Tonic = tonic
		}
		if badMode {
			e.Mode = mode
		}
		return k, e
	}
	return k, nil
}

// capitalize upper-cases the first letter and lower-cases the rest, so "db"
// and "DB" both read as "Db".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
