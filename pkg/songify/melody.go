package songify

import (
	"strings"
	"unicode"
)

// motif is the repeating pattern of scale steps laid over each line.
var motif = [4]int{0, 2, 4, 6}

// isLineBreak reports whether r ends a line: CR, LF, VT, FF, FS, GS, RS,
// NEL, LS or PS.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// isSpace reports whether r separates words. The unit separator counts as
// space as well.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\x1f'
}

// Lines returns the non-blank lines of lyrics, each split into words.
func Lines(lyrics string) [][]string {
	var lines [][]string
	for _, line := range strings.FieldsFunc(lyrics, isLineBreak) {
		if words := strings.FieldsFunc(line, isSpace); len(words) > 0 {
			lines = append(lines, words)
		}
	}
	return lines
}

// Words returns every word of lyrics in reading order.
func Words(lyrics string) []string {
	var words []string
	for _, line := range Lines(lyrics) {
		words = append(words, line...)
	}
	return words
}

// BuildMelody returns one MIDI note per word of lyrics. The word at position
// w of line i sings scale step motif[(w+i)%4] of key, so every line starts
// one motif step later than the one before it.
func BuildMelody(lyrics string, key Key) []int {
	var melody []int
	for i, line := range Lines(lyrics) {
		for w := range line {
			melody = append(melody, key.Note(motif[(w+i)%len(motif)]))
		}
	}
	return melody
}

// PadMelody extends melody to at least n notes by repeating its last note.
// An empty melody is padded with DefaultNote.
func PadMelody(melody []int, n int) []int {
	if len(melody) >= n {
		return melody
	}
	last := DefaultNote
	if len(melody) > 0 {
		last = melody[len(melody)-1]
	}
	out := make([]int, n)
	copy(out, melody)
	for i := len(melody); i < n; i++ {
		out[i] = last
	}
	return out
}
