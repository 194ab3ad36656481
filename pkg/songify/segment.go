package songify

import "unicode/utf8"

// Segment is a contiguous range of samples [Start, End) sung on one note.
type Segment struct {
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Note  int    `json:"note" yaml:"note"`
	Word  string `json:"word,omitempty" yaml:"word,omitempty"`
}

// Len returns the number of samples in s.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Segments splits total samples into one segment per word of lyrics, sized
// in proportion to the word's character count (at least one character).
// Each segment gets floor(total * share) samples, minimum one, and the last
// segment always ends at total. Segments are gapless, in order, and cover
// [0, total); trailing segments may be empty when total is smaller than the
// word count. Lyrics without words yield a single segment over everything.
func Segments(lyrics string, total int) []Segment {
	total = max(total, 0)
	words := Words(lyrics)
	if len(words) == 0 {
		return []Segment{{Start: 0, End: total}}
	}

	weights := make([]float64, len(words))
	var sum float64
	for i, w := range words {
		weights[i] = float64(max(1, utf8.RuneCountInString(w)))
		sum += weights[i]
	}

	segs := make([]Segment, len(words))
	cursor := 0
	for i, w := range words {
		n := int(float64(total) * (weights[i] / sum))
		end := min(total, cursor+max(1, n))
		segs[i] = Segment{Start: cursor, End: end, Word: w}
		cursor = end
	}
	segs[len(segs)-1].End = total
	return segs
}

// Plan segments lyrics over total samples and assigns each segment its note
// from the melody of key, padded to the segment count.
func Plan(lyrics string, total int, key Key) []Segment {
	segs := Segments(lyrics, total)
	melody := PadMelody(BuildMelody(lyrics, key), len(segs))
	for i := range segs {
		segs[i].Note = melody[i]
	}
	return segs
}
