package songify

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	// DefaultBPM is the tempo used when none is given.
	DefaultBPM = 120

	guideVelocity = 96
)

// WriteMelody writes the melody of lyrics in key as a single-track Standard
// MIDI File: one quarter note per word at bpm, each preceded by the word as
// a lyric event. It is a guide for a singer or a synth, the rendition
// itself does not depend on it.
func WriteMelody(w io.Writer, lyrics string, key Key, bpm int) error {
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	clock := smf.MetricTicks(960)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("melody "+key.String()))
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(float64(bpm)))

	words := Words(lyrics)
	melody := BuildMelody(lyrics, key)
	for i, note := range melody {
		n := uint8(note)
		tr.Add(0, smf.MetaLyric(words[i]))
		tr.Add(0, midi.NoteOn(0, n, guideVelocity))
		tr.Add(clock.Ticks4th(), midi.NoteOff(0, n))
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("songify: midi track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("songify: write midi: %w", err)
	}
	return nil
}

// WriteMelodyFile writes the melody guide to path, creating parent
// directories.
func WriteMelodyFile(path, lyrics string, key Key, bpm int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("songify: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("songify: %w", err)
	}
	if err := WriteMelody(f, lyrics, key, bpm); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
