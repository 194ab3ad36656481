package songify

import (
	"bytes"
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestWriteMelody(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMelody(&buf, "one two\nthree", Key{"C", Minor}, 90); err != nil {
		t.Fatal(err)
	}

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Tracks) != 1 {
		t.Fatalf("tracks = %d", len(s.Tracks))
	}

	var notes []uint8
	var lyrics []string
	var bpm float64
	for _, ev := range s.Tracks[0] {
		var ch, key, vel uint8
		if midi.Message(ev.Message).GetNoteOn(&ch, &key, &vel) && vel > 0 {
			notes = append(notes, key)
		}
		var lyric string
		if ev.Message.GetMetaLyric(&lyric) {
			lyrics = append(lyrics, lyric)
		}
		var tempo float64
		if ev.Message.GetMetaTempo(&tempo) {
			bpm = tempo
		}
	}

	wantNotes := []uint8{60, 63, 63}
	if len(notes) != len(wantNotes) {
		t.Fatalf("notes = %v, want %v", notes, wantNotes)
	}
	for i := range wantNotes {
		if notes[i] != wantNotes[i] {
			t.Errorf("note %d = %d, want %d", i, notes[i], wantNotes[i])
		}
	}
	wantLyrics := []string{"one", "two", "three"}
	for i := range wantLyrics {
		if i >= len(lyrics) || lyrics[i] != wantLyrics[i] {
			t.Fatalf("lyrics = %v, want %v", lyrics, wantLyrics)
		}
	}
	if bpm < 89.9 || bpm > 90.1 {
		t.Errorf("tempo = %v, want 90", bpm)
	}
}

func TestWriteMelodyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide", "melody.mid")
	if err := WriteMelodyFile(path, "la la la", Key{"G", Major}, 0); err != nil {
		t.Fatal(err)
	}
	s, err := smf.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("guide: %d events", len(s.Tracks[0]))
}
