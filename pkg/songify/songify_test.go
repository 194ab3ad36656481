package songify

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/haivivi/interlude/pkg/audio/audiofile"
	"github.com/haivivi/interlude/pkg/audio/pcm"
	"github.com/haivivi/interlude/pkg/audio/silence"
)

const workingRate = 44100

// speech returns three seconds of voiced syllables with short pauses, a
// stand-in for text-to-speech output.
func speech() *pcm.Buffer {
	b := pcm.NewBuffer(workingRate, 3*workingRate)
	syllables := []struct {
		freq       float64
		start, len int
	}{
		{140, 2000, 35000},
		{170, 42000, 35000},
		{125, 82000, 48000},
	}
	for _, s := range syllables {
		b.Overlay(pcm.Voice(s.freq, s.len, workingRate, 0.6), s.start)
	}
	return b
}

func writeSpeech(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "speech.wav")
	if err := audiofile.Save(path, speech()); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunTalkSing(t *testing.T) {
	in := writeSpeech(t)
	out := filepath.Join(t.TempDir(), "generated", "job_songified.wav")

	var calls, lastDone, lastTotal int
	res, err := Run(Request{
		Input:  in,
		Lyrics: "one two\nthree",
		BPM:    120,
		Key:    Key{"C", Minor},
		Style:  TalkSing,
		Output: out,
	}, WithProgress(func(done, total int) {
		calls++
		lastDone, lastTotal = done, total
	}))
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(res.Segments))
	}
	melody := PadMelody(BuildMelody("one two\nthree", Key{"C", Minor}), len(res.Segments))
	if len(melody) != 3 {
		t.Errorf("melody length = %d, want 3", len(melody))
	}
	if calls != 3 || lastDone != 3 || lastTotal != 3 {
		t.Errorf("progress: %d calls, last %d/%d", calls, lastDone, lastTotal)
	}

	b, err := audiofile.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	fade := b.SamplesIn(CrossfadeDuration)
	want := 3 * workingRate
	t.Logf("output %d samples (input %d), peak %.4f", b.Len(), want, b.Peak())
	if d := want - b.Len(); d < 0 || d > (len(res.Segments)-1)*fade {
		t.Errorf("length = %d, want %d minus at most %d crossfade samples", b.Len(), want, (len(res.Segments)-1)*fade)
	}
	if b.Peak() > PeakLevel+1.0/32768 {
		t.Errorf("peak = %v, want <= %v", b.Peak(), PeakLevel)
	}
	if math.Abs(b.Peak()-PeakLevel) > 2.0/32768 {
		t.Errorf("peak = %v, want normalized to %v", b.Peak(), PeakLevel)
	}
	if res.Output != out || res.Passthrough {
		t.Errorf("result = %+v", res)
	}
}

func TestRunRapDiffersFromTalkSing(t *testing.T) {
	in := writeSpeech(t)
	dir := t.TempDir()

	rms := make(map[Style]float64)
	for _, style := range []Style{TalkSing, Rap} {
		out := filepath.Join(dir, style.String()+".wav")
		if _, err := Run(Request{
			Input:  in,
			Lyrics: "one two\nthree",
			Key:    Key{"C", Minor},
			Style:  style,
			Output: out,
		}); err != nil {
			t.Fatal(err)
		}
		b, err := audiofile.Load(out)
		if err != nil {
			t.Fatal(err)
		}
		rms[style] = b.RMS()
	}
	t.Logf("rms talk_sing=%.5f rap=%.5f", rms[TalkSing], rms[Rap])
	if math.Abs(rms[TalkSing]-rms[Rap]) < 1e-4 {
		t.Error("rap doubling did not change the energy")
	}
}

func TestRunEmptyInputPassesThrough(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.wav")
	if err := silence.Synthesize(in, 0); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out", "empty_songified.wav")
	res, err := Run(Request{Input: in, Lyrics: "hello there", Style: Rap, Output: out})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Passthrough {
		t.Error("Passthrough = false")
	}
	b, err := audiofile.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 0 {
		t.Errorf("output has %d samples", b.Len())
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.wav")
	_, err := Run(Request{Input: filepath.Join(dir, "nope.wav"), Output: out})
	if err == nil {
		t.Fatal("Run succeeded without input")
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Error("output written despite missing input")
	}
}

func TestProcessSilentInput(t *testing.T) {
	in := pcm.NewBuffer(workingRate, workingRate)
	out, segs, err := Process(in, "quiet words here", Key{"C", Major}, Chant)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 3 {
		t.Errorf("segments = %d", len(segs))
	}
	if out.Peak() != 0 {
		t.Errorf("silent input produced peak %v", out.Peak())
	}
	if in.Peak() != 0 || in.Len() != workingRate {
		t.Error("input modified")
	}
}

func TestProcessDoesNotModifyInput(t *testing.T) {
	in := speech()
	want := in.Clone()
	if _, _, err := Process(in, "one two three", Key{"D", Major}, Rap); err != nil {
		t.Fatal(err)
	}
	for i := range want.Samples {
		if in.Samples[i] != want.Samples[i] {
			t.Fatalf("input sample %d modified", i)
		}
	}
}
