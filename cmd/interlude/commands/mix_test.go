package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/haivivi/interlude/pkg/audio/audiofile"
	"github.com/haivivi/interlude/pkg/audio/pcm"
)

type mixJSON struct {
	Output string `json:"output"`
	Window struct {
		StartMs int `json:"start_ms"`
		EndMs   int `json:"end_ms"`
	} `json:"window"`
	SongSynthesized   bool   `json:"song_synthesized"`
	InsertSynthesized bool   `json:"insert_synthesized"`
	Duration          string `json:"duration"`
}

func TestMixFlags(t *testing.T) {
	setupTestEnv(t)
	song := writeAudio(t, "song.wav", pcm.Sine(220, 4*testRate, testRate, 0.4))
	insert := writeAudio(t, "ad.wav", pcm.Voice(300, 2*testRate, testRate, 0.5))
	out := filepath.Join(t.TempDir(), "mixed.wav")

	stdout, stderr, code := runCmd(t, "mix", "--song", song, "--insert", insert,
		"--start-ms", "1000", "--end-ms", "3000", "-o", out, "--format", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}

	var res mixJSON
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if res.Output != out || res.Window.StartMs != 1000 || res.Window.EndMs != 3000 {
		t.Errorf("result = %+v", res)
	}
	if res.Duration != "4.0s" {
		t.Errorf("duration = %q", res.Duration)
	}

	b, err := audiofile.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 4*testRate {
		t.Errorf("output samples = %d, want %d", b.Len(), 4*testRate)
	}
}

func TestMixRequestFile(t *testing.T) {
	outDir := setupTestEnv(t)
	song := writeAudio(t, "summer.wav", pcm.Sine(220, 3*testRate, testRate, 0.4))
	insert := writeAudio(t, "ad.wav", pcm.Sine(660, testRate, testRate, 0.4))
	req := writeTestYAML(t, "mix.yaml", "song: "+song+"\ninsert: "+insert+"\nstart_ms: 500\nend_ms: 1500\n")

	stdout, stderr, code := runCmd(t, "mix", "-f", req, "--end-ms", "2500", "--format", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var res mixJSON
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if res.Window.StartMs != 500 || res.Window.EndMs != 2500 {
		t.Errorf("window = %+v, want flag to override end", res.Window)
	}
	if filepath.Dir(res.Output) != outDir {
		t.Errorf("output %q not in %q", res.Output, outDir)
	}
	name := filepath.Base(res.Output)
	if !strings.HasPrefix(name, "summer_") || !strings.HasSuffix(name, "_with_ad.wav") {
		t.Errorf("output name = %q", name)
	}
	if _, err := os.Stat(res.Output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestMixSynthesizesMissingWAV(t *testing.T) {
	setupTestEnv(t)
	dir := t.TempDir()

	stdout, stderr, code := runCmd(t, "mix",
		"--song", filepath.Join(dir, "song.wav"),
		"--insert", filepath.Join(dir, "ad.wav"),
		"--start-ms", "10000", "--end-ms", "15000",
		"-o", filepath.Join(dir, "out.wav"), "--format", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var res mixJSON
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if !res.SongSynthesized || !res.InsertSynthesized {
		t.Errorf("result = %+v, want both assets synthesized", res)
	}
	if res.Duration != "20.0s" {
		t.Errorf("duration = %q, want 20.0s", res.Duration)
	}
}

func TestMixErrors(t *testing.T) {
	setupTestEnv(t)
	dir := t.TempDir()
	song := filepath.Join(dir, "song.wav")
	insert := filepath.Join(dir, "ad.wav")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no song", []string{"mix", "--insert", insert, "--end-ms", "100"}, "song is required"},
		{"no insert", []string{"mix", "--song", song, "--end-ms", "100"}, "insert is required"},
		{"inverted window", []string{"mix", "--song", song, "--insert", insert, "--start-ms", "500", "--end-ms", "100"}, "must be greater"},
		{"negative start", []string{"mix", "--song", song, "--insert", insert, "--start-ms=-5", "--end-ms", "100"}, "must not be negative"},
		{"missing mp3", []string{"mix", "--song", filepath.Join(dir, "song.mp3"), "--insert", insert, "--end-ms", "100"}, "missing asset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runCmd(t, tt.args...)
			if code == 0 {
				t.Fatal("expected failure")
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want %q", stderr, tt.want)
			}
		})
	}
}
