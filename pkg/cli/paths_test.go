package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSongID(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"assets/songs/summer.wav", "summer"},
		{"summer.mp3", "summer"},
		{"/abs/dir/track.01.wav", "track.01"},
		{"noext", "noext"},
		{"", "song"},
		{"/", "song"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := SongID(tt.path); got != tt.want {
				t.Errorf("SongID(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestPaths_Dir(t *testing.T) {
	if got := (Paths{}).Dir(); got != DefaultOutputDir {
		t.Errorf("Dir() = %q, want %q", got, DefaultOutputDir)
	}
	if got := (Paths{OutputDir: "out"}).Dir(); got != "out" {
		t.Errorf("Dir() = %q, want %q", got, "out")
	}
}

func TestPaths_Outputs(t *testing.T) {
	job := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	p := Paths{OutputDir: "gen"}

	if got, want := p.MixOutput("songs/summer.wav", job), filepath.Join("gen", "summer_6ba7b810-9dad-11d1-80b4-00c04fd430c8_with_ad.wav"); got != want {
		t.Errorf("MixOutput = %q, want %q", got, want)
	}
	if got, want := p.SongifyOutput(job), filepath.Join("gen", "6ba7b810-9dad-11d1-80b4-00c04fd430c8_songified.wav"); got != want {
		t.Errorf("SongifyOutput = %q, want %q", got, want)
	}
	if got := p.MelodyOutput(job); !strings.HasSuffix(got, "_melody.mid") {
		t.Errorf("MelodyOutput = %q", got)
	}
	if got, want := p.MelodyPreviewOutput(job), filepath.Join("gen", "6ba7b810-9dad-11d1-80b4-00c04fd430c8_melody.wav"); got != want {
		t.Errorf("MelodyPreviewOutput = %q, want %q", got, want)
	}
}

func TestNewJobID_Unique(t *testing.T) {
	seen := make(map[uuid.UUID]bool)
	for range 100 {
		id := NewJobID()
		if seen[id] {
			t.Fatalf("duplicate job id %s", id)
		}
		seen[id] = true
	}
}
