package cli

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultOutputDir is where generated audio goes when no directory is
// configured.
const DefaultOutputDir = "generated"

// Paths names the files a job writes.
type Paths struct {
	// OutputDir holds generated audio. Empty means DefaultOutputDir.
	OutputDir string
}

// NewJobID returns a fresh job identifier.
func NewJobID() uuid.UUID {
	return uuid.New()
}

// Dir returns the output directory.
func (p Paths) Dir() string {
	if p.OutputDir == "" {
		return DefaultOutputDir
	}
	return p.OutputDir
}

// MixOutput returns <dir>/<song-id>_<job>_with_ad.wav.
func (p Paths) MixOutput(song string, job uuid.UUID) string {
	return filepath.Join(p.Dir(), SongID(song)+"_"+job.String()+"_with_ad.wav")
}

// SongifyOutput returns <dir>/<job>_songified.wav.
func (p Paths) SongifyOutput(job uuid.UUID) string {
	return filepath.Join(p.Dir(), job.String()+"_songified.wav")
}

// MelodyOutput returns <dir>/<job>_melody.mid.
func (p Paths) MelodyOutput(job uuid.UUID) string {
	return filepath.Join(p.Dir(), job.String()+"_melody.mid")
}

// MelodyPreviewOutput returns <dir>/<job>_melody.wav.
func (p Paths) MelodyPreviewOutput(job uuid.UUID) string {
	return filepath.Join(p.Dir(), job.String()+"_melody.wav")
}

// SongID derives a song identifier from its file name, dropping the
// directory and extension. An empty path yields "song".
func SongID(path string) string {
	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	if id == "" || id == "." || id == string(filepath.Separator) {
		return "song"
	}
	return id
}
