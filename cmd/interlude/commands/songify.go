package commands

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/haivivi/interlude/pkg/cli"
	"github.com/haivivi/interlude/pkg/songify"
)

var (
	songifyRequestFile string
	songifyInput       string
	songifyLyrics      string
	songifyLyricsFile  string
	songifyBPM         int
	songifyKey         string
	songifyStyle       string
	songifyOutput      string
	songifyMelodyMIDI  string
	songifyStrictKey   bool
	songifyNoProgress  bool
)

// songifyJob is the request file layout for the songify command.
type songifyJob struct {
	Input      string `json:"input" yaml:"input"`
	Lyrics     string `json:"lyrics,omitempty" yaml:"lyrics,omitempty"`
	LyricsFile string `json:"lyrics_file,omitempty" yaml:"lyrics_file,omitempty"`
	BPM        int    `json:"bpm,omitempty" yaml:"bpm,omitempty"`
	Key        string `json:"key,omitempty" yaml:"key,omitempty"`
	Style      string `json:"style,omitempty" yaml:"style,omitempty"`
	Output     string `json:"output,omitempty" yaml:"output,omitempty"`
	MelodyMIDI string `json:"melody_midi,omitempty" yaml:"melody_midi,omitempty"`
}

// songifyReport is what the songify command prints.
type songifyReport struct {
	Output      string            `json:"output" yaml:"output"`
	MelodyMIDI  string            `json:"melody_midi,omitempty" yaml:"melody_midi,omitempty"`
	Key         string            `json:"key" yaml:"key"`
	Style       string            `json:"style" yaml:"style"`
	BPM         int               `json:"bpm" yaml:"bpm"`
	Duration    cli.Duration      `json:"duration" yaml:"duration"`
	Size        cli.Bytes         `json:"size,omitempty" yaml:"size,omitempty"`
	Passthrough bool              `json:"passthrough,omitempty" yaml:"passthrough,omitempty"`
	Segments    []songify.Segment `json:"segments,omitempty" yaml:"segments,omitempty"`
}

var songifyCmd = &cobra.Command{
	Use:   "songify",
	Short: "Turn spoken lyrics into a sung rendition",
	Long: `Cut a spoken recording into one segment per lyric word, pitch each
segment onto a simple melody in the chosen key, and crossfade the pieces.

Keys are written <Tonic>_<mode>, for example C_minor, F#_major or Bb_minor.
Styles: talk_sing (default), chant, rap.

Request file example (songify.yaml):

  input: takes/verse.wav
  lyrics_file: lyrics/verse.txt
  key: A_minor
  style: chant

Flags override values from the request file.`,
	Args: cobra.NoArgs,
	RunE: runSongify,
}

func init() {
	f := songifyCmd.Flags()
	f.StringVarP(&songifyRequestFile, "file", "f", "", "request file (YAML or JSON, - for stdin)")
	f.StringVarP(&songifyInput, "input", "i", "", "spoken input audio file")
	f.StringVarP(&songifyLyrics, "lyrics", "l", "", "lyrics text")
	f.StringVar(&songifyLyricsFile, "lyrics-file", "", "file holding the lyrics")
	f.IntVar(&songifyBPM, "bpm", 0, "tempo for the melody guide (default from settings)")
	f.StringVarP(&songifyKey, "key", "k", "", "musical key, e.g. C_minor (default from settings)")
	f.StringVarP(&songifyStyle, "style", "s", "", "talk_sing, chant or rap (default from settings)")
	f.StringVarP(&songifyOutput, "output", "o", "", "output file (default <output_dir>/<job>_songified.wav)")
	f.StringVar(&songifyMelodyMIDI, "melody-midi", "", `also write the melody as a MIDI file ("auto" for <output_dir>/<job>_melody.mid)`)
	f.BoolVar(&songifyStrictKey, "strict-key", false, "reject keys that are not recognized instead of falling back")
	f.BoolVar(&songifyNoProgress, "no-progress", false, "disable the progress bar")

	rootCmd.AddCommand(songifyCmd)
}

func runSongify(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	var job songifyJob
	if songifyRequestFile != "" {
		if err := cli.LoadRequest(songifyRequestFile, &job); err != nil {
			return err
		}
	}
	f := cmd.Flags()
	if f.Changed("input") {
		job.Input = songifyInput
	}
	if f.Changed("lyrics") {
		job.Lyrics = songifyLyrics
		job.LyricsFile = ""
	}
	if f.Changed("lyrics-file") {
		job.LyricsFile = songifyLyricsFile
	}
	if f.Changed("bpm") {
		job.BPM = songifyBPM
	}
	if f.Changed("key") {
		job.Key = songifyKey
	}
	if f.Changed("style") {
		job.Style = songifyStyle
	}
	if f.Changed("output") {
		job.Output = songifyOutput
	}
	if f.Changed("melody-midi") {
		job.MelodyMIDI = songifyMelodyMIDI
	}
	if job.BPM <= 0 {
		job.BPM = cfg.Songify.BPM
	}
	if job.Key == "" {
		job.Key = cfg.Songify.Key
	}
	if job.Style == "" {
		job.Style = cfg.Songify.Style
	}

	if job.Input == "" {
		return errors.New("input is required (--input or request file)")
	}
	if job.LyricsFile != "" {
		if job.Lyrics, err = cli.LoadText(job.LyricsFile); err != nil {
			return err
		}
	}
	if len(songify.Words(job.Lyrics)) == 0 {
		cli.PrintWarning("lyrics have no words; the input will be pitched as a single segment")
	}

	key, err := parseKey(job.Key, songifyStrictKey)
	if err != nil {
		return err
	}
	style, err := songify.ParseStyle(job.Style)
	if err != nil {
		return err
	}

	jobID := cli.NewJobID()
	paths := cli.Paths{OutputDir: cfg.OutputDir}
	if job.Output == "" {
		job.Output = paths.SongifyOutput(jobID)
	}
	if job.MelodyMIDI == autoPath {
		job.MelodyMIDI = paths.MelodyOutput(jobID)
	}

	opts := []songify.Option{songify.WithBitrate(cfg.Mix.BitrateKbps)}
	bar := newSegmentProgress(!songifyNoProgress && formatOutput != string(cli.FormatJSON))
	if bar != nil {
		opts = append(opts, songify.WithProgress(bar.update))
	}

	res, err := songify.Run(songify.Request{
		Input:  job.Input,
		Lyrics: job.Lyrics,
		BPM:    job.BPM,
		Key:    key,
		Style:  style,
		Output: job.Output,
	}, opts...)
	bar.finish(err == nil)
	if err != nil {
		return explain(err)
	}

	if job.MelodyMIDI != "" {
		if err := songify.WriteMelodyFile(job.MelodyMIDI, job.Lyrics, key, job.BPM); err != nil {
			return err
		}
	}

	return printResult(cmd, songifyReport{
		Output:      res.Output,
		MelodyMIDI:  job.MelodyMIDI,
		Key:         res.Key,
		Style:       res.Style,
		BPM:         job.BPM,
		Duration:    cli.Duration(res.Duration),
		Size:        fileSize(res.Output),
		Passthrough: res.Passthrough,
		Segments:    res.Segments,
	})
}

// autoPath asks for a generated file name in the output directory.
const autoPath = "auto"

// parseKey parses a key flag. Unknown tonics and modes fall back to note 60
// and major with a warning, or fail when strict is set.
func parseKey(s string, strict bool) (songify.Key, error) {
	key, err := songify.ParseKey(s)
	if err != nil {
		if strict {
			return songify.Key{}, err
		}
		slog.Warn("key not recognized, using fallback", "key", s, "using", key.String())
	}
	return key, nil
}

// segmentProgress renders per-segment progress on stderr. The bar is
// created on the first update, once the segment count is known.
type segmentProgress struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

func newSegmentProgress(enabled bool) *segmentProgress {
	if !enabled {
		return nil
	}
	return &segmentProgress{p: mpb.New(mpb.WithWidth(64), mpb.WithOutput(os.Stderr))}
}

func (s *segmentProgress) update(done, total int) {
	if s.bar == nil {
		s.bar = s.p.AddBar(int64(total),
			mpb.PrependDecorators(
				decor.Name("Segments: "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(
				decor.Percentage(),
			),
		)
	}
	s.bar.SetCurrent(int64(done))
}

// finish waits for the bar to render. A failed job aborts the bar so Wait
// does not block on an incomplete total.
func (s *segmentProgress) finish(ok bool) {
	if s == nil {
		return
	}
	if s.bar != nil && (!ok || !s.bar.Completed()) {
		s.bar.Abort(false)
	}
	s.p.Wait()
}

