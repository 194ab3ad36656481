package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/interlude/pkg/audio/audiofile"
	"github.com/haivivi/interlude/pkg/audio/ffmpeg"
	"github.com/haivivi/interlude/pkg/cli"
	"github.com/haivivi/interlude/pkg/insertion"
)

var (
	mixRequestFile string
	mixSong        string
	mixInsert      string
	mixStartMs     int
	mixEndMs       int
	mixOutput      string
	mixBitrate     int
)

// mixJob is the request file layout for the mix command.
type mixJob struct {
	Song        string `json:"song" yaml:"song"`
	Insert      string `json:"insert" yaml:"insert"`
	StartMs     int    `json:"start_ms" yaml:"start_ms"`
	EndMs       int    `json:"end_ms" yaml:"end_ms"`
	Output      string `json:"output,omitempty" yaml:"output,omitempty"`
	BitrateKbps int    `json:"bitrate_kbps,omitempty" yaml:"bitrate_kbps,omitempty"`
}

// mixReport is what the mix command prints.
type mixReport struct {
	Output            string           `json:"output" yaml:"output"`
	Window            insertion.Window `json:"window" yaml:"window"`
	SongSynthesized   bool             `json:"song_synthesized,omitempty" yaml:"song_synthesized,omitempty"`
	InsertSynthesized bool             `json:"insert_synthesized,omitempty" yaml:"insert_synthesized,omitempty"`
	Duration          cli.Duration     `json:"duration" yaml:"duration"`
	Size              cli.Bytes        `json:"size,omitempty" yaml:"size,omitempty"`
}

var mixCmd = &cobra.Command{
	Use:   "mix",
	Short: "Overlay a voice insert onto a song",
	Long: `Overlay a voice insert onto a song inside [start, end) milliseconds.

The song is ducked by 8 dB inside the window and the insert, faded and given
a short echo, is laid on top. Audio outside the window is untouched. The
window is clamped to the song. A missing WAV song or insert is replaced by
silence.

Request file example (mix.yaml):

  song: assets/songs/summer.wav
  insert: assets/ads/promo.wav
  start_ms: 10000
  end_ms: 15000

Flags override values from the request file.`,
	Args: cobra.NoArgs,
	RunE: runMix,
}

func init() {
	f := mixCmd.Flags()
	f.StringVarP(&mixRequestFile, "file", "f", "", "request file (YAML or JSON, - for stdin)")
	f.StringVar(&mixSong, "song", "", "song audio file")
	f.StringVar(&mixInsert, "insert", "", "voice insert audio file")
	f.IntVar(&mixStartMs, "start-ms", 0, "window start in milliseconds")
	f.IntVar(&mixEndMs, "end-ms", 0, "window end in milliseconds")
	f.StringVarP(&mixOutput, "output", "o", "", "output file (default <output_dir>/<song>_<job>_with_ad.wav)")
	f.IntVar(&mixBitrate, "bitrate", 0, "bitrate in kbps for lossy output")

	rootCmd.AddCommand(mixCmd)
}

func runMix(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	var job mixJob
	if mixRequestFile != "" {
		if err := cli.LoadRequest(mixRequestFile, &job); err != nil {
			return err
		}
	}
	f := cmd.Flags()
	if f.Changed("song") {
		job.Song = mixSong
	}
	if f.Changed("insert") {
		job.Insert = mixInsert
	}
	if f.Changed("start-ms") {
		job.StartMs = mixStartMs
	}
	if f.Changed("end-ms") {
		job.EndMs = mixEndMs
	}
	if f.Changed("output") {
		job.Output = mixOutput
	}
	if f.Changed("bitrate") {
		job.BitrateKbps = mixBitrate
	}
	if job.BitrateKbps <= 0 {
		job.BitrateKbps = cfg.Mix.BitrateKbps
	}

	switch {
	case job.Song == "":
		return errors.New("song is required (--song or request file)")
	case job.Insert == "":
		return errors.New("insert is required (--insert or request file)")
	case job.StartMs < 0:
		return fmt.Errorf("start_ms must not be negative, got %d", job.StartMs)
	case job.EndMs <= job.StartMs:
		return fmt.Errorf("end_ms (%d) must be greater than start_ms (%d)", job.EndMs, job.StartMs)
	}
	if job.Output == "" {
		paths := cli.Paths{OutputDir: cfg.OutputDir}
		job.Output = paths.MixOutput(job.Song, cli.NewJobID())
	}

	res, err := insertion.Mix(insertion.Request{
		Song:    job.Song,
		Insert:  job.Insert,
		StartMs: job.StartMs,
		EndMs:   job.EndMs,
		Output:  job.Output,
	}, insertion.WithBitrate(job.BitrateKbps))
	if err != nil {
		return explain(err)
	}
	return printResult(cmd, mixReport{
		Output:            res.Output,
		Window:            res.Window,
		SongSynthesized:   res.SongSynthesized,
		InsertSynthesized: res.InsertSynthesized,
		Duration:          cli.Duration(res.Duration),
		Size:              fileSize(res.Output),
	})
}

// explain adds remediation hints to errors the user can act on.
func explain(err error) error {
	var missingTool *ffmpeg.MissingCapabilityError
	if errors.As(err, &missingTool) {
		cli.PrintHint("%s", missingTool.Remediation())
		return err
	}
	var missingAsset *audiofile.MissingAssetError
	if errors.As(err, &missingAsset) {
		cli.PrintHint("only missing .wav files are replaced by silence; provide %s", missingAsset.Path)
	}
	return err
}
