package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/haivivi/interlude/pkg/audio/audiofile"
	"github.com/haivivi/interlude/pkg/audio/pcm"
	"github.com/haivivi/interlude/pkg/cli"
	"github.com/haivivi/interlude/pkg/songify"
)

var (
	melodyLyrics     string
	melodyLyricsFile string
	melodyKey        string
	melodyBPM        int
	melodyTimbre     string
	melodyRate       int
	melodyOutput     string
	melodyMIDI       string
	melodyStrictKey  bool
)

// melodyReport is what the melody command prints.
type melodyReport struct {
	Output   string       `json:"output" yaml:"output"`
	MIDI     string       `json:"midi,omitempty" yaml:"midi,omitempty"`
	Key      string       `json:"key" yaml:"key"`
	BPM      int          `json:"bpm" yaml:"bpm"`
	Timbre   string       `json:"timbre" yaml:"timbre"`
	Notes    []int        `json:"notes" yaml:"notes"`
	Duration cli.Duration `json:"duration" yaml:"duration"`
	Size     cli.Bytes    `json:"size,omitempty" yaml:"size,omitempty"`
}

var melodyCmd = &cobra.Command{
	Use:   "melody",
	Short: "Play the songify melody for some lyrics",
	Long: `Render the melody songify would sing the lyrics to, one beat per word.

Use it to audition a key before songifying a take. The notes are the same
ones written by songify --melody-midi.`,
	Args: cobra.NoArgs,
	RunE: runMelody,
}

func init() {
	f := melodyCmd.Flags()
	f.StringVarP(&melodyLyrics, "lyrics", "l", "", "lyrics text")
	f.StringVar(&melodyLyricsFile, "lyrics-file", "", "file holding the lyrics")
	f.StringVarP(&melodyKey, "key", "k", "", "musical key, e.g. C_minor (default from settings)")
	f.IntVar(&melodyBPM, "bpm", 0, "tempo, one word per beat (default from settings)")
	f.StringVar(&melodyTimbre, "timbre", "voice", "voice or sine")
	f.IntVar(&melodyRate, "rate", pcm.Working.SampleRate(), "sample rate in Hz")
	f.StringVarP(&melodyOutput, "output", "o", "", "output file (default <output_dir>/<job>_melody.wav)")
	f.StringVar(&melodyMIDI, "midi", "", `also write a MIDI file ("auto" for <output_dir>/<job>_melody.mid)`)
	f.BoolVar(&melodyStrictKey, "strict-key", false, "reject keys that are not recognized instead of falling back")

	rootCmd.AddCommand(melodyCmd)
}

func runMelody(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	lyrics := melodyLyrics
	if melodyLyricsFile != "" {
		if lyrics, err = cli.LoadText(melodyLyricsFile); err != nil {
			return err
		}
	}
	if len(songify.Words(lyrics)) == 0 {
		return errors.New("lyrics are required (--lyrics or --lyrics-file)")
	}
	if melodyRate <= 0 {
		return errors.New("rate must be positive")
	}

	keyName := melodyKey
	if keyName == "" {
		keyName = cfg.Songify.Key
	}
	key, err := parseKey(keyName, melodyStrictKey)
	if err != nil {
		return err
	}
	bpm := melodyBPM
	if bpm <= 0 {
		bpm = cfg.Songify.BPM
	}
	timbre, err := songify.ParseTimbre(melodyTimbre)
	if err != nil {
		return err
	}

	jobID := cli.NewJobID()
	paths := cli.Paths{OutputDir: cfg.OutputDir}
	out := melodyOutput
	if out == "" {
		out = paths.MelodyPreviewOutput(jobID)
	}
	midiPath := melodyMIDI
	if midiPath == autoPath {
		midiPath = paths.MelodyOutput(jobID)
	}

	b := songify.RenderMelody(lyrics, key, bpm, melodyRate, timbre)
	if err := audiofile.Save(out, b, audiofile.WithBitrate(cfg.Mix.BitrateKbps)); err != nil {
		return explain(err)
	}
	if midiPath != "" {
		if err := songify.WriteMelodyFile(midiPath, lyrics, key, bpm); err != nil {
			return err
		}
	}

	return printResult(cmd, melodyReport{
		Output:   out,
		MIDI:     midiPath,
		Key:      key.String(),
		BPM:      bpm,
		Timbre:   timbre.String(),
		Notes:    songify.BuildMelody(lyrics, key),
		Duration: cli.Duration(b.Duration()),
		Size:     fileSize(out),
	})
}
