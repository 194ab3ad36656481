package commands

import (
	"github.com/spf13/cobra"

	"github.com/haivivi/interlude/pkg/audio/silence"
	"github.com/haivivi/interlude/pkg/cli"
)

var (
	silenceSeconds int
	silenceRate    int
)

var silenceCmd = &cobra.Command{
	Use:   "silence <output.wav>",
	Short: "Write a silent WAV placeholder",
	Long: `Write seconds of 16-bit mono silence to a WAV file.

Parent directories are created. An existing file is overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if err := silence.Synthesize(path, silenceSeconds, silence.WithSampleRate(silenceRate)); err != nil {
			return err
		}
		cli.PrintSuccess("wrote %s", path)
		p := cli.Std()
		p.Field("seconds", max(silenceSeconds, 0))
		p.Field("rate", silenceRate)
		p.Field("size", fileSize(path))
		return nil
	},
}

func init() {
	silenceCmd.Flags().IntVarP(&silenceSeconds, "seconds", "s", 6, "duration in whole seconds")
	silenceCmd.Flags().IntVar(&silenceRate, "rate", silence.DefaultFormat.SampleRate(), "sample rate in Hz")

	rootCmd.AddCommand(silenceCmd)
}
