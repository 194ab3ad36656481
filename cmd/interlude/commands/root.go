package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/haivivi/interlude/cmd/interlude/internal/config"
	"github.com/haivivi/interlude/pkg/cli"
)

var (
	// Global flags
	verbose      bool
	formatOutput string

	// Global configuration (loaded at init time)
	globalConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "interlude",
	Short: "Audio tools for song inserts and songified speech",
	Long: `interlude - Mix voice inserts into songs and turn speech into song.

Commands:
  mix        Overlay a voice clip onto a song inside a time window
  songify    Pitch spoken lyrics onto a melody
  melody     Play the melody songify would use
  silence    Write a silent WAV placeholder
  probe      Show duration, level and pitch of an audio file

WAV and MP3 are read natively. Other containers, and lossy output, need
ffmpeg on PATH.

Settings are read from the OS config directory:
  macOS:   ~/Library/Application Support/interlude/config.yaml
  Linux:   ~/.config/interlude/config.yaml
  Windows: %AppData%/interlude/config.yaml

Examples:
  # Insert an ad between 10s and 15s
  interlude mix --song song.wav --insert ad.wav --start-ms 10000 --end-ms 15000

  # Songify a spoken take
  interlude songify --input take.wav --lyrics-file lyrics.txt --key A_minor

  # Or describe the job in a file
  interlude mix -f mix.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&formatOutput, "format", "yaml", "result format (yaml, json)")
}

// configLoadErr stores the error from config.Load() for deferred reporting.
var configLoadErr error

func initConfig() {
	cfg, err := config.Load()
	if err != nil {
		configLoadErr = err
		return
	}
	globalConfig = cfg
}

// GetConfig returns the global configuration.
func GetConfig() (*config.Config, error) {
	if globalConfig == nil {
		if configLoadErr != nil {
			return nil, fmt.Errorf("config not available: %w", configLoadErr)
		}
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("config not available: %w", err)
		}
		globalConfig = cfg
	}
	return globalConfig, nil
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

// setupLogging routes slog through a charmbracelet logger on stderr.
func setupLogging() {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "interlude",
		ReportTimestamp: verbose,
	})
	slog.SetDefault(slog.New(logger))
}

// printResult writes a job result in the selected format.
func printResult(cmd *cobra.Command, v any) error {
	return cli.Output(v, cli.OutputOptions{
		Format: cli.OutputFormat(formatOutput),
		Writer: cmd.OutOrStdout(),
	})
}
