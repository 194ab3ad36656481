package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haivivi/interlude/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize CLI settings",
	Long: `Show the effective settings, or write them to the settings file.

Settings file keys:
  output_dir            where generated audio goes
  songify.bpm           melody guide tempo
  songify.key           default key
  songify.style         default style
  mix.bitrate_kbps      bitrate for lossy output`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return printResult(cmd, cfg)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.Path())
		return nil
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfg.Path()); err == nil && !configInitForce {
			return errors.New("settings file already exists: " + cfg.Path() + " (use --force to overwrite)")
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		cli.PrintSuccess("wrote %s", cfg.Path())
		cli.PrintInfo("edit it to change the output directory and the songify defaults")
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing settings file")

	configCmd.AddCommand(configShowCmd, configPathCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
