package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/haivivi/interlude/cmd/interlude/internal/config"
	"github.com/haivivi/interlude/pkg/audio/audiofile"
	"github.com/haivivi/interlude/pkg/audio/pcm"
)

const testRate = 44100

// setupTestEnv points the CLI at a fresh settings directory whose
// output_dir is inside the test's temp dir. It returns that output dir.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default(filepath.Join(dir, "config"))
	cfg.OutputDir = filepath.Join(dir, "generated")
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvDir, cfg.Dir)
	globalConfig = nil
	configLoadErr = nil
	return cfg.OutputDir
}

func runCmd(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	verbose = false
	formatOutput = "yaml"

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	wOut.Close()
	wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	var outBuf, errBuf bytes.Buffer
	outBuf.ReadFrom(rOut)
	errBuf.ReadFrom(rErr)

	stdout = outBuf.String()
	stderr = errBuf.String()
	if err != nil {
		exitCode = 1
		stderr += err.Error()
	}

	resetFlags(rootCmd)
	return
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		f.Value.Set(f.DefValue)
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// writeTestYAML writes a YAML file to a temp dir and returns its path.
func writeTestYAML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeAudio saves b as a WAV file in a temp dir and returns its path.
func writeAudio(t *testing.T, name string, b *pcm.Buffer) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := audiofile.Save(path, b); err != nil {
		t.Fatal(err)
	}
	return path
}

// speech returns three voiced syllables separated by short gaps.
func speech() *pcm.Buffer {
	b := pcm.NewBuffer(testRate, 3*testRate)
	b.Overlay(pcm.Voice(140, 35000, testRate, 0.6), 2000)
	b.Overlay(pcm.Voice(170, 35000, testRate, 0.6), 42000)
	b.Overlay(pcm.Voice(125, 48000, testRate, 0.6), 82000)
	return b
}
