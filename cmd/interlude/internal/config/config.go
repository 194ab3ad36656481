// Package config loads the interlude CLI settings.
//
// Settings live in a single YAML file under os.UserConfigDir():
//
//	~/Library/Application Support/interlude/config.yaml   (macOS)
//	~/.config/interlude/config.yaml                       (Linux)
//	%AppData%/interlude/config.yaml                       (Windows)
//
// The INTERLUDE_CONFIG_DIR environment variable overrides the directory.
// A missing file means defaults.
//
// Example:
//
//	output_dir: generated
//	songify:
//	  bpm: 120
//	  key: C_minor
//	  style: talk_sing
//	mix:
//	  bitrate_kbps: 192
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	// appDir is the directory name under os.UserConfigDir().
	appDir = "interlude"

	// configFile is the settings file name.
	configFile = "config.yaml"

	// EnvDir overrides the configuration directory.
	EnvDir = "INTERLUDE_CONFIG_DIR"
)

// Defaults for settings the file leaves out.
const (
	DefaultOutputDir = "generated"
	DefaultBPM       = 120
	DefaultKey       = "C_minor"
	DefaultStyle     = "talk_sing"
	DefaultBitrate   = 192
)

// Config holds the CLI settings.
type Config struct {
	// Dir is the configuration directory the settings were loaded from.
	Dir string `json:"-" yaml:"-"`

	// OutputDir receives generated audio when a job names no output.
	OutputDir string `json:"output_dir" yaml:"output_dir,omitempty"`

	Songify Songify `json:"songify" yaml:"songify"`
	Mix     Mix     `json:"mix" yaml:"mix"`
}

// Songify holds defaults for the songify command.
type Songify struct {
	BPM   int    `json:"bpm" yaml:"bpm,omitempty"`
	Key   string `json:"key" yaml:"key,omitempty"`
	Style string `json:"style" yaml:"style,omitempty"`
}

// Mix holds defaults for the mix command.
type Mix struct {
	// BitrateKbps applies when the output container is lossy.
	BitrateKbps int `json:"bitrate_kbps" yaml:"bitrate_kbps,omitempty"`
}

// Default returns the built-in settings rooted at dir.
func Default(dir string) *Config {
	c := &Config{Dir: dir}
	c.applyDefaults()
	return c
}

// Load loads the configuration from the default location.
func Load() (*Config, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return LoadFrom(dir)
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine config directory: %w", err)
	}
	return LoadFrom(filepath.Join(base, appDir))
}

// LoadFrom loads the configuration from a specific directory.
func LoadFrom(dir string) (*Config, error) {
	c := &Config{Dir: dir}
	data, err := os.ReadFile(c.Path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", c.Path(), err)
		}
	}
	c.Dir = dir
	c.applyDefaults()
	return c, nil
}

// Path returns the settings file path.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, configFile)
}

// Save writes the settings file, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(c.Path(), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Songify.BPM <= 0 {
		c.Songify.BPM = DefaultBPM
	}
	if c.Songify.Key == "" {
		c.Songify.Key = DefaultKey
	}
	if c.Songify.Style == "" {
		c.Songify.Style = DefaultStyle
	}
	if c.Mix.BitrateKbps <= 0 {
		c.Mix.BitrateKbps = DefaultBitrate
	}
}
