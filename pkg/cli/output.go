package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// OutputFormat selects how job results are printed.
type OutputFormat string

const (
	// FormatYAML is the default, meant for reading in a terminal.
	FormatYAML OutputFormat = "yaml"
	// FormatJSON is meant for scripts.
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --format value. Empty means FormatYAML.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want yaml or json)", s)
}

// OutputOptions configures Output.
type OutputOptions struct {
	Format OutputFormat

	// File receives the result when Writer is nil. Empty means stdout.
	File string

	// Indent is the JSON indentation. Empty means two spaces.
	Indent string

	Writer io.Writer
}

// Output prints a job result. Duration and Bytes fields render the same
// way in both formats.
func Output(result any, opts OutputOptions) error {
	format, err := ParseOutputFormat(string(opts.Format))
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = marshalJSON(result, opts.Indent)
	default:
		data, err = yaml.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	switch {
	case opts.Writer != nil:
		_, err = opts.Writer.Write(data)
	case opts.File != "":
		err = os.WriteFile(opts.File, data, 0644)
	default:
		_, err = os.Stdout.Write(data)
	}
	return err
}

// marshalJSON indents result and leaves &, < and > in file paths alone.
func marshalJSON(result any, indent string) ([]byte, error) {
	if indent == "" {
		indent = "  "
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Duration is an audio length printed as FormatDuration renders it, for
// example "20.0s" or "1m5.0s".
type Duration time.Duration

func (d Duration) String() string {
	return FormatDuration(time.Duration(d))
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// Bytes is a file size printed as FormatBytes renders it.
type Bytes int64

func (b Bytes) String() string {
	return FormatBytes(int64(b))
}

// MarshalJSON implements json.Marshaler.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (b Bytes) MarshalYAML() (any, error) {
	return b.String(), nil
}
