// Package ffmpeg decodes and encodes audio containers that have no pure Go
// codec in this module by running the ffmpeg command line tool.
//
// The binary is looked up on PATH at the moment it is needed. WAV and MP3
// input never touch this package, so installs without ffmpeg keep working
// for those formats.
package ffmpeg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/haivivi/interlude/pkg/audio/pcm"
)

// DefaultBitrate is the bitrate in kbps used for lossy exports.
const DefaultBitrate = 192

// MissingCapabilityError reports that an external tool needed for the
// requested container is not installed.
type MissingCapabilityError struct {
	Binary string
}

func (e *MissingCapabilityError) Error() string {
	return fmt.Sprintf("%s not found on PATH; %s", e.Binary, e.Remediation())
}

// Remediation returns install instructions for the current platform.
func (e *MissingCapabilityError) Remediation() string {
	switch runtime.GOOS {
	case "darwin":
		return "install it with: brew install ffmpeg"
	case "windows":
		return "download ffmpeg from https://ffmpeg.org/download.html and add its bin directory to PATH"
	}
	return "install it with: sudo apt-get install -y ffmpeg (Ubuntu/Debian)"
}

// Lookup returns the path of the named binary or a MissingCapabilityError.
func Lookup(binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", &MissingCapabilityError{Binary: binary}
	}
	return path, nil
}

// Available reports whether ffmpeg can be run.
func Available() bool {
	_, err := Lookup("ffmpeg")
	return err == nil
}

// Decode converts any container ffmpeg understands into mono 16-bit PCM at
// the given rate. A rate of zero keeps the rate of the first audio stream,
// which needs ffprobe.
func Decode(path string, rate int) (*pcm.Raw, error) {
	if _, err := Lookup("ffmpeg"); err != nil {
		return nil, err
	}
	if rate <= 0 {
		native, err := SampleRate(path)
		if err != nil {
			return nil, err
		}
		rate = native
	}

	var stdout, stderr bytes.Buffer
	err := ffmpeg.Input(path).
		Output("pipe:1", ffmpeg.KwArgs{
			"f":      "s16le",
			"acodec": "pcm_s16le",
			"ac":     1,
			"ar":     rate,
		}).
		WithOutput(&stdout, &stderr).
		Run()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg: decode %s: %w: %s", path, err, lastLine(stderr.String()))
	}
	slog.Debug("ffmpeg decoded", "path", path, "bytes", stdout.Len(), "rate", rate)
	return &pcm.Raw{Data: stdout.Bytes(), Rate: rate, Channels: 1}, nil
}

// Encode writes b to path. The container is chosen by ffmpeg from the file
// extension; lossy codecs use bitrate kbps.
func Encode(path string, b *pcm.Buffer, bitrate int) error {
	if _, err := Lookup("ffmpeg"); err != nil {
		return err
	}
	if bitrate <= 0 {
		bitrate = DefaultBitrate
	}

	var stderr bytes.Buffer
	err := ffmpeg.Input("pipe:0", ffmpeg.KwArgs{
		"f":  "s16le",
		"ar": b.Rate,
		"ac": 1,
	}).
		Output(path, ffmpeg.KwArgs{"b:a": strconv.Itoa(bitrate) + "k"}).
		OverWriteOutput().
		WithInput(bytes.NewReader(b.Int16LE())).
		WithErrorOutput(&stderr).
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg: encode %s: %w: %s", path, err, lastLine(stderr.String()))
	}
	slog.Debug("ffmpeg encoded", "path", path, "samples", b.Len(), "bitrate_kbps", bitrate)
	return nil
}

// ProbeFormat is the container section of ffprobe's JSON report.
type ProbeFormat struct {
	Filename       string `json:"filename"`
	NBStreams      int    `json:"nb_streams"`
	FormatName     string `json:"format_name"`
	FormatLongName string `json:"format_long_name"`
	Duration       string `json:"duration"`
	Size           string `json:"size"`
	BitRate        string `json:"bit_rate"`
}

// ProbeStream is one entry of the streams section of ffprobe's JSON report.
type ProbeStream struct {
	Index      int    `json:"index"`
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

type probeReport struct {
	Format  ProbeFormat   `json:"format"`
	Streams []ProbeStream `json:"streams"`
}

// Probe runs ffprobe on path.
func Probe(path string) (*ProbeFormat, error) {
	r, err := probe(path)
	if err != nil {
		return nil, err
	}
	return &r.Format, nil
}

// SampleRate returns the sample rate of the first audio stream in path.
func SampleRate(path string) (int, error) {
	r, err := probe(path)
	if err != nil {
		return 0, err
	}
	return r.sampleRate(path)
}

func (r *probeReport) sampleRate(path string) (int, error) {
	for _, st := range r.Streams {
		if st.CodecType != "audio" {
			continue
		}
		rate, err := strconv.Atoi(st.SampleRate)
		if err != nil || rate <= 0 {
			return 0, fmt.Errorf("ffmpeg: %s: bad sample rate %q", path, st.SampleRate)
		}
		return rate, nil
	}
	return 0, fmt.Errorf("ffmpeg: %s: no audio stream", path)
}

func probe(path string) (*probeReport, error) {
	if _, err := Lookup("ffprobe"); err != nil {
		return nil, err
	}
	data, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg: probe %s: %w", path, err)
	}
	return parseProbe(path, []byte(data))
}

func parseProbe(path string, data []byte) (*probeReport, error) {
	var r probeReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("ffmpeg: parse probe of %s: %w", path, err)
	}
	return &r, nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
