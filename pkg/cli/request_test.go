package cli

import (
	"os"
	"path/filepath"
	"testing"
)

type testRequest struct {
	Song    string `json:"song" yaml:"song"`
	StartMs int    `json:"start_ms" yaml:"start_ms"`
	EndMs   int    `json:"end_ms" yaml:"end_ms"`
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
	}{
		{"yaml", "mix.yaml", "song: a.wav\nstart_ms: 10000\nend_ms: 15000\n"},
		{"yml", "mix.yml", "song: a.wav\nstart_ms: 10000\nend_ms: 15000\n"},
		{"json", "mix.json", `{"song": "a.wav", "start_ms": 10000, "end_ms": 15000}`},
		{"no extension yaml", "mix", "song: a.wav\nstart_ms: 10000\nend_ms: 15000\n"},
		{"no extension json", "mix", `{"song": "a.wav", "start_ms": 10000, "end_ms": 15000}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req testRequest
			if err := ParseRequest([]byte(tt.data), tt.filename, &req); err != nil {
				t.Fatalf("ParseRequest error: %v", err)
			}
			want := testRequest{Song: "a.wav", StartMs: 10000, EndMs: 15000}
			if req != want {
				t.Errorf("req = %+v, want %+v", req, want)
			}
		})
	}
}

func TestParseRequest_Invalid(t *testing.T) {
	var req testRequest
	if err := ParseRequest([]byte("{not json"), "mix.json", &req); err == nil {
		t.Error("ParseRequest accepted invalid JSON")
	}
	if err := ParseRequest([]byte("song: [unclosed"), "mix.yaml", &req); err == nil {
		t.Error("ParseRequest accepted invalid YAML")
	}
}

func TestLoadRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mix.yaml")
	if err := os.WriteFile(path, []byte("song: b.wav\nend_ms: 2000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var req testRequest
	if err := LoadRequest(path, &req); err != nil {
		t.Fatalf("LoadRequest error: %v", err)
	}
	if req.Song != "b.wav" || req.EndMs != 2000 {
		t.Errorf("req = %+v", req)
	}

	if err := LoadRequest(filepath.Join(t.TempDir(), "missing.yaml"), &req); err == nil {
		t.Error("LoadRequest succeeded on missing file")
	}
}

func TestLoadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lyrics.txt")
	if err := os.WriteFile(path, []byte("\ufeffhello world\nsecond line\n\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadText(path)
	if err != nil {
		t.Fatalf("LoadText error: %v", err)
	}
	if want := "hello world\nsecond line"; got != want {
		t.Errorf("LoadText = %q, want %q", got, want)
	}
}
