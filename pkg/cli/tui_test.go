package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinter(t *testing.T) {
	var out, errOut bytes.Buffer
	p := &Printer{Out: &out, Err: &errOut, Styles: NewStyles(DefaultTheme)}

	p.Success("wrote %s", "a.wav")
	p.Info("key %s", "C_minor")
	p.Field("duration", "1.5s")
	p.Warning("clamped")
	p.Error("failed: %d", 3)
	p.Hint("install ffmpeg")

	t.Logf("stdout:\n%s", out.String())
	t.Logf("stderr:\n%s", errOut.String())
	for _, want := range []string{"wrote a.wav", "key C_minor", "duration:", "1.5s"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("stdout missing %q", want)
		}
	}
	for _, want := range []string{"clamped", "Error:", "failed: 3", "install ffmpeg"} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("stderr missing %q", want)
		}
	}
	if strings.Count(out.String(), "\n") != 3 {
		t.Errorf("stdout has %d lines, want 3", strings.Count(out.String(), "\n"))
	}
}
