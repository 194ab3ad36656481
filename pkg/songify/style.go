package songify

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haivivi/interlude/pkg/audio/pcm"
	"github.com/haivivi/interlude/pkg/audio/pitch"
)

// Style selects the post-effect applied to a songified rendition.
type Style int

const (
	// TalkSing leaves the pitched rendition as is.
	TalkSing Style = iota
	// Chant layers a quiet 20 ms delayed copy under the rendition.
	Chant
	// Rap layers the delayed copy detuned by a tenth of a semitone.
	Rap
)

const (
	// DoublingDelay is the offset of the doubled layer.
	DoublingDelay = 20 * time.Millisecond
	// RapDetune is the pitch offset of the doubled layer for Rap, in
	// semitones.
	RapDetune = 0.1

	dryLevel     = 0.9
	doubledLevel = 0.2
)

// ErrUnknownStyle is returned by ParseStyle for names it does not know.
var ErrUnknownStyle = errors.New("songify: unknown style")

var styleNames = [...]string{
	TalkSing: "talk_sing",
	Chant:    "chant",
	Rap:      "rap",
}

func (s Style) String() string {
	if s >= 0 && int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle returns the Style named s (case insensitive).
func ParseStyle(s string) (Style, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return TalkSing, fmt.Errorf("%w %q (want one of %s)", ErrUnknownStyle, s, strings.Join(styleNames[:], ", "))
}

// Apply runs the style post-effect on b in place. Chant and Rap mix
// b*0.9 with a delayed copy at 0.2 and do not renormalize afterwards.
func (s Style) Apply(b *pcm.Buffer) error {
	if s != Chant && s != Rap {
		return nil
	}
	doubled := b.Delayed(b.SamplesIn(DoublingDelay))
	if s == Rap {
		shifted, err := pitch.Shift(doubled.Samples, doubled.Rate, RapDetune)
		if err != nil {
			return fmt.Errorf("songify: %s doubling: %w", s, err)
		}
		doubled.Samples = shifted
	}
	b.Scale(dryLevel)
	b.OverlayScaled(doubled, 0, doubledLevel)
	return nil
}
