package insertion

// Window is an insertion range [StartMs, EndMs) on a song's timeline that
// has been clamped to the song. A non-empty Window always satisfies
// 0 <= StartMs < EndMs <= song length.
type Window struct {
	StartMs int `json:"start_ms" yaml:"start_ms"`
	EndMs   int `json:"end_ms" yaml:"end_ms"`
}

// NewWindow clamps the requested range to a song of songMs milliseconds.
// The start is pulled into [0, songMs-1] and the end into
// [start+1, songMs], so inverted or out of range requests still yield at
// least one millisecond. A song with no audio yields the empty Window.
func NewWindow(startMs, endMs, songMs int) Window {
	if songMs <= 0 {
		return Window{}
	}
	start := clamp(startMs, 0, songMs-1)
	end := clamp(endMs, start+1, songMs)
	return Window{StartMs: start, EndMs: end}
}

// Millis returns the length of w in milliseconds.
func (w Window) Millis() int {
	return w.EndMs - w.StartMs
}

// Empty reports whether w covers no time.
func (w Window) Empty() bool {
	return w.Millis() <= 0
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
