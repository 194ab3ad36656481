// Package resampler provides audio resampling on top of the pure Go port of
// the SoX resampler.
//
// It supports:
//   - Sample rate conversion (e.g., 16000Hz to 44100Hz), including
//     fractional rates used by the pitch shifter
//   - Channel conversion (mono to stereo or stereo to mono)
//   - Streaming interface via io.Reader, and a one-shot Resample for
//     buffers already in memory
//
// Both paths pad the end of input with silence so the filter tail is not
// lost, then trim the output to round(n * dst / src) frames.
//
// Example usage:
//
//	src := resampler.Format{SampleRate: 44100, Stereo: true}
//	dst := resampler.Format{SampleRate: 48000, Stereo: false}
//	r, err := resampler.New(audioReader, src, dst)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Read resampled audio from r
//	io.Copy(output, r)
package resampler
