// Package pcm provides types and utilities for working with PCM (Pulse Code Modulation) audio data.
//
// The package defines audio formats for common configurations (16-bit mono at various sample rates)
// and the Buffer type every processing stage passes around.
//
// Key types:
//   - Format: 16-bit mono formats by sample rate
//   - Raw: Interleaved 16-bit PCM straight out of a container codec
//   - Buffer: Mono float samples in [-1, 1] with their sample rate
//
// Samples convert to and from 16-bit integers by dividing and multiplying by
// 32768, rounding to nearest and clamping on the way out, so a 16-bit value
// survives a round trip through a Buffer unchanged.
//
// Example usage:
//
//	// Allocate one second of silence in the working format
//	buf := pcm.NewBuffer(pcm.Working.SampleRate(), pcm.Working.SampleRate())
//
//	// Duck the first half by 8 dB and mix a tone over it
//	buf.GainRange(0, buf.Len()/2, -8)
//	buf.Overlay(pcm.Sine(440, buf.Len()/2, buf.Rate, 0.5), 0)
//
//	// Bring the peak to 0.9
//	buf.Normalize(0.9)
package pcm
