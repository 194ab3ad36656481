// Package audio is the umbrella for interlude's audio sub-packages:
//
//   - pcm: the float64 mono working buffer, PCM formats and DSP helpers
//   - resampler: sample rate and channel conversion
//   - codec/wav, codec/mp3: native containers
//   - ffmpeg: everything else, through the ffmpeg binary
//   - audiofile: load any supported file at the working rate, save by extension
//   - silence: silent WAV placeholders
//   - pitch: YIN pitch estimation and phase vocoder pitch shifting
//
// Example usage:
//
//	import (
//	    "github.com/haivivi/interlude/pkg/audio/audiofile"
//	    "github.com/haivivi/interlude/pkg/audio/pcm"
//	)
//
//	b, err := audiofile.Load("take.mp3") // mono, 44100 Hz
//	if err != nil {
//	    return err
//	}
//	b.Scale(pcm.DB(-8))
//	err = audiofile.Save("take.wav", b)
package audio
