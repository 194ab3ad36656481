// Package pitch estimates the fundamental frequency of voiced audio and
// shifts its pitch without changing its duration.
//
// Estimation uses the YIN difference function over 2048-sample frames with a
// 512-sample hop. Frames that are practically silent are treated as
// unvoiced, and the estimate for a clip is the median of its voiced frames.
//
// Shifting time-stretches the clip with a phase vocoder and then resamples
// it back to its original length, which moves every partial by the same
// ratio.
package pitch
