// Package dsp provides stateless, allocation-free primitives for working on
// sample buffers. Every function in this package is safe to call from the
// real-time audio callback: no allocation, no locking, no error returns.
package dsp

// DefaultLimitThreshold is the usual hard-clip ceiling for normalized samples.
const DefaultLimitThreshold float32 = 1.0

// Mix accumulates input into output, scaled by gain: output[i] += input[i] * gain.
//
// Mismatched lengths or empty buffers make Mix a no-op rather than an error.
// The audio path must never fail, so a bad combination simply leaves output
// untouched.
func Mix(input, output []float32, gain float32) {
	if len(input) == 0 || len(output) == 0 || len(input) != len(output) {
		return
	}
	for i := range output {
		output[i] += input[i] * gain
	}
}

// Clear fills buf with silence.
func Clear(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
}

// Limit hard-clips every sample in buf into [-threshold, threshold].
// Samples already within range are left unchanged.
func Limit(buf []float32, threshold float32) {
	for i, sample := range buf {
		if sample > threshold {
			buf[i] = threshold
		} else if sample < -threshold {
			buf[i] = -threshold
		}
	}
}
