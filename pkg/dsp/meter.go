package dsp

import "math"

// Peak returns the largest absolute sample value in buf, or 0 for an empty buffer.
func Peak(buf []float32) float32 {
	var peak float32
	for _, sample := range buf {
		if sample < 0 {
			sample = -sample
		}
		if sample > peak {
			peak = sample
		}
	}
	return peak
}

// RMS returns the root-mean-square level of buf, or 0 for an empty buffer.
func RMS(buf []float32) float32 {
	if len(buf) == 0 {
		return 0
	}
	var sum float64
	for _, sample := range buf {
		sum += float64(sample) * float64(sample)
	}
	return float32(math.Sqrt(sum / float64(len(buf))))
}
