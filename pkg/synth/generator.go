// Package synth provides deterministic signal generation for reference tones.
// Generators write into caller-provided buffers and never allocate, so they
// may be driven directly from the real-time audio callback.
package synth

import "math"

const twoPi = 2 * math.Pi

// Generator is a single sine oscillator with a phase accumulator in
// [0, 2*pi). Two generators with identical starting phase, frequency, sample
// rate and amplitude produce bit-identical output.
type Generator struct {
	sampleRate float64
	frequency  float64
	amplitude  float32
	phase      float64
	increment  float64
}

// NewGenerator returns a generator at the given sample rate, defaulting to
// 440 Hz at half amplitude.
func NewGenerator(sampleRate float64) *Generator {
	g := &Generator{
		sampleRate: sampleRate,
		frequency:  440.0,
		amplitude:  0.5,
	}
	g.updateIncrement()
	return g
}

// SetFrequency sets the oscillator frequency in Hz. Zero is allowed; silencing
// a voice is the amplitude's job, not the frequency's.
func (g *Generator) SetFrequency(frequency float64) {
	g.frequency = frequency
	g.updateIncrement()
}

// SetAmplitude sets the output amplitude, typically in [0, 1].
func (g *Generator) SetAmplitude(amplitude float32) {
	g.amplitude = amplitude
}

// SetSampleRate sets the sample rate in Hz.
func (g *Generator) SetSampleRate(sampleRate float64) {
	g.sampleRate = sampleRate
	g.updateIncrement()
}

// Generate writes len(buf) samples. With accumulate set, samples are added to
// the existing buffer content instead of overwriting it.
func (g *Generator) Generate(buf []float32, accumulate bool) {
	for i := range buf {
		value := g.amplitude * float32(math.Sin(g.phase))
		if accumulate {
			buf[i] += value
		} else {
			buf[i] = value
		}

		// Increment stays below 2*pi for any frequency under Nyquist, so a
		// single conditional subtraction is enough to keep the phase wrapped.
		g.phase += g.increment
		if g.phase >= twoPi {
			g.phase -= twoPi
		}
	}
}

// Reset rewinds the phase to zero, making the next Generate call reproduce
// the sequence from the start.
func (g *Generator) Reset() {
	g.phase = 0
}

// The increment is recomputed eagerly on every frequency or sample rate
// change so the generate loop stays free of conditionals.
func (g *Generator) updateIncrement() {
	g.increment = twoPi * g.frequency / g.sampleRate
}
