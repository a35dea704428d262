package synth

import (
	"math"
	"testing"
)

func TestGenerator_BoundedByAmplitude(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		frequency  float64
		sampleRate float64
		amplitude  float32
	}{
		{"concert a", 440, 48000, 0.5},
		{"low e", 82.41, 48000, 1.0},
		{"near nyquist", 20000, 44100, 0.25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			g := NewGenerator(tc.sampleRate)
			g.SetFrequency(tc.frequency)
			g.SetAmplitude(tc.amplitude)

			buf := make([]float32, 4096)
			g.Generate(buf, false)

			for i, sample := range buf {
				if sample > tc.amplitude || sample < -tc.amplitude {
					t.Fatalf("buf[%d] = %v outside [-%v, %v]", i, sample, tc.amplitude, tc.amplitude)
				}
			}
		})
	}
}

func TestGenerator_ResetIsDeterministic(t *testing.T) {
	t.Parallel()

	g := NewGenerator(48000)
	g.SetFrequency(329.63)
	g.SetAmplitude(0.8)

	first := make([]float32, 1024)
	g.Generate(first, false)

	g.Reset()
	second := make([]float32, 1024)
	g.Generate(second, false)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs after Reset: %v != %v", i, first[i], second[i])
		}
	}
}

func TestGenerator_IdenticalGeneratorsMatchBitForBit(t *testing.T) {
	t.Parallel()

	a := NewGenerator(44100)
	b := NewGenerator(44100)
	for _, g := range []*Generator{a, b} {
		g.SetFrequency(196)
		g.SetAmplitude(0.6)
	}

	bufA := make([]float32, 2048)
	bufB := make([]float32, 2048)
	a.Generate(bufA, false)
	b.Generate(bufB, false)

	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("sample %d differs between identical generators: %v != %v", i, bufA[i], bufB[i])
		}
	}
}

func TestGenerator_AccumulateAddsToExistingContent(t *testing.T) {
	t.Parallel()

	g := NewGenerator(48000)
	g.SetFrequency(440)
	g.SetAmplitude(0.5)

	overwrite := make([]float32, 256)
	g.Generate(overwrite, false)

	g.Reset()
	accumulated := make([]float32, 256)
	for i := range accumulated {
		accumulated[i] = 0.1
	}
	g.Generate(accumulated, true)

	for i := range accumulated {
		want := overwrite[i] + 0.1
		if math.Abs(float64(accumulated[i]-want)) > 1e-6 {
			t.Fatalf("accumulated[%d] = %v, want %v", i, accumulated[i], want)
		}
	}
}

func TestGenerator_IncrementFollowsFrequencyAndRate(t *testing.T) {
	t.Parallel()

	g := NewGenerator(48000)
	g.SetFrequency(480)
	// One full cycle is sampleRate/frequency = 100 samples; sample 0 and
	// sample 100 should agree closely.
	buf := make([]float32, 101)
	g.SetAmplitude(1)
	g.Generate(buf, false)

	if math.Abs(float64(buf[100]-buf[0])) > 1e-4 {
		t.Errorf("one full cycle did not return to start: buf[0]=%v buf[100]=%v", buf[0], buf[100])
	}
}

func TestGenerator_ZeroFrequencyHoldsPhase(t *testing.T) {
	t.Parallel()

	g := NewGenerator(48000)
	g.SetFrequency(0)
	g.SetAmplitude(1)

	buf := make([]float32, 64)
	g.Generate(buf, false)
	for i, sample := range buf {
		if sample != 0 {
			t.Fatalf("buf[%d] = %v, want 0 with zero frequency from phase 0", i, sample)
		}
	}
}
