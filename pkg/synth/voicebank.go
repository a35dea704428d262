package synth

import (
	"math"

	"github.com/openfret/tunerio/pkg/dsp"
)

// MaxVoices is the number of simultaneous reference tones, one per string of
// a six-string instrument.
const MaxVoices = 6

// VoiceBank mixes up to MaxVoices sine generators into a single buffer with
// loudness-normalizing gain compensation. A voice is active iff its frequency
// is strictly positive.
type VoiceBank struct {
	voices       [MaxVoices]*Generator
	frequencies  [MaxVoices]float64
	globalVolume float32
	activeVoices int
}

// NewVoiceBank returns a bank of silent voices at the given sample rate.
func NewVoiceBank(sampleRate float64) *VoiceBank {
	bank := &VoiceBank{
		globalVolume: 0.5,
	}
	for i := range bank.voices {
		bank.voices[i] = NewGenerator(sampleRate)
		bank.voices[i].SetFrequency(0)
		bank.voices[i].SetAmplitude(0)
	}
	return bank
}

// SetSampleRate updates the sample rate of every voice.
func (b *VoiceBank) SetSampleRate(sampleRate float64) {
	for _, voice := range b.voices {
		voice.SetSampleRate(sampleRate)
	}
}

// SetVoiceFrequency sets one voice's frequency in Hz; zero disables the
// voice. Out-of-range indices are silently ignored to keep the hot path
// branch-light.
func (b *VoiceBank) SetVoiceFrequency(voice int, frequency float64) {
	if voice < 0 || voice >= MaxVoices {
		return
	}

	b.frequencies[voice] = frequency
	b.voices[voice].SetFrequency(frequency)
	if frequency > 0 {
		b.voices[voice].SetAmplitude(1)
	} else {
		b.voices[voice].SetAmplitude(0)
	}

	b.updateActiveVoices()
}

// SetVoiceFrequencies sets every voice's frequency at once, low voice first.
func (b *VoiceBank) SetVoiceFrequencies(frequencies [MaxVoices]float64) {
	for i, frequency := range frequencies {
		b.SetVoiceFrequency(i, frequency)
	}
}

// SetVoiceAmplitude sets one voice's amplitude directly. Out-of-range indices
// are silently ignored.
func (b *VoiceBank) SetVoiceAmplitude(voice int, amplitude float32) {
	if voice < 0 || voice >= MaxVoices {
		return
	}
	b.voices[voice].SetAmplitude(amplitude)
}

// SetGlobalVolume sets the bank-wide volume. Values outside [0, 1] are
// clamped, not rejected.
func (b *VoiceBank) SetGlobalVolume(volume float32) {
	if volume < 0 {
		volume = 0
	} else if volume > 1 {
		volume = 1
	}
	b.globalVolume = volume
}

// Generate mixes every active voice into buf. With accumulate unset the
// buffer is cleared exactly once up front; voices always add on top of it.
// Per-voice gain is globalVolume / sqrt(activeVoices) so perceived loudness
// stays roughly constant as voices are added.
func (b *VoiceBank) Generate(buf []float32, accumulate bool) {
	if b.activeVoices == 0 {
		if !accumulate {
			dsp.Clear(buf)
		}
		return
	}

	effectiveVolume := b.globalVolume / float32(math.Sqrt(float64(b.activeVoices)))

	if !accumulate {
		dsp.Clear(buf)
	}

	for i := range b.voices {
		if b.frequencies[i] > 0 {
			b.voices[i].SetAmplitude(effectiveVolume)
			b.voices[i].Generate(buf, true)
		}
	}
}

// Reset rewinds every voice's phase to zero.
func (b *VoiceBank) Reset() {
	for _, voice := range b.voices {
		voice.Reset()
	}
}

// ActiveVoiceCount returns the number of voices with a positive frequency.
// The count is recomputed on every frequency change, so this is always
// current.
func (b *VoiceBank) ActiveVoiceCount() int {
	return b.activeVoices
}

func (b *VoiceBank) updateActiveVoices() {
	count := 0
	for _, frequency := range b.frequencies {
		if frequency > 0 {
			count++
		}
	}
	b.activeVoices = count
}
