package wavout

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/openfret/tunerio/internal/tuning"
	"github.com/openfret/tunerio/pkg/synth"
)

func TestRender(t *testing.T) {
	t.Parallel()

	const sampleRate = 48000
	path := filepath.Join(t.TempDir(), "reference.wav")

	bank := synth.NewVoiceBank(sampleRate)
	bank.SetVoiceFrequencies(tuning.Standard.Frequencies())
	bank.SetGlobalVolume(0.5)

	if err := Render(path, bank, sampleRate, 250*time.Millisecond); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("could not open rendered file: %v", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		t.Fatalf("rendered file is not a valid WAV: %v", decoder.Err())
	}
	if decoder.SampleRate != sampleRate {
		t.Errorf("sample rate = %d, want %d", decoder.SampleRate, sampleRate)
	}
	if decoder.NumChans != 1 {
		t.Errorf("channels = %d, want 1", decoder.NumChans)
	}

	duration, err := decoder.Duration()
	if err != nil {
		t.Fatalf("could not read duration: %v", err)
	}
	want := 250 * time.Millisecond
	if diff := duration - want; diff < -time.Millisecond || diff > time.Millisecond {
		t.Errorf("duration = %v, want ~%v", duration, want)
	}
}

func TestRenderSilentBank(t *testing.T) {
	t.Parallel()

	const sampleRate = 48000
	path := filepath.Join(t.TempDir(), "silence.wav")

	bank := synth.NewVoiceBank(sampleRate)
	if err := Render(path, bank, sampleRate, 100*time.Millisecond); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("could not open rendered file: %v", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		t.Fatalf("rendered file is not a valid WAV: %v", decoder.Err())
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		t.Fatalf("could not read PCM data: %v", err)
	}
	for i, sample := range buf.Data {
		if sample != 0 {
			t.Fatalf("sample %d = %d, want silence from an empty bank", i, sample)
		}
	}
}
