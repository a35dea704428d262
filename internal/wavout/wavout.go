// Package wavout renders reference tones to 16-bit PCM WAV files. This is an
// offline convenience path; nothing here runs on the real-time thread.
package wavout

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/openfret/tunerio/pkg/dsp"
	"github.com/openfret/tunerio/pkg/synth"
)

const chunkFrames = 512

// Render writes duration's worth of the bank's mono output to a WAV file at
// the given path.
func Render(path string, bank *synth.VoiceBank, sampleRate int, duration time.Duration) error {
	logger := slog.Default().With("wav render path", path)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	defer f.Close()

	encoder := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	logger.Debug(
		"rendering reference tones",
		"sampleRate", sampleRate,
		"duration", duration,
		"activeVoices", bank.ActiveVoiceCount(),
	)

	const maxInt16 = float32(math.MaxInt16)
	samples := make([]float32, chunkFrames)
	intBuf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           make([]int, chunkFrames),
		SourceBitDepth: 16,
	}

	total := int(float64(sampleRate) * duration.Seconds())
	for written := 0; written < total; {
		n := chunkFrames
		if remaining := total - written; remaining < n {
			n = remaining
		}

		chunk := samples[:n]
		bank.Generate(chunk, false)
		dsp.Limit(chunk, dsp.DefaultLimitThreshold)

		intBuf.Data = intBuf.Data[:n]
		for i, sample := range chunk {
			intBuf.Data[i] = int(sample * maxInt16)
		}

		if err := encoder.Write(intBuf); err != nil {
			return fmt.Errorf("error while writing samples: %w", err)
		}
		written += n
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("error while finalizing wav file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("error while syncing wav file: %w", err)
	}

	logger.Debug("render complete", "frames", total)
	return nil
}
